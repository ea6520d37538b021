// Package api serves the read-only JSON content of the public marketing site
// and accepts contact form submissions.
package api

import (
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/cortejtech/agency-admin/internal/config"
	"github.com/cortejtech/agency-admin/internal/content"
	"github.com/cortejtech/agency-admin/internal/db/models"
	"github.com/cortejtech/agency-admin/internal/markdown"
	"github.com/cortejtech/agency-admin/internal/siteconfig"
	"github.com/cortejtech/agency-admin/internal/store"
	"github.com/cortejtech/agency-admin/internal/web/handler"
)

const (
	// Path is the prefix of every api route.
	Path = "/api"

	summaryLength = 200
)

// ErrorResponse is the body of every failed api call.
type ErrorResponse struct {
	Error  string   `json:"error"`
	Fields []string `json:"fields,omitempty"`
}

// Service is the public api handler service.
type Service struct {
	cfg      *config.Config
	overlay  *siteconfig.Overlay
	md       *markdown.Renderer
	about    *store.Table[models.AboutItem]
	services *store.Table[models.Service]
	projects *store.Table[models.PortfolioItem]
	posts    *store.Table[models.BlogPost]
	jobs     *store.Table[models.Job]
	pages    *store.Table[models.Page]
	messages *store.Table[models.ContactMessage]
}

// Handler is the api handler.
var Handler = Service{}

// Init registers the api routes. Storage backs the contact rate limiter, nil keeps it in memory.
func (s *Service) Init(
	app fiber.Router, cfg *config.Config, db *gorm.DB, overlay *siteconfig.Overlay, storage fiber.Storage,
) error {
	if app == nil || cfg == nil || db == nil || overlay == nil {
		return errors.New(handler.ErrNilACDFatalLogMsg)
	}

	s.cfg = cfg
	s.overlay = overlay
	s.md = markdown.New()
	s.about = store.MustNew[models.AboutItem](db)
	s.services = store.MustNew[models.Service](db)
	s.projects = store.MustNew[models.PortfolioItem](db)
	s.posts = store.MustNew[models.BlogPost](db)
	s.jobs = store.MustNew[models.Job](db)
	s.pages = store.MustNew[models.Page](db)
	s.messages = store.MustNew[models.ContactMessage](db)

	origins := cfg.Webserver.CORSAllowOrigins
	if origins == "" {
		origins = "*"
	}

	api := app.Group(Path, cors.New(cors.Config{
		AllowOrigins: origins,
		AllowMethods: strings.Join([]string{fiber.MethodGet, fiber.MethodPost, fiber.MethodOptions}, ","),
		AllowHeaders: fiber.HeaderContentType,
	}))

	api.Get("/site", s.Site)
	api.Get("/about", s.About)
	api.Get("/services", s.Services)
	api.Get("/portfolio", s.Portfolio)
	api.Get("/blog", s.Blog)
	api.Get("/blog/:slug", s.BlogPost)
	api.Get("/jobs", s.Jobs)
	api.Get("/pages/:slug", s.Page)

	api.Post("/contact", limiter.New(limiter.Config{
		Max:        cfg.Webserver.ContactRateLimit,
		Expiration: time.Minute,
		Storage:    storage,
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(ErrorResponse{Error: "too many requests, try again later"})
		},
	}), s.Contact)

	return nil
}

func fail(c *fiber.Ctx, status int, msg string) error {
	return c.Status(status).JSON(ErrorResponse{Error: msg})
}

func internalError(c *fiber.Ctx, err error, what string) error {
	log.Error().Err(err).Str("path", c.Path()).Msg("failed to load " + what)
	return fail(c, fiber.StatusInternalServerError, "failed to load "+what)
}

// orderOf returns the list order of a definition, oldest first when unset.
func orderOf(order []store.Order) []store.Order {
	if len(order) == 0 {
		return []store.Order{{Column: "id"}}
	}

	return order
}

// Site returns the effective site settings. The defaults are served when the store fails.
func (s *Service) Site(c *fiber.Ctx) error {
	values, err := s.overlay.Load(c.UserContext())
	if err != nil {
		log.Error().Err(err).Msg("failed to load site settings, serving defaults")

		values = siteconfig.Defaults()
	}

	return c.JSON(values)
}

// About returns the about sections.
func (s *Service) About(c *fiber.Ctx) error {
	rows, err := s.about.Select(c.UserContext(), store.Query{Order: orderOf(content.About.Definition.Order)})
	if err != nil {
		return internalError(c, err, "about sections")
	}

	return c.JSON(rows)
}

// Services returns the services, only the featured ones with ?featured=true.
func (s *Service) Services(c *fiber.Ctx) error {
	q := store.Query{Order: orderOf(content.Services.Definition.Order)}

	if c.QueryBool("featured") {
		q.Filters = append(q.Filters, store.Eq("is_featured", true))
	}

	rows, err := s.services.Select(c.UserContext(), q)
	if err != nil {
		return internalError(c, err, "services")
	}

	return c.JSON(rows)
}

// Portfolio returns the portfolio items, optionally of one ?category.
func (s *Service) Portfolio(c *fiber.Ctx) error {
	q := store.Query{Order: orderOf(content.Portfolio.Definition.Order)}

	if category := c.Query("category"); category != "" && category != "all" {
		q.Filters = append(q.Filters, store.Eq("category", category))
	}

	rows, err := s.projects.Select(c.UserContext(), q)
	if err != nil {
		return internalError(c, err, "portfolio")
	}

	return c.JSON(rows)
}
