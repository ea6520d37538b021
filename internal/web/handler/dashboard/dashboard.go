// Package dashboard renders the back-office start page with record counts
// and the latest contact messages.
package dashboard

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/cortejtech/agency-admin/internal/config"
	"github.com/cortejtech/agency-admin/internal/db/models"
	"github.com/cortejtech/agency-admin/internal/store"
	"github.com/cortejtech/agency-admin/internal/web/handler"
	"github.com/cortejtech/agency-admin/internal/web/navigation"
)

const (
	// TemplateName is the name of the dashboard template.
	TemplateName = "dashboard"

	latestMessages = 5
)

// Section is an entity listed on the dashboard.
type Section interface {
	Title() string
	Path() string
	Count(c *fiber.Ctx) (int64, error)
}

// Tile is one counter of the dashboard.
type Tile struct {
	Title string
	Path  string
	Count int64
	Error bool
}

// Service is the dashboard handler service.
type Service struct {
	handler.Service
	cfg      *config.Config
	sections []Section
	messages *store.Table[models.ContactMessage]
}

// Handler is the dashboard handler.
var Handler = Service{}

// Init initializes the dashboard handler on the admin group.
func (s *Service) Init(router fiber.Router, cfg *config.Config, db *gorm.DB, sections ...Section) error {
	if router == nil || cfg == nil || db == nil {
		return errors.New(handler.ErrNilACDFatalLogMsg)
	}

	messages, err := store.New[models.ContactMessage](db)
	if err != nil {
		return err
	}

	s.cfg = cfg
	s.sections = sections
	s.messages = messages

	router.Get(handler.RouterRootPath, s.Get)

	return nil
}

// Get handles the dashboard page rendering.
func (s *Service) Get(c *fiber.Ctx) error {
	nav := navigation.NewContext("Dashboard", "dashboard", "dashboard").
		AddBreadcrumb("Home", handler.AdminPath, true)

	tiles := make([]Tile, len(s.sections))

	for i, sec := range s.sections {
		tiles[i] = Tile{Title: sec.Title(), Path: sec.Path()}

		n, err := sec.Count(c)
		if err != nil {
			log.Error().Err(err).Str("section", sec.Title()).Msg("failed to count records")
			tiles[i].Error = true

			continue
		}

		tiles[i].Count = n
	}

	latest, err := s.messages.Select(c.UserContext(), store.Query{
		Order: []store.Order{{Column: "created_at", Desc: true}, {Column: "id", Desc: true}},
		Limit: latestMessages,
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to load latest messages")
	}

	return c.Render(TemplateName, fiber.Map{
		"Tiles":      tiles,
		"Messages":   latest,
		"Notices":    handler.TakeFlash(c),
		"Navigation": nav,
	}, handler.BaseLayout)
}
