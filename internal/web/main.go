package web

import (
	"errors"
	"html/template"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/filesystem"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/gofiber/template/html/v2"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/cortejtech/agency-admin/internal/config"
	"github.com/cortejtech/agency-admin/internal/content"
	fiberlogger "github.com/cortejtech/agency-admin/internal/logger/adapter/fiber"
	"github.com/cortejtech/agency-admin/internal/markdown"
	"github.com/cortejtech/agency-admin/internal/siteconfig"
	"github.com/cortejtech/agency-admin/internal/web/handler"
	"github.com/cortejtech/agency-admin/internal/web/handler/admin/crud"
	"github.com/cortejtech/agency-admin/internal/web/handler/admin/settings"
	"github.com/cortejtech/agency-admin/internal/web/handler/api"
	"github.com/cortejtech/agency-admin/internal/web/handler/dashboard"
	"github.com/cortejtech/agency-admin/internal/web/handler/login"
	"github.com/cortejtech/agency-admin/internal/web/handler/logout"
	authmiddleware "github.com/cortejtech/agency-admin/internal/web/middleware/auth"
)

const (
	// CheckAlivePath answers 503 while the service shuts down.
	CheckAlivePath = "/checkalive"

	// MetricsPath exposes the prometheus metrics.
	MetricsPath = "/metrics"
)

// Service represents the web service.
type Service struct {
	App          *fiber.App
	cfg          *config.Config
	fastShutDown bool
	alive        atomic.Bool
	db           *gorm.DB
}

// adminScreen is a crud handler that can be listed on the dashboard.
type adminScreen interface {
	handler.Service
	dashboard.Section
}

// Start starts the web service on the given address.
func (s *Service) Start(addr string) error {
	var doneFiber = make(chan bool)

	s.alive.Store(true)

	go func() {
		if err := s.App.Listen(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Msgf("fiber listen error: %v", err)
		}

		doneFiber <- true
	}()

	<-doneFiber // wait for fiber to stop

	return nil
}

// WaitShutdown waits for a termination signal and stops the web service gracefully.
func (s *Service) WaitShutdown() {
	irqSig := make(chan os.Signal, 1)
	signal.Notify(irqSig, syscall.SIGINT, syscall.SIGTERM)

	sig := <-irqSig
	log.Info().Msgf("shutdown request (signal: %v)", sig)

	// Graceful shutdown for reverse proxies: set status to fail, so checkalive returns fail.
	if !s.fastShutDown {
		log.Info().Msgf(
			"graceful shutdown: return 503 while %d seconds to let LB to remove this pod from active targets",
			s.cfg.Webserver.ShutDownTime,
		)

		s.alive.Store(false)
		time.Sleep(time.Duration(s.cfg.Webserver.ShutDownTime) * time.Second)
	}

	// stop fiber http server
	serverShutdown := make(chan struct{})

	go func() {
		log.Info().Msg("stopping http server ...")

		err := s.App.Shutdown()
		if err != nil {
			log.Error().Err(err).Msg("")
		}

		serverShutdown <- struct{}{}
	}()

	<-serverShutdown
	log.Info().Msg("http server was stopped ... good bye...")
}

// CheckAlive reports 200 while the service accepts traffic and 503 afterwards.
func (s *Service) CheckAlive(c *fiber.Ctx) error {
	if !s.alive.Load() {
		return c.Status(fiber.StatusServiceUnavailable).SendString("shutting down")
	}

	return c.SendString("OK")
}

func newTemplateEngine(cfg *config.Config) *html.Engine {
	httpFS := http.FS(templateEmbedFS{embeddedTemplates})
	templateEngine := html.NewFileSystem(httpFS, ".gohtml")

	// in debug mode, use local filesystem for templates
	if cfg.DevMode {
		templateEngine = html.New("./internal/web/templates", ".gohtml")
		templateEngine.ShouldReload = true

		log.Warn().Msg("debug mode enabled: using local filesystem for templates")
	}

	md := markdown.New()

	templateEngine.AddFunc("add", func(a, b int) int {
		return a + b
	})
	templateEngine.AddFunc("lower", strings.ToLower)
	templateEngine.AddFunc("siteTitle", func() string {
		return cfg.Title
	})
	templateEngine.AddFunc("markdown", func(src string) template.HTML {
		out, err := md.HTML(src)
		if err != nil {
			return template.HTML(template.HTMLEscapeString(src)) //nolint:gosec
		}

		return template.HTML(out) //nolint:gosec // sanitized by the renderer
	})

	return templateEngine
}

// New creates the web service. storage backs the contact rate limiter and may be nil.
func New(cfg *config.Config, db *gorm.DB, overlay *siteconfig.Overlay, storage fiber.Storage) *Service {
	if cfg == nil {
		panic("config cannot be nil")
	}

	if db == nil {
		panic("db cannot be nil")
	}

	handler.RegisterFormDecoders()

	// create fiber app
	app := fiber.New(
		fiber.Config{
			ReadBufferSize: 8192,
			AppName:        "agency-admin",
			CaseSensitive:  true,
			Prefork:        false,
			Immutable:      true,
			Views:          newTemplateEngine(cfg),
		},
	)

	service := &Service{
		cfg: cfg,
		App: app,
		db:  db,
	}
	service.alive.Store(true)

	app.Use(requestid.New(requestid.Config{Generator: uuid.NewString}))
	app.Use(fiberlogger.New(fiberlogger.Config{Config: cfg.Log, CheckAliveURI: CheckAlivePath}))

	// serve embedded static files
	app.Use("/static",
		filesystem.New(
			filesystem.Config{
				Root:       http.FS(embeddedStaticFiles),
				PathPrefix: "static",
				Browse:     cfg.Webserver.BrowseStatic,
			},
		),
	)

	app.Get(CheckAlivePath, service.CheckAlive)
	app.Get(MetricsPath, adaptor.HTTPHandler(promhttp.Handler()))

	mustInit := func(name string, err error) {
		if err != nil {
			log.Fatal().Err(err).Str("handler", name).Msg("failed to init handler")
		}
	}

	// public routes
	mustInit("api", api.Handler.Init(app, cfg, db, overlay, storage))
	mustInit("login", login.Handler.Init(app, cfg, db))
	mustInit("logout", logout.Handler.Init(app, cfg))

	// back-office, every route below requires a session
	admin := app.Group(handler.AdminPath, authmiddleware.Middleware)

	screens := []adminScreen{
		crud.New(content.Blog),
		crud.New(content.Services),
		crud.New(content.Portfolio),
		crud.New(content.Jobs),
		crud.New(content.About),
		crud.New(content.Pages),
		crud.New(content.Messages),
	}

	sections := make([]dashboard.Section, len(screens))

	for i, screen := range screens {
		mustInit("admin", screen.Init(admin, cfg, db))
		sections[i] = screen
	}

	mustInit("settings", settings.Handler.Init(admin, cfg, overlay))
	mustInit("dashboard", dashboard.Handler.Init(admin, cfg, db, sections...))

	// redirect root to the back-office
	app.Get(handler.RootPath, func(c *fiber.Ctx) error {
		return c.Redirect(handler.AdminPath)
	})

	return service
}
