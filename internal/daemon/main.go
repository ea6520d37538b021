// Package daemon assembles the database, the session storage and the web
// service and runs them until shutdown.
package daemon

import (
	"context"
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
	sessionmysql "github.com/gofiber/storage/mysql/v2"
	sessionpostgres "github.com/gofiber/storage/postgres/v3"

	"github.com/cortejtech/agency-admin/internal/config"
	"github.com/cortejtech/agency-admin/internal/db"
	"github.com/cortejtech/agency-admin/internal/db/dsn"
	"github.com/cortejtech/agency-admin/internal/siteconfig"
	"github.com/cortejtech/agency-admin/internal/web"
	"github.com/cortejtech/agency-admin/internal/web/session"
)

const (
	sessionTable   = "sessions"
	rateLimitTable = "rate_limits"
)

// ErrNilConfig is returned by New without a configuration.
var ErrNilConfig = errors.New("config is nil")

// Daemon represents the main application daemon.
type Daemon struct {
	cfg        *config.Config
	webService *web.Service
}

// Start runs the web service until a termination signal is received.
func (d *Daemon) Start() error {
	go d.webService.WaitShutdown()

	return d.webService.Start(fmt.Sprintf(":%d", d.cfg.Webserver.Port))
}

// storage returns the fiber storage of table for the configured engine.
// The sqlite engine keeps everything in memory.
func storage(cfg *config.Config, table string) fiber.Storage {
	switch cfg.DB.GormEngine {
	case config.EngineMySQL:
		return sessionmysql.New(sessionmysql.Config{
			ConnectionURI: dsn.MySQL(cfg),
			Table:         table,
		})
	case config.EnginePostgres:
		return sessionpostgres.New(sessionpostgres.Config{
			ConnectionURI: dsn.Postgres(cfg),
			Table:         table,
		})
	default:
		return nil
	}
}

// New creates a new Daemon instance with the provided configuration.
func New(cfg *config.Config) (*Daemon, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}

	ctx := context.Background()

	gormDB, err := db.Open(cfg)
	if err != nil {
		return nil, err
	}

	if err = seed(ctx, cfg, gormDB); err != nil {
		return nil, err
	}

	session.Init(storage(cfg, sessionTable))

	overlay := siteconfig.New(siteconfig.DBStore{DB: gormDB}, siteconfig.CacheFromConfig(ctx, cfg.Redis))

	return &Daemon{
		cfg:        cfg,
		webService: web.New(cfg, gormDB, overlay, storage(cfg, rateLimitTable)),
	}, nil
}
