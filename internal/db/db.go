// Package db opens the gorm connection for the configured engine.
package db

import (
	"time"

	"github.com/glebarez/sqlite"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/cortejtech/agency-admin/internal/config"
	"github.com/cortejtech/agency-admin/internal/db/dsn"
	"github.com/cortejtech/agency-admin/internal/db/models"
	gormlog "github.com/cortejtech/agency-admin/internal/logger/adapter/gorm"
)

// SlowQueryThreshold is the duration above which a statement is logged as a warning.
const SlowQueryThreshold = 200 * time.Millisecond

// Dialector returns the gorm driver for cfg.DB.GormEngine.
func Dialector(cfg *config.Config) (gorm.Dialector, error) {
	switch cfg.DB.GormEngine {
	case config.EngineMySQL:
		return mysql.Open(dsn.MySQL(cfg)), nil
	case config.EnginePostgres:
		return postgres.Open(dsn.Postgres(cfg)), nil
	case config.EngineSQLite:
		return sqlite.Open(cfg.DB.Name), nil
	default:
		return nil, config.ErrUnknownGormEngine
	}
}

// Open connects to the database and migrates every model.
func Open(cfg *config.Config) (*gorm.DB, error) {
	dialector, err := Dialector(cfg)
	if err != nil {
		return nil, err
	}

	level := logger.Warn
	if cfg.DevMode {
		level = logger.Info
	}

	gormCfg := &gorm.Config{Logger: gormlog.New(log.Logger, level, SlowQueryThreshold)}

	db, err := gorm.Open(dialector, gormCfg)
	if err != nil {
		return nil, errors.Wrap(err, "failed to connect database")
	}

	if err = db.AutoMigrate(models.All()...); err != nil {
		return nil, errors.Wrap(err, "failed to migrate database")
	}

	log.Info().Str("engine", cfg.DB.GormEngine).Msg("database ready")

	return db, nil
}
