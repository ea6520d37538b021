// Package gorm routes gorm's statement and driver messages through zerolog.
package gorm

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
	gormlogger "gorm.io/gorm/logger"
)

// Logger implements gorm's logger.Interface.
//
// At Info every statement is written at debug level. At Warn statements slower
// than the threshold are written as warnings. At Error only failed statements
// are written; a missing record is not a failure.
type Logger struct {
	log   zerolog.Logger
	level gormlogger.LogLevel
	slow  time.Duration
}

// New returns a logger writing to l. A zero slow threshold disables slow statement warnings.
func New(l zerolog.Logger, level gormlogger.LogLevel, slow time.Duration) *Logger {
	return &Logger{log: l.With().Str("component", "gorm").Logger(), level: level, slow: slow}
}

// LogMode implements gormlogger.Interface.
func (l *Logger) LogMode(level gormlogger.LogLevel) gormlogger.Interface {
	c := *l
	c.level = level

	return &c
}

// Info implements gormlogger.Interface.
func (l *Logger) Info(_ context.Context, msg string, args ...any) {
	if l.level >= gormlogger.Info {
		l.log.Info().Msgf(msg, args...)
	}
}

// Warn implements gormlogger.Interface.
func (l *Logger) Warn(_ context.Context, msg string, args ...any) {
	if l.level >= gormlogger.Warn {
		l.log.Warn().Msgf(msg, args...)
	}
}

// Error implements gormlogger.Interface.
func (l *Logger) Error(_ context.Context, msg string, args ...any) {
	if l.level >= gormlogger.Error {
		l.log.Error().Msgf(msg, args...)
	}
}

// Trace implements gormlogger.Interface.
func (l *Logger) Trace(_ context.Context, begin time.Time, fc func() (string, int64), err error) {
	if l.level <= gormlogger.Silent {
		return
	}

	elapsed := time.Since(begin)

	var ev *zerolog.Event

	switch {
	case err != nil && l.level >= gormlogger.Error && !errors.Is(err, gormlogger.ErrRecordNotFound):
		ev = l.log.Error().Err(err)
	case l.slow > 0 && elapsed > l.slow && l.level >= gormlogger.Warn:
		ev = l.log.Warn().Dur("threshold", l.slow)
	case l.level >= gormlogger.Info:
		ev = l.log.Debug()
	default:
		return
	}

	sql, rows := fc()

	ev.Dur("elapsed", elapsed).Int64("rows", rows).Str("sql", sql).Msg("sql")
}
