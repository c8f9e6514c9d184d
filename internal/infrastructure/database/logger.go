package database

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type gormLogger struct {
	zl    zerolog.Logger
	level logger.LogLevel
	slow  time.Duration
}

// NewLogger routes gorm output through zerolog. Slow statements and
// failures are logged at warn since constraint violations are reported to
// callers rather than treated as faults. Every statement is logged too,
// at debug, but only when zl runs at debug level.
func NewLogger(zl zerolog.Logger, slow time.Duration) logger.Interface {
	level := logger.Warn
	if debugEnabled(zl) {
		level = logger.Info
	}
	return &gormLogger{zl: zl.With().Str("component", "gorm").Logger(), level: level, slow: slow}
}

func debugEnabled(zl zerolog.Logger) bool {
	return zerolog.GlobalLevel() <= zerolog.DebugLevel && zl.GetLevel() <= zerolog.DebugLevel
}

func (l *gormLogger) LogMode(level logger.LogLevel) logger.Interface {
	cp := *l
	cp.level = level
	return &cp
}

func (l *gormLogger) Info(_ context.Context, msg string, args ...interface{}) {
	if l.level >= logger.Info {
		l.zl.Info().Msgf(msg, args...)
	}
}

func (l *gormLogger) Warn(_ context.Context, msg string, args ...interface{}) {
	if l.level >= logger.Warn {
		l.zl.Warn().Msgf(msg, args...)
	}
}

func (l *gormLogger) Error(_ context.Context, msg string, args ...interface{}) {
	if l.level >= logger.Error {
		l.zl.Error().Msgf(msg, args...)
	}
}

func (l *gormLogger) Trace(_ context.Context, begin time.Time, fc func() (string, int64), err error) {
	if l.level <= logger.Silent {
		return
	}
	elapsed := time.Since(begin)
	switch {
	case err != nil && !errors.Is(err, gorm.ErrRecordNotFound) && l.level >= logger.Error:
		sql, rows := fc()
		l.zl.Warn().Err(err).Dur("elapsed", elapsed).Int64("rows", rows).Str("sql", sql).Msg("query failed")
	case l.slow > 0 && elapsed > l.slow && l.level >= logger.Warn:
		sql, rows := fc()
		l.zl.Warn().Dur("elapsed", elapsed).Int64("rows", rows).Str("sql", sql).Msg("slow query")
	case l.level >= logger.Info && debugEnabled(l.zl):
		sql, rows := fc()
		l.zl.Debug().Dur("elapsed", elapsed).Int64("rows", rows).Str("sql", sql).Msg("query")
	}
}
