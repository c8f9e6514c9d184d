// Package bootstrap wires configuration, the store, the optional Redis
// client and the document converter into a ready Fiber app.
package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"remate/internal/application/documents"
	"remate/internal/config"
	"remate/internal/infrastructure/database"
	"remate/internal/infrastructure/migrations"
	"remate/internal/interfaces/router"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// App is a built application. Close releases what New opened.
type App struct {
	Config *config.Config
	DB     *gorm.DB
	Rdb    *redis.Client
	Engine *migrations.Engine
	Fiber  *fiber.App
}

// SetupLogger points the global logger at w with the given level and
// format ("json" or console).
func SetupLogger(w io.Writer, level, format string) error {
	lvl := zerolog.InfoLevel
	if level != "" {
		var err error
		if lvl, err = zerolog.ParseLevel(level); err != nil {
			return fmt.Errorf("log level %q: %w", level, err)
		}
	}
	zerolog.SetGlobalLevel(lvl)
	if format == "json" {
		log.Logger = zerolog.New(w).With().Timestamp().Logger()
	} else {
		log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}).With().Timestamp().Logger()
	}
	return nil
}

// OpenStore opens the database and its migration engine without migrating.
func OpenStore(path string) (*gorm.DB, *migrations.Engine, error) {
	db, err := database.Open(path)
	if err != nil {
		return nil, nil, err
	}
	engine, err := migrations.NewEngine(db, migrations.Chain())
	if err != nil {
		_ = database.Close(db)
		return nil, nil, err
	}
	return db, engine, nil
}

// Migrate applies every pending migration.
func Migrate(ctx context.Context, engine *migrations.Engine) (migrations.Result, error) {
	res, err := engine.Up(ctx)
	if err != nil {
		return res, fmt.Errorf("migrate: %w", err)
	}
	log.Info().Int("from", res.From).Int("to", res.To).Ints("applied", res.Applied).Msg("schema ready")
	return res, nil
}

// NewRedis connects to url. An empty url disables Redis and returns nil.
func NewRedis(ctx context.Context, url string) (*redis.Client, error) {
	if url == "" {
		return nil, nil
	}
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("redis url: %w", err)
	}
	rdb := redis.NewClient(opts)
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis connection failed: %w", err)
	}
	return rdb, nil
}

// NewConverter picks the PDF converter named by cfg. "none" disables
// conversion and returns nil.
func NewConverter(cfg *config.Config) (documents.Converter, error) {
	switch cfg.PDFConverter {
	case config.ConverterCommand, "":
		conv := documents.NewCommandConverter(cfg.PDFScript)
		if cfg.PDFCommand != "" {
			conv.Program = cfg.PDFCommand
		}
		return conv, nil
	case config.ConverterChrome:
		return documents.NewChromeConverter(), nil
	case config.ConverterNone:
		return nil, nil
	default:
		return nil, fmt.Errorf("unknown PDF converter %q", cfg.PDFConverter)
	}
}

// New opens and migrates the store, connects Redis when configured and
// builds the HTTP app. A migration failure is returned and leaves the
// store at its last good version.
func New(ctx context.Context, cfg *config.Config) (*App, error) {
	conv, err := NewConverter(cfg)
	if err != nil {
		return nil, err
	}
	db, engine, err := OpenStore(cfg.DBPath)
	if err != nil {
		return nil, err
	}
	log.Info().Str("path", cfg.DBPath).Msg("database opened")

	app := &App{Config: cfg, DB: db, Engine: engine}
	if _, err := Migrate(ctx, engine); err != nil {
		_ = app.Close()
		return nil, err
	}
	if app.Rdb, err = NewRedis(ctx, cfg.RedisURL); err != nil {
		_ = app.Close()
		return nil, err
	}
	if app.Rdb != nil {
		log.Info().Msg("redis connected")
	}

	app.Fiber = router.CreateApp(router.Deps{
		DB:             db,
		Rdb:            app.Rdb,
		Schema:         engine,
		Converter:      conv,
		HealthAdminKey: cfg.HealthAdminKey,
		AllowedOrigins: cfg.AllowedOrigins,
	})
	return app, nil
}

func (a *App) Close() error {
	var errs []error
	if a.Rdb != nil {
		errs = append(errs, a.Rdb.Close())
	}
	errs = append(errs, database.Close(a.DB))
	return errors.Join(errs...)
}
