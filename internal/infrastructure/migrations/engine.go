// Package migrations moves a store forward through an ordered, append-only
// chain of schema migrations. Every migration commits together with its
// bookkeeping row, so the recorded version never runs ahead of the schema.
package migrations

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

const createRecordTable = `CREATE TABLE IF NOT EXISTS schema_migrations (
    version INTEGER PRIMARY KEY,
    description TEXT NOT NULL,
    checksum TEXT NOT NULL,
    applied_at DATETIME NOT NULL
)`

type Engine struct {
	db    *gorm.DB
	chain []Migration
	now   func() time.Time
}

// NewEngine validates that chain holds versions 1..N in order.
func NewEngine(db *gorm.DB, chain []Migration) (*Engine, error) {
	for i, m := range chain {
		if m.Version != i+1 {
			return nil, fmt.Errorf("%w: position %d holds version %d, want %d", ErrInvalidChain, i, m.Version, i+1)
		}
		if len(m.Statements) == 0 {
			return nil, fmt.Errorf("%w: migration %d has no statements", ErrInvalidChain, m.Version)
		}
	}
	return &Engine{db: db, chain: chain, now: func() time.Time { return time.Now().UTC() }}, nil
}

// Latest is the version a fully migrated store reports.
func (e *Engine) Latest() int {
	return len(e.chain)
}

// Version returns the recorded version, 0 for an uninitialized store.
func (e *Engine) Version(ctx context.Context) (int, error) {
	records, err := e.records(ctx)
	if err != nil {
		return 0, err
	}
	return len(records), nil
}

// Up applies every pending migration.
func (e *Engine) Up(ctx context.Context) (Result, error) {
	return e.UpTo(ctx, e.Latest())
}

// UpTo applies pending migrations up to and including target. Targets at or
// below the current version are a no-op.
func (e *Engine) UpTo(ctx context.Context, target int) (Result, error) {
	if target < 0 || target > e.Latest() {
		return Result{}, fmt.Errorf("%w: %d (latest is %d)", ErrInvalidTarget, target, e.Latest())
	}
	records, err := e.records(ctx)
	if err != nil {
		return Result{}, err
	}
	res := Result{From: len(records), To: len(records), Applied: []int{}}
	for v := res.From + 1; v <= target; v++ {
		m := e.chain[v-1]
		if err := e.apply(ctx, m); err != nil {
			return res, err
		}
		res.To = v
		res.Applied = append(res.Applied, v)
	}
	if len(res.Applied) == 0 {
		log.Debug().Int("version", res.From).Msg("schema up to date")
	}
	return res, nil
}

// Pending lists the migrations Up would apply.
func (e *Engine) Pending(ctx context.Context) ([]Migration, error) {
	current, err := e.Version(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]Migration, 0, e.Latest()-current)
	out = append(out, e.chain[current:]...)
	return out, nil
}

// Status reports every migration of the chain as applied or pending.
func (e *Engine) Status(ctx context.Context) ([]Status, error) {
	records, err := e.records(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]Status, 0, len(e.chain))
	for _, m := range e.chain {
		st := Status{Version: m.Version, Description: m.Description}
		if m.Version <= len(records) {
			at := records[m.Version-1].AppliedAt
			st.Applied = true
			st.AppliedAt = &at
		}
		out = append(out, st)
	}
	return out, nil
}

func (e *Engine) apply(ctx context.Context, m Migration) error {
	start := time.Now()
	err := e.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for i, stmt := range m.Statements {
			if err := tx.Exec(stmt).Error; err != nil {
				return &MigrationError{Version: m.Version, Description: m.Description, Statement: i + 1, Err: err}
			}
		}
		rec := Record{Version: m.Version, Description: m.Description, Checksum: m.Checksum(), AppliedAt: e.now()}
		if err := tx.Create(&rec).Error; err != nil {
			return &MigrationError{Version: m.Version, Description: m.Description, Err: err}
		}
		return nil
	})
	if err != nil {
		log.Error().Err(err).Int("version", m.Version).Str("description", m.Description).Msg("migration failed")
		return err
	}
	log.Info().Int("version", m.Version).Str("description", m.Description).Dur("took", time.Since(start)).Msg("migration applied")
	return nil
}

// records loads the bookkeeping rows and checks them against the chain.
func (e *Engine) records(ctx context.Context) ([]Record, error) {
	db := e.db.WithContext(ctx)
	if err := db.Exec(createRecordTable).Error; err != nil {
		return nil, fmt.Errorf("create schema_migrations: %w", err)
	}
	var records []Record
	if err := db.Order("version ASC").Find(&records).Error; err != nil {
		return nil, fmt.Errorf("read schema_migrations: %w", err)
	}
	for i, r := range records {
		if r.Version > e.Latest() {
			return nil, fmt.Errorf("%w: version %d (latest is %d)", ErrUnknownVersion, r.Version, e.Latest())
		}
		if r.Version != i+1 {
			return nil, fmt.Errorf("%w: found version %d at position %d", ErrOutOfOrder, r.Version, i+1)
		}
		if want := e.chain[i].Checksum(); r.Checksum != want {
			return nil, fmt.Errorf("%w: version %d (%s)", ErrChecksumMismatch, r.Version, r.Description)
		}
	}
	return records, nil
}
