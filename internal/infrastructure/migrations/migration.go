package migrations

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"time"
)

// Migration is one append-only step of the schema history. Statements run
// in order inside a single transaction; schema changes, triggers and seed
// rows are all just statements.
type Migration struct {
	Version     int
	Description string
	Statements  []string
}

// Checksum fingerprints the statements so that an edited, already shipped
// migration is detected on the next start.
func (m Migration) Checksum() string {
	h := sha256.New()
	for _, stmt := range m.Statements {
		h.Write([]byte(strings.TrimSpace(stmt)))
		h.Write([]byte{0})
	}
	return hex.EncodeToString(h.Sum(nil))
}

// Record is the bookkeeping row written when a migration commits.
type Record struct {
	Version     int       `gorm:"column:version;primaryKey;autoIncrement:false"`
	Description string    `gorm:"column:description;not null"`
	Checksum    string    `gorm:"column:checksum;not null"`
	AppliedAt   time.Time `gorm:"column:applied_at;not null"`
}

func (Record) TableName() string {
	return "schema_migrations"
}

// Status describes one migration of the chain against a store.
type Status struct {
	Version     int        `json:"version"`
	Description string     `json:"description"`
	Applied     bool       `json:"applied"`
	AppliedAt   *time.Time `json:"applied_at,omitempty"`
}

// Result reports what a run did.
type Result struct {
	From    int   `json:"from"`
	To      int   `json:"to"`
	Applied []int `json:"applied"`
}
