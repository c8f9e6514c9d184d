package migrations

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidChain     = errors.New("invalid migration chain")
	ErrUnknownVersion   = errors.New("store has a migration this build does not know")
	ErrChecksumMismatch = errors.New("applied migration was modified after it shipped")
	ErrOutOfOrder       = errors.New("applied migrations are not contiguous")
	ErrInvalidTarget    = errors.New("invalid target version")
)

// MigrationError reports the step that failed. Statement is 1-based; 0
// means the failure happened while recording the version.
type MigrationError struct {
	Version     int
	Description string
	Statement   int
	Err         error
}

func (e *MigrationError) Error() string {
	if e.Statement == 0 {
		return fmt.Sprintf("migration %d (%s): record version: %v", e.Version, e.Description, e.Err)
	}
	return fmt.Sprintf("migration %d (%s): statement %d: %v", e.Version, e.Description, e.Statement, e.Err)
}

func (e *MigrationError) Unwrap() error {
	return e.Err
}
