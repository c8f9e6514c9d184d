package database

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// ConstraintKind names the family of a failed constraint.
type ConstraintKind string

const (
	KindUnique     ConstraintKind = "unique"
	KindForeignKey ConstraintKind = "foreign_key"
	KindCheck      ConstraintKind = "check"
	KindNotNull    ConstraintKind = "not_null"
)

var (
	ErrUniqueViolation     = errors.New("unique constraint violation")
	ErrForeignKeyViolation = errors.New("foreign key constraint violation")
	ErrCheckViolation      = errors.New("check constraint violation")
	ErrNotNullViolation    = errors.New("not null constraint violation")
)

// ConstraintError is a rejected mutation. Constraint holds what SQLite
// reports: the columns of a UNIQUE or NOT NULL constraint, or the name of
// a CHECK constraint. SQLite does not name the failing foreign key.
type ConstraintError struct {
	Kind       ConstraintKind
	Table      string
	Constraint string
	Err        error
}

func (e *ConstraintError) Error() string {
	var b strings.Builder
	b.WriteString(e.sentinel().Error())
	if e.Table != "" {
		fmt.Fprintf(&b, " on %s", e.Table)
	}
	if e.Constraint != "" {
		fmt.Fprintf(&b, " (%s)", e.Constraint)
	}
	return b.String()
}

// Unwrap exposes both the kind sentinel and the driver error.
func (e *ConstraintError) Unwrap() []error {
	return []error{e.sentinel(), e.Err}
}

func (e *ConstraintError) sentinel() error {
	switch e.Kind {
	case KindUnique:
		return ErrUniqueViolation
	case KindForeignKey:
		return ErrForeignKeyViolation
	case KindCheck:
		return ErrCheckViolation
	default:
		return ErrNotNullViolation
	}
}

var constraintRe = regexp.MustCompile(`(UNIQUE|CHECK|FOREIGN KEY|NOT NULL) constraint failed(?::\s*([^()]*[^()\s]))?`)

// Classify turns a driver constraint failure into a *ConstraintError for
// table. Any other error, including nil, is returned unchanged.
func Classify(table string, err error) error {
	if err == nil {
		return nil
	}
	var ce *ConstraintError
	if errors.As(err, &ce) {
		return err
	}
	m := constraintRe.FindStringSubmatch(err.Error())
	if m == nil {
		return err
	}
	out := &ConstraintError{Table: table, Constraint: strings.TrimSpace(m[2]), Err: err}
	switch m[1] {
	case "UNIQUE":
		out.Kind = KindUnique
	case "CHECK":
		out.Kind = KindCheck
	case "FOREIGN KEY":
		out.Kind = KindForeignKey
	default:
		out.Kind = KindNotNull
	}
	return out
}

// IsConstraint reports whether err is any constraint violation.
func IsConstraint(err error) bool {
	var ce *ConstraintError
	return errors.As(err, &ce)
}
