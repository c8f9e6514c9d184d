// Package common holds the store conventions every entity service shares:
// soft-delete scoping, pagination, retire/restore/purge and parent checks.
package common

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"remate/internal/domain"
	"remate/internal/infrastructure/database"

	"gorm.io/gorm"
)

var (
	ErrNotRetired    = errors.New("only a deleted row can be purged")
	ErrParentRetired = errors.New("referenced row is deleted")
)

// NotFound wraps domain.ErrNotFound with the entity and id.
func NotFound(entity string, id uint) error {
	return fmt.Errorf("%s %d: %w", entity, id, domain.ErrNotFound)
}

// Scope returns db with soft-deleted rows visible when includeDeleted is set.
func Scope(db *gorm.DB, includeDeleted bool) *gorm.DB {
	if includeDeleted {
		return db.Unscoped()
	}
	return db
}

// Like builds a LIKE operand for a trimmed search term.
func Like(term string) string {
	return "%" + strings.TrimSpace(term) + "%"
}

// Paginate counts the filtered query and loads one page of it in order.
func Paginate[T any](db *gorm.DB, q domain.PageQuery, order string) (domain.Page[T], error) {
	q = q.Normalize()
	var total int64
	if err := db.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return domain.Page[T]{}, err
	}
	var items []T
	if err := db.Session(&gorm.Session{}).Order(order).Offset(q.Offset()).Limit(q.PageSize).Find(&items).Error; err != nil {
		return domain.Page[T]{}, err
	}
	return domain.NewPage(items, total, q), nil
}

// First loads the live row with id into dst.
func First(db *gorm.DB, dst interface{}, entity string, id uint) error {
	if err := db.First(dst, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return NotFound(entity, id)
		}
		return err
	}
	return nil
}

// SoftDelete flags a live row as deleted. The update trigger stamps it.
func SoftDelete[T any](ctx context.Context, db *gorm.DB, entity string, id uint) error {
	res := db.WithContext(ctx).Delete(new(T), id)
	if res.Error != nil {
		return database.Classify(entity, res.Error)
	}
	if res.RowsAffected == 0 {
		return NotFound(entity, id)
	}
	return nil
}

// Restore clears the deleted flag of a retired row.
func Restore[T any](ctx context.Context, db *gorm.DB, entity string, id uint) error {
	res := db.WithContext(ctx).Unscoped().Model(new(T)).Where("id = ? AND deleted = 1", id).Update("deleted", 0)
	if res.Error != nil {
		return database.Classify(entity, res.Error)
	}
	if res.RowsAffected == 0 {
		return NotFound(entity, id)
	}
	return nil
}

// Purge physically removes a row that was already soft-deleted. Dependent
// rows follow through the foreign key actions.
func Purge[T any](ctx context.Context, db *gorm.DB, entity string, id uint) error {
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Unscoped().Where("id = ? AND deleted = 1", id).Delete(new(T))
		if res.Error != nil {
			return database.Classify(entity, res.Error)
		}
		if res.RowsAffected == 1 {
			return nil
		}
		var live int64
		if err := tx.Model(new(T)).Where("id = ?", id).Count(&live).Error; err != nil {
			return err
		}
		if live > 0 {
			return fmt.Errorf("%s %d: %w", entity, id, ErrNotRetired)
		}
		return NotFound(entity, id)
	})
}

// RejectRetired fails when table holds id but the row is soft-deleted. A
// missing id is left for the foreign key to reject.
func RejectRetired(db *gorm.DB, table string, id uint) error {
	var n int64
	if err := db.Table(table).Where("id = ? AND deleted = 1", id).Count(&n).Error; err != nil {
		return err
	}
	if n > 0 {
		return fmt.Errorf("%s %d: %w", table, id, ErrParentRetired)
	}
	return nil
}

// RequireProvince checks name against the seeded province catalog.
func RequireProvince(db *gorm.DB, name string) error {
	if strings.TrimSpace(name) == "" {
		return domain.Invalid("province", "is required")
	}
	var n int64
	if err := db.Model(&domain.Province{}).Where("name = ?", name).Count(&n).Error; err != nil {
		return err
	}
	if n == 0 {
		return domain.Invalid("province", fmt.Sprintf("%q is not a known province", name))
	}
	return nil
}
