package provinces

import (
	"context"

	"remate/internal/domain"

	"gorm.io/gorm"
)

type Service struct {
	DB *gorm.DB
}

// List returns the catalog in alphabetical order.
func (s *Service) List(ctx context.Context) ([]domain.Province, error) {
	var out []domain.Province
	if err := s.DB.WithContext(ctx).Order("name ASC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Service) Exists(ctx context.Context, name string) (bool, error) {
	var n int64
	if err := s.DB.WithContext(ctx).Model(&domain.Province{}).Where("name = ?", name).Count(&n).Error; err != nil {
		return false, err
	}
	return n > 0, nil
}
