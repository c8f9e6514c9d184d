package clients

import (
	"context"
	"strings"

	"remate/internal/application/common"
	"remate/internal/domain"
	"remate/internal/infrastructure/database"
	"remate/internal/pkg/validation"

	"github.com/sahilm/fuzzy"
	"gorm.io/gorm"
)

const table = "client"

// DefaultSearchLimit caps the suggestions returned for an async select.
const DefaultSearchLimit = 10

type Service struct {
	DB *gorm.DB
}

type Input struct {
	Company   string `json:"company"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Province  string `json:"province"`
	City      string `json:"city"`
}

func (in Input) trimmed() Input {
	in.Company = strings.TrimSpace(in.Company)
	in.FirstName = strings.TrimSpace(in.FirstName)
	in.LastName = strings.TrimSpace(in.LastName)
	in.Email = strings.TrimSpace(in.Email)
	in.Phone = strings.TrimSpace(in.Phone)
	in.Province = strings.TrimSpace(in.Province)
	in.City = strings.TrimSpace(in.City)
	return in
}

func validate(db *gorm.DB, in Input) error {
	if in.Company == "" {
		return domain.Invalid("company", "is required")
	}
	if in.City == "" {
		return domain.Invalid("city", "is required")
	}
	if in.Email != "" && !validation.IsValidEmail(in.Email) {
		return domain.Invalid("email", "is not a valid address")
	}
	if in.Phone != "" && !validation.IsValidPhone(in.Phone) {
		return domain.Invalid("phone", "is not a valid number")
	}
	return common.RequireProvince(db, in.Province)
}

func (s *Service) Create(ctx context.Context, in Input) (*domain.Client, error) {
	in = in.trimmed()
	c := &domain.Client{
		Company:   in.Company,
		FirstName: in.FirstName,
		LastName:  in.LastName,
		Email:     in.Email,
		Phone:     in.Phone,
		Province:  in.Province,
		City:      in.City,
	}
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := validate(tx, in); err != nil {
			return err
		}
		if err := tx.Create(c).Error; err != nil {
			return database.Classify(table, err)
		}
		return common.First(tx, c, table, c.ID)
	})
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (s *Service) Get(ctx context.Context, id uint) (*domain.Client, error) {
	var c domain.Client
	if err := common.First(s.DB.WithContext(ctx), &c, table, id); err != nil {
		return nil, err
	}
	return &c, nil
}

// List pages clients by company. Search matches company and contact names.
func (s *Service) List(ctx context.Context, q domain.PageQuery) (domain.Page[domain.Client], error) {
	db := common.Scope(s.DB.WithContext(ctx), q.IncludeDeleted).Model(&domain.Client{})
	if strings.TrimSpace(q.Search) != "" {
		like := common.Like(q.Search)
		db = db.Where("company LIKE ? OR first_name LIKE ? OR last_name LIKE ?", like, like, like)
	}
	if q.Province != "" {
		db = db.Where("province = ?", q.Province)
	}
	return common.Paginate[domain.Client](db, q, "company ASC")
}

func (s *Service) Update(ctx context.Context, id uint, in Input) (*domain.Client, error) {
	in = in.trimmed()
	var c domain.Client
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := validate(tx, in); err != nil {
			return err
		}
		res := tx.Model(&domain.Client{}).Where("id = ?", id).Updates(map[string]interface{}{
			"company":    in.Company,
			"first_name": in.FirstName,
			"last_name":  in.LastName,
			"email":      in.Email,
			"phone":      in.Phone,
			"province":   in.Province,
			"city":       in.City,
		})
		if res.Error != nil {
			return database.Classify(table, res.Error)
		}
		if res.RowsAffected == 0 {
			return common.NotFound(table, id)
		}
		return common.First(tx, &c, table, id)
	})
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (s *Service) Delete(ctx context.Context, id uint) error {
	return common.SoftDelete[domain.Client](ctx, s.DB, table, id)
}

func (s *Service) Restore(ctx context.Context, id uint) (*domain.Client, error) {
	if err := common.Restore[domain.Client](ctx, s.DB, table, id); err != nil {
		return nil, err
	}
	return s.Get(ctx, id)
}

// Purge destroys a deleted client together with its bundles and
// transactions. Sales it bought keep their rows with no buyer.
func (s *Service) Purge(ctx context.Context, id uint) error {
	return common.Purge[domain.Client](ctx, s.DB, table, id)
}

// Search ranks live clients by fuzzy match on the company name. An empty
// term returns the first companies alphabetically.
func (s *Service) Search(ctx context.Context, term string, limit int) ([]domain.Client, error) {
	if limit <= 0 {
		limit = DefaultSearchLimit
	}
	var all []domain.Client
	if err := s.DB.WithContext(ctx).Order("company ASC").Find(&all).Error; err != nil {
		return nil, err
	}
	term = strings.TrimSpace(term)
	if term == "" {
		if len(all) > limit {
			all = all[:limit]
		}
		return all, nil
	}

	names := make([]string, len(all))
	for i, c := range all {
		names[i] = c.Company
	}
	matches := fuzzy.Find(term, names)
	out := make([]domain.Client, 0, limit)
	for _, m := range matches {
		if len(out) == limit {
			break
		}
		out = append(out, all[m.Index])
	}
	return out, nil
}

// ListSellers returns the clients owning at least one live bundle of the
// auction.
func (s *Service) ListSellers(ctx context.Context, auctionID uint) ([]domain.Client, error) {
	db := s.DB.WithContext(ctx)
	sellers := db.Model(&domain.Bundle{}).Select("seller_id").Where("auction_id = ?", auctionID)
	var out []domain.Client
	if err := db.Where("id IN (?)", sellers).Order("company ASC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}
