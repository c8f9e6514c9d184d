package bundles

import (
	"context"
	"strings"

	"remate/internal/application/common"
	"remate/internal/domain"
	"remate/internal/infrastructure/database"

	"gorm.io/gorm"
)

const table = "bundle"

type Service struct {
	DB *gorm.DB
}

type Input struct {
	Number       int    `json:"number"`
	Name         string `json:"name"`
	Observations string `json:"observations"`
	SellerID     uint   `json:"seller_id"`
	AuctionID    uint   `json:"auction_id"`
}

func validate(tx *gorm.DB, in Input) error {
	if in.Number <= 0 {
		return domain.Invalid("number", "must be positive")
	}
	if strings.TrimSpace(in.Name) == "" {
		return domain.Invalid("name", "is required")
	}
	if in.SellerID == 0 {
		return domain.Invalid("seller_id", "is required")
	}
	if in.AuctionID == 0 {
		return domain.Invalid("auction_id", "is required")
	}
	if err := common.RejectRetired(tx, "client", in.SellerID); err != nil {
		return err
	}
	return common.RejectRetired(tx, "auction", in.AuctionID)
}

func (s *Service) Create(ctx context.Context, in Input) (*domain.Bundle, error) {
	b := &domain.Bundle{
		Number:       in.Number,
		Name:         strings.TrimSpace(in.Name),
		Observations: strings.TrimSpace(in.Observations),
		SellerID:     in.SellerID,
		AuctionID:    in.AuctionID,
	}
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := validate(tx, in); err != nil {
			return err
		}
		if err := tx.Create(b).Error; err != nil {
			return database.Classify(table, err)
		}
		return load(tx, b, b.ID)
	})
	if err != nil {
		return nil, err
	}
	return b, nil
}

func (s *Service) Get(ctx context.Context, id uint) (*domain.Bundle, error) {
	var b domain.Bundle
	if err := load(s.DB.WithContext(ctx), &b, id); err != nil {
		return nil, err
	}
	return &b, nil
}

// List pages the bundles of q.AuctionID (all auctions when zero) in number
// order. q.Status filters on the derived sale status.
func (s *Service) List(ctx context.Context, q domain.PageQuery) (domain.Page[domain.Bundle], error) {
	db := common.Scope(s.DB.WithContext(ctx), q.IncludeDeleted).Model(&domain.Bundle{})
	if q.AuctionID != 0 {
		db = db.Where("auction_id = ?", q.AuctionID)
	}
	if q.ClientID != 0 {
		db = db.Where("seller_id = ?", q.ClientID)
	}
	if strings.TrimSpace(q.Search) != "" {
		db = db.Where("name LIKE ?", common.Like(q.Search))
	}
	switch strings.ToUpper(strings.TrimSpace(q.Status)) {
	case "":
	case string(domain.BundleSold):
		db = db.Where("id IN (?)", liveSaleBundles(s.DB))
	case string(domain.BundleForSale):
		db = db.Where("id NOT IN (?)", liveSaleBundles(s.DB))
	default:
		return domain.Page[domain.Bundle]{}, domain.Invalid("status", "must be FOR_SALE or SOLD")
	}
	page, err := common.Paginate[domain.Bundle](db, q, "auction_id ASC, number ASC")
	if err != nil {
		return page, err
	}
	if err := Annotate(s.DB.WithContext(ctx), page.Items); err != nil {
		return page, err
	}
	return page, nil
}

func (s *Service) Update(ctx context.Context, id uint, in Input) (*domain.Bundle, error) {
	var b domain.Bundle
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := validate(tx, in); err != nil {
			return err
		}
		var sold int64
		if err := liveSaleBundles(tx).
			Where("sales_details.bundle_id = ? AND sales.auction_id <> ?", id, in.AuctionID).
			Count(&sold).Error; err != nil {
			return err
		}
		if sold > 0 {
			return domain.Invalid("auction_id", "a sold bundle cannot move to another auction")
		}
		res := tx.Model(&domain.Bundle{}).Where("id = ?", id).Updates(map[string]interface{}{
			"number":       in.Number,
			"name":         strings.TrimSpace(in.Name),
			"observations": strings.TrimSpace(in.Observations),
			"seller_id":    in.SellerID,
			"auction_id":   in.AuctionID,
		})
		if res.Error != nil {
			return database.Classify(table, res.Error)
		}
		if res.RowsAffected == 0 {
			return common.NotFound(table, id)
		}
		return load(tx, &b, id)
	})
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (s *Service) Delete(ctx context.Context, id uint) error {
	return common.SoftDelete[domain.Bundle](ctx, s.DB, table, id)
}

func (s *Service) Restore(ctx context.Context, id uint) (*domain.Bundle, error) {
	if err := common.Restore[domain.Bundle](ctx, s.DB, table, id); err != nil {
		return nil, err
	}
	return s.Get(ctx, id)
}

// Purge destroys a deleted bundle and its sale detail rows.
func (s *Service) Purge(ctx context.Context, id uint) error {
	return common.Purge[domain.Bundle](ctx, s.DB, table, id)
}

func load(db *gorm.DB, b *domain.Bundle, id uint) error {
	if err := common.First(db, b, table, id); err != nil {
		return err
	}
	one := []domain.Bundle{*b}
	if err := Annotate(db, one); err != nil {
		return err
	}
	*b = one[0]
	return nil
}

// liveSaleBundles selects the ids of bundles held by a non-deleted sale.
func liveSaleBundles(db *gorm.DB) *gorm.DB {
	return db.Table("sales_details").
		Select("sales_details.bundle_id").
		Joins("JOIN sales ON sales.id = sales_details.sale_id").
		Where("sales.deleted = 0")
}

// Annotate fills the derived Status of each bundle.
func Annotate(db *gorm.DB, bs []domain.Bundle) error {
	if len(bs) == 0 {
		return nil
	}
	ids := make([]uint, len(bs))
	for i, b := range bs {
		ids[i] = b.ID
	}
	var sold []uint
	if err := liveSaleBundles(db).Where("sales_details.bundle_id IN ?", ids).Pluck("sales_details.bundle_id", &sold).Error; err != nil {
		return err
	}
	isSold := make(map[uint]bool, len(sold))
	for _, id := range sold {
		isSold[id] = true
	}
	for i := range bs {
		bs[i].Status = domain.BundleForSale
		if isSold[bs[i].ID] {
			bs[i].Status = domain.BundleSold
		}
	}
	return nil
}
