package sales

import (
	"context"
	"errors"
	"time"

	"remate/internal/application/common"
	"remate/internal/domain"
	"remate/internal/infrastructure/database"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	table       = "sales"
	detailTable = "sales_details"
)

type Service struct {
	DB *gorm.DB
}

// Input describes a sale. AuctionID is fixed once the sale exists.
type Input struct {
	AuctionID  uint      `json:"auction_id"`
	BuyerID    uint      `json:"buyer_id"`
	TotalPrice float64   `json:"total_price"`
	Deadline   time.Time `json:"deadline"`
	BundleIDs  []uint    `json:"bundle_ids"`
}

func validate(in Input) error {
	if in.AuctionID == 0 {
		return domain.Invalid("auction_id", "is required")
	}
	if in.BuyerID == 0 {
		return domain.Invalid("buyer_id", "is required")
	}
	if in.Deadline.IsZero() {
		return domain.Invalid("deadline", "is required")
	}
	if len(in.BundleIDs) == 0 {
		return domain.Invalid("bundle_ids", "at least one bundle is required")
	}
	return nil
}

// Create records a sale and its bundles in one transaction.
func (s *Service) Create(ctx context.Context, in Input) (*domain.Sale, error) {
	if err := validate(in); err != nil {
		return nil, err
	}
	buyer := in.BuyerID
	sale := &domain.Sale{
		AuctionID:  in.AuctionID,
		BuyerID:    &buyer,
		TotalPrice: in.TotalPrice,
		Deadline:   datatypes.Date(in.Deadline),
	}
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := common.RejectRetired(tx, "auction", in.AuctionID); err != nil {
			return err
		}
		if err := common.RejectRetired(tx, "client", in.BuyerID); err != nil {
			return err
		}
		if err := tx.Create(sale).Error; err != nil {
			return database.Classify(table, err)
		}
		for _, id := range in.BundleIDs {
			if err := attach(tx, sale.ID, in.AuctionID, id); err != nil {
				return err
			}
		}
		return load(tx, sale, sale.ID)
	})
	if err != nil {
		return nil, err
	}
	return sale, nil
}

func (s *Service) Get(ctx context.Context, id uint) (*domain.Sale, error) {
	var sale domain.Sale
	if err := load(s.DB.WithContext(ctx), &sale, id); err != nil {
		return nil, err
	}
	return &sale, nil
}

// List pages sales filtered by auction and buyer (q.ClientID), newest first.
func (s *Service) List(ctx context.Context, q domain.PageQuery) (domain.Page[domain.Sale], error) {
	db := common.Scope(s.DB.WithContext(ctx), q.IncludeDeleted).Model(&domain.Sale{})
	if q.AuctionID != 0 {
		db = db.Where("auction_id = ?", q.AuctionID)
	}
	if q.ClientID != 0 {
		db = db.Where("buyer_id = ?", q.ClientID)
	}
	page, err := common.Paginate[domain.Sale](db, q, "id DESC")
	if err != nil {
		return page, err
	}
	if err := withBundles(s.DB.WithContext(ctx), page.Items); err != nil {
		return page, err
	}
	return page, nil
}

// Update rewrites price, deadline and buyer and reconciles the bundle set:
// detail rows for dropped bundles are removed, new ones are checked and
// added.
func (s *Service) Update(ctx context.Context, id uint, in Input) (*domain.Sale, error) {
	var sale domain.Sale
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := load(tx, &sale, id); err != nil {
			return err
		}
		in.AuctionID = sale.AuctionID
		if err := validate(in); err != nil {
			return err
		}
		if err := common.RejectRetired(tx, "client", in.BuyerID); err != nil {
			return err
		}
		res := tx.Model(&domain.Sale{}).Where("id = ?", id).Updates(map[string]interface{}{
			"buyer_id":    in.BuyerID,
			"total_price": in.TotalPrice,
			"deadline":    datatypes.Date(in.Deadline),
		})
		if res.Error != nil {
			return database.Classify(table, res.Error)
		}

		wanted := make(map[uint]bool, len(in.BundleIDs))
		for _, b := range in.BundleIDs {
			wanted[b] = true
		}
		current := make(map[uint]bool, len(sale.BundleIDs))
		var dropped []uint
		for _, b := range sale.BundleIDs {
			current[b] = true
			if !wanted[b] {
				dropped = append(dropped, b)
			}
		}
		if len(dropped) > 0 {
			if err := tx.Where("sale_id = ? AND bundle_id IN ?", id, dropped).Delete(&domain.SaleDetail{}).Error; err != nil {
				return database.Classify(detailTable, err)
			}
		}
		for _, b := range in.BundleIDs {
			if current[b] {
				continue
			}
			if err := attach(tx, id, sale.AuctionID, b); err != nil {
				return err
			}
		}
		return load(tx, &sale, id)
	})
	if err != nil {
		return nil, err
	}
	return &sale, nil
}

// Delete annuls a sale; its bundles are for sale again.
func (s *Service) Delete(ctx context.Context, id uint) error {
	return common.SoftDelete[domain.Sale](ctx, s.DB, table, id)
}

// Restore revives an annulled sale unless one of its bundles was sold again
// in the meantime.
func (s *Service) Restore(ctx context.Context, id uint) (*domain.Sale, error) {
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var bundleIDs []uint
		if err := tx.Model(&domain.SaleDetail{}).Where("sale_id = ?", id).Pluck("bundle_id", &bundleIDs).Error; err != nil {
			return err
		}
		for _, b := range bundleIDs {
			if err := notSoldElsewhere(tx, id, b); err != nil {
				return err
			}
		}
		return common.Restore[domain.Sale](ctx, tx, table, id)
	})
	if err != nil {
		return nil, err
	}
	return s.Get(ctx, id)
}

// Purge destroys a deleted sale and its detail rows.
func (s *Service) Purge(ctx context.Context, id uint) error {
	return common.Purge[domain.Sale](ctx, s.DB, table, id)
}

// attach links bundleID to the sale after checking it belongs to the same
// auction and no other live sale holds it. A missing bundle or a repeated
// id is left to the store constraints.
func attach(tx *gorm.DB, saleID, auctionID, bundleID uint) error {
	var b domain.Bundle
	err := tx.Unscoped().Select("id", "auction_id").First(&b, bundleID).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
	case err != nil:
		return err
	case b.AuctionID != auctionID:
		return &BundleError{BundleID: bundleID, Err: ErrBundleAuctionMismatch}
	default:
		if err := common.RejectRetired(tx, "bundle", bundleID); err != nil {
			return err
		}
		if err := notSoldElsewhere(tx, saleID, bundleID); err != nil {
			return err
		}
	}
	if err := tx.Create(&domain.SaleDetail{SaleID: saleID, BundleID: bundleID}).Error; err != nil {
		return database.Classify(detailTable, err)
	}
	return nil
}

func notSoldElsewhere(tx *gorm.DB, saleID, bundleID uint) error {
	var other []uint
	if err := tx.Table(detailTable).
		Joins("JOIN sales ON sales.id = sales_details.sale_id").
		Where("sales_details.bundle_id = ? AND sales_details.sale_id <> ? AND sales.deleted = 0", bundleID, saleID).
		Limit(1).
		Pluck("sales_details.sale_id", &other).Error; err != nil {
		return err
	}
	if len(other) > 0 {
		return &BundleError{BundleID: bundleID, SaleID: other[0], Err: ErrBundleAlreadySold}
	}
	return nil
}

func load(db *gorm.DB, sale *domain.Sale, id uint) error {
	if err := common.First(db, sale, table, id); err != nil {
		return err
	}
	one := []domain.Sale{*sale}
	if err := withBundles(db, one); err != nil {
		return err
	}
	*sale = one[0]
	return nil
}

func withBundles(db *gorm.DB, sales []domain.Sale) error {
	if len(sales) == 0 {
		return nil
	}
	ids := make([]uint, len(sales))
	index := make(map[uint]int, len(sales))
	for i, s := range sales {
		ids[i] = s.ID
		index[s.ID] = i
		sales[i].BundleIDs = []uint{}
	}
	var details []domain.SaleDetail
	if err := db.Where("sale_id IN ?", ids).Order("bundle_id ASC").Find(&details).Error; err != nil {
		return err
	}
	for _, d := range details {
		i := index[d.SaleID]
		sales[i].BundleIDs = append(sales[i].BundleIDs, d.BundleID)
	}
	return nil
}
