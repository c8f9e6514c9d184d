package auctions

import (
	"context"
	"strings"
	"time"

	"remate/internal/application/common"
	"remate/internal/domain"
	"remate/internal/infrastructure/database"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const table = "auction"

type Service struct {
	DB *gorm.DB
}

type Input struct {
	Name     string    `json:"name"`
	Province string    `json:"province"`
	City     string    `json:"city"`
	Date     time.Time `json:"date"`
}

func (in Input) trimmed() Input {
	in.Name = strings.TrimSpace(in.Name)
	in.Province = strings.TrimSpace(in.Province)
	in.City = strings.TrimSpace(in.City)
	return in
}

func validate(db *gorm.DB, in Input) error {
	if in.Name == "" {
		return domain.Invalid("name", "is required")
	}
	if in.City == "" {
		return domain.Invalid("city", "is required")
	}
	if in.Date.IsZero() {
		return domain.Invalid("date", "is required")
	}
	return common.RequireProvince(db, in.Province)
}

// Create registers a PENDING auction.
func (s *Service) Create(ctx context.Context, in Input) (*domain.Auction, error) {
	in = in.trimmed()
	a := &domain.Auction{
		Name:     in.Name,
		Province: in.Province,
		City:     in.City,
		Date:     datatypes.Date(in.Date),
		Status:   domain.AuctionPending,
	}
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := validate(tx, in); err != nil {
			return err
		}
		if err := tx.Create(a).Error; err != nil {
			return database.Classify(table, err)
		}
		return common.First(tx, a, table, a.ID)
	})
	if err != nil {
		return nil, err
	}
	return a, nil
}

func (s *Service) Get(ctx context.Context, id uint) (*domain.Auction, error) {
	var a domain.Auction
	if err := common.First(s.DB.WithContext(ctx), &a, table, id); err != nil {
		return nil, err
	}
	return &a, nil
}

// List pages auctions, most recent date first.
func (s *Service) List(ctx context.Context, q domain.PageQuery) (domain.Page[domain.Auction], error) {
	db := common.Scope(s.DB.WithContext(ctx), q.IncludeDeleted).Model(&domain.Auction{})
	if strings.TrimSpace(q.Search) != "" {
		db = db.Where("name LIKE ?", common.Like(q.Search))
	}
	if q.Province != "" {
		db = db.Where("province = ?", q.Province)
	}
	if q.Status != "" {
		status, err := domain.ParseAuctionStatus(q.Status)
		if err != nil {
			return domain.Page[domain.Auction]{}, err
		}
		db = db.Where("status = ?", status)
	}
	return common.Paginate[domain.Auction](db, q, "date DESC, id DESC")
}

func (s *Service) Update(ctx context.Context, id uint, in Input) (*domain.Auction, error) {
	in = in.trimmed()
	return s.write(ctx, id, func(tx *gorm.DB) (map[string]interface{}, error) {
		if err := validate(tx, in); err != nil {
			return nil, err
		}
		return map[string]interface{}{
			"name":     in.Name,
			"province": in.Province,
			"city":     in.City,
			"date":     datatypes.Date(in.Date),
		}, nil
	})
}

// SetStatus writes status without consulting the transition policy. Values
// outside the vocabulary are left to the store's check constraint.
func (s *Service) SetStatus(ctx context.Context, id uint, status domain.AuctionStatus) (*domain.Auction, error) {
	return s.write(ctx, id, func(*gorm.DB) (map[string]interface{}, error) {
		return map[string]interface{}{"status": status}, nil
	})
}

// Transition applies a lifecycle action, rejecting it when the current
// status does not allow it.
func (s *Service) Transition(ctx context.Context, id uint, action Action) (*domain.Auction, error) {
	return s.write(ctx, id, func(tx *gorm.DB) (map[string]interface{}, error) {
		var current domain.Auction
		if err := common.First(tx, &current, table, id); err != nil {
			return nil, err
		}
		next, err := Next(current.Status, action)
		if err != nil {
			return nil, err
		}
		return map[string]interface{}{"status": next}, nil
	})
}

func (s *Service) Start(ctx context.Context, id uint) (*domain.Auction, error) {
	return s.Transition(ctx, id, ActionStart)
}

func (s *Service) Finish(ctx context.Context, id uint) (*domain.Auction, error) {
	return s.Transition(ctx, id, ActionFinish)
}

func (s *Service) Cancel(ctx context.Context, id uint) (*domain.Auction, error) {
	return s.Transition(ctx, id, ActionCancel)
}

// Restore moves a cancelled auction back to PENDING.
func (s *Service) Restore(ctx context.Context, id uint) (*domain.Auction, error) {
	return s.Transition(ctx, id, ActionRestore)
}

func (s *Service) Delete(ctx context.Context, id uint) error {
	return common.SoftDelete[domain.Auction](ctx, s.DB, table, id)
}

// Undelete clears the deleted flag. Restore is the status action.
func (s *Service) Undelete(ctx context.Context, id uint) (*domain.Auction, error) {
	if err := common.Restore[domain.Auction](ctx, s.DB, table, id); err != nil {
		return nil, err
	}
	return s.Get(ctx, id)
}

// Purge destroys a deleted auction with its bundles, sales and
// transactions.
func (s *Service) Purge(ctx context.Context, id uint) error {
	return common.Purge[domain.Auction](ctx, s.DB, table, id)
}

func (s *Service) write(ctx context.Context, id uint, changes func(tx *gorm.DB) (map[string]interface{}, error)) (*domain.Auction, error) {
	var a domain.Auction
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		values, err := changes(tx)
		if err != nil {
			return err
		}
		res := tx.Model(&domain.Auction{}).Where("id = ?", id).Updates(values)
		if res.Error != nil {
			return database.Classify(table, res.Error)
		}
		if res.RowsAffected == 0 {
			return common.NotFound(table, id)
		}
		return common.First(tx, &a, table, id)
	})
	if err != nil {
		return nil, err
	}
	return &a, nil
}
