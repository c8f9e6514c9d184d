package transactions

import (
	"context"

	"remate/internal/application/common"
	"remate/internal/domain"
	"remate/internal/infrastructure/database"

	"gorm.io/gorm"
)

const table = "transactions"

type Service struct {
	DB *gorm.DB
}

// Input is a payment to, or a collection from, a client. Amount is checked
// by the store.
type Input struct {
	AuctionID uint    `json:"auction_id"`
	ClientID  uint    `json:"client_id"`
	Amount    float64 `json:"amount"`
	Type      string  `json:"type"`
}

func parse(in Input) (domain.TransactionType, error) {
	if in.AuctionID == 0 {
		return "", domain.Invalid("auction_id", "is required")
	}
	if in.ClientID == 0 {
		return "", domain.Invalid("client_id", "is required")
	}
	return domain.ParseTransactionType(in.Type)
}

func (s *Service) Create(ctx context.Context, in Input) (*domain.Transaction, error) {
	typ, err := parse(in)
	if err != nil {
		return nil, err
	}
	return s.create(ctx, in, typ)
}

// CreateRaw writes the type unparsed and leaves it to the store's check
// constraint, like auctions.Service.SetStatus does for status.
func (s *Service) CreateRaw(ctx context.Context, in Input) (*domain.Transaction, error) {
	return s.create(ctx, in, domain.TransactionType(in.Type))
}

func (s *Service) create(ctx context.Context, in Input, typ domain.TransactionType) (*domain.Transaction, error) {
	t := &domain.Transaction{
		AuctionID: in.AuctionID,
		ClientID:  in.ClientID,
		Amount:    in.Amount,
		Type:      typ,
	}
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := rejectRetired(tx, in); err != nil {
			return err
		}
		if err := tx.Create(t).Error; err != nil {
			return database.Classify(table, err)
		}
		return common.First(tx, t, table, t.ID)
	})
	if err != nil {
		return nil, err
	}
	return t, nil
}

func rejectRetired(tx *gorm.DB, in Input) error {
	if err := common.RejectRetired(tx, "auction", in.AuctionID); err != nil {
		return err
	}
	return common.RejectRetired(tx, "client", in.ClientID)
}

func (s *Service) Get(ctx context.Context, id uint) (*domain.Transaction, error) {
	var t domain.Transaction
	if err := common.First(s.DB.WithContext(ctx), &t, table, id); err != nil {
		return nil, err
	}
	return &t, nil
}

// List pages transactions by auction and/or client, newest first. q.Status
// filters on the transaction type.
func (s *Service) List(ctx context.Context, q domain.PageQuery) (domain.Page[domain.Transaction], error) {
	db := common.Scope(s.DB.WithContext(ctx), q.IncludeDeleted).Model(&domain.Transaction{})
	if q.AuctionID != 0 {
		db = db.Where("auction_id = ?", q.AuctionID)
	}
	if q.ClientID != 0 {
		db = db.Where("client_id = ?", q.ClientID)
	}
	if q.Status != "" {
		typ, err := domain.ParseTransactionType(q.Status)
		if err != nil {
			return domain.Page[domain.Transaction]{}, err
		}
		db = db.Where("type = ?", typ)
	}
	return common.Paginate[domain.Transaction](db, q, "created_at DESC, id DESC")
}

func (s *Service) Update(ctx context.Context, id uint, in Input) (*domain.Transaction, error) {
	typ, err := parse(in)
	if err != nil {
		return nil, err
	}
	var t domain.Transaction
	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := rejectRetired(tx, in); err != nil {
			return err
		}
		res := tx.Model(&domain.Transaction{}).Where("id = ?", id).Updates(map[string]interface{}{
			"auction_id": in.AuctionID,
			"client_id":  in.ClientID,
			"amount":     in.Amount,
			"type":       typ,
		})
		if res.Error != nil {
			return database.Classify(table, res.Error)
		}
		if res.RowsAffected == 0 {
			return common.NotFound(table, id)
		}
		return common.First(tx, &t, table, id)
	})
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (s *Service) Delete(ctx context.Context, id uint) error {
	return common.SoftDelete[domain.Transaction](ctx, s.DB, table, id)
}

func (s *Service) Restore(ctx context.Context, id uint) (*domain.Transaction, error) {
	if err := common.Restore[domain.Transaction](ctx, s.DB, table, id); err != nil {
		return nil, err
	}
	return s.Get(ctx, id)
}

func (s *Service) Purge(ctx context.Context, id uint) error {
	return common.Purge[domain.Transaction](ctx, s.DB, table, id)
}
