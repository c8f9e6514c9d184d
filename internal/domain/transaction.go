package domain

import (
	"time"

	"gorm.io/plugin/soft_delete"
)

// Transaction is a payment made to, or a collection made from, a client
// within one auction.
type Transaction struct {
	ID        uint                  `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	AuctionID uint                  `gorm:"column:auction_id;not null" json:"auction_id"`
	ClientID  uint                  `gorm:"column:client_id;not null" json:"client_id"`
	Amount    float64               `gorm:"column:amount;not null" json:"amount"`
	Type      TransactionType       `gorm:"column:type;not null" json:"type"`
	Deleted   soft_delete.DeletedAt `gorm:"column:deleted;softDelete:flag" json:"deleted"`
	CreatedAt time.Time             `gorm:"column:created_at;->" json:"created_at"`
	UpdatedAt time.Time             `gorm:"column:updated_at;->" json:"updated_at"`
}

func (Transaction) TableName() string {
	return "transactions"
}
