package domain

import (
	"time"

	"gorm.io/plugin/soft_delete"
)

// Bundle is a lot of equipment offered at one auction. Number is unique
// within the auction.
type Bundle struct {
	ID           uint                  `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Number       int                   `gorm:"column:number;not null" json:"number"`
	Name         string                `gorm:"column:name;not null" json:"name"`
	Observations string                `gorm:"column:observations" json:"observations"`
	SellerID     uint                  `gorm:"column:seller_id;not null" json:"seller_id"`
	AuctionID    uint                  `gorm:"column:auction_id;not null" json:"auction_id"`
	Status       BundleStatus          `gorm:"-" json:"status"`
	Deleted      soft_delete.DeletedAt `gorm:"column:deleted;softDelete:flag" json:"deleted"`
	CreatedAt    time.Time             `gorm:"column:created_at;->" json:"created_at"`
	UpdatedAt    time.Time             `gorm:"column:updated_at;->" json:"updated_at"`
}

func (Bundle) TableName() string {
	return "bundle"
}
