package domain

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/plugin/soft_delete"
)

// Sale settles one or more bundles of an auction to a buyer. BuyerID is
// cleared by the store when the buyer row is destroyed.
type Sale struct {
	ID         uint                  `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	AuctionID  uint                  `gorm:"column:auction_id;not null" json:"auction_id"`
	BuyerID    *uint                 `gorm:"column:buyer_id" json:"buyer_id"`
	TotalPrice float64               `gorm:"column:total_price;not null" json:"total_price"`
	Deadline   datatypes.Date        `gorm:"column:deadline;not null" json:"deadline"`
	BundleIDs  []uint                `gorm:"-" json:"bundle_ids"`
	Deleted    soft_delete.DeletedAt `gorm:"column:deleted;softDelete:flag" json:"deleted"`
	CreatedAt  time.Time             `gorm:"column:created_at;->" json:"created_at"`
	UpdatedAt  time.Time             `gorm:"column:updated_at;->" json:"updated_at"`
}

func (Sale) TableName() string {
	return "sales"
}

// SaleDetail links a bundle to the sale that settled it. Detail rows are
// join rows: removing a bundle from a sale deletes the row.
type SaleDetail struct {
	ID        uint      `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	SaleID    uint      `gorm:"column:sale_id;not null" json:"sale_id"`
	BundleID  uint      `gorm:"column:bundle_id;not null" json:"bundle_id"`
	CreatedAt time.Time `gorm:"column:created_at;->" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;->" json:"updated_at"`
}

func (SaleDetail) TableName() string {
	return "sales_details"
}
