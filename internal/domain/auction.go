package domain

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/plugin/soft_delete"
)

// Auction is a sale event. Status is advisory state driven by the
// application; the store only checks vocabulary membership.
type Auction struct {
	ID        uint                  `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Name      string                `gorm:"column:name;not null" json:"name"`
	Province  string                `gorm:"column:province;not null" json:"province"`
	City      string                `gorm:"column:city;not null" json:"city"`
	Date      datatypes.Date        `gorm:"column:date;not null" json:"date"`
	Status    AuctionStatus         `gorm:"column:status;not null" json:"status"`
	Deleted   soft_delete.DeletedAt `gorm:"column:deleted;softDelete:flag" json:"deleted"`
	CreatedAt time.Time             `gorm:"column:created_at;->" json:"created_at"`
	UpdatedAt time.Time             `gorm:"column:updated_at;->" json:"updated_at"`
}

func (Auction) TableName() string {
	return "auction"
}

func (a Auction) IsDeleted() bool {
	return a.Deleted != 0
}
