package domain

import (
	"time"

	"gorm.io/plugin/soft_delete"
)

// Client is a counterparty of an auction. The same row buys in sales and
// owns (sells) bundles.
type Client struct {
	ID        uint                  `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Company   string                `gorm:"column:company;not null" json:"company"`
	FirstName string                `gorm:"column:first_name" json:"first_name"`
	LastName  string                `gorm:"column:last_name" json:"last_name"`
	Email     string                `gorm:"column:email" json:"email"`
	Phone     string                `gorm:"column:phone" json:"phone"`
	Province  string                `gorm:"column:province;not null" json:"province"`
	City      string                `gorm:"column:city;not null" json:"city"`
	Deleted   soft_delete.DeletedAt `gorm:"column:deleted;softDelete:flag" json:"deleted"`
	CreatedAt time.Time             `gorm:"column:created_at;->" json:"created_at"`
	UpdatedAt time.Time             `gorm:"column:updated_at;->" json:"updated_at"`
}

func (Client) TableName() string {
	return "client"
}

// IsDeleted reports whether the client has been retired.
func (c Client) IsDeleted() bool {
	return c.Deleted != 0
}
