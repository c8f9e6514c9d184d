package domain

// Province is a row of the seeded province catalog.
type Province struct {
	ID   uint   `gorm:"column:id;primaryKey" json:"id"`
	Name string `gorm:"column:name;not null" json:"name"`
}

func (Province) TableName() string {
	return "province"
}
