package models

import "github.com/shopspring/decimal"

// Service is a top-level laundry service (wash, dry clean, iron).
type Service struct {
	ID   int64  `gorm:"column:id;primaryKey;autoIncrement"`
	Name string `gorm:"column:name;not null"`
}

// Category groups items underneath a service.
type Category struct {
	ID        int64  `gorm:"column:id;primaryKey;autoIncrement"`
	Name      string `gorm:"column:name;not null"`
	ServiceID int64  `gorm:"column:service_id;not null"`
}

// TableName keeps the legacy singular table name.
func (Category) TableName() string {
	return "category"
}

// Item is a priced catalog product. Price is the current unit price; order
// items snapshot it at addition time.
type Item struct {
	ID         int64           `gorm:"column:id;primaryKey;autoIncrement"`
	Name       string          `gorm:"column:name;not null"`
	CategoryID int64           `gorm:"column:category_id;not null"`
	Price      decimal.Decimal `gorm:"column:price;type:numeric(10,2);not null"`
}
