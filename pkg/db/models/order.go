package models

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/washifyapp/driver-backend/pkg/enums"
)

// Order is the unit of work a van carries through the delivery lifecycle.
// Status and totals are only ever mutated by the lifecycle engine.
type Order struct {
	ID            int64               `gorm:"column:id;primaryKey;autoIncrement"`
	UserID        int64               `gorm:"column:user_id;not null"`
	VanID         int64               `gorm:"column:van_id;not null"`
	AddressID     int64               `gorm:"column:address;not null"`
	PickupDate    time.Time           `gorm:"column:pickup_date;type:date"`
	PickupTime    string              `gorm:"column:pickup_time"`
	DeliveryDate  time.Time           `gorm:"column:delivery_date;type:date"`
	DeliveryTime  string              `gorm:"column:delivery_time"`
	OrderTotal    decimal.Decimal     `gorm:"column:order_total;type:numeric(10,2);not null"`
	PaymentMode   enums.PaymentMode   `gorm:"column:payment_mode;not null;default:'cash'"`
	PaymentStatus enums.PaymentStatus `gorm:"column:payment_status;not null;default:'unpaid'"`
	OrderStatus   enums.OrderStatus   `gorm:"column:order_status;not null;default:1"`
	CreatedAt     time.Time           `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time           `gorm:"column:updated_at;autoUpdateTime"`
}

// OrderItem snapshots one added line: the unit price is captured when the row
// is inserted and never changes afterwards.
type OrderItem struct {
	ID        int64           `gorm:"column:id;primaryKey;autoIncrement"`
	OrderID   int64           `gorm:"column:order_id;not null"`
	ItemID    int64           `gorm:"column:item_id;not null"`
	Quantity  int             `gorm:"column:quantity;not null"`
	ItemPrice decimal.Decimal `gorm:"column:item_price;type:numeric(10,2);not null"`
	CreatedAt time.Time       `gorm:"column:created_at;autoCreateTime"`
}

// OrderStatusHistory is the append-only transition log: exactly one row per
// accepted transition, never updated or deleted.
type OrderStatusHistory struct {
	ID          int64             `gorm:"column:id;primaryKey;autoIncrement"`
	OrderID     int64             `gorm:"column:order_id;not null"`
	OrderStatus enums.OrderStatus `gorm:"column:order_status;not null"`
	CreatedAt   time.Time         `gorm:"column:created_at;autoCreateTime"`
}

// TableName keeps the legacy table name.
func (OrderStatusHistory) TableName() string {
	return "order_status_history"
}

// OrderStatusName maps status integers to display labels.
type OrderStatusName struct {
	ID         int64  `gorm:"column:id;primaryKey"`
	StatusName string `gorm:"column:statusName;not null"`
}
