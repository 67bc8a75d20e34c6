package models

import "time"

// LogisticsLedger records the physical handoff events for one order: who
// picked it up and who delivered it, with timestamps. One row per order.
type LogisticsLedger struct {
	ID          int64      `gorm:"column:id;primaryKey;autoIncrement"`
	OrderID     int64      `gorm:"column:order_id;not null;uniqueIndex"`
	PickedUpAt  *time.Time `gorm:"column:pickedUp_at"`
	PickedUpBy  *int64     `gorm:"column:pickedUp_by"`
	DeliveredAt *time.Time `gorm:"column:delivered_at"`
	DeliveredBy *int64     `gorm:"column:delivered_by"`
}

// TableName keeps the legacy table name.
func (LogisticsLedger) TableName() string {
	return "logistics_ledger"
}
