package models

// User is the customer an order belongs to. Only the fields the driver app
// surfaces are mapped here.
type User struct {
	ID       int64  `gorm:"column:id;primaryKey;autoIncrement"`
	FullName string `gorm:"column:fullName;not null"`
	Phone    string `gorm:"column:phone;not null"`
}
