package models

// Address is a customer pickup/dropoff location.
type Address struct {
	ID             int64   `gorm:"column:id;primaryKey;autoIncrement"`
	UserID         int64   `gorm:"column:user_id;not null"`
	AddressName    string  `gorm:"column:addressName;not null"`
	Area           string  `gorm:"column:area"`
	BuildingNumber string  `gorm:"column:buildingNumber"`
	Landmark       string  `gorm:"column:landmark"`
	Latitude       float64 `gorm:"column:latitude"`
	Longitude      float64 `gorm:"column:longitude"`
}
