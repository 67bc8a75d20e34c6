package models

// Region is the service area a van operates in.
type Region struct {
	ID        int64   `gorm:"column:id;primaryKey;autoIncrement"`
	Name      string  `gorm:"column:name;not null"`
	Latitude  float64 `gorm:"column:latitude"`
	Longitude float64 `gorm:"column:longitude"`
}
