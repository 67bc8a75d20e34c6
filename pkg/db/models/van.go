package models

import "time"

// Van is the driver-operated vehicle that orders are assigned to. The van's
// phone number doubles as the driver login identity.
type Van struct {
	ID          int64     `gorm:"column:id;primaryKey;autoIncrement"`
	VanNumber   string    `gorm:"column:van_number;not null"`
	Phone       string    `gorm:"column:phone;not null"`
	CountryCode string    `gorm:"column:country_code;not null"`
	RegionID    int64     `gorm:"column:region_id;not null"`
	Status      bool      `gorm:"column:status;not null;default:true"`
	Region      *Region   `gorm:"foreignKey:RegionID"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
