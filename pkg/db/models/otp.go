package models

import "time"

// OTP is a one-time login code sent to a van's phone. CreatedAt drives the
// five-minute freshness window; several codes may be outstanding at once.
type OTP struct {
	ID          int64     `gorm:"column:id;primaryKey;autoIncrement"`
	Phone       string    `gorm:"column:phone;not null"`
	CountryCode string    `gorm:"column:country_code;not null"`
	Code        string    `gorm:"column:otp;not null"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime"`
}

// TableName keeps the legacy table name.
func (OTP) TableName() string {
	return "otp"
}
