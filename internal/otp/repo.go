package otp

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/washifyapp/driver-backend/pkg/db/models"
)

// Repository persists login codes and resolves the van behind a phone number.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	FindActiveVan(ctx context.Context, phone, countryCode string) (*models.Van, error)
	CreateCode(ctx context.Context, phone, countryCode, code string) error
	HasFreshCode(ctx context.Context, phone, countryCode, code string, since time.Time) (bool, error)
	DeleteForPhone(ctx context.Context, phone, countryCode string) error
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository builds an OTP repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

// FindActiveVan resolves the van registered under the phone number. Inactive
// vans are treated the same as missing ones.
func (r *repository) FindActiveVan(ctx context.Context, phone, countryCode string) (*models.Van, error) {
	var van models.Van
	err := r.db.WithContext(ctx).
		Preload("Region").
		Where("phone = ? AND country_code = ? AND status = ?", phone, countryCode, true).
		First(&van).Error
	if err != nil {
		return nil, err
	}
	return &van, nil
}

func (r *repository) CreateCode(ctx context.Context, phone, countryCode, code string) error {
	row := models.OTP{
		Phone:       phone,
		CountryCode: countryCode,
		Code:        code,
	}
	return r.db.WithContext(ctx).Create(&row).Error
}

// HasFreshCode reports whether the code was issued for the phone after the
// given instant. Several codes may be outstanding; any fresh match counts.
func (r *repository) HasFreshCode(ctx context.Context, phone, countryCode, code string, since time.Time) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.OTP{}).
		Where("phone = ? AND country_code = ? AND otp = ? AND created_at >= ?", phone, countryCode, code, since).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// DeleteForPhone removes every outstanding code for the phone, fresh or not.
func (r *repository) DeleteForPhone(ctx context.Context, phone, countryCode string) error {
	return r.db.WithContext(ctx).
		Where("phone = ? AND country_code = ?", phone, countryCode).
		Delete(&models.OTP{}).Error
}

// DeleteOlderThan purges codes issued before the cutoff and returns how many
// rows went away.
func (r *repository) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("created_at < ?", cutoff).
		Delete(&models.OTP{})
	return result.RowsAffected, result.Error
}
