package vans

import (
	"context"

	"gorm.io/gorm"

	"github.com/washifyapp/driver-backend/pkg/db/models"
)

// Repository reads van records for the driver profile surface.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	FindByID(ctx context.Context, vanID int64) (*models.Van, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository builds a vans repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) FindByID(ctx context.Context, vanID int64) (*models.Van, error) {
	var van models.Van
	err := r.db.WithContext(ctx).
		Preload("Region").
		Where("id = ?", vanID).
		First(&van).Error
	if err != nil {
		return nil, err
	}
	return &van, nil
}
