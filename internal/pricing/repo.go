package pricing

import (
	"context"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/washifyapp/driver-backend/pkg/db/models"
)

// Repository resolves current catalog prices for item identifiers.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	ResolvePrices(ctx context.Context, itemIDs []int64) (map[int64]decimal.Decimal, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository builds a pricing repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

// ResolvePrices returns the current unit price for every item id it can find.
// Callers compare the result size against the distinct request size to detect
// unknown items.
func (r *repository) ResolvePrices(ctx context.Context, itemIDs []int64) (map[int64]decimal.Decimal, error) {
	prices := make(map[int64]decimal.Decimal, len(itemIDs))
	if len(itemIDs) == 0 {
		return prices, nil
	}

	var items []models.Item
	if err := r.db.WithContext(ctx).
		Select("id", "price").
		Where("id IN ?", itemIDs).
		Find(&items).Error; err != nil {
		return nil, err
	}

	for _, item := range items {
		prices[item.ID] = item.Price
	}
	return prices, nil
}
