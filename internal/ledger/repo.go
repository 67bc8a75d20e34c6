package ledger

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/washifyapp/driver-backend/pkg/db/models"
)

// Repository manages the per-order logistics ledger rows.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	UpsertPickup(ctx context.Context, orderID, vanID int64, at time.Time) error
	MarkDelivered(ctx context.Context, orderID, vanID int64, at time.Time) (int64, error)
	FindByOrderID(ctx context.Context, orderID int64) (*models.LogisticsLedger, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository returns a ledger repository bound to the provided database.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

// UpsertPickup creates the ledger row for the order or overwrites its pickup
// fields when the row already exists. At most one row per order.
func (r *repository) UpsertPickup(ctx context.Context, orderID, vanID int64, at time.Time) error {
	entry := models.LogisticsLedger{
		OrderID:    orderID,
		PickedUpAt: &at,
		PickedUpBy: &vanID,
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "order_id"}},
			DoUpdates: clause.Assignments(map[string]any{"pickedUp_at": at, "pickedUp_by": vanID}),
		}).
		Create(&entry).Error
}

// MarkDelivered stamps the delivery fields on the order's existing ledger row
// and reports how many rows were touched. Zero means no pickup row existed.
func (r *repository) MarkDelivered(ctx context.Context, orderID, vanID int64, at time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&models.LogisticsLedger{}).
		Where("order_id = ?", orderID).
		Updates(map[string]any{"delivered_at": at, "delivered_by": vanID})
	return result.RowsAffected, result.Error
}

func (r *repository) FindByOrderID(ctx context.Context, orderID int64) (*models.LogisticsLedger, error) {
	var entry models.LogisticsLedger
	if err := r.db.WithContext(ctx).
		Where("order_id = ?", orderID).
		First(&entry).Error; err != nil {
		return nil, err
	}
	return &entry, nil
}
