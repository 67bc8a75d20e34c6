package orders

import (
	"context"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/washifyapp/driver-backend/pkg/db/models"
	"github.com/washifyapp/driver-backend/pkg/enums"
)

// Repository defines persistence operations for the order lifecycle tables.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	FindForVan(ctx context.Context, orderID, vanID int64, forUpdate bool) (*models.Order, error)
	UpdateStatus(ctx context.Context, orderID int64, status enums.OrderStatus) error
	AppendHistory(ctx context.Context, orderID int64, status enums.OrderStatus) error
	InsertItems(ctx context.Context, items []models.OrderItem) error
	IncrementTotal(ctx context.Context, orderID int64, amount decimal.Decimal) error
	UpdatePaymentStatus(ctx context.Context, orderID int64, status enums.PaymentStatus) error
	ListActiveByVan(ctx context.Context, vanID int64) ([]AssignedOrderRow, error)
	FindAssignedRow(ctx context.Context, orderID, vanID int64) (*AssignedOrderRow, error)
	ListItemRows(ctx context.Context, orderIDs []int64) ([]OrderItemRow, error)
	CountHistory(ctx context.Context, orderID int64) (int64, error)
}
