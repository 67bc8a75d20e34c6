package orders

import (
	"context"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/washifyapp/driver-backend/pkg/db/models"
	"github.com/washifyapp/driver-backend/pkg/enums"
)

const assignedOrderColumns = `orders.id, orders.order_status, osn."statusName" AS status_label,
orders.pickup_date, orders.pickup_time, orders.delivery_date, orders.delivery_time,
orders.order_total, orders.payment_mode, orders.payment_status,
u."fullName" AS customer_name, u.phone AS customer_phone,
a."addressName" AS address_name, a.area, a."buildingNumber" AS building_number,
a.landmark, a.latitude, a.longitude`

type repository struct {
	db *gorm.DB
}

// NewRepository builds an orders repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

// FindForVan loads the order owned by the van. With forUpdate the row is
// locked for the remainder of the transaction so concurrent transitions
// serialize on it. SQLite has no row locks; its single-writer model covers
// the tests.
func (r *repository) FindForVan(ctx context.Context, orderID, vanID int64, forUpdate bool) (*models.Order, error) {
	query := r.db.WithContext(ctx).Where("id = ? AND van_id = ?", orderID, vanID)
	if forUpdate && r.db.Dialector.Name() == "postgres" {
		query = query.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	var order models.Order
	if err := query.First(&order).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *repository) UpdateStatus(ctx context.Context, orderID int64, status enums.OrderStatus) error {
	return r.db.WithContext(ctx).
		Model(&models.Order{}).
		Where("id = ?", orderID).
		Update("order_status", status).Error
}

func (r *repository) AppendHistory(ctx context.Context, orderID int64, status enums.OrderStatus) error {
	entry := models.OrderStatusHistory{
		OrderID:     orderID,
		OrderStatus: status,
	}
	return r.db.WithContext(ctx).Create(&entry).Error
}

func (r *repository) InsertItems(ctx context.Context, items []models.OrderItem) error {
	if len(items) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&items).Error
}

func (r *repository) IncrementTotal(ctx context.Context, orderID int64, amount decimal.Decimal) error {
	return r.db.WithContext(ctx).
		Model(&models.Order{}).
		Where("id = ?", orderID).
		Update("order_total", gorm.Expr("order_total + ?", amount)).Error
}

func (r *repository) UpdatePaymentStatus(ctx context.Context, orderID int64, status enums.PaymentStatus) error {
	return r.db.WithContext(ctx).
		Model(&models.Order{}).
		Where("id = ?", orderID).
		Update("payment_status", status).Error
}

func (r *repository) ListActiveByVan(ctx context.Context, vanID int64) ([]AssignedOrderRow, error) {
	var rows []AssignedOrderRow
	err := r.db.WithContext(ctx).
		Table("orders").
		Select(assignedOrderColumns).
		Joins("JOIN users u ON u.id = orders.user_id").
		Joins("JOIN addresses a ON a.id = orders.address").
		Joins("JOIN order_status_names osn ON osn.id = orders.order_status").
		Where("orders.van_id = ? AND orders.order_status IN ?", vanID, enums.ActiveOrderStatuses()).
		Order("orders.pickup_date ASC, orders.pickup_time ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *repository) FindAssignedRow(ctx context.Context, orderID, vanID int64) (*AssignedOrderRow, error) {
	var row AssignedOrderRow
	err := r.db.WithContext(ctx).
		Table("orders").
		Select(assignedOrderColumns).
		Joins("JOIN users u ON u.id = orders.user_id").
		Joins("JOIN addresses a ON a.id = orders.address").
		Joins("JOIN order_status_names osn ON osn.id = orders.order_status").
		Where("orders.id = ? AND orders.van_id = ?", orderID, vanID).
		Scan(&row).Error
	if err != nil {
		return nil, err
	}
	if row.ID == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return &row, nil
}

func (r *repository) ListItemRows(ctx context.Context, orderIDs []int64) ([]OrderItemRow, error) {
	if len(orderIDs) == 0 {
		return nil, nil
	}
	var rows []OrderItemRow
	err := r.db.WithContext(ctx).
		Table("order_items").
		Select(`order_items.order_id, s.name AS service_name, i.name AS item_name,
order_items.quantity, order_items.item_price`).
		Joins("JOIN items i ON i.id = order_items.item_id").
		Joins("JOIN category c ON c.id = i.category_id").
		Joins("JOIN services s ON s.id = c.service_id").
		Where("order_items.order_id IN ?", orderIDs).
		Order("s.name ASC, i.name ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *repository) CountHistory(ctx context.Context, orderID int64) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.OrderStatusHistory{}).
		Where("order_id = ?", orderID).
		Count(&count).Error
	return count, err
}
