package catalog

import (
	"context"
	"strings"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/washifyapp/driver-backend/pkg/db/models"
)

// ItemRow is one priced item joined with its category and service.
type ItemRow struct {
	ServiceID    int64
	ServiceName  string
	CategoryID   int64
	CategoryName string
	ItemID       int64
	ItemName     string
	Price        decimal.Decimal
}

const itemRowColumns = `s.id AS service_id, s.name AS service_name,
c.id AS category_id, c.name AS category_name,
items.id AS item_id, items.name AS item_name, items.price`

// Repository reads the service catalog for the driver surface.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	ListServices(ctx context.Context) ([]models.Service, error)
	FindServiceByID(ctx context.Context, serviceID int64) (*models.Service, error)
	ListItemRows(ctx context.Context, serviceIDs []int64) ([]ItemRow, error)
	SearchItemRows(ctx context.Context, query string) ([]ItemRow, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository builds a catalog repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) ListServices(ctx context.Context) ([]models.Service, error) {
	var services []models.Service
	err := r.db.WithContext(ctx).
		Order("name ASC").
		Find(&services).Error
	if err != nil {
		return nil, err
	}
	return services, nil
}

func (r *repository) FindServiceByID(ctx context.Context, serviceID int64) (*models.Service, error) {
	var svc models.Service
	err := r.db.WithContext(ctx).
		Where("id = ?", serviceID).
		First(&svc).Error
	if err != nil {
		return nil, err
	}
	return &svc, nil
}

// ListItemRows returns every priced item joined with its category and
// service. An empty serviceIDs slice means the whole catalog.
func (r *repository) ListItemRows(ctx context.Context, serviceIDs []int64) ([]ItemRow, error) {
	q := r.db.WithContext(ctx).
		Table("items").
		Select(itemRowColumns).
		Joins("JOIN category c ON c.id = items.category_id").
		Joins("JOIN services s ON s.id = c.service_id")
	if len(serviceIDs) > 0 {
		q = q.Where("s.id IN ?", serviceIDs)
	}

	var rows []ItemRow
	err := q.Order("s.name ASC, c.name ASC, items.name ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *repository) SearchItemRows(ctx context.Context, query string) ([]ItemRow, error) {
	pattern := "%" + strings.ToLower(query) + "%"

	var rows []ItemRow
	err := r.db.WithContext(ctx).
		Table("items").
		Select(itemRowColumns).
		Joins("JOIN category c ON c.id = items.category_id").
		Joins("JOIN services s ON s.id = c.service_id").
		Where("lower(items.name) LIKE ?", pattern).
		Order("s.name ASC, c.name ASC, items.name ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
