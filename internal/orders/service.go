package orders

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/washifyapp/driver-backend/internal/ledger"
	"github.com/washifyapp/driver-backend/internal/pricing"
	"github.com/washifyapp/driver-backend/pkg/db/models"
	"github.com/washifyapp/driver-backend/pkg/enums"
	pkgerrors "github.com/washifyapp/driver-backend/pkg/errors"
	"github.com/washifyapp/driver-backend/pkg/logger"
	"github.com/washifyapp/driver-backend/pkg/metrics"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// Service defines the order lifecycle operations available to drivers.
type Service interface {
	Transition(ctx context.Context, input TransitionInput) error
	AddItems(ctx context.Context, input AddItemsInput) (*AddItemsResult, error)
	MarkCashPaid(ctx context.Context, input MarkCashPaidInput) error
	ListAssigned(ctx context.Context, vanID int64) ([]OrderSummary, error)
	GetOrder(ctx context.Context, orderID, vanID int64) (*OrderSummary, error)
}

type service struct {
	repo    Repository
	ledger  ledger.Repository
	pricing pricing.Repository
	tx      txRunner
	logg    *logger.Logger
	metrics *metrics.OrderMetrics
	now     func() time.Time
}

// NewService builds the lifecycle service with the required dependencies.
// Logger and metrics are optional.
func NewService(repo Repository, ledgerRepo ledger.Repository, pricingRepo pricing.Repository, tx txRunner, logg *logger.Logger, m *metrics.OrderMetrics) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("orders repository required")
	}
	if ledgerRepo == nil {
		return nil, fmt.Errorf("ledger repository required")
	}
	if pricingRepo == nil {
		return nil, fmt.Errorf("pricing repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	return &service{
		repo:    repo,
		ledger:  ledgerRepo,
		pricing: pricingRepo,
		tx:      tx,
		logg:    logg,
		metrics: m,
		now:     time.Now,
	}, nil
}

// Transition advances the order's status by exactly one step. The status
// write, history row and ledger write commit or roll back together.
func (s *service) Transition(ctx context.Context, input TransitionInput) error {
	if input.OrderID <= 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "order id required")
	}
	if input.VanID <= 0 {
		return pkgerrors.New(pkgerrors.CodeUnauthorized, "van identity missing")
	}
	if !input.ToStatus.IsValid() {
		s.metrics.IncRejected("out_of_range")
		return pkgerrors.New(pkgerrors.CodeInvalidTransition, "requested status out of range").
			WithDetails(map[string]any{"requested": int(input.ToStatus)})
	}

	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		led := s.ledger.WithTx(tx)

		order, err := repo.FindForVan(ctx, input.OrderID, input.VanID, true)
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				s.metrics.IncRejected("unauthorized")
				return pkgerrors.New(pkgerrors.CodeForbidden, "order does not belong to van")
			}
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load order")
		}

		if input.ToStatus <= order.OrderStatus {
			s.metrics.IncRejected("backward")
			return pkgerrors.New(pkgerrors.CodeInvalidTransition,
				fmt.Sprintf("cannot move order from %s to %s", order.OrderStatus.Label(), input.ToStatus.Label()))
		}
		if input.ToStatus != order.OrderStatus.Next() {
			s.metrics.IncRejected("skip")
			return pkgerrors.New(pkgerrors.CodeInvalidTransition,
				fmt.Sprintf("cannot skip from %s to %s", order.OrderStatus.Label(), input.ToStatus.Label()))
		}

		if err := repo.UpdateStatus(ctx, order.ID, input.ToStatus); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update order status")
		}
		if err := repo.AppendHistory(ctx, order.ID, input.ToStatus); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "append status history")
		}

		at := s.now().UTC()
		switch input.ToStatus {
		case enums.OrderStatusPickedUp:
			if err := led.UpsertPickup(ctx, order.ID, input.VanID, at); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "record pickup")
			}
		case enums.OrderStatusDelivered:
			rows, err := led.MarkDelivered(ctx, order.ID, input.VanID, at)
			if err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "record delivery")
			}
			if rows == 0 && s.logg != nil {
				s.logg.Warn(s.logg.WithOrderID(ctx, order.ID), "delivery recorded without prior pickup row")
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.metrics.IncTransition(input.ToStatus.Label())
	return nil
}

// AddItems appends priced line items to an open order. Unit prices are
// resolved inside the transaction and snapshotted on each row.
func (s *service) AddItems(ctx context.Context, input AddItemsInput) (*AddItemsResult, error) {
	if input.OrderID <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order id required")
	}
	if input.VanID <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "van identity missing")
	}
	if len(input.Items) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "at least one item is required")
	}
	for _, line := range input.Items {
		if line.ItemID <= 0 || line.Quantity <= 0 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "item id and quantity must be positive").
				WithDetails(map[string]any{"item_id": line.ItemID, "quantity": line.Quantity})
		}
	}

	var result AddItemsResult
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		prices := s.pricing.WithTx(tx)

		order, err := repo.FindForVan(ctx, input.OrderID, input.VanID, true)
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return pkgerrors.New(pkgerrors.CodeForbidden, "order does not belong to van")
			}
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load order")
		}
		if order.OrderStatus.IsTerminal() {
			return pkgerrors.New(pkgerrors.CodeOrderClosed, "order already delivered")
		}

		distinct := distinctItemIDs(input.Items)
		resolved, err := prices.ResolvePrices(ctx, distinct)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "resolve item prices")
		}
		if len(resolved) != len(distinct) {
			return pkgerrors.New(pkgerrors.CodeValidation, "unknown item in request").
				WithDetails(map[string]any{"unknown_item_ids": missingItemIDs(distinct, resolved)})
		}

		added := decimal.Zero
		rows := make([]models.OrderItem, 0, len(input.Items))
		for _, line := range input.Items {
			price := resolved[line.ItemID]
			added = added.Add(price.Mul(decimal.NewFromInt(int64(line.Quantity))))
			rows = append(rows, models.OrderItem{
				OrderID:   order.ID,
				ItemID:    line.ItemID,
				Quantity:  line.Quantity,
				ItemPrice: price,
			})
		}

		if err := repo.InsertItems(ctx, rows); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "insert order items")
		}
		if err := repo.IncrementTotal(ctx, order.ID, added); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update order total")
		}

		result.AddedAmount = added
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.metrics.AddItems(len(input.Items))
	return &result, nil
}

// MarkCashPaid settles a cash order. Re-applying to an already paid order is
// a no-op.
func (s *service) MarkCashPaid(ctx context.Context, input MarkCashPaidInput) error {
	if input.OrderID <= 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "order id required")
	}
	if input.VanID <= 0 {
		return pkgerrors.New(pkgerrors.CodeUnauthorized, "van identity missing")
	}

	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		order, err := repo.FindForVan(ctx, input.OrderID, input.VanID, true)
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return pkgerrors.New(pkgerrors.CodeForbidden, "order does not belong to van")
			}
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load order")
		}
		if order.PaymentMode != enums.PaymentModeCash {
			return pkgerrors.New(pkgerrors.CodeForbidden, "order is not a cash order")
		}
		if order.PaymentStatus == enums.PaymentStatusPaid {
			return nil
		}

		if err := repo.UpdatePaymentStatus(ctx, order.ID, enums.PaymentStatusPaid); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update payment status")
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.metrics.IncCashPaid()
	return nil
}

// ListAssigned returns the van's open orders (assigned, picked up, in
// transit) ordered by pickup slot, each with its items grouped by service.
func (s *service) ListAssigned(ctx context.Context, vanID int64) ([]OrderSummary, error) {
	if vanID <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "van identity missing")
	}

	rows, err := s.repo.ListActiveByVan(ctx, vanID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list assigned orders")
	}
	if len(rows) == 0 {
		return []OrderSummary{}, nil
	}

	ids := make([]int64, 0, len(rows))
	for _, row := range rows {
		ids = append(ids, row.ID)
	}
	itemRows, err := s.repo.ListItemRows(ctx, ids)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list order items")
	}

	grouped := groupItemsByService(itemRows)
	summaries := make([]OrderSummary, 0, len(rows))
	for _, row := range rows {
		summaries = append(summaries, buildSummary(row, grouped[row.ID]))
	}
	return summaries, nil
}

// GetOrder returns one order owned by the van, regardless of status.
func (s *service) GetOrder(ctx context.Context, orderID, vanID int64) (*OrderSummary, error) {
	if orderID <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order id required")
	}
	if vanID <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "van identity missing")
	}

	row, err := s.repo.FindAssignedRow(ctx, orderID, vanID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load order")
	}

	itemRows, err := s.repo.ListItemRows(ctx, []int64{orderID})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list order items")
	}

	grouped := groupItemsByService(itemRows)
	summary := buildSummary(*row, grouped[orderID])
	return &summary, nil
}

func buildSummary(row AssignedOrderRow, services []ServiceGroup) OrderSummary {
	if services == nil {
		services = []ServiceGroup{}
	}
	return OrderSummary{
		ID:            row.ID,
		Status:        row.OrderStatus,
		StatusLabel:   row.StatusLabel,
		PickupDate:    row.PickupDate,
		PickupTime:    row.PickupTime,
		DeliveryDate:  row.DeliveryDate,
		DeliveryTime:  row.DeliveryTime,
		OrderTotal:    row.OrderTotal,
		PaymentMode:   row.PaymentMode,
		PaymentStatus: row.PaymentStatus,
		Customer: CustomerSummary{
			Name:  row.CustomerName,
			Phone: row.CustomerPhone,
		},
		Address: AddressSummary{
			Name:           row.AddressName,
			Area:           row.Area,
			BuildingNumber: row.BuildingNumber,
			Landmark:       row.Landmark,
			Latitude:       row.Latitude,
			Longitude:      row.Longitude,
		},
		Services: services,
	}
}

// groupItemsByService folds the flat item rows into per-order service groups.
// Input rows are sorted by (service, item); the fold preserves that order.
func groupItemsByService(rows []OrderItemRow) map[int64][]ServiceGroup {
	grouped := make(map[int64][]ServiceGroup)
	for _, row := range rows {
		groups := grouped[row.OrderID]
		line := ItemLine{Name: row.ItemName, Quantity: row.Quantity, Price: row.ItemPrice}
		if n := len(groups); n > 0 && groups[n-1].Service == row.ServiceName {
			groups[n-1].Items = append(groups[n-1].Items, line)
		} else {
			groups = append(groups, ServiceGroup{Service: row.ServiceName, Items: []ItemLine{line}})
		}
		grouped[row.OrderID] = groups
	}
	return grouped
}

func distinctItemIDs(items []ItemRequest) []int64 {
	seen := make(map[int64]struct{}, len(items))
	ids := make([]int64, 0, len(items))
	for _, line := range items {
		if _, ok := seen[line.ItemID]; ok {
			continue
		}
		seen[line.ItemID] = struct{}{}
		ids = append(ids, line.ItemID)
	}
	return ids
}

func missingItemIDs(requested []int64, resolved map[int64]decimal.Decimal) []int64 {
	missing := make([]int64, 0)
	for _, id := range requested {
		if _, ok := resolved[id]; !ok {
			missing = append(missing, id)
		}
	}
	sort.Slice(missing, func(i, j int) bool { return missing[i] < missing[j] })
	return missing
}
