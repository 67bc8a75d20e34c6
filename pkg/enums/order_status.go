package enums

import "fmt"

// OrderStatus tracks the driver-facing lifecycle of an order. Statuses are
// stored as integers and advance strictly one step at a time.
type OrderStatus int

const (
	OrderStatusAssigned  OrderStatus = 1
	OrderStatusPickedUp  OrderStatus = 2
	OrderStatusInTransit OrderStatus = 3
	OrderStatusDelivered OrderStatus = 4
)

var orderStatusLabels = map[OrderStatus]string{
	OrderStatusAssigned:  "Assigned",
	OrderStatusPickedUp:  "Picked Up",
	OrderStatusInTransit: "In Transit",
	OrderStatusDelivered: "Delivered",
}

// String implements fmt.Stringer.
func (s OrderStatus) String() string {
	if label, ok := orderStatusLabels[s]; ok {
		return label
	}
	return fmt.Sprintf("OrderStatus(%d)", int(s))
}

// Label returns the display name persisted in order_status_names.
func (s OrderStatus) Label() string {
	return orderStatusLabels[s]
}

// IsValid reports whether the value is a known OrderStatus.
func (s OrderStatus) IsValid() bool {
	_, ok := orderStatusLabels[s]
	return ok
}

// Next returns the only status this one may advance to.
func (s OrderStatus) Next() OrderStatus {
	return s + 1
}

// IsTerminal reports whether the order has completed its lifecycle.
func (s OrderStatus) IsTerminal() bool {
	return s == OrderStatusDelivered
}

// ActiveOrderStatuses lists the statuses shown on the driver's order board.
func ActiveOrderStatuses() []OrderStatus {
	return []OrderStatus{OrderStatusAssigned, OrderStatusPickedUp, OrderStatusInTransit}
}
