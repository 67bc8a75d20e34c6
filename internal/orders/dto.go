package orders

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/washifyapp/driver-backend/pkg/enums"
)

// ItemRequest is one requested line in an item addition. Repeated item ids are
// treated as independent lines.
type ItemRequest struct {
	ItemID   int64 `json:"item_id" validate:"required,gt=0"`
	Quantity int   `json:"quantity" validate:"required,gt=0"`
}

// TransitionInput carries a status-change command from an authenticated van.
type TransitionInput struct {
	OrderID  int64
	VanID    int64
	ToStatus enums.OrderStatus
}

// AddItemsInput carries an item-addition command.
type AddItemsInput struct {
	OrderID int64
	VanID   int64
	Items   []ItemRequest
}

// AddItemsResult reports the amount the order total grew by.
type AddItemsResult struct {
	AddedAmount decimal.Decimal `json:"added_amount"`
}

// MarkCashPaidInput carries a cash settlement command.
type MarkCashPaidInput struct {
	OrderID int64
	VanID   int64
}

// CustomerSummary is the customer info surfaced to the driver.
type CustomerSummary struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
}

// AddressSummary is the pickup/dropoff location surfaced to the driver.
type AddressSummary struct {
	Name           string  `json:"name"`
	Area           string  `json:"area,omitempty"`
	BuildingNumber string  `json:"building_number,omitempty"`
	Landmark       string  `json:"landmark,omitempty"`
	Latitude       float64 `json:"latitude,omitempty"`
	Longitude      float64 `json:"longitude,omitempty"`
}

// ItemLine is one item row inside a service group.
type ItemLine struct {
	Name     string          `json:"name"`
	Quantity int             `json:"quantity"`
	Price    decimal.Decimal `json:"price"`
}

// ServiceGroup holds the items of one service, sorted by item name. Groups
// themselves are sorted by service name.
type ServiceGroup struct {
	Service string     `json:"service"`
	Items   []ItemLine `json:"items"`
}

// OrderSummary is the enriched order view returned to drivers.
type OrderSummary struct {
	ID            int64               `json:"id"`
	Status        enums.OrderStatus   `json:"status"`
	StatusLabel   string              `json:"status_label"`
	PickupDate    time.Time           `json:"pickup_date"`
	PickupTime    string              `json:"pickup_time"`
	DeliveryDate  time.Time           `json:"delivery_date"`
	DeliveryTime  string              `json:"delivery_time"`
	OrderTotal    decimal.Decimal     `json:"order_total"`
	PaymentMode   enums.PaymentMode   `json:"payment_mode"`
	PaymentStatus enums.PaymentStatus `json:"payment_status"`
	Customer      CustomerSummary     `json:"customer"`
	Address       AddressSummary      `json:"address"`
	Services      []ServiceGroup      `json:"services"`
}

// AssignedOrderRow is the flat row shape produced by the orders list query.
type AssignedOrderRow struct {
	ID             int64               `gorm:"column:id"`
	OrderStatus    enums.OrderStatus   `gorm:"column:order_status"`
	StatusLabel    string              `gorm:"column:status_label"`
	PickupDate     time.Time           `gorm:"column:pickup_date"`
	PickupTime     string              `gorm:"column:pickup_time"`
	DeliveryDate   time.Time           `gorm:"column:delivery_date"`
	DeliveryTime   string              `gorm:"column:delivery_time"`
	OrderTotal     decimal.Decimal     `gorm:"column:order_total"`
	PaymentMode    enums.PaymentMode   `gorm:"column:payment_mode"`
	PaymentStatus  enums.PaymentStatus `gorm:"column:payment_status"`
	CustomerName   string              `gorm:"column:customer_name"`
	CustomerPhone  string              `gorm:"column:customer_phone"`
	AddressName    string              `gorm:"column:address_name"`
	Area           string              `gorm:"column:area"`
	BuildingNumber string              `gorm:"column:building_number"`
	Landmark       string              `gorm:"column:landmark"`
	Latitude       float64             `gorm:"column:latitude"`
	Longitude      float64             `gorm:"column:longitude"`
}

// OrderItemRow is the flat row shape produced by the items query. Rows arrive
// pre-sorted by (service name, item name) and are regrouped in memory.
type OrderItemRow struct {
	OrderID     int64           `gorm:"column:order_id"`
	ServiceName string          `gorm:"column:service_name"`
	ItemName    string          `gorm:"column:item_name"`
	Quantity    int             `gorm:"column:quantity"`
	ItemPrice   decimal.Decimal `gorm:"column:item_price"`
}
