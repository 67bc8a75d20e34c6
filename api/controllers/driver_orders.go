package controllers

import (
	"net/http"

	"github.com/washifyapp/driver-backend/api/middleware"
	"github.com/washifyapp/driver-backend/api/responses"
	"github.com/washifyapp/driver-backend/api/validators"
	"github.com/washifyapp/driver-backend/internal/orders"
	"github.com/washifyapp/driver-backend/pkg/enums"
	pkgerrors "github.com/washifyapp/driver-backend/pkg/errors"
	"github.com/washifyapp/driver-backend/pkg/logger"
)

type updateStatusRequest struct {
	OrderID int64 `json:"order_id" validate:"required,gt=0"`
	Status  int   `json:"status" validate:"required"`
}

type markPaymentRequest struct {
	OrderID int64 `json:"order_id" validate:"required,gt=0"`
}

type addItemsRequest struct {
	OrderID int64                `json:"order_id" validate:"required,gt=0"`
	Items   []orders.ItemRequest `json:"items" validate:"required,min=1,dive"`
}

// ListAssignedOrders returns the authenticated van's open orders.
func ListAssignedOrders(svc orders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			err := pkgerrors.New(pkgerrors.CodeInternal, "orders service unavailable")
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		vanID := middleware.VanIDFromContext(r.Context())
		summaries, err := svc.ListAssigned(r.Context(), vanID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, summaries)
	}
}

// GetOrder returns one of the van's orders, delivered ones included.
func GetOrder(svc orders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			err := pkgerrors.New(pkgerrors.CodeInternal, "orders service unavailable")
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		orderID, err := validators.ParsePathID(r, "orderId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		vanID := middleware.VanIDFromContext(r.Context())
		summary, err := svc.GetOrder(r.Context(), orderID, vanID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, summary)
	}
}

// UpdateOrderStatus advances an order one step through the lifecycle.
func UpdateOrderStatus(svc orders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			err := pkgerrors.New(pkgerrors.CodeInternal, "orders service unavailable")
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body updateStatusRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input := orders.TransitionInput{
			OrderID:  body.OrderID,
			VanID:    middleware.VanIDFromContext(r.Context()),
			ToStatus: enums.OrderStatus(body.Status),
		}
		if err := svc.Transition(r.Context(), input); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]string{"status": "updated"})
	}
}

// MarkOrderPayment settles a cash order as collected.
func MarkOrderPayment(svc orders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			err := pkgerrors.New(pkgerrors.CodeInternal, "orders service unavailable")
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body markPaymentRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input := orders.MarkCashPaidInput{
			OrderID: body.OrderID,
			VanID:   middleware.VanIDFromContext(r.Context()),
		}
		if err := svc.MarkCashPaid(r.Context(), input); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]string{"status": "paid"})
	}
}

// AddOrderItems appends priced items to an open order.
func AddOrderItems(svc orders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			err := pkgerrors.New(pkgerrors.CodeInternal, "orders service unavailable")
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body addItemsRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input := orders.AddItemsInput{
			OrderID: body.OrderID,
			VanID:   middleware.VanIDFromContext(r.Context()),
			Items:   body.Items,
		}
		result, err := svc.AddItems(r.Context(), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, result)
	}
}
