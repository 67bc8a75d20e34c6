package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/washifyapp/driver-backend/api/middleware"
	"github.com/washifyapp/driver-backend/internal/orders"
	"github.com/washifyapp/driver-backend/pkg/enums"
	pkgerrors "github.com/washifyapp/driver-backend/pkg/errors"
)

type stubOrdersService struct {
	transitionErr  error
	lastTransition orders.TransitionInput
	addResult      *orders.AddItemsResult
	addErr         error
	lastAdd        orders.AddItemsInput
	cashErr        error
	lastCash       orders.MarkCashPaidInput
	summaries      []orders.OrderSummary
	listErr        error
	summary        *orders.OrderSummary
	getErr         error
}

func (s *stubOrdersService) Transition(ctx context.Context, input orders.TransitionInput) error {
	s.lastTransition = input
	return s.transitionErr
}

func (s *stubOrdersService) AddItems(ctx context.Context, input orders.AddItemsInput) (*orders.AddItemsResult, error) {
	s.lastAdd = input
	return s.addResult, s.addErr
}

func (s *stubOrdersService) MarkCashPaid(ctx context.Context, input orders.MarkCashPaidInput) error {
	s.lastCash = input
	return s.cashErr
}

func (s *stubOrdersService) ListAssigned(ctx context.Context, vanID int64) ([]orders.OrderSummary, error) {
	return s.summaries, s.listErr
}

func (s *stubOrdersService) GetOrder(ctx context.Context, orderID, vanID int64) (*orders.OrderSummary, error) {
	return s.summary, s.getErr
}

func driverRequest(method, target string, body *bytes.Buffer, vanID int64) *http.Request {
	if body == nil {
		body = &bytes.Buffer{}
	}
	req := httptest.NewRequest(method, target, body)
	return req.WithContext(middleware.WithVanID(req.Context(), vanID))
}

func TestListAssignedOrdersReturnsEnvelope(t *testing.T) {
	svc := &stubOrdersService{summaries: []orders.OrderSummary{{ID: 500, StatusLabel: "Assigned"}}}
	handler := ListAssignedOrders(svc, testLogger())

	rec := httptest.NewRecorder()
	handler(rec, driverRequest(http.MethodGet, "/api/driver/orders", nil, 9))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var envelope struct {
		Data []orders.OrderSummary `json:"data"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(envelope.Data) != 1 || envelope.Data[0].ID != 500 {
		t.Fatalf("unexpected payload %+v", envelope.Data)
	}
}

func TestGetOrderParsesPathID(t *testing.T) {
	svc := &stubOrdersService{summary: &orders.OrderSummary{ID: 500}}
	handler := GetOrder(svc, testLogger())

	req := driverRequest(http.MethodGet, "/api/driver/orders/500", nil, 9)
	routeCtx := chi.NewRouteContext()
	routeCtx.URLParams.Add("orderId", "500")
	req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, routeCtx))

	rec := httptest.NewRecorder()
	handler(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestGetOrderRejectsBadPathID(t *testing.T) {
	handler := GetOrder(&stubOrdersService{}, testLogger())

	req := driverRequest(http.MethodGet, "/api/driver/orders/abc", nil, 9)
	routeCtx := chi.NewRouteContext()
	routeCtx.URLParams.Add("orderId", "abc")
	req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, routeCtx))

	rec := httptest.NewRecorder()
	handler(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestUpdateOrderStatusForwardsIdentity(t *testing.T) {
	svc := &stubOrdersService{}
	handler := UpdateOrderStatus(svc, testLogger())

	body := bytes.NewBufferString(`{"order_id": 500, "status": 2}`)
	rec := httptest.NewRecorder()
	handler(rec, driverRequest(http.MethodPost, "/api/driver/orders/status", body, 9))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if svc.lastTransition.OrderID != 500 || svc.lastTransition.VanID != 9 {
		t.Fatalf("unexpected input %+v", svc.lastTransition)
	}
	if svc.lastTransition.ToStatus != enums.OrderStatusPickedUp {
		t.Fatalf("unexpected status %v", svc.lastTransition.ToStatus)
	}
}

func TestUpdateOrderStatusSurfacesTransitionError(t *testing.T) {
	svc := &stubOrdersService{transitionErr: pkgerrors.New(pkgerrors.CodeInvalidTransition, "cannot skip from Assigned to In Transit")}
	handler := UpdateOrderStatus(svc, testLogger())

	body := bytes.NewBufferString(`{"order_id": 500, "status": 3}`)
	rec := httptest.NewRecorder()
	handler(rec, driverRequest(http.MethodPost, "/api/driver/orders/status", body, 9))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	var envelope struct {
		Error struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Error.Code != string(pkgerrors.CodeInvalidTransition) {
		t.Fatalf("unexpected code %q", envelope.Error.Code)
	}
	if envelope.Error.Message == "" {
		t.Fatalf("expected transition message to surface")
	}
}

func TestMarkOrderPaymentForwardsIdentity(t *testing.T) {
	svc := &stubOrdersService{}
	handler := MarkOrderPayment(svc, testLogger())

	body := bytes.NewBufferString(`{"order_id": 500}`)
	rec := httptest.NewRecorder()
	handler(rec, driverRequest(http.MethodPost, "/api/driver/orders/payment", body, 9))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if svc.lastCash.OrderID != 500 || svc.lastCash.VanID != 9 {
		t.Fatalf("unexpected input %+v", svc.lastCash)
	}
}

func TestAddOrderItemsReturnsAddedAmount(t *testing.T) {
	svc := &stubOrdersService{addResult: &orders.AddItemsResult{AddedAmount: decimal.RequireFromString("30.00")}}
	handler := AddOrderItems(svc, testLogger())

	body := bytes.NewBufferString(`{"order_id": 500, "items": [{"item_id": 1, "quantity": 3}]}`)
	rec := httptest.NewRecorder()
	handler(rec, driverRequest(http.MethodPost, "/api/driver/orders/add-items", body, 9))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if len(svc.lastAdd.Items) != 1 || svc.lastAdd.Items[0].Quantity != 3 {
		t.Fatalf("unexpected items %+v", svc.lastAdd.Items)
	}

	var envelope struct {
		Data struct {
			AddedAmount string `json:"added_amount"`
		} `json:"data"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Data.AddedAmount != "30.00" {
		t.Fatalf("unexpected added amount %q", envelope.Data.AddedAmount)
	}
}

func TestAddOrderItemsRejectsEmptyList(t *testing.T) {
	handler := AddOrderItems(&stubOrdersService{}, testLogger())

	body := bytes.NewBufferString(`{"order_id": 500, "items": []}`)
	rec := httptest.NewRecorder()
	handler(rec, driverRequest(http.MethodPost, "/api/driver/orders/add-items", body, 9))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}
