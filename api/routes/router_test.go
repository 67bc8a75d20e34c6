package routes

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/washifyapp/driver-backend/internal/catalog"
	"github.com/washifyapp/driver-backend/internal/orders"
	"github.com/washifyapp/driver-backend/internal/otp"
	"github.com/washifyapp/driver-backend/internal/vans"
	pkgauth "github.com/washifyapp/driver-backend/pkg/auth"
	"github.com/washifyapp/driver-backend/pkg/config"
	pkgerrors "github.com/washifyapp/driver-backend/pkg/errors"
	"github.com/washifyapp/driver-backend/pkg/logger"
)

type stubPinger struct{}

func (stubPinger) Ping(context.Context) error { return nil }

type stubOTPService struct{}

func (stubOTPService) Issue(ctx context.Context, req otp.IssueRequest) error { return nil }

func (stubOTPService) Verify(ctx context.Context, req otp.VerifyRequest) (*otp.VerifyResponse, error) {
	return &otp.VerifyResponse{Token: "stub-token", VanID: 9}, nil
}

type stubOrdersService struct{}

func (stubOrdersService) Transition(ctx context.Context, input orders.TransitionInput) error {
	return nil
}

func (stubOrdersService) AddItems(ctx context.Context, input orders.AddItemsInput) (*orders.AddItemsResult, error) {
	return &orders.AddItemsResult{}, nil
}

func (stubOrdersService) MarkCashPaid(ctx context.Context, input orders.MarkCashPaidInput) error {
	return nil
}

func (stubOrdersService) ListAssigned(ctx context.Context, vanID int64) ([]orders.OrderSummary, error) {
	return []orders.OrderSummary{}, nil
}

func (stubOrdersService) GetOrder(ctx context.Context, orderID, vanID int64) (*orders.OrderSummary, error) {
	return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
}

type stubVansService struct{}

func (stubVansService) GetDetails(ctx context.Context, vanID int64) (*vans.Details, error) {
	return &vans.Details{ID: vanID, VanNumber: "WF-12"}, nil
}

type stubCatalogService struct{}

func (stubCatalogService) ListServices(ctx context.Context) ([]catalog.ServiceSummary, error) {
	return []catalog.ServiceSummary{{ID: 1, Name: "Dry Cleaning"}}, nil
}

func (stubCatalogService) GetServiceDetails(ctx context.Context, serviceID int64) (*catalog.ServiceDetail, error) {
	return &catalog.ServiceDetail{ID: serviceID, Name: "Dry Cleaning"}, nil
}

func (stubCatalogService) SearchItems(ctx context.Context, query string) ([]catalog.SearchHit, error) {
	return []catalog.SearchHit{}, nil
}

func (stubCatalogService) FullCatalog(ctx context.Context) ([]catalog.ServiceDetail, error) {
	return []catalog.ServiceDetail{}, nil
}

func routerConfig() *config.Config {
	return &config.Config{
		App: config.AppConfig{Env: "test", Port: "8080"},
		JWT: config.JWTConfig{Secret: "router-test-secret", Issuer: "washify", ExpirationMinutes: 60},
		RateLimit: config.RateLimitConfig{
			OTPSendWindow:     time.Minute,
			OTPSendPhoneLimit: 3,
			OTPSendIPLimit:    10,
			OTPVerifyWindow:   time.Minute,
			OTPVerifyIPLimit:  20,
		},
	}
}

func newTestRouter(t *testing.T) (http.Handler, *config.Config) {
	t.Helper()

	cfg := routerConfig()
	logg := logger.New(logger.Options{ServiceName: "routes-test"})
	router := NewRouter(cfg, logg, stubPinger{}, nil, stubOTPService{}, stubOrdersService{}, stubVansService{}, stubCatalogService{})
	return router, cfg
}

func driverToken(t *testing.T, cfg *config.Config) string {
	t.Helper()

	token, err := pkgauth.MintDriverToken(cfg.JWT, time.Now(), pkgauth.DriverTokenPayload{
		VanID:     9,
		VanNumber: "WF-12",
		RegionID:  1,
		Phone:     "+971501234567",
	})
	if err != nil {
		t.Fatalf("mint token: %v", err)
	}
	return token
}

func TestPublicEndpointsAreOpen(t *testing.T) {
	router, _ := newTestRouter(t)

	for _, target := range []string{"/health/live", "/health/ready", "/metrics", "/api/public/ping"} {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
		if rec.Code != http.StatusOK {
			t.Fatalf("%s: expected 200, got %d", target, rec.Code)
		}
	}
}

func TestDriverRoutesRequireToken(t *testing.T) {
	router, _ := newTestRouter(t)

	for _, target := range []string{"/api/driver/ping", "/api/driver/orders/", "/api/driver/van-details", "/api/driver/services/list", "/api/driver/services/all"} {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("%s: expected 401, got %d", target, rec.Code)
		}
	}
}

func TestDriverRoutesAcceptValidToken(t *testing.T) {
	router, cfg := newTestRouter(t)
	token := driverToken(t, cfg)

	for _, target := range []string{
		"/api/driver/ping",
		"/api/driver/orders/",
		"/api/driver/van-details",
		"/api/driver/services/list",
		"/api/driver/services/details?service_id=1",
		"/api/driver/services/search?q=shirt",
		"/api/driver/services/all",
	} {
		req := httptest.NewRequest(http.MethodGet, target, nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("%s: expected 200, got %d: %s", target, rec.Code, rec.Body.String())
		}
	}
}

func TestSendOTPRouteIsWired(t *testing.T) {
	router, _ := newTestRouter(t)

	body := strings.NewReader(`{"phone": "501234567", "country_code": "+971"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/driver/auth/send-otp", body)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestVerifyOTPRouteReturnsToken(t *testing.T) {
	router, _ := newTestRouter(t)

	body := strings.NewReader(`{"phone": "501234567", "country_code": "+971", "otp": "123456"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/driver/auth/verify-otp", body)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var envelope struct {
		Data otp.VerifyResponse `json:"data"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Data.Token != "stub-token" {
		t.Fatalf("unexpected token %q", envelope.Data.Token)
	}
}

func TestUnknownOrderReturnsNotFound(t *testing.T) {
	router, cfg := newTestRouter(t)
	token := driverToken(t, cfg)

	req := httptest.NewRequest(http.MethodGet, "/api/driver/orders/999", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}
