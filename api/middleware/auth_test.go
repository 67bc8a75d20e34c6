package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/washifyapp/driver-backend/pkg/auth"
	"github.com/washifyapp/driver-backend/pkg/config"
)

func testJWTConfig() config.JWTConfig {
	return config.JWTConfig{Secret: "secret", Issuer: "washify", ExpirationMinutes: 60}
}

func mintTestToken(t *testing.T, cfg config.JWTConfig, issuedAt time.Time) string {
	t.Helper()
	token, err := auth.MintDriverToken(cfg, issuedAt, auth.DriverTokenPayload{
		VanID:     9,
		VanNumber: "VAN-0009",
		RegionID:  2,
		Phone:     "501234567",
	})
	if err != nil {
		t.Fatalf("mint token: %v", err)
	}
	return token
}

func TestDriverAuthRejectsMissingToken(t *testing.T) {
	handler := DriverAuth(testJWTConfig(), nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", resp.Code)
	}
}

func TestDriverAuthRejectsInvalidToken(t *testing.T) {
	handler := DriverAuth(testJWTConfig(), nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer invalid")
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", resp.Code)
	}
}

func TestDriverAuthRejectsExpiredToken(t *testing.T) {
	cfg := testJWTConfig()
	token := mintTestToken(t, cfg, time.Now().Add(-2*time.Hour))

	handler := DriverAuth(cfg, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", resp.Code)
	}
}

func TestDriverAuthSeedsContext(t *testing.T) {
	cfg := testJWTConfig()
	token := mintTestToken(t, cfg, time.Now())

	var gotVanID int64
	var gotRole string
	handler := DriverAuth(cfg, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotVanID = VanIDFromContext(r.Context())
		gotRole = RoleFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	if gotVanID != 9 {
		t.Fatalf("expected van id 9 got %d", gotVanID)
	}
	if gotRole != auth.RoleDriver {
		t.Fatalf("expected driver role got %q", gotRole)
	}
}
