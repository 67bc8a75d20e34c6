package validators

import (
	"context"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	pkgerrors "github.com/washifyapp/driver-backend/pkg/errors"
)

func TestDecodeJSONBodyRejectsUnknownFields(t *testing.T) {
	type payload struct {
		Phone string `json:"phone" validate:"required"`
	}
	r := httptest.NewRequest("POST", "/", strings.NewReader(`{"phone":"5551234","bogus":true}`))

	var dest payload
	err := DecodeJSONBody(r, &dest)
	if err == nil {
		t.Fatal("expected unknown field to fail")
	}
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestDecodeJSONBodyReportsMissingFields(t *testing.T) {
	type payload struct {
		Phone       string `json:"phone" validate:"required"`
		CountryCode string `json:"country_code" validate:"required"`
	}
	r := httptest.NewRequest("POST", "/", strings.NewReader(`{"phone":"5551234"}`))

	var dest payload
	err := DecodeJSONBody(r, &dest)
	if err == nil {
		t.Fatal("expected missing field to fail")
	}
	typed := pkgerrors.As(err)
	if typed == nil {
		t.Fatalf("expected typed error, got %v", err)
	}
	details, ok := typed.Details().(map[string]string)
	if !ok {
		t.Fatalf("expected field details, got %v", typed.Details())
	}
	if details["country_code"] != "is required" {
		t.Fatalf("unexpected details %v", details)
	}
}

func TestParsePathID(t *testing.T) {
	routeCtx := chi.NewRouteContext()
	routeCtx.URLParams.Add("orderId", "42")
	r := httptest.NewRequest("GET", "/orders/42", nil)
	r = r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, routeCtx))

	id, err := ParsePathID(r, "orderId")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if id != 42 {
		t.Fatalf("expected 42, got %d", id)
	}

	badCtx := chi.NewRouteContext()
	badCtx.URLParams.Add("orderId", "abc")
	r = httptest.NewRequest("GET", "/orders/abc", nil)
	r = r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, badCtx))
	if _, err := ParsePathID(r, "orderId"); err == nil {
		t.Fatal("expected non-numeric id to fail")
	}
}

func TestParseQueryID(t *testing.T) {
	r := httptest.NewRequest("GET", "/services/details?service_id=7", nil)
	id, err := ParseQueryID(r, "service_id")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if id != 7 {
		t.Fatalf("expected 7, got %d", id)
	}

	for _, target := range []string{"/services/details", "/services/details?service_id=abc", "/services/details?service_id=-1"} {
		r := httptest.NewRequest("GET", target, nil)
		if _, err := ParseQueryID(r, "service_id"); err == nil {
			t.Fatalf("%s: expected parse to fail", target)
		}
	}
}

func TestSanitizeString(t *testing.T) {
	if got := SanitizeString("  hello  ", 0); got != "hello" {
		t.Fatalf("unexpected %q", got)
	}
	if got := SanitizeString("abcdef", 3); got != "abc" {
		t.Fatalf("unexpected %q", got)
	}
	if got := SanitizeString("+971\t5012\x0034567", 0); got != "+971501234567" {
		t.Fatalf("expected control characters stripped, got %q", got)
	}
}
