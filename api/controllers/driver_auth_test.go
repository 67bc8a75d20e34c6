package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/washifyapp/driver-backend/internal/otp"
	pkgerrors "github.com/washifyapp/driver-backend/pkg/errors"
	"github.com/washifyapp/driver-backend/pkg/logger"
)

type stubOTPService struct {
	issueErr  error
	verifyErr error
	resp      *otp.VerifyResponse
	lastIssue otp.IssueRequest
}

func (s *stubOTPService) Issue(ctx context.Context, req otp.IssueRequest) error {
	s.lastIssue = req
	return s.issueErr
}

func (s *stubOTPService) Verify(ctx context.Context, req otp.VerifyRequest) (*otp.VerifyResponse, error) {
	return s.resp, s.verifyErr
}

func testLogger() *logger.Logger {
	return logger.New(logger.Options{ServiceName: "controllers-test"})
}

func TestSendOTPHappyPath(t *testing.T) {
	svc := &stubOTPService{}
	handler := SendOTP(svc, testLogger())

	body := bytes.NewBufferString(`{"phone": "501234567", "country_code": "+971"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/driver/auth/send-otp", body)
	rec := httptest.NewRecorder()
	handler(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if svc.lastIssue.Phone != "501234567" {
		t.Fatalf("expected phone forwarded, got %q", svc.lastIssue.Phone)
	}
}

func TestSendOTPRejectsMalformedBody(t *testing.T) {
	handler := SendOTP(&stubOTPService{}, testLogger())

	req := httptest.NewRequest(http.MethodPost, "/api/driver/auth/send-otp", bytes.NewBufferString(`{"phone":`))
	rec := httptest.NewRecorder()
	handler(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestSendOTPSurfacesNotFound(t *testing.T) {
	svc := &stubOTPService{issueErr: pkgerrors.New(pkgerrors.CodeNotFound, "no vehicle registered for this phone")}
	handler := SendOTP(svc, testLogger())

	body := bytes.NewBufferString(`{"phone": "500000000", "country_code": "+971"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/driver/auth/send-otp", body)
	rec := httptest.NewRecorder()
	handler(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestVerifyOTPReturnsToken(t *testing.T) {
	svc := &stubOTPService{resp: &otp.VerifyResponse{Token: "signed-token", VanID: 9, VanNumber: "WF-12"}}
	handler := VerifyOTP(svc, testLogger())

	body := bytes.NewBufferString(`{"phone": "501234567", "country_code": "+971", "otp": "123456"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/driver/auth/verify-otp", body)
	rec := httptest.NewRecorder()
	handler(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var envelope struct {
		Data otp.VerifyResponse `json:"data"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Data.Token != "signed-token" || envelope.Data.VanID != 9 {
		t.Fatalf("unexpected payload %+v", envelope.Data)
	}
}

func TestVerifyOTPSurfacesRejection(t *testing.T) {
	svc := &stubOTPService{verifyErr: pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid or expired code")}
	handler := VerifyOTP(svc, testLogger())

	body := bytes.NewBufferString(`{"phone": "501234567", "country_code": "+971", "otp": "000000"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/driver/auth/verify-otp", body)
	rec := httptest.NewRecorder()
	handler(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
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
	if envelope.Error.Code != string(pkgerrors.CodeUnauthorized) {
		t.Fatalf("unexpected error code %q", envelope.Error.Code)
	}
}
