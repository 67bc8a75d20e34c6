package controllers

import (
	"net/http"

	"github.com/washifyapp/driver-backend/api/responses"
	"github.com/washifyapp/driver-backend/api/validators"
	"github.com/washifyapp/driver-backend/internal/otp"
	pkgerrors "github.com/washifyapp/driver-backend/pkg/errors"
	"github.com/washifyapp/driver-backend/pkg/logger"
)

// SendOTP wires the login code issuance endpoint into the HTTP layer.
func SendOTP(svc otp.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			err := pkgerrors.New(pkgerrors.CodeInternal, "otp service unavailable")
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body otp.IssueRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		body.Phone = validators.SanitizeString(body.Phone, 20)
		body.CountryCode = validators.SanitizeString(body.CountryCode, 8)

		if err := svc.Issue(r.Context(), body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]string{"status": "sent"})
	}
}

// VerifyOTP exchanges a received login code for a driver token.
func VerifyOTP(svc otp.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			err := pkgerrors.New(pkgerrors.CodeInternal, "otp service unavailable")
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body otp.VerifyRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		body.Phone = validators.SanitizeString(body.Phone, 20)
		body.CountryCode = validators.SanitizeString(body.CountryCode, 8)
		body.Code = validators.SanitizeString(body.Code, 10)

		result, err := svc.Verify(r.Context(), body)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, result)
	}
}
