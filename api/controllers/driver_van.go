package controllers

import (
	"net/http"

	"github.com/washifyapp/driver-backend/api/middleware"
	"github.com/washifyapp/driver-backend/api/responses"
	"github.com/washifyapp/driver-backend/internal/vans"
	pkgerrors "github.com/washifyapp/driver-backend/pkg/errors"
	"github.com/washifyapp/driver-backend/pkg/logger"
)

// VanDetails returns the authenticated van's profile and region.
func VanDetails(svc vans.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			err := pkgerrors.New(pkgerrors.CodeInternal, "vans service unavailable")
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		vanID := middleware.VanIDFromContext(r.Context())
		details, err := svc.GetDetails(r.Context(), vanID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, details)
	}
}
