package controllers

import (
	"net/http"

	"github.com/washifyapp/driver-backend/api/responses"
	"github.com/washifyapp/driver-backend/api/validators"
	"github.com/washifyapp/driver-backend/internal/catalog"
	pkgerrors "github.com/washifyapp/driver-backend/pkg/errors"
	"github.com/washifyapp/driver-backend/pkg/logger"
)

const searchQueryMaxLen = 100

// CatalogServices lists the available services.
func CatalogServices(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			err := pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable")
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		services, err := svc.ListServices(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, services)
	}
}

// CatalogServiceDetails returns one service with its categories and items.
// The service is selected with the service_id query parameter.
func CatalogServiceDetails(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			err := pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable")
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		serviceID, err := validators.ParseQueryID(r, "service_id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		detail, err := svc.GetServiceDetails(r.Context(), serviceID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, detail)
	}
}

// CatalogSearch finds items by name using the q query parameter.
func CatalogSearch(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			err := pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable")
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		query := validators.SanitizeString(r.URL.Query().Get("q"), searchQueryMaxLen)
		hits, err := svc.SearchItems(r.Context(), query)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, hits)
	}
}

// CatalogAll returns every service with its full category and item tree.
func CatalogAll(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			err := pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable")
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		details, err := svc.FullCatalog(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, details)
	}
}
