package controllers

import (
	"net/http"
	"strconv"

	"github.com/washifyapp/driver-backend/api/middleware"
	"github.com/washifyapp/driver-backend/api/responses"
)

func PublicPing() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteSuccess(w, map[string]string{"scope": "public", "status": "ok"})
	}
}

func DriverPing() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		payload := map[string]string{"scope": "driver", "status": "ok"}
		if vanID := middleware.VanIDFromContext(r.Context()); vanID > 0 {
			payload["van_id"] = strconv.FormatInt(vanID, 10)
		}
		responses.WriteSuccess(w, payload)
	}
}
