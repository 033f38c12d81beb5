package app

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/nidoapp/nido/internal/config"
	"github.com/nidoapp/nido/pkg/household"
	log "github.com/sirupsen/logrus"
)

// SetupMiddleware wires all HTTP middlewares for the application.
func SetupMiddleware(r *mux.Router, deps *Dependencies, cfg config.Application) {

	// Propagate X-Household-Id header into context for downstream services
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			log.Debug("Propagating household ID header")

			householdHeader := req.Header.Get("X-Household-Id")
			ctx := req.Context()

			if householdHeader != "" {
				h, err := deps.HouseholdService.GetHouseholdByUid(ctx, householdHeader)
				if err != nil {
					if errors.Is(err, household.ErrHouseholdNotFound) {
						log.Debugf("household not found: %s", householdHeader)
						http.Error(w, "household not found", http.StatusForbidden)
						return
					}
					log.Errorf("failed to get household: %v", err)
					http.Error(w, err.Error(), http.StatusBadRequest)
					return
				}
				log.Debugf("household found: %s", h.Uid)
				ctx = household.WithHousehold(ctx, h)
			}
			next.ServeHTTP(w, req.WithContext(ctx))
		})
	})
}
