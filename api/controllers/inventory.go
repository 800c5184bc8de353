package controllers

import (
	"math"
	"net/http"

	"github.com/angelmondragon/foodtrack-backend/api/responses"
	"github.com/angelmondragon/foodtrack-backend/api/validators"
	foodsvc "github.com/angelmondragon/foodtrack-backend/internal/foods"
	pkgerrors "github.com/angelmondragon/foodtrack-backend/pkg/errors"
	"github.com/angelmondragon/foodtrack-backend/pkg/logger"
)

const (
	defaultDaysAhead     = 7
	maxDaysAhead         = 365
	defaultLowStockLimit = 5
)

// ListInventory handles GET /inventory with an optional exact category filter.
func ListInventory(svc foodsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "food service unavailable"))
			return
		}

		items, err := svc.ListByCategory(r.Context(), validators.ParseOptionalQueryString(r, "category"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, items)
	}
}

// ListExpiringInventory handles GET /inventory/expiring?days_ahead=.
func ListExpiringInventory(svc foodsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "food service unavailable"))
			return
		}

		days, err := validators.ParseQueryInt(r, "days_ahead", defaultDaysAhead, 1, maxDaysAhead)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		items, err := svc.ListExpiring(r.Context(), days)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, items)
	}
}

// ListLowStockInventory handles GET /inventory/low-stock?threshold=.
func ListLowStockInventory(svc foodsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "food service unavailable"))
			return
		}

		threshold, err := validators.ParseQueryInt(r, "threshold", defaultLowStockLimit, 0, math.MaxInt32)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		items, err := svc.ListLowStock(r.Context(), threshold)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, items)
	}
}
