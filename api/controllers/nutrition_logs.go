package controllers

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/angelmondragon/foodtrack-backend/api/responses"
	"github.com/angelmondragon/foodtrack-backend/api/validators"
	"github.com/angelmondragon/foodtrack-backend/internal/nutritionlogs"
	pkgerrors "github.com/angelmondragon/foodtrack-backend/pkg/errors"
	"github.com/angelmondragon/foodtrack-backend/pkg/logger"
)

// CreateNutritionLog handles POST /nutrition-logs. The referenced food's quantity is left untouched.
func CreateNutritionLog(svc nutritionlogs.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "nutrition log service unavailable"))
			return
		}

		var payload createNutritionLogRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		entry, err := svc.Append(r.Context(), nutritionlogs.AppendInput{
			FoodID:   payload.FoodID,
			Quantity: *payload.Quantity,
			Action:   payload.Action,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, nutritionlogs.NewLogDTO(entry))
	}
}

// ListNutritionLogs handles GET /nutrition-logs, newest first.
func ListNutritionLogs(svc nutritionlogs.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "nutrition log service unavailable"))
			return
		}

		foodID, err := validators.ParseOptionalQueryUUID(r, "food_id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		params, err := validators.ParsePagination(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		entries, err := svc.List(r.Context(), nutritionlogs.ListInput{FoodID: foodID, Pagination: params})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, nutritionlogs.NewLogDTOs(entries))
	}
}

type createNutritionLogRequest struct {
	FoodID   uuid.UUID `json:"food_id" validate:"required"`
	Quantity *int      `json:"quantity" validate:"required"`
	Action   string    `json:"action" validate:"omitempty,max=50"`
}
