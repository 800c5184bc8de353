package controllers

import (
	"net/http"
	"unicode/utf8"

	"github.com/go-chi/chi/v5"

	"github.com/angelmondragon/foodtrack-backend/api/responses"
	"github.com/angelmondragon/foodtrack-backend/api/validators"
	foodsvc "github.com/angelmondragon/foodtrack-backend/internal/foods"
	pkgerrors "github.com/angelmondragon/foodtrack-backend/pkg/errors"
	"github.com/angelmondragon/foodtrack-backend/pkg/logger"
	"github.com/angelmondragon/foodtrack-backend/pkg/types"
)

const (
	foodIDParam  = "foodId"
	barcodeParam = "barcode"

	maxSearchLength = 256
)

// CreateFood handles POST /foods.
func CreateFood(svc foodsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "food service unavailable"))
			return
		}

		var payload createFoodRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		food, err := svc.Create(r.Context(), payload.toInput())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, food)
	}
}

// GetFood handles GET /foods/{foodId}.
func GetFood(svc foodsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "food service unavailable"))
			return
		}

		id, err := validators.ParseUUIDParam(r, foodIDParam)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		food, err := svc.Get(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, food)
	}
}

// GetFoodByBarcode handles GET /foods/barcode/{barcode} and returns the oldest match.
func GetFoodByBarcode(svc foodsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "food service unavailable"))
			return
		}

		barcode, err := barcodeFromPath(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		food, err := svc.GetByBarcode(r.Context(), barcode)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, food)
	}
}

// ListFoods handles GET /foods.
func ListFoods(svc foodsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "food service unavailable"))
			return
		}

		params, err := validators.ParsePagination(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		items, err := svc.List(r.Context(), params)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, items)
	}
}

// SearchFoods handles GET /foods/search?q=.
func SearchFoods(svc foodsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "food service unavailable"))
			return
		}

		params, err := validators.ParsePagination(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		query := validators.SanitizeString(r.URL.Query().Get("q"), maxSearchLength)
		items, err := svc.Search(r.Context(), query, params)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, items)
	}
}

// UpdateFood handles PUT /foods/{foodId}. Only fields present in the body are written.
func UpdateFood(svc foodsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "food service unavailable"))
			return
		}

		id, err := validators.ParseUUIDParam(r, foodIDParam)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload updateFoodRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		food, err := svc.Update(r.Context(), id, payload.toInput())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, food)
	}
}

// AdjustFoodQuantity handles PUT /foods/{foodId}/quantity.
func AdjustFoodQuantity(svc foodsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "food service unavailable"))
			return
		}

		id, err := validators.ParseUUIDParam(r, foodIDParam)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload adjustQuantityRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		ctx := r.Context()
		if logg != nil {
			ctx = logg.WithFoodID(ctx, id.String())
		}

		food, err := svc.AdjustQuantity(ctx, id, *payload.QuantityChange, payload.Action)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccess(w, food)
	}
}

// DeleteFood handles DELETE /foods/{foodId}.
func DeleteFood(svc foodsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "food service unavailable"))
			return
		}

		id, err := validators.ParseUUIDParam(r, foodIDParam)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.Delete(r.Context(), id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteNoContent(w)
	}
}

// DeleteFoodsByBarcode handles DELETE /foods/barcode/{barcode}.
func DeleteFoodsByBarcode(svc foodsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "food service unavailable"))
			return
		}

		barcode, err := barcodeFromPath(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		count, err := svc.DeleteByBarcode(r.Context(), barcode)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, types.CountResponse{Count: count})
	}
}

func barcodeFromPath(r *http.Request) (string, error) {
	barcode := validators.SanitizeString(chi.URLParam(r, barcodeParam), 0)
	if barcode == "" {
		return "", pkgerrors.Validation("barcode is required").WithDetails(map[string]any{"field": barcodeParam})
	}
	if utf8.RuneCountInString(barcode) > foodsvc.MaxBarcodeLength {
		return "", pkgerrors.Validation("barcode is too long").WithDetails(map[string]any{"field": barcodeParam})
	}
	return barcode, nil
}

type createFoodRequest struct {
	Barcode    string      `json:"barcode" validate:"required,max=128"`
	Name       string      `json:"name" validate:"required,max=255"`
	Brand      *string     `json:"brand,omitempty" validate:"omitempty,max=255"`
	Category   *string     `json:"category,omitempty" validate:"omitempty,max=100"`
	Calories   *int        `json:"calories,omitempty"`
	Protein    *float64    `json:"protein,omitempty"`
	Fat        *float64    `json:"fat,omitempty"`
	Carbs      *float64    `json:"carbs,omitempty"`
	Fiber      *float64    `json:"fiber,omitempty"`
	Sugars     *float64    `json:"sugars,omitempty"`
	Sodium     *float64    `json:"sodium,omitempty"`
	Allergens  []string    `json:"allergens,omitempty"`
	ExpiryDate *types.Date `json:"expiry_date,omitempty"`
	Quantity   *int        `json:"quantity,omitempty"`
	Location   *string     `json:"location,omitempty" validate:"omitempty,max=255"`
}

func (r createFoodRequest) toInput() foodsvc.CreateFoodInput {
	return foodsvc.CreateFoodInput{
		Barcode:    r.Barcode,
		Name:       r.Name,
		Brand:      r.Brand,
		Category:   r.Category,
		Calories:   r.Calories,
		Protein:    r.Protein,
		Fat:        r.Fat,
		Carbs:      r.Carbs,
		Fiber:      r.Fiber,
		Sugars:     r.Sugars,
		Sodium:     r.Sodium,
		Allergens:  r.Allergens,
		ExpiryDate: r.ExpiryDate,
		Quantity:   r.Quantity,
		Location:   r.Location,
	}
}

type updateFoodRequest struct {
	Barcode    types.Nullable[string]     `json:"barcode"`
	Name       types.Nullable[string]     `json:"name"`
	Brand      types.Nullable[string]     `json:"brand"`
	Category   types.Nullable[string]     `json:"category"`
	Calories   types.Nullable[int]        `json:"calories"`
	Protein    types.Nullable[float64]    `json:"protein"`
	Fat        types.Nullable[float64]    `json:"fat"`
	Carbs      types.Nullable[float64]    `json:"carbs"`
	Fiber      types.Nullable[float64]    `json:"fiber"`
	Sugars     types.Nullable[float64]    `json:"sugars"`
	Sodium     types.Nullable[float64]    `json:"sodium"`
	Allergens  types.Nullable[[]string]   `json:"allergens"`
	ExpiryDate types.Nullable[types.Date] `json:"expiry_date"`
	Quantity   types.Nullable[int]        `json:"quantity"`
	Location   types.Nullable[string]     `json:"location"`
}

func (r updateFoodRequest) toInput() foodsvc.UpdateFoodInput {
	return foodsvc.UpdateFoodInput{
		Barcode:    r.Barcode,
		Name:       r.Name,
		Brand:      r.Brand,
		Category:   r.Category,
		Calories:   r.Calories,
		Protein:    r.Protein,
		Fat:        r.Fat,
		Carbs:      r.Carbs,
		Fiber:      r.Fiber,
		Sugars:     r.Sugars,
		Sodium:     r.Sodium,
		Allergens:  r.Allergens,
		ExpiryDate: r.ExpiryDate,
		Quantity:   r.Quantity,
		Location:   r.Location,
	}
}

type adjustQuantityRequest struct {
	QuantityChange *int   `json:"quantity_change" validate:"required"`
	Action         string `json:"action" validate:"omitempty,max=50"`
}
