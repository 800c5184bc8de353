package foods

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/angelmondragon/foodtrack-backend/pkg/db/models"
	dbtypes "github.com/angelmondragon/foodtrack-backend/pkg/db/types"
	pkgerrors "github.com/angelmondragon/foodtrack-backend/pkg/errors"
	"github.com/angelmondragon/foodtrack-backend/pkg/types"
)

// DefaultQuantity applies when a create payload omits quantity.
const DefaultQuantity = 1

// Column limits mirror the food_items migration.
const (
	MaxBarcodeLength  = 128
	MaxNameLength     = 255
	MaxBrandLength    = 255
	MaxCategoryLength = 100
	MaxLocationLength = 255
)

// CreateFoodInput holds the validated payload to create a food item.
type CreateFoodInput struct {
	Barcode    string
	Name       string
	Brand      *string
	Category   *string
	Calories   *int
	Protein    *float64
	Fat        *float64
	Carbs      *float64
	Fiber      *float64
	Sugars     *float64
	Sodium     *float64
	Allergens  []string
	ExpiryDate *types.Date
	Quantity   *int
	Location   *string
}

// Model converts the input into an unsaved row.
func (in CreateFoodInput) Model() *models.FoodItem {
	quantity := DefaultQuantity
	if in.Quantity != nil {
		quantity = *in.Quantity
	}
	return &models.FoodItem{
		Barcode:    strings.TrimSpace(in.Barcode),
		Name:       strings.TrimSpace(in.Name),
		Brand:      in.Brand,
		Category:   in.Category,
		Calories:   in.Calories,
		Protein:    in.Protein,
		Fat:        in.Fat,
		Carbs:      in.Carbs,
		Fiber:      in.Fiber,
		Sugars:     in.Sugars,
		Sodium:     in.Sodium,
		Allergens:  cleanAllergens(in.Allergens),
		ExpiryDate: in.ExpiryDate,
		Quantity:   quantity,
		Location:   in.Location,
	}
}

// Validate checks required fields and column lengths.
func (in CreateFoodInput) Validate() error {
	barcode, name := strings.TrimSpace(in.Barcode), strings.TrimSpace(in.Name)
	if barcode == "" {
		return pkgerrors.Validation("barcode is required").WithDetails(map[string]any{"field": "barcode"})
	}
	if name == "" {
		return pkgerrors.Validation("name is required").WithDetails(map[string]any{"field": "name"})
	}
	checks := []struct {
		column string
		value  *string
		limit  int
	}{
		{"barcode", &barcode, MaxBarcodeLength},
		{"name", &name, MaxNameLength},
		{"brand", in.Brand, MaxBrandLength},
		{"category", in.Category, MaxCategoryLength},
		{"location", in.Location, MaxLocationLength},
	}
	for _, c := range checks {
		if err := checkLength(c.column, c.value, c.limit); err != nil {
			return err
		}
	}
	return nil
}

// UpdateFoodInput carries the fields the client sent. Null values are treated like
// omitted ones and leave the column untouched.
type UpdateFoodInput struct {
	Barcode    types.Nullable[string]
	Name       types.Nullable[string]
	Brand      types.Nullable[string]
	Category   types.Nullable[string]
	Calories   types.Nullable[int]
	Protein    types.Nullable[float64]
	Fat        types.Nullable[float64]
	Carbs      types.Nullable[float64]
	Fiber      types.Nullable[float64]
	Sugars     types.Nullable[float64]
	Sodium     types.Nullable[float64]
	Allergens  types.Nullable[[]string]
	ExpiryDate types.Nullable[types.Date]
	Quantity   types.Nullable[int]
	Location   types.Nullable[string]
}

// Columns maps the present fields to column updates.
func (in UpdateFoodInput) Columns() (map[string]any, error) {
	fields := map[string]any{}

	if err := requiredString(fields, "barcode", in.Barcode, MaxBarcodeLength); err != nil {
		return nil, err
	}
	if err := requiredString(fields, "name", in.Name, MaxNameLength); err != nil {
		return nil, err
	}
	if err := checkLength("brand", in.Brand.Value, MaxBrandLength); err != nil {
		return nil, err
	}
	if err := checkLength("category", in.Category.Value, MaxCategoryLength); err != nil {
		return nil, err
	}
	if err := checkLength("location", in.Location.Value, MaxLocationLength); err != nil {
		return nil, err
	}
	optional(fields, "brand", in.Brand)
	optional(fields, "category", in.Category)
	optional(fields, "calories", in.Calories)
	optional(fields, "protein", in.Protein)
	optional(fields, "fat", in.Fat)
	optional(fields, "carbs", in.Carbs)
	optional(fields, "fiber", in.Fiber)
	optional(fields, "sugars", in.Sugars)
	optional(fields, "sodium", in.Sodium)
	optional(fields, "expiry_date", in.ExpiryDate)
	optional(fields, "location", in.Location)

	if in.Allergens.Set && in.Allergens.Value != nil {
		fields["allergens"] = cleanAllergens(*in.Allergens.Value)
	}
	optional(fields, "quantity", in.Quantity)
	return fields, nil
}

func requiredString(fields map[string]any, column string, v types.Nullable[string], limit int) error {
	if !v.Set || v.Value == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*v.Value)
	if trimmed == "" {
		return pkgerrors.Validation(column + " cannot be empty").WithDetails(map[string]any{"field": column})
	}
	if err := checkLength(column, &trimmed, limit); err != nil {
		return err
	}
	fields[column] = trimmed
	return nil
}

func checkLength(column string, v *string, limit int) error {
	if v == nil || utf8.RuneCountInString(*v) <= limit {
		return nil
	}
	return pkgerrors.Validation(fmt.Sprintf("%s must be at most %d characters", column, limit)).
		WithDetails(map[string]any{"field": column, "max": limit})
}

func optional[T any](fields map[string]any, column string, v types.Nullable[T]) {
	if !v.Set || v.Value == nil {
		return
	}
	fields[column] = *v.Value
}

func cleanAllergens(in []string) dbtypes.StringList {
	out := make(dbtypes.StringList, 0, len(in))
	for _, a := range in {
		if a = strings.TrimSpace(a); a != "" {
			out = append(out, a)
		}
	}
	return out
}
