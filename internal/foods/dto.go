package foods

import (
	"time"

	"github.com/angelmondragon/foodtrack-backend/pkg/db/models"
	"github.com/angelmondragon/foodtrack-backend/pkg/types"
	"github.com/google/uuid"
)

// FoodDTO represents the food payload returned to clients.
type FoodDTO struct {
	ID         uuid.UUID   `json:"id"`
	Barcode    string      `json:"barcode"`
	Name       string      `json:"name"`
	Brand      *string     `json:"brand"`
	Category   *string     `json:"category"`
	Calories   *int        `json:"calories"`
	Protein    *float64    `json:"protein"`
	Fat        *float64    `json:"fat"`
	Carbs      *float64    `json:"carbs"`
	Fiber      *float64    `json:"fiber"`
	Sugars     *float64    `json:"sugars"`
	Sodium     *float64    `json:"sodium"`
	Allergens  []string    `json:"allergens"`
	ExpiryDate *types.Date `json:"expiry_date"`
	Quantity   int         `json:"quantity"`
	Location   *string     `json:"location"`
	CreatedAt  time.Time   `json:"created_at"`
	UpdatedAt  time.Time   `json:"updated_at"`
}

// NewFoodDTO builds a DTO from the persisted model.
func NewFoodDTO(item *models.FoodItem) *FoodDTO {
	return &FoodDTO{
		ID:         item.ID,
		Barcode:    item.Barcode,
		Name:       item.Name,
		Brand:      item.Brand,
		Category:   item.Category,
		Calories:   item.Calories,
		Protein:    item.Protein,
		Fat:        item.Fat,
		Carbs:      item.Carbs,
		Fiber:      item.Fiber,
		Sugars:     item.Sugars,
		Sodium:     item.Sodium,
		Allergens:  append([]string{}, item.Allergens...),
		ExpiryDate: item.ExpiryDate,
		Quantity:   item.Quantity,
		Location:   item.Location,
		CreatedAt:  item.CreatedAt,
		UpdatedAt:  item.UpdatedAt,
	}
}

// NewFoodDTOs maps a slice of rows, never returning nil.
func NewFoodDTOs(items []models.FoodItem) []FoodDTO {
	out := make([]FoodDTO, 0, len(items))
	for i := range items {
		out = append(out, *NewFoodDTO(&items[i]))
	}
	return out
}
