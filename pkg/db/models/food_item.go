package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	dbtypes "github.com/angelmondragon/foodtrack-backend/pkg/db/types"
	"github.com/angelmondragon/foodtrack-backend/pkg/types"
)

// FoodItem is one inventory record. Barcodes are not unique and quantity has no floor.
type FoodItem struct {
	ID         uuid.UUID          `gorm:"column:id;type:uuid;primaryKey"`
	Barcode    string             `gorm:"column:barcode;not null;index:idx_food_items_barcode"`
	Name       string             `gorm:"column:name;not null;index:idx_food_items_name"`
	Brand      *string            `gorm:"column:brand"`
	Category   *string            `gorm:"column:category;index:idx_food_items_category"`
	Calories   *int               `gorm:"column:calories"`
	Protein    *float64           `gorm:"column:protein"`
	Fat        *float64           `gorm:"column:fat"`
	Carbs      *float64           `gorm:"column:carbs"`
	Fiber      *float64           `gorm:"column:fiber"`
	Sugars     *float64           `gorm:"column:sugars"`
	Sodium     *float64           `gorm:"column:sodium"`
	Allergens  dbtypes.StringList `gorm:"column:allergens;type:text;not null"`
	ExpiryDate *types.Date        `gorm:"column:expiry_date;type:date"`
	Quantity   int                `gorm:"column:quantity;not null"`
	Location   *string            `gorm:"column:location"`
	CreatedAt  time.Time          `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt  time.Time          `gorm:"column:updated_at;autoUpdateTime"`
}

func (FoodItem) TableName() string { return "food_items" }

// BeforeCreate assigns the identifier client side so SQLite and Postgres behave alike.
func (f *FoodItem) BeforeCreate(tx *gorm.DB) error {
	if f.ID == uuid.Nil {
		f.ID = uuid.New()
	}
	if f.Allergens == nil {
		f.Allergens = dbtypes.StringList{}
	}
	return nil
}
