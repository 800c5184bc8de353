package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// NutritionLog records an immutable quantity change against a food item.
type NutritionLog struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	FoodID    uuid.UUID `gorm:"column:food_id;type:uuid;not null;index:idx_nutrition_logs_food_id"`
	Quantity  int       `gorm:"column:quantity;not null"`
	Action    string    `gorm:"column:action;not null"`
	Timestamp time.Time `gorm:"column:timestamp;autoCreateTime;index:idx_nutrition_logs_timestamp"`
}

func (NutritionLog) TableName() string { return "nutrition_logs" }

func (l *NutritionLog) BeforeCreate(tx *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return nil
}

// All lists every model that gorm AutoMigrate should manage.
func All() []any {
	return []any{&FoodItem{}, &NutritionLog{}}
}
