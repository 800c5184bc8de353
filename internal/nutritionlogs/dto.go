package nutritionlogs

import (
	"time"

	"github.com/angelmondragon/foodtrack-backend/pkg/db/models"
	"github.com/google/uuid"
)

// LogDTO is the nutrition log payload returned to clients.
type LogDTO struct {
	ID        uuid.UUID `json:"id"`
	FoodID    uuid.UUID `json:"food_id"`
	Quantity  int       `json:"quantity"`
	Action    string    `json:"action"`
	Timestamp time.Time `json:"timestamp"`
}

// NewLogDTO maps a persisted entry to its response shape.
func NewLogDTO(entry *models.NutritionLog) LogDTO {
	return LogDTO{
		ID:        entry.ID,
		FoodID:    entry.FoodID,
		Quantity:  entry.Quantity,
		Action:    entry.Action,
		Timestamp: entry.Timestamp,
	}
}

// NewLogDTOs maps a slice, never returning nil.
func NewLogDTOs(entries []models.NutritionLog) []LogDTO {
	out := make([]LogDTO, 0, len(entries))
	for i := range entries {
		out = append(out, NewLogDTO(&entries[i]))
	}
	return out
}
