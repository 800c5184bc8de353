package nutritionlogs

import (
	"context"

	"github.com/angelmondragon/foodtrack-backend/pkg/db/models"
	"github.com/angelmondragon/foodtrack-backend/pkg/pagination"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository manages persistence for nutrition log entries.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, entry *models.NutritionLog) error
	List(ctx context.Context, foodID *uuid.UUID, params pagination.Params) ([]models.NutritionLog, error)
	CountByFoodID(ctx context.Context, foodID uuid.UUID) (int64, error)
	FoodExists(ctx context.Context, foodID uuid.UUID) (bool, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository returns a nutrition log repository bound to the provided database.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) Create(ctx context.Context, entry *models.NutritionLog) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *repository) List(ctx context.Context, foodID *uuid.UUID, params pagination.Params) ([]models.NutritionLog, error) {
	params = params.Normalize()

	query := r.db.WithContext(ctx).Model(&models.NutritionLog{})
	if foodID != nil {
		query = query.Where("food_id = ?", *foodID)
	}

	var entries []models.NutritionLog
	if err := query.
		Order("timestamp DESC").
		Order("id ASC").
		Offset(params.Offset).
		Limit(params.Limit).
		Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

func (r *repository) CountByFoodID(ctx context.Context, foodID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.NutritionLog{}).
		Where("food_id = ?", foodID).
		Count(&count).Error
	return count, err
}

func (r *repository) FoodExists(ctx context.Context, foodID uuid.UUID) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.FoodItem{}).
		Where("id = ?", foodID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
