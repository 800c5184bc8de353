package foods

import (
	"context"
	"strings"

	"github.com/angelmondragon/foodtrack-backend/pkg/db/models"
	"github.com/angelmondragon/foodtrack-backend/pkg/pagination"
	"github.com/angelmondragon/foodtrack-backend/pkg/types"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository wraps persistence for food items.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx returns a repository bound to the provided transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	if tx == nil {
		return r
	}
	return &Repository{db: tx}
}

// Create always inserts a new row; duplicate barcodes are allowed.
func (r *Repository) Create(ctx context.Context, item *models.FoodItem) error {
	return r.db.WithContext(ctx).Create(item).Error
}

// FindByID loads a single food item.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.FoodItem, error) {
	var item models.FoodItem
	if err := r.db.WithContext(ctx).First(&item, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

// FindFirstByBarcode returns the oldest row carrying the barcode.
func (r *Repository) FindFirstByBarcode(ctx context.Context, barcode string) (*models.FoodItem, error) {
	var item models.FoodItem
	err := r.db.WithContext(ctx).
		Where("barcode = ?", barcode).
		Order("created_at ASC").
		Order("id ASC").
		First(&item).Error
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// List pages through every food item in insertion order.
func (r *Repository) List(ctx context.Context, params pagination.Params) ([]models.FoodItem, error) {
	params = params.Normalize()
	var rows []models.FoodItem
	err := r.db.WithContext(ctx).
		Order("created_at ASC").
		Order("id ASC").
		Offset(params.Offset).
		Limit(params.Limit).
		Find(&rows).Error
	return rows, err
}

// Search matches text case-insensitively against name or brand.
func (r *Repository) Search(ctx context.Context, text string, params pagination.Params) ([]models.FoodItem, error) {
	params = params.Normalize()
	pattern := "%" + escapeLike(strings.ToLower(text)) + "%"

	var rows []models.FoodItem
	err := r.db.WithContext(ctx).
		Where("LOWER(name) LIKE ? ESCAPE '\\' OR LOWER(brand) LIKE ? ESCAPE '\\'", pattern, pattern).
		Order("created_at ASC").
		Order("id ASC").
		Offset(params.Offset).
		Limit(params.Limit).
		Find(&rows).Error
	return rows, err
}

// ListByCategory returns items with the exact category, or every item when category is nil.
func (r *Repository) ListByCategory(ctx context.Context, category *string) ([]models.FoodItem, error) {
	query := r.db.WithContext(ctx)
	if category != nil {
		query = query.Where("category = ?", *category)
	}

	var rows []models.FoodItem
	err := query.
		Order("created_at ASC").
		Order("id ASC").
		Find(&rows).Error
	return rows, err
}

// ListExpiringBefore returns dated items expiring on or before cutoff, soonest first.
func (r *Repository) ListExpiringBefore(ctx context.Context, cutoff types.Date) ([]models.FoodItem, error) {
	var rows []models.FoodItem
	err := r.db.WithContext(ctx).
		Where("expiry_date IS NOT NULL AND expiry_date <= ?", cutoff.String()).
		Order("expiry_date ASC").
		Order("id ASC").
		Find(&rows).Error
	return rows, err
}

// ListBelowQuantity returns items whose quantity is strictly below threshold.
func (r *Repository) ListBelowQuantity(ctx context.Context, threshold int) ([]models.FoodItem, error) {
	var rows []models.FoodItem
	err := r.db.WithContext(ctx).
		Where("quantity < ?", threshold).
		Order("quantity ASC").
		Order("id ASC").
		Find(&rows).Error
	return rows, err
}

// Update applies only the provided columns. It reports whether a row matched.
func (r *Repository) Update(ctx context.Context, id uuid.UUID, fields map[string]any) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&models.FoodItem{}).
		Where("id = ?", id).
		Updates(fields)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// IncrementQuantity adds delta in SQL so concurrent adjustments never lose writes.
func (r *Repository) IncrementQuantity(ctx context.Context, id uuid.UUID, delta int) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&models.FoodItem{}).
		Where("id = ?", id).
		Update("quantity", gorm.Expr("quantity + ?", delta))
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// DeleteByID removes the item and its log entries.
func (r *Repository) DeleteByID(ctx context.Context, id uuid.UUID) (bool, error) {
	tx := r.db.WithContext(ctx)
	if err := tx.Where("food_id = ?", id).Delete(&models.NutritionLog{}).Error; err != nil {
		return false, err
	}
	res := tx.Where("id = ?", id).Delete(&models.FoodItem{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// DeleteByBarcode removes every item sharing the barcode and returns how many went.
func (r *Repository) DeleteByBarcode(ctx context.Context, barcode string) (int64, error) {
	tx := r.db.WithContext(ctx)

	var ids []uuid.UUID
	if err := tx.Model(&models.FoodItem{}).
		Where("barcode = ?", barcode).
		Pluck("id", &ids).Error; err != nil {
		return 0, err
	}
	if len(ids) == 0 {
		return 0, nil
	}

	if err := tx.Where("food_id IN ?", ids).Delete(&models.NutritionLog{}).Error; err != nil {
		return 0, err
	}
	res := tx.Where("id IN ?", ids).Delete(&models.FoodItem{})
	return res.RowsAffected, res.Error
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}
