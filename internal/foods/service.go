package foods

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/angelmondragon/foodtrack-backend/internal/nutritionlogs"
	"github.com/angelmondragon/foodtrack-backend/pkg/db"
	"github.com/angelmondragon/foodtrack-backend/pkg/db/models"
	pkgerrors "github.com/angelmondragon/foodtrack-backend/pkg/errors"
	"github.com/angelmondragon/foodtrack-backend/pkg/pagination"
	"github.com/angelmondragon/foodtrack-backend/pkg/types"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const errFoodNotFound = "food not found"

// Service exposes food inventory operations.
type Service interface {
	Create(ctx context.Context, input CreateFoodInput) (*FoodDTO, error)
	Get(ctx context.Context, id uuid.UUID) (*FoodDTO, error)
	GetByBarcode(ctx context.Context, barcode string) (*FoodDTO, error)
	List(ctx context.Context, params pagination.Params) ([]FoodDTO, error)
	Search(ctx context.Context, text string, params pagination.Params) ([]FoodDTO, error)
	Update(ctx context.Context, id uuid.UUID, input UpdateFoodInput) (*FoodDTO, error)
	AdjustQuantity(ctx context.Context, id uuid.UUID, delta int, action string) (*FoodDTO, error)
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteByBarcode(ctx context.Context, barcode string) (int64, error)
	ListByCategory(ctx context.Context, category *string) ([]FoodDTO, error)
	ListExpiring(ctx context.Context, daysAhead int) ([]FoodDTO, error)
	ListLowStock(ctx context.Context, threshold int) ([]FoodDTO, error)
}

// Option customises the service.
type Option func(*service)

// WithClock overrides the clock used for expiry windows.
func WithClock(now func() time.Time) Option {
	return func(s *service) {
		if now != nil {
			s.now = now
		}
	}
}

type service struct {
	repo     *Repository
	logRepo  nutritionlogs.Repository
	dbClient *db.Client
	now      func() time.Time
}

// NewService constructs a food service instance.
func NewService(repo *Repository, logRepo nutritionlogs.Repository, dbClient *db.Client, opts ...Option) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("food repository required")
	}
	if logRepo == nil {
		return nil, fmt.Errorf("nutrition log repository required")
	}
	if dbClient == nil {
		return nil, fmt.Errorf("db client required")
	}
	svc := &service{
		repo:     repo,
		logRepo:  logRepo,
		dbClient: dbClient,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc, nil
}

func (s *service) Create(ctx context.Context, input CreateFoodInput) (*FoodDTO, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	item := input.Model()
	if err := s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		return s.repo.WithTx(tx).Create(ctx, item)
	}); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create food")
	}

	created, err := s.repo.FindByID(ctx, item.ID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load food")
	}
	return NewFoodDTO(created), nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*FoodDTO, error) {
	item, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, mapLookupError(err, "load food")
	}
	return NewFoodDTO(item), nil
}

func (s *service) GetByBarcode(ctx context.Context, barcode string) (*FoodDTO, error) {
	barcode = strings.TrimSpace(barcode)
	if barcode == "" {
		return nil, pkgerrors.Validation("barcode is required")
	}
	item, err := s.repo.FindFirstByBarcode(ctx, barcode)
	if err != nil {
		return nil, mapLookupError(err, "load food by barcode")
	}
	return NewFoodDTO(item), nil
}

func (s *service) List(ctx context.Context, params pagination.Params) ([]FoodDTO, error) {
	rows, err := s.repo.List(ctx, params)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list foods")
	}
	return NewFoodDTOs(rows), nil
}

func (s *service) Search(ctx context.Context, text string, params pagination.Params) ([]FoodDTO, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, pkgerrors.Validation("search query is required").WithDetails(map[string]any{"field": "q"})
	}
	rows, err := s.repo.Search(ctx, text, params)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "search foods")
	}
	return NewFoodDTOs(rows), nil
}

// Update applies only present fields; an empty payload is rejected rather than treated as a no-op.
func (s *service) Update(ctx context.Context, id uuid.UUID, input UpdateFoodInput) (*FoodDTO, error) {
	fields, err := input.Columns()
	if err != nil {
		return nil, err
	}
	if len(fields) == 0 {
		return nil, pkgerrors.Validation("no update data provided")
	}

	var updated *models.FoodItem
	if err := s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)

		if _, err := txRepo.FindByID(ctx, id); err != nil {
			return mapLookupError(err, "load food")
		}
		if _, err := txRepo.Update(ctx, id, fields); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update food")
		}

		item, err := txRepo.FindByID(ctx, id)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "reload food")
		}
		updated = item
		return nil
	}); err != nil {
		return nil, err
	}
	return NewFoodDTO(updated), nil
}

// AdjustQuantity increments quantity and appends the matching log entry in one transaction.
// No floor is enforced, so quantity may go negative.
func (s *service) AdjustQuantity(ctx context.Context, id uuid.UUID, delta int, action string) (*FoodDTO, error) {
	if err := nutritionlogs.ValidateAction(action); err != nil {
		return nil, err
	}

	var updated *models.FoodItem
	if err := s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)

		matched, err := txRepo.IncrementQuantity(ctx, id, delta)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "increment quantity")
		}
		if !matched {
			return pkgerrors.NotFound(errFoodNotFound)
		}

		entry := &models.NutritionLog{
			FoodID:   id,
			Quantity: delta,
			Action:   nutritionlogs.NormalizeAction(action),
		}
		if err := s.logRepo.WithTx(tx).Create(ctx, entry); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "append nutrition log")
		}

		item, err := txRepo.FindByID(ctx, id)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "reload food")
		}
		updated = item
		return nil
	}); err != nil {
		return nil, err
	}
	return NewFoodDTO(updated), nil
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		deleted, err := s.repo.WithTx(tx).DeleteByID(ctx, id)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete food")
		}
		if !deleted {
			return pkgerrors.NotFound(errFoodNotFound)
		}
		return nil
	})
}

// DeleteByBarcode removes every row sharing the barcode.
func (s *service) DeleteByBarcode(ctx context.Context, barcode string) (int64, error) {
	barcode = strings.TrimSpace(barcode)
	if barcode == "" {
		return 0, pkgerrors.Validation("barcode is required")
	}

	var count int64
	if err := s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		n, err := s.repo.WithTx(tx).DeleteByBarcode(ctx, barcode)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete foods by barcode")
		}
		if n == 0 {
			return pkgerrors.NotFound("no food items found with this barcode")
		}
		count = n
		return nil
	}); err != nil {
		return 0, err
	}
	return count, nil
}

func (s *service) ListByCategory(ctx context.Context, category *string) ([]FoodDTO, error) {
	if category != nil {
		trimmed := strings.TrimSpace(*category)
		if trimmed == "" {
			category = nil
		} else {
			category = &trimmed
		}
	}
	rows, err := s.repo.ListByCategory(ctx, category)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list foods by category")
	}
	return NewFoodDTOs(rows), nil
}

// ListExpiring returns items whose expiry falls on or before today plus daysAhead (UTC).
func (s *service) ListExpiring(ctx context.Context, daysAhead int) ([]FoodDTO, error) {
	if daysAhead < 0 {
		return nil, pkgerrors.Validation("days_ahead must not be negative")
	}
	cutoff := types.NewDate(s.now().UTC().AddDate(0, 0, daysAhead))
	rows, err := s.repo.ListExpiringBefore(ctx, cutoff)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list expiring foods")
	}
	return NewFoodDTOs(rows), nil
}

// ListLowStock returns items with quantity strictly below threshold.
func (s *service) ListLowStock(ctx context.Context, threshold int) ([]FoodDTO, error) {
	rows, err := s.repo.ListBelowQuantity(ctx, threshold)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list low stock foods")
	}
	return NewFoodDTOs(rows), nil
}

func mapLookupError(err error, step string) error {
	if db.IsNotFound(err) {
		return pkgerrors.NotFound(errFoodNotFound)
	}
	return pkgerrors.Wrap(pkgerrors.CodeDependency, err, step)
}
