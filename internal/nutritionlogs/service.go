package nutritionlogs

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/angelmondragon/foodtrack-backend/pkg/db"
	"github.com/angelmondragon/foodtrack-backend/pkg/db/models"
	pkgerrors "github.com/angelmondragon/foodtrack-backend/pkg/errors"
	"github.com/angelmondragon/foodtrack-backend/pkg/pagination"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DefaultAction tags explicit log entries created without an action.
const DefaultAction = "manual"

// MaxActionLength mirrors the nutrition_logs.action column.
const MaxActionLength = 50

// Service records and lists nutrition log entries.
type Service interface {
	Append(ctx context.Context, input AppendInput) (*models.NutritionLog, error)
	List(ctx context.Context, input ListInput) ([]models.NutritionLog, error)
}

// AppendInput captures the immutable data a log entry requires.
type AppendInput struct {
	FoodID   uuid.UUID
	Quantity int
	Action   string
}

// ListInput filters and paginates the log listing.
type ListInput struct {
	FoodID     *uuid.UUID
	Pagination pagination.Params
}

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type service struct {
	repo Repository
	tx   txRunner
}

// NewService wires a nutrition log service with the provided repository.
func NewService(repo Repository, tx txRunner) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("nutrition log repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	return &service{repo: repo, tx: tx}, nil
}

// NormalizeAction trims the tag and applies the default when empty.
func NormalizeAction(action string) string {
	action = strings.TrimSpace(action)
	if action == "" {
		return DefaultAction
	}
	return action
}

// ValidateAction rejects tags that do not fit the action column.
func ValidateAction(action string) error {
	if utf8.RuneCountInString(NormalizeAction(action)) > MaxActionLength {
		return pkgerrors.Validation(fmt.Sprintf("action must be at most %d characters", MaxActionLength)).
			WithDetails(map[string]any{"field": "action", "max": MaxActionLength})
	}
	return nil
}

func (s *service) Append(ctx context.Context, input AppendInput) (*models.NutritionLog, error) {
	if input.FoodID == uuid.Nil {
		return nil, pkgerrors.Validation("food_id is required")
	}
	if err := ValidateAction(input.Action); err != nil {
		return nil, err
	}

	entry := &models.NutritionLog{
		FoodID:   input.FoodID,
		Quantity: input.Quantity,
		Action:   NormalizeAction(input.Action),
	}

	if err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)

		exists, err := txRepo.FoodExists(ctx, input.FoodID)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check food")
		}
		if !exists {
			return pkgerrors.NotFound("food not found")
		}
		if err := txRepo.Create(ctx, entry); err != nil {
			if db.IsForeignKeyViolation(err) {
				return pkgerrors.NotFound("food not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create nutrition log")
		}
		return nil
	}); err != nil {
		return nil, err
	}
	return entry, nil
}

func (s *service) List(ctx context.Context, input ListInput) ([]models.NutritionLog, error) {
	entries, err := s.repo.List(ctx, input.FoodID, input.Pagination)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list nutrition logs")
	}
	return entries, nil
}
