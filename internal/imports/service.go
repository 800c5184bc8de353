package imports

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/angelmondragon/foodtrack-backend/internal/foods"
	"github.com/angelmondragon/foodtrack-backend/pkg/db"
	"github.com/angelmondragon/foodtrack-backend/pkg/db/models"
	pkgerrors "github.com/angelmondragon/foodtrack-backend/pkg/errors"
	"github.com/angelmondragon/foodtrack-backend/pkg/logger"
	"github.com/angelmondragon/foodtrack-backend/pkg/metrics"
	"gorm.io/gorm"
)

// DefaultMaxRows bounds a single import when no limit is configured.
const DefaultMaxRows = 5000

// MaxBodyBytes caps an HTTP import payload.
const MaxBodyBytes = 16 << 20

const reasonStoreFailed = "failed to store row"

// Import sources used as metric labels.
const (
	SourceJSON = "json"
	SourceCSV  = "csv"
	SourceRows = "rows"
)

// Service imports food rows in bulk.
type Service interface {
	Import(ctx context.Context, rows []Row) (*Report, error)
	ImportJSON(ctx context.Context, body io.Reader) (*Report, error)
	ImportCSV(ctx context.Context, body io.Reader) (*Report, error)
}

// RowStore persists one parsed row.
type RowStore interface {
	Insert(ctx context.Context, item *models.FoodItem) error
}

type txStore struct {
	repo     *foods.Repository
	dbClient *db.Client
}

// NewRowStore inserts every row in its own transaction, so one failure never rolls back earlier rows.
func NewRowStore(repo *foods.Repository, dbClient *db.Client) RowStore {
	return &txStore{repo: repo, dbClient: dbClient}
}

func (s *txStore) Insert(ctx context.Context, item *models.FoodItem) error {
	return s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		return s.repo.WithTx(tx).Create(ctx, item)
	})
}

// Config tunes the importer.
type Config struct {
	MaxRows int
	Metrics *metrics.ImportMetrics
	Logger  *logger.Logger
}

type service struct {
	store   RowStore
	maxRows int
	metrics *metrics.ImportMetrics
	logg    *logger.Logger
}

// NewService wires the importer with its row store.
func NewService(store RowStore, cfg Config) (Service, error) {
	if store == nil {
		return nil, fmt.Errorf("row store required")
	}
	maxRows := cfg.MaxRows
	if maxRows <= 0 {
		maxRows = DefaultMaxRows
	}
	return &service{
		store:   store,
		maxRows: maxRows,
		metrics: cfg.Metrics,
		logg:    cfg.Logger,
	}, nil
}

func (s *service) Import(ctx context.Context, rows []Row) (*Report, error) {
	return s.run(ctx, SourceRows, rows)
}

// ImportJSON accepts {"data": [ {...}, ... ]}.
func (s *service) ImportJSON(ctx context.Context, body io.Reader) (*Report, error) {
	rows, err := decodeJSONRows(body)
	if err != nil {
		return nil, err
	}
	return s.run(ctx, SourceJSON, rows)
}

func (s *service) ImportCSV(ctx context.Context, body io.Reader) (*Report, error) {
	rows, err := ReadCSV(body)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid csv payload")
	}
	return s.run(ctx, SourceCSV, rows)
}

func (s *service) run(ctx context.Context, source string, rows []Row) (*Report, error) {
	if len(rows) > s.maxRows {
		return nil, pkgerrors.Validation(fmt.Sprintf("import exceeds %d rows", s.maxRows)).
			WithDetails(map[string]any{"max_rows": s.maxRows, "total_rows": len(rows)})
	}

	start := time.Now()
	report := newReport(len(rows))
	rejected, failed := 0, 0

	for _, parsed := range ParseRows(rows) {
		switch row := parsed.(type) {
		case RejectedRow:
			rejected++
			report.reject(row.Index, row.Reason)
		case ValidFoodRow:
			if err := s.store.Insert(ctx, row.Input.Model()); err != nil {
				failed++
				report.reject(row.Index, reasonStoreFailed)
				if s.logg != nil {
					s.logg.Error(s.logg.WithField(ctx, "row_index", row.Index), "import.row_store_failed", err)
				}
				continue
			}
			report.Succeeded++
		}
	}

	s.metrics.AddRows(metrics.OutcomeImported, report.Succeeded)
	s.metrics.AddRows(metrics.OutcomeRejected, rejected)
	s.metrics.AddRows(metrics.OutcomeFailed, failed)
	s.metrics.ObserveDuration(source, time.Since(start))

	if s.logg != nil {
		s.logg.Info(s.logg.WithFields(ctx, map[string]any{
			"source":     source,
			"total_rows": report.TotalRows,
			"succeeded":  report.Succeeded,
			"failed":     report.Failed,
		}), "import.completed")
	}
	return report, nil
}

func decodeJSONRows(body io.Reader) ([]Row, error) {
	if body == nil {
		return nil, pkgerrors.Validation("request body is required")
	}

	var envelope struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.NewDecoder(body).Decode(&envelope); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid json payload")
	}

	trimmed := bytes.TrimSpace(envelope.Data)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, pkgerrors.Validation("data must be an array of objects").
			WithDetails(map[string]any{"field": "data"})
	}

	var elements []json.RawMessage
	if err := json.Unmarshal(trimmed, &elements); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "data must be an array of objects")
	}

	rows := make([]Row, 0, len(elements))
	for _, raw := range elements {
		dec := json.NewDecoder(bytes.NewReader(raw))
		dec.UseNumber()
		var row Row
		if err := dec.Decode(&row); err != nil {
			// Non-object elements become empty rows and are rejected per row.
			row = Row{}
		}
		rows = append(rows, row)
	}
	return rows, nil
}
