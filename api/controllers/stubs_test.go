package controllers

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	foodsvc "github.com/angelmondragon/foodtrack-backend/internal/foods"
	"github.com/angelmondragon/foodtrack-backend/internal/imports"
	"github.com/angelmondragon/foodtrack-backend/internal/nutritionlogs"
	"github.com/angelmondragon/foodtrack-backend/pkg/db/models"
	"github.com/angelmondragon/foodtrack-backend/pkg/pagination"
)

type stubFoodService struct {
	createFn          func(context.Context, foodsvc.CreateFoodInput) (*foodsvc.FoodDTO, error)
	getFn             func(context.Context, uuid.UUID) (*foodsvc.FoodDTO, error)
	getByBarcodeFn    func(context.Context, string) (*foodsvc.FoodDTO, error)
	listFn            func(context.Context, pagination.Params) ([]foodsvc.FoodDTO, error)
	searchFn          func(context.Context, string, pagination.Params) ([]foodsvc.FoodDTO, error)
	updateFn          func(context.Context, uuid.UUID, foodsvc.UpdateFoodInput) (*foodsvc.FoodDTO, error)
	adjustFn          func(context.Context, uuid.UUID, int, string) (*foodsvc.FoodDTO, error)
	deleteFn          func(context.Context, uuid.UUID) error
	deleteByBarcodeFn func(context.Context, string) (int64, error)
	byCategoryFn      func(context.Context, *string) ([]foodsvc.FoodDTO, error)
	expiringFn        func(context.Context, int) ([]foodsvc.FoodDTO, error)
	lowStockFn        func(context.Context, int) ([]foodsvc.FoodDTO, error)
}

func (s *stubFoodService) Create(ctx context.Context, in foodsvc.CreateFoodInput) (*foodsvc.FoodDTO, error) {
	return s.createFn(ctx, in)
}

func (s *stubFoodService) Get(ctx context.Context, id uuid.UUID) (*foodsvc.FoodDTO, error) {
	return s.getFn(ctx, id)
}

func (s *stubFoodService) GetByBarcode(ctx context.Context, barcode string) (*foodsvc.FoodDTO, error) {
	return s.getByBarcodeFn(ctx, barcode)
}

func (s *stubFoodService) List(ctx context.Context, params pagination.Params) ([]foodsvc.FoodDTO, error) {
	return s.listFn(ctx, params)
}

func (s *stubFoodService) Search(ctx context.Context, text string, params pagination.Params) ([]foodsvc.FoodDTO, error) {
	return s.searchFn(ctx, text, params)
}

func (s *stubFoodService) Update(ctx context.Context, id uuid.UUID, in foodsvc.UpdateFoodInput) (*foodsvc.FoodDTO, error) {
	return s.updateFn(ctx, id, in)
}

func (s *stubFoodService) AdjustQuantity(ctx context.Context, id uuid.UUID, delta int, action string) (*foodsvc.FoodDTO, error) {
	return s.adjustFn(ctx, id, delta, action)
}

func (s *stubFoodService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.deleteFn(ctx, id)
}

func (s *stubFoodService) DeleteByBarcode(ctx context.Context, barcode string) (int64, error) {
	return s.deleteByBarcodeFn(ctx, barcode)
}

func (s *stubFoodService) ListByCategory(ctx context.Context, category *string) ([]foodsvc.FoodDTO, error) {
	return s.byCategoryFn(ctx, category)
}

func (s *stubFoodService) ListExpiring(ctx context.Context, days int) ([]foodsvc.FoodDTO, error) {
	return s.expiringFn(ctx, days)
}

func (s *stubFoodService) ListLowStock(ctx context.Context, threshold int) ([]foodsvc.FoodDTO, error) {
	return s.lowStockFn(ctx, threshold)
}

type stubLogService struct {
	appendFn func(context.Context, nutritionlogs.AppendInput) (*models.NutritionLog, error)
	listFn   func(context.Context, nutritionlogs.ListInput) ([]models.NutritionLog, error)
}

func (s *stubLogService) Append(ctx context.Context, in nutritionlogs.AppendInput) (*models.NutritionLog, error) {
	return s.appendFn(ctx, in)
}

func (s *stubLogService) List(ctx context.Context, in nutritionlogs.ListInput) ([]models.NutritionLog, error) {
	return s.listFn(ctx, in)
}

type stubImportService struct {
	jsonCalls int
	csvCalls  int
	lastBody  string
	report    *imports.Report
	err       error
}

func (s *stubImportService) Import(context.Context, []imports.Row) (*imports.Report, error) {
	return s.report, s.err
}

func (s *stubImportService) ImportJSON(_ context.Context, body io.Reader) (*imports.Report, error) {
	s.jsonCalls++
	raw, _ := io.ReadAll(body)
	s.lastBody = string(raw)
	return s.report, s.err
}

func (s *stubImportService) ImportCSV(_ context.Context, body io.Reader) (*imports.Report, error) {
	s.csvCalls++
	raw, _ := io.ReadAll(body)
	s.lastBody = string(raw)
	return s.report, s.err
}

// serve routes a single request through a chi router so URL params resolve.
func serve(t *testing.T, method, pattern string, handler http.HandlerFunc, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	r := chi.NewRouter()
	r.MethodFunc(method, pattern, handler)

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

type envelope struct {
	Data  json.RawMessage `json:"data"`
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode response: %v (%s)", err, rec.Body.String())
	}
	return env
}
