package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/angelmondragon/foodtrack-backend/api/controllers"
	"github.com/angelmondragon/foodtrack-backend/api/middleware"
	"github.com/angelmondragon/foodtrack-backend/internal/foods"
	"github.com/angelmondragon/foodtrack-backend/internal/imports"
	"github.com/angelmondragon/foodtrack-backend/internal/nutritionlogs"
	"github.com/angelmondragon/foodtrack-backend/pkg/config"
	"github.com/angelmondragon/foodtrack-backend/pkg/db"
	"github.com/angelmondragon/foodtrack-backend/pkg/logger"
	"github.com/angelmondragon/foodtrack-backend/pkg/metrics"
	"github.com/angelmondragon/foodtrack-backend/pkg/redis"
)

// NewRouter wires every HTTP route. redisClient and gatherer are optional: without Redis
// idempotency replay is disabled and readiness skips the cache check; without a gatherer
// /metrics is not mounted.
func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbP db.Pinger,
	redisClient *redis.Client,
	foodService foods.Service,
	logService nutritionlogs.Service,
	importService imports.Service,
	httpMetrics *metrics.HTTPMetrics,
	gatherer prometheus.Gatherer,
) http.Handler {
	r := chi.NewRouter()

	var corsOrigins []string
	if cfg != nil {
		corsOrigins = cfg.HTTP.CORSOrigins
	}

	r.Use(
		chimiddleware.StripSlashes,
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.Metrics(httpMetrics),
		middleware.CORS(corsOrigins),
	)

	var idempotencyStore redis.IdempotencyStore
	readiness := map[string]controllers.Pinger{}
	if dbP != nil {
		readiness["database"] = dbP
	}
	if redisClient != nil {
		idempotencyStore = redisClient
		readiness["redis"] = redisClient
	}

	r.Get("/health", controllers.Health(nil))
	r.Get("/health/ready", controllers.HealthReady(readiness, logg))
	if gatherer != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	}

	r.Get("/foods", controllers.ListFoods(foodService, logg))
	r.Get("/foods/search", controllers.SearchFoods(foodService, logg))
	r.Get("/foods/barcode/{barcode}", controllers.GetFoodByBarcode(foodService, logg))
	r.Delete("/foods/barcode/{barcode}", controllers.DeleteFoodsByBarcode(foodService, logg))
	r.Get("/foods/{foodId}", controllers.GetFood(foodService, logg))
	r.Put("/foods/{foodId}", controllers.UpdateFood(foodService, logg))
	r.Delete("/foods/{foodId}", controllers.DeleteFood(foodService, logg))

	r.Get("/nutrition-logs", controllers.ListNutritionLogs(logService, logg))

	r.Route("/inventory", func(r chi.Router) {
		r.Get("/", controllers.ListInventory(foodService, logg))
		r.Get("/expiring", controllers.ListExpiringInventory(foodService, logg))
		r.Get("/low-stock", controllers.ListLowStockInventory(foodService, logg))
	})

	// replayable writes
	r.Group(func(r chi.Router) {
		r.Use(middleware.Idempotency(idempotencyStore, logg))

		r.Post("/foods", controllers.CreateFood(foodService, logg))
		r.Post("/foods/bulk-import", controllers.BulkImportFoods(importService, logg))
		r.Put("/foods/{foodId}/quantity", controllers.AdjustFoodQuantity(foodService, logg))
		r.Post("/nutrition-logs", controllers.CreateNutritionLog(logService, logg))
	})

	return r
}
