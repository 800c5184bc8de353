package migrate

import (
	"context"
	"fmt"

	"github.com/angelmondragon/foodtrack-backend/pkg/config"
	"github.com/angelmondragon/foodtrack-backend/pkg/db"
	"github.com/angelmondragon/foodtrack-backend/pkg/logger"
)

// Apply prepares the schema at startup. SQLite databases are always synced from the gorm
// models. Postgres runs goose up only in dev with FOODTRACK_AUTO_MIGRATE enabled; other
// environments run cmd/migrate explicitly.
func Apply(ctx context.Context, cfg *config.Config, logg *logger.Logger, client *db.Client) error {
	if client == nil {
		return fmt.Errorf("db client is required")
	}

	if client.Driver() == config.DriverSQLite {
		if logg != nil {
			logg.Info(logg.WithField(ctx, "driver", config.DriverSQLite), "syncing sqlite schema from models")
		}
		if err := client.AutoMigrate(ctx); err != nil {
			return fmt.Errorf("sqlite automigrate: %w", err)
		}
		return nil
	}

	if !cfg.App.IsDev() || !cfg.FeatureFlags.AutoMigrate {
		return nil
	}

	sqlDB, err := client.DB().DB()
	if err != nil {
		return fmt.Errorf("extracting sql.DB: %w", err)
	}

	if logg != nil {
		ctx = logg.WithFields(ctx, map[string]any{"env": cfg.App.Env, "dir": DefaultDir})
		logg.Info(ctx, "running Goose migrations (dev auto-run)")
	}

	if err := Run(ctx, sqlDB, DefaultDir, "up"); err != nil {
		return fmt.Errorf("running goose up: %w", err)
	}

	if logg != nil {
		logg.Info(ctx, "Goose migrations completed")
	}
	return nil
}
