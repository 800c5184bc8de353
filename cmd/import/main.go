package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"

	"github.com/angelmondragon/foodtrack-backend/internal/foods"
	"github.com/angelmondragon/foodtrack-backend/internal/imports"
	"github.com/angelmondragon/foodtrack-backend/pkg/config"
	"github.com/angelmondragon/foodtrack-backend/pkg/db"
	"github.com/angelmondragon/foodtrack-backend/pkg/logger"
	"github.com/angelmondragon/foodtrack-backend/pkg/migrate"
)

func main() {
	ctx := context.Background()
	logg := logger.New(logger.Options{ServiceName: "import", Output: os.Stderr})

	_ = godotenv.Load()

	file := flag.String("file", "", "path to a .csv file (header row) or .json file ({\"data\": [...]})")
	maxRows := flag.Int("max-rows", 0, "override FOODTRACK_IMPORT_MAX_ROWS")
	flag.Parse()

	if *file == "" {
		fmt.Fprintln(os.Stderr, "missing -file")
		os.Exit(2)
	}

	cfg, err := config.Load()
	requireResource(ctx, logg, "config", err)

	logg = logger.New(logger.Options{
		ServiceName: "import",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
		Output:      os.Stderr,
	})
	ctx = logg.WithFields(ctx, map[string]any{"env": cfg.App.Env, "file": *file})

	dbClient, err := db.New(ctx, cfg.DB, logg)
	requireResource(ctx, logg, "database", err)
	defer dbClient.Close()

	requireResource(ctx, logg, "schema", migrate.Apply(ctx, cfg, logg, dbClient))

	limit := cfg.Import.MaxRows
	if *maxRows > 0 {
		limit = *maxRows
	}

	svc, err := imports.NewService(
		imports.NewRowStore(foods.NewRepository(dbClient.DB()), dbClient),
		imports.Config{MaxRows: limit, Logger: logg},
	)
	requireResource(ctx, logg, "import service", err)

	f, err := os.Open(*file)
	requireResource(ctx, logg, "input file", err)
	defer f.Close()

	report, err := run(ctx, svc, *file, f)
	if err != nil {
		logg.Error(ctx, "import failed", err)
		os.Exit(1)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(report); err != nil {
		logg.Error(ctx, "failed to write report", err)
		os.Exit(1)
	}
	if report.Failed > 0 {
		os.Exit(3)
	}
}

func run(ctx context.Context, svc imports.Service, name string, body io.Reader) (*imports.Report, error) {
	if strings.EqualFold(filepath.Ext(name), ".json") {
		return svc.ImportJSON(ctx, body)
	}
	return svc.ImportCSV(ctx, body)
}

func requireResource(ctx context.Context, logg *logger.Logger, resource string, err error) {
	if err == nil {
		return
	}
	logg.Error(ctx, fmt.Sprintf("resource not working: %s", resource), err)
	os.Exit(1)
}
