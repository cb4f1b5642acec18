package main

import (
	"fmt"

	"github.com/spf13/viper"

	"github.com/Ybranco/soprema-reconquest/internal/analysis"
	"github.com/Ybranco/soprema-reconquest/internal/catalog"
	"github.com/Ybranco/soprema-reconquest/internal/config"
	"github.com/Ybranco/soprema-reconquest/internal/storage"
)

const defaultDBPath = "$HOME/.local/share/reconquest/reconquest.db"

// openStorage opens the configured database and brings its schema current.
func openStorage() (*storage.SQLiteStorage, error) {
	dbPath := viper.GetString("database.path")
	if dbPath == "" {
		dbPath = defaultDBPath
	}
	dbPath = config.ExpandPath(dbPath)

	db, err := storage.NewSQLiteStorage(dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	return db, nil
}

// newCatalog builds the catalog handle from configuration. Returns nil when
// no catalog source is configured, which disables verification.
func newCatalog() *catalog.Catalog {
	primary := config.ExpandPath(viper.GetString("catalog.path"))
	fallback := config.ExpandPath(viper.GetString("catalog.fallback_path"))
	if primary == "" && fallback == "" {
		return nil
	}
	return catalog.New(primary, fallback)
}

// minCompetitorAmount resolves the eligibility threshold from configuration.
func minCompetitorAmount() float64 {
	if viper.IsSet("reconquest.min_competitor_amount") {
		return viper.GetFloat64("reconquest.min_competitor_amount")
	}
	return analysis.DefaultMinCompetitorAmount
}
