// Package service defines the interfaces for all application services.
package service

import (
	"context"

	"github.com/Ybranco/soprema-reconquest/internal/model"
)

// Storage defines the contract for our persistence layer.
type Storage interface {
	// Invoice operations
	SaveInvoices(ctx context.Context, invoices []model.Invoice) error
	GetInvoices(ctx context.Context) ([]model.Invoice, error)

	// Analysis snapshots
	SaveAnalysis(ctx context.Context, run *model.AnalysisRun) (int64, error)
	GetLatestAnalysis(ctx context.Context) (*model.AnalysisRun, error)

	// Database management
	Migrate(ctx context.Context) error
	Close() error
}

// Matcher is the catalog lookup used for product verification.
type Matcher interface {
	FindBestMatch(candidateName string) (model.MatchResult, error)
}
