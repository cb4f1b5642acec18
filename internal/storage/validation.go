// Package storage provides the data persistence layer for ingested invoices
// and analysis snapshots.
package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Ybranco/soprema-reconquest/internal/model"
)

// Validation errors.
var (
	ErrNilContext     = errors.New("context cannot be nil")
	ErrEmptyString    = errors.New("string parameter cannot be empty")
	ErrNilParameter   = errors.New("parameter cannot be nil")
	ErrEmptySlice     = errors.New("slice cannot be empty")
	ErrInvalidInvoice = errors.New("invalid invoice")
)

// validateContext ensures the context is not nil.
func validateContext(ctx context.Context) error {
	if ctx == nil {
		return ErrNilContext
	}
	return nil
}

// validateString ensures a string parameter is not empty.
func validateString(s string, paramName string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("%w: %s", ErrEmptyString, paramName)
	}
	return nil
}

// validateInvoices validates a slice of invoices before persistence.
func validateInvoices(invoices []model.Invoice) error {
	if invoices == nil {
		return fmt.Errorf("%w: invoices", ErrNilParameter)
	}
	if len(invoices) == 0 {
		return fmt.Errorf("%w: invoices", ErrEmptySlice)
	}
	for i := range invoices {
		if invoices[i].ID == "" {
			return fmt.Errorf("%w: missing id at index %d", ErrInvalidInvoice, i)
		}
	}
	return nil
}
