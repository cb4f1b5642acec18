package ingest

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/Ybranco/soprema-reconquest/internal/model"
)

// ReadFile loads extraction results from a single JSON file.
func ReadFile(path string) ([]model.Invoice, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	invoices, err := ParseInvoices(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return invoices, nil
}

// ReadPath loads invoices from a JSON file, or from every .json file under a
// directory (walked in lexical order).
func ReadPath(path string) ([]model.Invoice, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return ReadFile(path)
	}

	var invoices []model.Invoice
	err = filepath.WalkDir(path, func(p string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if d.IsDir() || !strings.EqualFold(filepath.Ext(p), ".json") {
			return nil
		}
		loaded, readErr := ReadFile(p)
		if readErr != nil {
			return readErr
		}
		invoices = append(invoices, loaded...)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return invoices, nil
}
