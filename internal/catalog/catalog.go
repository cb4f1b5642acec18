// Package catalog loads the reference list of host-brand product names and
// matches candidate product names against it.
package catalog

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"github.com/Ybranco/soprema-reconquest/internal/common"
	"github.com/Ybranco/soprema-reconquest/internal/textutil"
)

// entry is one catalog product with its precomputed comparison forms.
type entry struct {
	Name       string
	Normalized string
	Tokens     []string
}

// Catalog is the read-only reference dataset. It is loaded at most once; the
// first match attempt triggers the load and concurrent first calls share it.
type Catalog struct {
	loadErr  error
	primary  string
	fallback string
	entries  []entry
	once     sync.Once
}

// New creates a catalog backed by a primary source and an unfiltered
// fallback source. Nothing is read until Load or the first match.
func New(primary, fallback string) *Catalog {
	return &Catalog{primary: primary, fallback: fallback}
}

// FromNames builds an in-memory catalog. Used by tests and embedded callers
// that already hold the product list.
func FromNames(names []string) *Catalog {
	c := &Catalog{}
	c.once.Do(func() {
		c.entries = buildEntries(names)
	})
	return c
}

// Load reads the catalog sources. It is idempotent; the result of the first
// attempt is memoized, including failure.
func (c *Catalog) Load() error {
	c.once.Do(func() {
		c.loadErr = c.load()
	})
	return c.loadErr
}

// Size returns the number of loaded entries, zero before a successful load.
func (c *Catalog) Size() int {
	return len(c.entries)
}

func (c *Catalog) load() error {
	names, primaryErr := readSource(c.primary)
	if primaryErr == nil {
		c.entries = buildEntries(names)
		return nil
	}

	common.LogError(primaryErr, "primary catalog source failed, trying fallback", common.Fields{
		"primary":  c.primary,
		"fallback": c.fallback,
	})

	names, fallbackErr := readSource(c.fallback)
	if fallbackErr == nil {
		c.entries = buildEntries(names)
		return nil
	}

	return fmt.Errorf("%w: primary: %v, fallback: %v", common.ErrCatalogUnavailable, primaryErr, fallbackErr)
}

func readSource(path string) ([]string, error) {
	if path == "" {
		return nil, common.ErrMissingConfig
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	names, err := parseCatalog(data)
	if err != nil {
		return nil, err
	}
	if len(names) == 0 {
		return nil, common.ErrCatalogEmpty
	}
	return names, nil
}

// parseCatalog accepts either {"produits": [...]} or a bare array. Entries
// may be plain strings or objects naming the product under any known alias.
func parseCatalog(data []byte) ([]string, error) {
	var raw []json.RawMessage

	var wrapper struct {
		Produits []json.RawMessage `json:"produits"`
	}
	if err := json.Unmarshal(data, &wrapper); err == nil && wrapper.Produits != nil {
		raw = wrapper.Produits
	} else if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("unrecognized catalog format: %w", err)
	}

	names := make([]string, 0, len(raw))
	for _, r := range raw {
		if name := entryName(r); name != "" {
			names = append(names, name)
		}
	}
	return names, nil
}

// entryName extracts a product name from one raw catalog entry.
func entryName(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}

	var obj struct {
		NomComplet string `json:"nom_complet"`
		Nom        string `json:"nom"`
		Name       string `json:"name"`
	}
	if err := json.Unmarshal(raw, &obj); err != nil {
		return ""
	}
	switch {
	case obj.NomComplet != "":
		return obj.NomComplet
	case obj.Nom != "":
		return obj.Nom
	default:
		return obj.Name
	}
}

func buildEntries(names []string) []entry {
	entries := make([]entry, 0, len(names))
	for _, name := range names {
		normalized := textutil.NormalizeName(name)
		if normalized == "" {
			continue
		}
		entries = append(entries, entry{
			Name:       name,
			Normalized: normalized,
			Tokens:     textutil.Tokens(normalized),
		})
	}
	return entries
}
