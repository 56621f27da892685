// Package content holds the immutable vocabulary and sentence catalog.
package content

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"slices"

	"github.com/samber/lo"
)

//go:embed catalog.json
var defaultCatalog []byte

// Store serves copies of a validated catalog. It is never mutated after
// construction.
type Store struct {
	catalog Catalog
}

// Default returns the store for the built-in catalog. The embedded catalog
// is validated by tests, so a failure here is a build defect.
func Default() *Store {
	s, err := Load(defaultCatalog)
	if err != nil {
		panic(fmt.Sprintf("content: built-in catalog is invalid: %v", err))
	}
	return s
}

// Load parses and validates a catalog document.
func Load(raw []byte) (*Store, error) {
	if err := validateDocument(raw); err != nil {
		return nil, err
	}

	var c Catalog
	if err := json.Unmarshal(raw, &c); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	if err := checkVersion(c.SchemaVersion); err != nil {
		return nil, err
	}
	if err := validateCatalog(&c); err != nil {
		return nil, err
	}
	return &Store{catalog: c}, nil
}

// LoadFile reads a catalog from disk.
func LoadFile(path string) (*Store, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	s, err := Load(raw)
	if err != nil {
		return nil, fmt.Errorf("load catalog %s: %w", path, err)
	}
	return s, nil
}

// Title returns the program title shown above every screen.
func (s *Store) Title() string {
	return s.catalog.Title
}

// SchemaVersion returns the catalog's declared format version.
func (s *Store) SchemaVersion() string {
	return s.catalog.SchemaVersion
}

// Vocabulary returns a fresh copy of the vocabulary list.
func (s *Store) Vocabulary() []VocabWord {
	return slices.Clone(s.catalog.Vocabulary)
}

// Sentences returns a fresh deep copy of the sentence list.
func (s *Store) Sentences() []SentenceQuestion {
	return lo.Map(s.catalog.Sentences, func(q SentenceQuestion, _ int) SentenceQuestion {
		return q.clone()
	})
}
