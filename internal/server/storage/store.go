// Package storage implements the document store: one JSON file holding
// the four record collections, loaded and rewritten whole on every
// operation.
//
// The design deliberately trades isolation for simplicity: a mutation is a
// load-mutate-save cycle against the full document, serialized by a mutex
// so concurrent callers cannot lose each other's writes. Every cycle
// re-reads the file, so each call observes the latest persisted state.
package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"github.com/dmitrijs2005/filehost/internal/logging"
	"github.com/dmitrijs2005/filehost/internal/server/models"
)

type Store struct {
	path   string
	logger logging.Logger
	mu     sync.Mutex
}

// Open returns a store backed by the file at path. A missing file is
// initialized with four empty collections before first use.
func Open(path string, logger logging.Logger) (*Store, error) {
	s := &Store{path: path, logger: logger.With("module", "storage")}

	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("stat %s: %w", path, err)
		}
		if err := s.save(models.NewDocument()); err != nil {
			return nil, fmt.Errorf("init %s: %w", path, err)
		}
	}

	return s, nil
}

// Close releases the store. It currently holds no open resources; the
// method exists so callers own an explicit lifecycle.
func (s *Store) Close() error {
	return nil
}

// Load returns the current document. Read or decode failures degrade to a
// fresh empty document rather than propagating, so startup is never
// blocked by a corrupted file; the failure is logged.
func (s *Store) Load(ctx context.Context) *models.Document {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load(ctx)
}

// Save serializes the full document and replaces the backing file. The
// document is written to a temporary file and renamed into place, so the
// backing file is never left partially written.
func (s *Store) Save(ctx context.Context, doc *models.Document) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.save(doc)
}

// Update runs fn against a freshly loaded document and persists the
// result when fn reports a change. The mutex is held across the whole
// load-mutate-save cycle, so updates never overwrite each other.
func (s *Store) Update(ctx context.Context, fn func(doc *models.Document) (changed bool, err error)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc := s.load(ctx)
	changed, err := fn(doc)
	if err != nil {
		return err
	}
	if !changed {
		return nil
	}
	return s.save(doc)
}

// View runs fn against a freshly loaded document without persisting it.
func (s *Store) View(ctx context.Context, fn func(doc *models.Document) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(s.load(ctx))
}

func (s *Store) load(ctx context.Context) *models.Document {
	data, err := os.ReadFile(s.path)
	if err != nil {
		s.logger.Warn(ctx, "document read failed, continuing with an empty one", "path", s.path, "error", err.Error())
		return models.NewDocument()
	}

	doc := models.NewDocument()
	if err := json.Unmarshal(data, doc); err != nil {
		s.logger.Warn(ctx, "document decode failed, continuing with an empty one", "path", s.path, "error", err.Error())
		return models.NewDocument()
	}

	return doc
}

func (s *Store) save(doc *models.Document) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("encode document: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o660); err != nil {
		return fmt.Errorf("write %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("replace %s: %w", s.path, err)
	}

	return nil
}
