package apps

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/filehost/internal/common"
	"github.com/dmitrijs2005/filehost/internal/server/models"
	"github.com/dmitrijs2005/filehost/internal/server/storage"
)

// DefaultVersion is assigned when the caller supplies no version.
const DefaultVersion = "1.0.0"

// StoreRepository implements Repository over the document store.
type StoreRepository struct {
	store *storage.Store
}

func NewStoreRepository(s *storage.Store) *StoreRepository {
	return &StoreRepository{store: s}
}

// Create appends a new app with the next free ID. An empty description
// stays empty, an empty version becomes DefaultVersion, downloads start
// at zero.
func (r *StoreRepository) Create(ctx context.Context, name, description, filename, filepath, version string, size int64) (*models.App, error) {
	if version == "" {
		version = DefaultVersion
	}

	var app models.App

	err := r.store.Update(ctx, func(doc *models.Document) (bool, error) {
		app = models.App{
			ID:          doc.NextID(models.CollectionApps),
			Name:        name,
			Description: description,
			Filename:    filename,
			Filepath:    filepath,
			Version:     version,
			Size:        size,
			Downloads:   0,
			UploadedAt:  time.Now().UTC(),
		}
		doc.Apps = append(doc.Apps, app)
		return true, nil
	})
	if err != nil {
		return nil, fmt.Errorf("create app: %w", err)
	}

	return &app, nil
}

func (r *StoreRepository) ListAll(ctx context.Context) ([]models.App, error) {
	var result []models.App

	err := r.store.View(ctx, func(doc *models.Document) error {
		result = append(result, doc.Apps...)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list apps: %w", err)
	}

	return result, nil
}

func (r *StoreRepository) FindByID(ctx context.Context, id int64) (*models.App, error) {
	var app *models.App

	err := r.store.View(ctx, func(doc *models.Document) error {
		for i := range doc.Apps {
			if doc.Apps[i].ID == id {
				a := doc.Apps[i]
				app = &a
				return nil
			}
		}
		return common.ErrorNotFound
	})
	if err != nil {
		return nil, err
	}

	return app, nil
}

// IncrementDownloads bumps the counter by one inside a single
// load-mutate-save cycle, so sequential calls never lose a count.
func (r *StoreRepository) IncrementDownloads(ctx context.Context, id int64) (bool, error) {
	found := false

	err := r.store.Update(ctx, func(doc *models.Document) (bool, error) {
		for i := range doc.Apps {
			if doc.Apps[i].ID == id {
				doc.Apps[i].Downloads++
				found = true
				return true, nil
			}
		}
		return false, nil
	})
	if err != nil {
		return false, fmt.Errorf("increment downloads: %w", err)
	}

	return found, nil
}

func (r *StoreRepository) Delete(ctx context.Context, id int64) (bool, error) {
	found := false

	err := r.store.Update(ctx, func(doc *models.Document) (bool, error) {
		for i := range doc.Apps {
			if doc.Apps[i].ID == id {
				doc.Apps = append(doc.Apps[:i], doc.Apps[i+1:]...)
				found = true
				return true, nil
			}
		}
		return false, nil
	})
	if err != nil {
		return false, fmt.Errorf("delete app: %w", err)
	}

	return found, nil
}
