package files

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/filehost/internal/common"
	"github.com/dmitrijs2005/filehost/internal/server/models"
	"github.com/dmitrijs2005/filehost/internal/server/storage"
)

// UnknownUploader labels public files whose owner no longer resolves.
const UnknownUploader = "unknown"

// StoreRepository implements Repository over the document store.
type StoreRepository struct {
	store *storage.Store
}

func NewStoreRepository(s *storage.Store) *StoreRepository {
	return &StoreRepository{store: s}
}

func (r *StoreRepository) Create(ctx context.Context, ownerID int64, filename, originalName, filepath string, size int64, isPublic bool) (*models.File, error) {
	var file models.File

	err := r.store.Update(ctx, func(doc *models.Document) (bool, error) {
		file = models.File{
			ID:           doc.NextID(models.CollectionFiles),
			UserID:       ownerID,
			Filename:     filename,
			OriginalName: originalName,
			Filepath:     filepath,
			Size:         size,
			IsPublic:     models.Flag(isPublic),
			UploadedAt:   time.Now().UTC(),
		}
		doc.Files = append(doc.Files, file)
		return true, nil
	})
	if err != nil {
		return nil, fmt.Errorf("create file: %w", err)
	}

	return &file, nil
}

func (r *StoreRepository) ListByOwner(ctx context.Context, ownerID int64) ([]models.File, error) {
	var result []models.File

	err := r.store.View(ctx, func(doc *models.Document) error {
		for _, f := range doc.Files {
			if f.UserID == ownerID {
				result = append(result, f)
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list files: %w", err)
	}

	return result, nil
}

// ListPublic returns all public files, each joined with its uploader's
// username at read time. A missing owner never fails the listing; the
// entry carries the UnknownUploader placeholder instead.
func (r *StoreRepository) ListPublic(ctx context.Context) ([]models.PublicFile, error) {
	var result []models.PublicFile

	err := r.store.View(ctx, func(doc *models.Document) error {
		owners := make(map[int64]string, len(doc.Users))
		for _, u := range doc.Users {
			owners[u.ID] = u.Username
		}

		for _, f := range doc.Files {
			if !f.IsPublic.Bool() {
				continue
			}
			username, ok := owners[f.UserID]
			if !ok {
				username = UnknownUploader
			}
			result = append(result, models.PublicFile{File: f, Username: username})
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list public files: %w", err)
	}

	return result, nil
}

func (r *StoreRepository) FindByID(ctx context.Context, id int64) (*models.File, error) {
	var file *models.File

	err := r.store.View(ctx, func(doc *models.Document) error {
		for i := range doc.Files {
			if doc.Files[i].ID == id {
				f := doc.Files[i]
				file = &f
				return nil
			}
		}
		return common.ErrorNotFound
	})
	if err != nil {
		return nil, err
	}

	return file, nil
}

func (r *StoreRepository) SetPrivacy(ctx context.Context, id int64, isPublic bool) (bool, error) {
	found := false

	err := r.store.Update(ctx, func(doc *models.Document) (bool, error) {
		for i := range doc.Files {
			if doc.Files[i].ID == id {
				doc.Files[i].IsPublic = models.Flag(isPublic)
				found = true
				return true, nil
			}
		}
		return false, nil
	})
	if err != nil {
		return false, fmt.Errorf("set privacy: %w", err)
	}

	return found, nil
}

func (r *StoreRepository) Delete(ctx context.Context, id int64) (bool, error) {
	found := false

	err := r.store.Update(ctx, func(doc *models.Document) (bool, error) {
		for i := range doc.Files {
			if doc.Files[i].ID == id {
				doc.Files = append(doc.Files[:i], doc.Files[i+1:]...)
				found = true
				return true, nil
			}
		}
		return false, nil
	})
	if err != nil {
		return false, fmt.Errorf("delete file: %w", err)
	}

	return found, nil
}

// StatsFor derives the owner's aggregates from current contents; nothing
// is stored.
func (r *StoreRepository) StatsFor(ctx context.Context, ownerID int64) (*models.FileStats, error) {
	stats := &models.FileStats{}

	err := r.store.View(ctx, func(doc *models.Document) error {
		for _, f := range doc.Files {
			if f.UserID != ownerID {
				continue
			}
			stats.FileCount++
			stats.TotalSize += f.Size
			if f.IsPublic.Bool() {
				stats.PublicCount++
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("file stats: %w", err)
	}

	return stats, nil
}
