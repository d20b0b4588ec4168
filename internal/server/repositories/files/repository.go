// Package files provides the repository for uploaded file records.
package files

import (
	"context"

	"github.com/dmitrijs2005/filehost/internal/server/models"
)

// Repository is storage-only; ownership and visibility checks live with
// the caller. SetPrivacy and Delete report false (not an error) when no
// record with the given id exists, so "nothing to do" stays distinct from
// a store failure.
type Repository interface {
	Create(ctx context.Context, ownerID int64, filename, originalName, filepath string, size int64, isPublic bool) (*models.File, error)
	ListByOwner(ctx context.Context, ownerID int64) ([]models.File, error)
	ListPublic(ctx context.Context) ([]models.PublicFile, error)
	FindByID(ctx context.Context, id int64) (*models.File, error)
	SetPrivacy(ctx context.Context, id int64, isPublic bool) (bool, error)
	Delete(ctx context.Context, id int64) (bool, error)
	StatsFor(ctx context.Context, ownerID int64) (*models.FileStats, error)
}
