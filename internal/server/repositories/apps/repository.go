// Package apps provides the repository for published application
// packages.
package apps

import (
	"context"

	"github.com/dmitrijs2005/filehost/internal/server/models"
)

// Repository is storage-only; the admin gate lives with the caller.
// IncrementDownloads and Delete report false (not an error) when no
// record with the given id exists.
type Repository interface {
	Create(ctx context.Context, name, description, filename, filepath, version string, size int64) (*models.App, error)
	ListAll(ctx context.Context) ([]models.App, error)
	FindByID(ctx context.Context, id int64) (*models.App, error)
	IncrementDownloads(ctx context.Context, id int64) (bool, error)
	Delete(ctx context.Context, id int64) (bool, error)
}
