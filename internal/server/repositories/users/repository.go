// Package users provides the account repository.
package users

import (
	"context"

	"github.com/dmitrijs2005/filehost/internal/server/models"
)

// Repository is storage-only: Create never checks username or email
// uniqueness. Callers that need unique accounts must probe with
// FindByUsername/FindByEmail before creating; skipping the check stores
// the duplicate verbatim. Find operations return common.ErrorNotFound for
// an absent record.
type Repository interface {
	Create(ctx context.Context, username, passwordHash, email string, isAdmin bool) (*models.User, error)
	FindByUsername(ctx context.Context, username string) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByID(ctx context.Context, id int64) (*models.User, error)
}
