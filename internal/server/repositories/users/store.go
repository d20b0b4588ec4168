package users

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/filehost/internal/common"
	"github.com/dmitrijs2005/filehost/internal/server/models"
	"github.com/dmitrijs2005/filehost/internal/server/storage"
)

// StoreRepository implements Repository over the document store.
type StoreRepository struct {
	store *storage.Store
}

func NewStoreRepository(s *storage.Store) *StoreRepository {
	return &StoreRepository{store: s}
}

// Create appends a new user with the next free ID. The password value is
// stored opaquely, whatever credential the caller hands over.
func (r *StoreRepository) Create(ctx context.Context, username, passwordHash, email string, isAdmin bool) (*models.User, error) {
	var user models.User

	err := r.store.Update(ctx, func(doc *models.Document) (bool, error) {
		user = models.User{
			ID:        doc.NextID(models.CollectionUsers),
			Username:  username,
			Password:  passwordHash,
			Email:     email,
			IsAdmin:   models.Flag(isAdmin),
			CreatedAt: time.Now().UTC(),
		}
		doc.Users = append(doc.Users, user)
		return true, nil
	})
	if err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}

	return &user, nil
}

func (r *StoreRepository) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	return r.find(ctx, func(u *models.User) bool { return u.Username == username })
}

func (r *StoreRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.find(ctx, func(u *models.User) bool { return u.Email == email })
}

func (r *StoreRepository) FindByID(ctx context.Context, id int64) (*models.User, error) {
	return r.find(ctx, func(u *models.User) bool { return u.ID == id })
}

func (r *StoreRepository) find(ctx context.Context, match func(*models.User) bool) (*models.User, error) {
	var user *models.User

	err := r.store.View(ctx, func(doc *models.Document) error {
		for i := range doc.Users {
			if match(&doc.Users[i]) {
				u := doc.Users[i]
				user = &u
				return nil
			}
		}
		return common.ErrorNotFound
	})
	if err != nil {
		return nil, err
	}

	return user, nil
}
