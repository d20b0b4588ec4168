package services

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/filehost/internal/common"
	"github.com/dmitrijs2005/filehost/internal/logging"
	"github.com/dmitrijs2005/filehost/internal/server/authz"
	"github.com/dmitrijs2005/filehost/internal/server/models"
	"github.com/dmitrijs2005/filehost/internal/server/repositories/apps"
)

// PublishInput describes an app package whose blob has already been
// written to disk.
type PublishInput struct {
	Name        string
	Description string
	Version     string
	Filename    string
	Path        string
	Size        int64
}

// AppService manages the catalog of downloadable app packages. Publishing
// and deleting require the admin role; listing and downloading are open
// to everyone including anonymous callers.
type AppService struct {
	apps   apps.Repository
	blobs  BlobRemover
	logger logging.Logger
}

func NewAppService(r apps.Repository, b BlobRemover, l logging.Logger) *AppService {
	return &AppService{apps: r, blobs: b, logger: l.With("module", "app_service")}
}

// Publish adds an app to the catalog. Non-admins get ErrorUnauthorized,
// an empty name ErrorValidation.
func (s *AppService) Publish(ctx context.Context, p authz.Principal, in PublishInput) (*models.App, error) {
	if !authz.CanManageApps(p) {
		return nil, common.ErrorUnauthorized
	}
	if in.Name == "" {
		return nil, common.ErrorValidation
	}

	app, err := s.apps.Create(ctx, in.Name, in.Description, in.Filename, in.Path, in.Version, in.Size)
	if err != nil {
		return nil, fmt.Errorf("error publishing app: %w", err)
	}

	s.logger.Info(ctx, "app published", "id", app.ID, "name", app.Name, "version", app.Version)
	return app, nil
}

// List returns the whole catalog.
func (s *AppService) List(ctx context.Context) ([]models.App, error) {
	return s.apps.ListAll(ctx)
}

// Download returns the app record and bumps its download counter.
func (s *AppService) Download(ctx context.Context, id int64) (*models.App, error) {
	app, err := s.apps.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	ok, err := s.apps.IncrementDownloads(ctx, id)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, common.ErrorNotFound
	}

	return app, nil
}

// Delete removes an app from the catalog. Record first, blob second, same
// ordering and rationale as FileService.Delete.
func (s *AppService) Delete(ctx context.Context, p authz.Principal, id int64) error {
	if !authz.CanManageApps(p) {
		return common.ErrorUnauthorized
	}

	app, err := s.apps.FindByID(ctx, id)
	if err != nil {
		return err
	}

	ok, err := s.apps.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return common.ErrorNotFound
	}

	if err := s.blobs.Remove(app.Filepath); err != nil {
		s.logger.Warn(ctx, "blob removal failed, orphaned blob left behind", "path", app.Filepath, "error", err.Error())
	}

	s.logger.Info(ctx, "app deleted", "id", id)
	return nil
}
