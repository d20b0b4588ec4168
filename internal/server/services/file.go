package services

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/filehost/internal/common"
	"github.com/dmitrijs2005/filehost/internal/logging"
	"github.com/dmitrijs2005/filehost/internal/server/authz"
	"github.com/dmitrijs2005/filehost/internal/server/models"
	"github.com/dmitrijs2005/filehost/internal/server/repositories/files"
)

// BlobRemover deletes stored blob content. Writing blobs stays with the
// HTTP layer; the services only ever need removal, to keep records and
// blobs consistent on delete.
type BlobRemover interface {
	Remove(path string) error
}

// Upload describes a blob that has already been written to disk.
type Upload struct {
	Filename     string // on-disk name
	OriginalName string // user-supplied name
	Path         string
	Size         int64
	Public       bool
}

// FileService applies the ownership and visibility rules around the file
// repository.
type FileService struct {
	files  files.Repository
	blobs  BlobRemover
	logger logging.Logger
}

func NewFileService(r files.Repository, b BlobRemover, l logging.Logger) *FileService {
	return &FileService{files: r, blobs: b, logger: l.With("module", "file_service")}
}

// RecordUpload stores the metadata record for an already-written blob,
// owned by p.
func (s *FileService) RecordUpload(ctx context.Context, p authz.Principal, up Upload) (*models.File, error) {
	file, err := s.files.Create(ctx, p.UserID, up.Filename, up.OriginalName, up.Path, up.Size, up.Public)
	if err != nil {
		return nil, fmt.Errorf("error recording upload: %w", err)
	}

	s.logger.Info(ctx, "file uploaded", "id", file.ID, "owner", p.UserID, "size", file.Size, "public", file.IsPublic.Bool())
	return file, nil
}

// ListOwn returns all files owned by p.
func (s *FileService) ListOwn(ctx context.Context, p authz.Principal) ([]models.File, error) {
	return s.files.ListByOwner(ctx, p.UserID)
}

// ListPublic returns all public files with uploader usernames attached.
func (s *FileService) ListPublic(ctx context.Context) ([]models.PublicFile, error) {
	return s.files.ListPublic(ctx)
}

// Stats returns p's derived file aggregates.
func (s *FileService) Stats(ctx context.Context, p authz.Principal) (*models.FileStats, error) {
	return s.files.StatsFor(ctx, p.UserID)
}

// Download returns the record of a file p may read. A missing id yields
// ErrorNotFound; an existing file p may not read yields
// ErrorUnauthorized.
func (s *FileService) Download(ctx context.Context, p authz.Principal, id int64) (*models.File, error) {
	file, err := s.files.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !authz.CanReadFile(p, file) {
		return nil, common.ErrorUnauthorized
	}

	return file, nil
}

// SetPrivacy flips a file's visibility. A missing record and a record
// owned by someone else both yield ErrorNotFound, so the operation leaks
// nothing about other users' files.
func (s *FileService) SetPrivacy(ctx context.Context, p authz.Principal, id int64, isPublic bool) error {
	file, err := s.files.FindByID(ctx, id)
	if err != nil {
		return err
	}

	if !authz.CanModifyFile(p, file) {
		return common.ErrorNotFound
	}

	ok, err := s.files.SetPrivacy(ctx, id, isPublic)
	if err != nil {
		return err
	}
	if !ok {
		return common.ErrorNotFound
	}

	return nil
}

// Delete removes a file p owns. The record goes first and the blob
// second: a failed blob removal leaves recoverable garbage on disk,
// whereas the reverse order could leave a record pointing at nothing. A
// blob failure is therefore logged, not surfaced.
func (s *FileService) Delete(ctx context.Context, p authz.Principal, id int64) error {
	file, err := s.files.FindByID(ctx, id)
	if err != nil {
		return err
	}

	if !authz.CanModifyFile(p, file) {
		return common.ErrorNotFound
	}

	ok, err := s.files.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return common.ErrorNotFound
	}

	if err := s.blobs.Remove(file.Filepath); err != nil {
		s.logger.Warn(ctx, "blob removal failed, orphaned blob left behind", "path", file.Filepath, "error", err.Error())
	}

	s.logger.Info(ctx, "file deleted", "id", id, "owner", p.UserID)
	return nil
}
