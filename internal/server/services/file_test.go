package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/filehost/internal/common"
	"github.com/dmitrijs2005/filehost/internal/server/authz"
	"github.com/dmitrijs2005/filehost/internal/server/models"
)

// fakeFilesRepo keeps records in a slice and mirrors the store's
// false-on-missing behavior.
type fakeFilesRepo struct {
	files  []models.File
	nextID int64
}

func (f *fakeFilesRepo) Create(ctx context.Context, ownerID int64, filename, originalName, filepath string, size int64, isPublic bool) (*models.File, error) {
	f.nextID++
	file := models.File{ID: f.nextID, UserID: ownerID, Filename: filename, OriginalName: originalName, Filepath: filepath, Size: size, IsPublic: models.Flag(isPublic)}
	f.files = append(f.files, file)
	return &file, nil
}

func (f *fakeFilesRepo) ListByOwner(ctx context.Context, ownerID int64) ([]models.File, error) {
	var out []models.File
	for _, file := range f.files {
		if file.UserID == ownerID {
			out = append(out, file)
		}
	}
	return out, nil
}

func (f *fakeFilesRepo) ListPublic(ctx context.Context) ([]models.PublicFile, error) {
	var out []models.PublicFile
	for _, file := range f.files {
		if file.IsPublic.Bool() {
			out = append(out, models.PublicFile{File: file, Username: "someone"})
		}
	}
	return out, nil
}

func (f *fakeFilesRepo) FindByID(ctx context.Context, id int64) (*models.File, error) {
	for i := range f.files {
		if f.files[i].ID == id {
			file := f.files[i]
			return &file, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (f *fakeFilesRepo) SetPrivacy(ctx context.Context, id int64, isPublic bool) (bool, error) {
	for i := range f.files {
		if f.files[i].ID == id {
			f.files[i].IsPublic = models.Flag(isPublic)
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeFilesRepo) Delete(ctx context.Context, id int64) (bool, error) {
	for i := range f.files {
		if f.files[i].ID == id {
			f.files = append(f.files[:i], f.files[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeFilesRepo) StatsFor(ctx context.Context, ownerID int64) (*models.FileStats, error) {
	stats := &models.FileStats{}
	for _, file := range f.files {
		if file.UserID == ownerID {
			stats.FileCount++
			stats.TotalSize += file.Size
			if file.IsPublic.Bool() {
				stats.PublicCount++
			}
		}
	}
	return stats, nil
}

// fakeBlobs records removals and can simulate failures.
type fakeBlobs struct {
	removed   []string
	removeErr error
}

func (f *fakeBlobs) Remove(path string) error {
	if f.removeErr != nil {
		return f.removeErr
	}
	f.removed = append(f.removed, path)
	return nil
}

var owner = authz.Principal{UserID: 1}
var stranger = authz.Principal{UserID: 2}

func newFileService(repo *fakeFilesRepo, blobs *fakeBlobs) *FileService {
	return NewFileService(repo, blobs, testLogger())
}

func TestRecordUpload(t *testing.T) {
	repo := &fakeFilesRepo{}
	s := newFileService(repo, &fakeBlobs{})

	f, err := s.RecordUpload(context.Background(), owner, Upload{
		Filename: "abc-doc.pdf", OriginalName: "doc.pdf", Path: "/up/abc-doc.pdf", Size: 100, Public: true,
	})
	require.NoError(t, err)

	assert.Equal(t, owner.UserID, f.UserID)
	assert.Equal(t, "doc.pdf", f.OriginalName)
	assert.True(t, f.IsPublic.Bool())
}

func TestDownload_Visibility(t *testing.T) {
	repo := &fakeFilesRepo{}
	s := newFileService(repo, &fakeBlobs{})
	ctx := context.Background()

	private, err := s.RecordUpload(ctx, owner, Upload{OriginalName: "p.txt", Size: 1})
	require.NoError(t, err)
	public, err := s.RecordUpload(ctx, owner, Upload{OriginalName: "q.txt", Size: 1, Public: true})
	require.NoError(t, err)

	_, err = s.Download(ctx, owner, private.ID)
	assert.NoError(t, err)

	_, err = s.Download(ctx, stranger, private.ID)
	assert.ErrorIs(t, err, common.ErrorUnauthorized)

	_, err = s.Download(ctx, authz.Anonymous, public.ID)
	assert.NoError(t, err)

	_, err = s.Download(ctx, authz.Anonymous, 999)
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

// Ownership mismatch and non-existence must be the same signal.
func TestSetPrivacy_OwnershipMasking(t *testing.T) {
	repo := &fakeFilesRepo{}
	s := newFileService(repo, &fakeBlobs{})
	ctx := context.Background()

	f, err := s.RecordUpload(ctx, owner, Upload{OriginalName: "p.txt"})
	require.NoError(t, err)

	err = s.SetPrivacy(ctx, stranger, f.ID, true)
	assert.ErrorIs(t, err, common.ErrorNotFound)

	err = s.SetPrivacy(ctx, owner, 999, true)
	assert.ErrorIs(t, err, common.ErrorNotFound)

	require.NoError(t, s.SetPrivacy(ctx, owner, f.ID, true))
	got, err := repo.FindByID(ctx, f.ID)
	require.NoError(t, err)
	assert.True(t, got.IsPublic.Bool())
}

func TestDelete_RemovesRecordThenBlob(t *testing.T) {
	repo := &fakeFilesRepo{}
	blobs := &fakeBlobs{}
	s := newFileService(repo, blobs)
	ctx := context.Background()

	f, err := s.RecordUpload(ctx, owner, Upload{OriginalName: "p.txt", Path: "/up/p.txt"})
	require.NoError(t, err)

	require.NoError(t, s.Delete(ctx, owner, f.ID))

	_, err = repo.FindByID(ctx, f.ID)
	assert.ErrorIs(t, err, common.ErrorNotFound)
	assert.Equal(t, []string{"/up/p.txt"}, blobs.removed)
}

// A failed blob removal must not fail the delete: the record is gone and
// the orphaned blob is recoverable garbage.
func TestDelete_BlobFailureIsSwallowed(t *testing.T) {
	repo := &fakeFilesRepo{}
	blobs := &fakeBlobs{removeErr: assert.AnError}
	s := newFileService(repo, blobs)
	ctx := context.Background()

	f, err := s.RecordUpload(ctx, owner, Upload{OriginalName: "p.txt", Path: "/up/p.txt"})
	require.NoError(t, err)

	require.NoError(t, s.Delete(ctx, owner, f.ID))
	_, err = repo.FindByID(ctx, f.ID)
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func TestDelete_OwnershipMasking(t *testing.T) {
	repo := &fakeFilesRepo{}
	blobs := &fakeBlobs{}
	s := newFileService(repo, blobs)
	ctx := context.Background()

	f, err := s.RecordUpload(ctx, owner, Upload{OriginalName: "p.txt", Path: "/up/p.txt"})
	require.NoError(t, err)

	err = s.Delete(ctx, stranger, f.ID)
	assert.ErrorIs(t, err, common.ErrorNotFound)

	// record untouched, blob untouched
	_, err = repo.FindByID(ctx, f.ID)
	assert.NoError(t, err)
	assert.Empty(t, blobs.removed)
}

func TestStats(t *testing.T) {
	repo := &fakeFilesRepo{}
	s := newFileService(repo, &fakeBlobs{})
	ctx := context.Background()

	_, err := s.RecordUpload(ctx, owner, Upload{OriginalName: "a", Size: 100})
	require.NoError(t, err)
	_, err = s.RecordUpload(ctx, owner, Upload{OriginalName: "b", Size: 200, Public: true})
	require.NoError(t, err)

	stats, err := s.Stats(ctx, owner)
	require.NoError(t, err)
	assert.Equal(t, 2, stats.FileCount)
	assert.Equal(t, int64(300), stats.TotalSize)
	assert.Equal(t, 1, stats.PublicCount)
}
