package files

import (
	"context"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/filehost/internal/common"
	"github.com/dmitrijs2005/filehost/internal/logging"
	"github.com/dmitrijs2005/filehost/internal/server/repositories/users"
	"github.com/dmitrijs2005/filehost/internal/server/storage"
)

func newTestRepos(t *testing.T) (*StoreRepository, *users.StoreRepository) {
	t.Helper()
	logger := logging.NewSlogLogger(slog.New(slog.DiscardHandler))
	s, err := storage.Open(filepath.Join(t.TempDir(), "database.json"), logger)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return NewStoreRepository(s), users.NewStoreRepository(s)
}

func TestCreate_AssignsSequentialIDs(t *testing.T) {
	r, _ := newTestRepos(t)
	ctx := context.Background()

	for i := 1; i <= 3; i++ {
		f, err := r.Create(ctx, 1, "stored", "orig.txt", "/tmp/stored", 10, false)
		require.NoError(t, err)
		assert.Equal(t, int64(i), f.ID)
	}
}

// Deleting the record holding the maximum ID frees that ID: the next
// create reuses it. Documented allocator behavior, asserted so a future
// "fix" does not change it silently.
func TestCreate_ReusesFreedMaximumID(t *testing.T) {
	r, _ := newTestRepos(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := r.Create(ctx, 1, "s", "o", "/p", 1, false)
		require.NoError(t, err)
	}

	ok, err := r.Delete(ctx, 3)
	require.NoError(t, err)
	require.True(t, ok)

	f, err := r.Create(ctx, 1, "s", "o", "/p", 1, false)
	require.NoError(t, err)
	assert.Equal(t, int64(3), f.ID)
}

func TestListByOwner(t *testing.T) {
	r, _ := newTestRepos(t)
	ctx := context.Background()

	_, err := r.Create(ctx, 1, "a", "a.txt", "/a", 100, false)
	require.NoError(t, err)
	_, err = r.Create(ctx, 2, "b", "b.txt", "/b", 200, true)
	require.NoError(t, err)
	_, err = r.Create(ctx, 1, "c", "c.txt", "/c", 300, true)
	require.NoError(t, err)

	owned, err := r.ListByOwner(ctx, 1)
	require.NoError(t, err)
	require.Len(t, owned, 2)
	assert.Equal(t, "a.txt", owned[0].OriginalName)
	assert.Equal(t, "c.txt", owned[1].OriginalName)

	none, err := r.ListByOwner(ctx, 99)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestListPublic_JoinsUploaderUsername(t *testing.T) {
	r, ur := newTestRepos(t)
	ctx := context.Background()

	alice, err := ur.Create(ctx, "alice", "hash", "a@example.com", false)
	require.NoError(t, err)

	_, err = r.Create(ctx, alice.ID, "priv", "private.txt", "/p", 100, false)
	require.NoError(t, err)
	pub, err := r.Create(ctx, alice.ID, "pub", "public.txt", "/q", 200, true)
	require.NoError(t, err)

	listed, err := r.ListPublic(ctx)
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, pub.ID, listed[0].ID)
	assert.Equal(t, "alice", listed[0].Username)
}

// One unresolvable owner must not fail the whole listing; the entry gets
// a placeholder label instead.
func TestListPublic_MissingOwnerGetsPlaceholder(t *testing.T) {
	r, _ := newTestRepos(t)
	ctx := context.Background()

	_, err := r.Create(ctx, 77, "s", "orphan.txt", "/o", 10, true)
	require.NoError(t, err)

	listed, err := r.ListPublic(ctx)
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, UnknownUploader, listed[0].Username)
}

func TestSetPrivacy_TogglesPublicListing(t *testing.T) {
	r, _ := newTestRepos(t)
	ctx := context.Background()

	f, err := r.Create(ctx, 1, "s", "o.txt", "/p", 10, false)
	require.NoError(t, err)

	ok, err := r.SetPrivacy(ctx, f.ID, true)
	require.NoError(t, err)
	require.True(t, ok)

	listed, err := r.ListPublic(ctx)
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, f.ID, listed[0].ID)

	ok, err = r.SetPrivacy(ctx, f.ID, false)
	require.NoError(t, err)
	require.True(t, ok)

	listed, err = r.ListPublic(ctx)
	require.NoError(t, err)
	assert.Empty(t, listed)
}

func TestSetPrivacy_MissingIDIsNoOp(t *testing.T) {
	r, _ := newTestRepos(t)

	ok, err := r.SetPrivacy(context.Background(), 42, true)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestDelete(t *testing.T) {
	r, _ := newTestRepos(t)
	ctx := context.Background()

	f, err := r.Create(ctx, 1, "s", "o.txt", "/p", 10, false)
	require.NoError(t, err)

	ok, err := r.Delete(ctx, f.ID)
	require.NoError(t, err)
	require.True(t, ok)

	_, err = r.FindByID(ctx, f.ID)
	assert.ErrorIs(t, err, common.ErrorNotFound)

	// deleting again is a no-op, not an error
	ok, err = r.Delete(ctx, f.ID)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestStatsFor_TracksCreatesDeletesAndPrivacy(t *testing.T) {
	r, _ := newTestRepos(t)
	ctx := context.Background()

	a, err := r.Create(ctx, 1, "a", "a.txt", "/a", 100, false)
	require.NoError(t, err)
	_, err = r.Create(ctx, 1, "b", "b.txt", "/b", 200, true)
	require.NoError(t, err)
	_, err = r.Create(ctx, 2, "c", "c.txt", "/c", 999, true)
	require.NoError(t, err)

	stats, err := r.StatsFor(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 2, stats.FileCount)
	assert.Equal(t, int64(300), stats.TotalSize)
	assert.Equal(t, 1, stats.PublicCount)

	_, err = r.SetPrivacy(ctx, a.ID, true)
	require.NoError(t, err)
	stats, err = r.StatsFor(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 2, stats.PublicCount)

	_, err = r.Delete(ctx, a.ID)
	require.NoError(t, err)
	stats, err = r.StatsFor(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.FileCount)
	assert.Equal(t, int64(200), stats.TotalSize)
	assert.Equal(t, 1, stats.PublicCount)
}

func TestStatsFor_EmptyOwner(t *testing.T) {
	r, _ := newTestRepos(t)

	stats, err := r.StatsFor(context.Background(), 5)
	require.NoError(t, err)
	assert.Equal(t, 0, stats.FileCount)
	assert.Equal(t, int64(0), stats.TotalSize)
	assert.Equal(t, 0, stats.PublicCount)
}
