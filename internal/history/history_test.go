package history

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "history.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestRecordAndRecent(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()
	base := time.Date(2024, time.March, 5, 9, 0, 0, 0, time.UTC)

	for i, city := range []string{"Austin", "Denver", "Boise"} {
		err := store.RecordGeneration(ctx, Generation{
			SessionID: "sess-1",
			Sender:    "Pat",
			City:      city,
			State:     "XX",
			Audience:  "lawyer",
			Channel:   "sms",
			Message:   "Hello from " + city,
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		})
		require.NoError(t, err)
	}

	got, err := store.Recent(ctx, 2)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "Boise", got[0].City)
	assert.Equal(t, "Denver", got[1].City)
	assert.Equal(t, "Hello from Boise", got[0].Message)
	assert.True(t, got[0].CreatedAt.Equal(base.Add(2*time.Minute)))
}

func TestRecentEmpty(t *testing.T) {
	store := openTestStore(t)

	got, err := store.Recent(context.Background(), 10)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestExports(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()
	now := time.Now()

	require.NoError(t, store.RecordExport(ctx, Export{SessionID: "a", Path: "one.txt", CreatedAt: now}))
	require.NoError(t, store.RecordExport(ctx, Export{SessionID: "b", Path: "other.txt", CreatedAt: now}))
	require.NoError(t, store.RecordExport(ctx, Export{SessionID: "a", Path: "two.txt", CreatedAt: now.Add(time.Second)}))

	got, err := store.Exports(ctx, "a")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "one.txt", got[0].Path)
	assert.Equal(t, "two.txt", got[1].Path)
}

func TestReopenKeepsRecords(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.db")
	ctx := context.Background()

	store, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, store.RecordGeneration(ctx, Generation{SessionID: "s", City: "Denver", CreatedAt: time.Now()}))
	require.NoError(t, store.Close())

	store, err = Open(path)
	require.NoError(t, err)
	defer store.Close()

	got, err := store.Recent(ctx, 5)
	require.NoError(t, err)
	assert.Len(t, got, 1)
}

func TestOpenCreatesParentDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "callinghome.db")

	store, err := Open(path)
	require.NoError(t, err)
	defer store.Close()

	assert.FileExists(t, path)
}
