package storage_test

import (
	"context"
	"path/filepath"
	"testing"

	"tenders-ai/internal/storage"
	"tenders-ai/pkg/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func openStore(t *testing.T, path string) *storage.Store {
	t.Helper()
	cfg := config.StorageConfig{Path: path}
	store, err := storage.Open(context.Background(), &cfg, zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreSeedsDefaultWhenAbsent(t *testing.T) {
	store := openStore(t, filepath.Join(t.TempDir(), "kv.db"))
	ctx := context.Background()

	var got []int
	require.NoError(t, store.Get(ctx, "numbers", &got, []int{1, 2, 3}))
	assert.Equal(t, []int{1, 2, 3}, got)

	// The seeded default is persisted, not just returned.
	var again []int
	require.NoError(t, store.Get(ctx, "numbers", &again, []int{}))
	assert.Equal(t, []int{1, 2, 3}, again)
}

func TestStoreSetReplacesValue(t *testing.T) {
	store := openStore(t, filepath.Join(t.TempDir(), "kv.db"))
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "theme", "dark"))
	require.NoError(t, store.Set(ctx, "theme", "light"))

	var theme string
	require.NoError(t, store.Get(ctx, "theme", &theme, ""))
	assert.Equal(t, "light", theme)
}

func TestStoreSurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "kv.db")
	ctx := context.Background()

	first := openStore(t, path)
	require.NoError(t, first.Set(ctx, "profile", map[string]string{"companyName": "Acme d.o.o."}))
	require.NoError(t, first.Close())

	second := openStore(t, path)
	var profile map[string]string
	require.NoError(t, second.Get(ctx, "profile", &profile, map[string]string{}))
	assert.Equal(t, "Acme d.o.o.", profile["companyName"])
}

func TestStoreSetAllWritesEveryKey(t *testing.T) {
	store := openStore(t, filepath.Join(t.TempDir(), "kv.db"))
	ctx := context.Background()

	require.NoError(t, store.SetAll(ctx, map[string]any{
		"savedTenders":           []map[string]any{{"id": 1, "nickname": ""}},
		"uninterestingTenderIds": []int{2},
	}))

	var dismissed []int
	require.NoError(t, store.Get(ctx, "uninterestingTenderIds", &dismissed, []int{}))
	assert.Equal(t, []int{2}, dismissed)

	var bookmarks []map[string]any
	require.NoError(t, store.Get(ctx, "savedTenders", &bookmarks, nil))
	require.Len(t, bookmarks, 1)
}
