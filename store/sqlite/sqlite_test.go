package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestStore_LoadBeforeFirstSave(t *testing.T) {
	s := newTestStore(t)

	data, err := s.Load(context.Background())

	require.NoError(t, err)
	assert.Nil(t, data, "absence of a snapshot is not an error")
}

func TestStore_SaveLoadRoundtrip(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	snapshot := []byte(`[{"date":"2025-03-10","hours":7.5}]`)

	require.NoError(t, s.Save(ctx, snapshot))

	loaded, err := s.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, snapshot, loaded)
}

func TestStore_SaveReplacesWholesale(t *testing.T) {
	// One key, one value: every save replaces the previous snapshot.
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Save(ctx, []byte(`[{"date":"2025-01-01","hours":1}]`)))
	require.NoError(t, s.Save(ctx, []byte(`[]`)))

	loaded, err := s.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, []byte(`[]`), loaded)
}

func TestStore_PersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tally.db")
	ctx := context.Background()
	snapshot := []byte(`[{"date":"2025-06-15","hours":3}]`)

	s1, err := New(path)
	require.NoError(t, err)
	require.NoError(t, s1.Save(ctx, snapshot))
	require.NoError(t, s1.Close())

	s2, err := New(path)
	require.NoError(t, err)
	defer s2.Close()

	loaded, err := s2.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, snapshot, loaded)
}
