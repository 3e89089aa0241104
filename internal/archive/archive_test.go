package archive

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dungeon-generator/internal/config"
	"dungeon-generator/internal/dungeon"
	"dungeon-generator/internal/export"
)

func openTestArchive(t *testing.T) *Archive {
	t.Helper()
	a, err := Open(filepath.Join(t.TempDir(), "nested", "layouts.db"))
	require.NoError(t, err)
	t.Cleanup(func() { a.Close() })
	return a
}

func generate(t *testing.T, seed int64) *dungeon.Layout {
	t.Helper()
	layout, err := dungeon.NewGenerator(config.DefaultGeneration(), seed).Generate()
	require.NoError(t, err)
	return layout
}

func TestOpen(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "data", "layouts.db")

	a, err := Open(dbPath)
	require.NoError(t, err)
	defer a.Close()

	_, err = os.Stat(dbPath)
	assert.NoError(t, err, "database file was not created")

	var journalMode string
	require.NoError(t, a.db.QueryRow("PRAGMA journal_mode").Scan(&journalMode))
	assert.Equal(t, "wal", journalMode)
}

func TestMigrationIdempotent(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "layouts.db")

	a, err := Open(dbPath)
	require.NoError(t, err)
	require.NoError(t, a.Close())

	a, err = Open(dbPath)
	require.NoError(t, err)
	assert.NoError(t, a.Close())
}

func TestSaveAndGet(t *testing.T) {
	a := openTestArchive(t)
	ctx := context.Background()
	layout := generate(t, 31)

	saved, err := a.Save(ctx, layout)
	require.NoError(t, err)
	assert.NotEmpty(t, saved.Name)
	assert.Equal(t, layout.Summary(), saved.Summary)

	got, err := a.Get(ctx, layout.Seed)
	require.NoError(t, err)
	assert.Equal(t, saved.Name, got.Name)
	assert.Equal(t, layout.Seed, got.Seed)

	var want bytes.Buffer
	require.NoError(t, export.EncodeLayoutYAML(&want, layout))
	assert.Equal(t, want.Bytes(), got.YAML)

	doc, err := export.DecodeLayoutYAML(bytes.NewReader(got.YAML))
	require.NoError(t, err)
	assert.Len(t, doc.Rooms, len(layout.Rooms))
}

func TestSaveReplacesAndKeepsName(t *testing.T) {
	a := openTestArchive(t)
	ctx := context.Background()
	layout := generate(t, 12)

	first, err := a.Save(ctx, layout)
	require.NoError(t, err)
	second, err := a.Save(ctx, layout)
	require.NoError(t, err)

	assert.Equal(t, first.Name, second.Name)

	records, err := a.List(ctx)
	require.NoError(t, err)
	assert.Len(t, records, 1)
}

func TestGetNotFound(t *testing.T) {
	a := openTestArchive(t)

	_, err := a.Get(context.Background(), 404)

	assert.ErrorIs(t, err, ErrNotFound)
}

func TestList(t *testing.T) {
	a := openTestArchive(t)
	ctx := context.Background()

	records, err := a.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, records)

	seeds := map[int64]bool{}
	for _, seed := range []int64{1, 2, 3} {
		saved, err := a.Save(ctx, generate(t, seed))
		require.NoError(t, err)
		seeds[saved.Seed] = true
	}

	records, err = a.List(ctx)
	require.NoError(t, err)
	require.Len(t, records, len(seeds))
	for _, r := range records {
		assert.True(t, seeds[r.Seed])
		assert.Nil(t, r.YAML)
		assert.Positive(t, r.Summary.Rooms)
	}
}

func TestDelete(t *testing.T) {
	a := openTestArchive(t)
	ctx := context.Background()
	layout := generate(t, 77)

	_, err := a.Save(ctx, layout)
	require.NoError(t, err)

	require.NoError(t, a.Delete(ctx, layout.Seed))
	_, err = a.Get(ctx, layout.Seed)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, a.Delete(ctx, layout.Seed), ErrNotFound)
}
