package history

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jonathan/resume-tailor/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestSQLite(t *testing.T) *SQLiteStore {
	t.Helper()
	store, err := OpenSQLite(context.Background(), filepath.Join(t.TempDir(), "history.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestSQLiteStore_Lifecycle(t *testing.T) {
	store := openTestSQLite(t)
	ctx := context.Background()

	okID, err := store.CreateRun(ctx, "Backend Engineer")
	require.NoError(t, err)
	require.NotEqual(t, uuid.Nil, okID)
	require.NoError(t, store.CompleteRun(ctx, okID, "/t/Backend_Engineer", "/out/Backend_Engineer_Temp.pdf"))

	failID, err := store.CreateRun(ctx, "Data Scientist")
	require.NoError(t, err)
	require.NoError(t, store.FailRun(ctx, failID, "", "could not find template"))

	runningID, err := store.CreateRun(ctx, "SRE")
	require.NoError(t, err)

	runs, err := store.ListRuns(ctx, 10)
	require.NoError(t, err)
	require.Len(t, runs, 3)

	byID := make(map[uuid.UUID]types.RunRecord)
	for _, r := range runs {
		byID[r.ID] = r
	}

	ok := byID[okID]
	assert.Equal(t, types.RunStatusSucceeded, ok.Status)
	assert.Equal(t, "/out/Backend_Engineer_Temp.pdf", ok.PDFPath)
	assert.Equal(t, "/t/Backend_Engineer", ok.TemplateRoot)
	require.NotNil(t, ok.FinishedAt)
	assert.False(t, ok.FinishedAt.Before(ok.StartedAt))

	failed := byID[failID]
	assert.Equal(t, types.RunStatusFailed, failed.Status)
	assert.Equal(t, "could not find template", failed.Error)

	running := byID[runningID]
	assert.Equal(t, types.RunStatusRunning, running.Status)
	assert.Nil(t, running.FinishedAt)
}

func TestSQLiteStore_ListRunsNewestFirst(t *testing.T) {
	store := openTestSQLite(t)
	ctx := context.Background()
	base := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	var ids []uuid.UUID
	for i := 0; i < 3; i++ {
		at := base.Add(time.Duration(i) * time.Second)
		store.now = func() time.Time { return at }
		id, err := store.CreateRun(ctx, "role")
		require.NoError(t, err)
		ids = append(ids, id)
	}

	runs, err := store.ListRuns(ctx, 2)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, ids[2], runs[0].ID)
	assert.Equal(t, ids[1], runs[1].ID)
	assert.Equal(t, base.Add(2*time.Second), runs[0].StartedAt)
}

func TestSQLiteStore_FinishUnknownRun(t *testing.T) {
	store := openTestSQLite(t)
	err := store.CompleteRun(context.Background(), uuid.New(), "", "")
	assert.Error(t, err)
}

func TestSQLiteStore_ReopenKeepsHistory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.db")
	ctx := context.Background()

	first, err := OpenSQLite(ctx, path)
	require.NoError(t, err)
	_, err = first.CreateRun(ctx, "role")
	require.NoError(t, err)
	require.NoError(t, first.Close())

	second, err := OpenSQLite(ctx, path)
	require.NoError(t, err)
	defer func() { _ = second.Close() }()
	runs, err := second.ListRuns(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, runs, 1)
}

func TestOpen(t *testing.T) {
	ctx := context.Background()

	nop, err := Open(ctx, "")
	require.NoError(t, err)
	assert.IsType(t, NopStore{}, nop)

	dir := t.TempDir()
	bare, err := Open(ctx, filepath.Join(dir, "nested", "a.db"))
	require.NoError(t, err)
	assert.IsType(t, &SQLiteStore{}, bare)
	require.NoError(t, bare.Close())
	assert.FileExists(t, filepath.Join(dir, "nested", "a.db"))

	prefixed, err := Open(ctx, "sqlite://"+filepath.Join(dir, "b.db"))
	require.NoError(t, err)
	assert.IsType(t, &SQLiteStore{}, prefixed)
	require.NoError(t, prefixed.Close())

	mem, err := Open(ctx, "sqlite://:memory:")
	require.NoError(t, err)
	defer func() { _ = mem.Close() }()
	_, err = mem.CreateRun(ctx, "role")
	assert.NoError(t, err)
}

func TestNopStore(t *testing.T) {
	var store Store = NopStore{}
	ctx := context.Background()

	id, err := store.CreateRun(ctx, "role")
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, id)
	assert.NoError(t, store.CompleteRun(ctx, id, "", ""))
	assert.NoError(t, store.FailRun(ctx, id, "", "x"))
	runs, err := store.ListRuns(ctx, 5)
	assert.NoError(t, err)
	assert.Empty(t, runs)
	assert.NoError(t, store.Close())
}
