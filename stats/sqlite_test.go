package stats

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T, path string) *SQLiteStore {
	t.Helper()
	store, err := NewSQLiteStore(path, zerolog.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestSQLiteStore_FreshDatabase(t *testing.T) {
	store := openTestStore(t, filepath.Join(t.TempDir(), "stats.db"))

	snapshot, err := store.Snapshot()
	require.NoError(t, err)
	assert.Equal(t, 0, snapshot.GamesCount)
	assert.Equal(t, GameRecord{}, snapshot.BestGame)
	assert.Equal(t, 0.0, snapshot.TotalAccuracy)
}

func TestSQLiteStore_BestGameTieBreak(t *testing.T) {
	store := openTestStore(t, filepath.Join(t.TempDir(), "stats.db"))

	day1 := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	day2 := day1.Add(24 * time.Hour)
	day3 := day1.Add(48 * time.Hour)

	store.now = func() time.Time { return day1 }
	snapshot, err := store.Record(7, 10)
	require.NoError(t, err)
	assert.Equal(t, GameRecord{Correct: 7, Total: 10, Date: day1}, snapshot.BestGame)

	// A lower result never replaces the best game.
	store.now = func() time.Time { return day2 }
	snapshot, err = store.Record(5, 10)
	require.NoError(t, err)
	assert.Equal(t, GameRecord{Correct: 7, Total: 10, Date: day1}, snapshot.BestGame)

	// An equal result does not replace it either: first write wins.
	store.now = func() time.Time { return day3 }
	snapshot, err = store.Record(7, 10)
	require.NoError(t, err)
	assert.Equal(t, GameRecord{Correct: 7, Total: 10, Date: day1}, snapshot.BestGame)

	assert.Equal(t, 3, snapshot.GamesCount)
}

func TestSQLiteStore_TotalAccuracy(t *testing.T) {
	store := openTestStore(t, filepath.Join(t.TempDir(), "stats.db"))

	_, err := store.Record(3, 10)
	require.NoError(t, err)

	snapshot, err := store.Record(5, 10)
	require.NoError(t, err)
	assert.InDelta(t, 40.0, snapshot.TotalAccuracy, 0.001)
}

func TestSQLiteStore_PersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stats.db")
	recorded := time.Date(2024, 7, 15, 9, 30, 45, 0, time.UTC)

	store := openTestStore(t, path)
	store.now = func() time.Time { return recorded }
	_, err := store.Record(8, 10)
	require.NoError(t, err)
	require.NoError(t, store.Close())

	reopened := openTestStore(t, path)
	snapshot, err := reopened.Snapshot()
	require.NoError(t, err)

	assert.Equal(t, 1, snapshot.GamesCount)
	assert.InDelta(t, 80.0, snapshot.TotalAccuracy, 0.001)
	// The best-game record round-trips exactly, including the timestamp.
	assert.Equal(t, GameRecord{Correct: 8, Total: 10, Date: recorded}, snapshot.BestGame)
}

func TestSQLiteStore_TruncatesSubsecondPrecision(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stats.db")

	store := openTestStore(t, path)
	store.now = func() time.Time {
		return time.Date(2024, 7, 15, 9, 30, 45, 123456789, time.UTC)
	}
	snapshot, err := store.Record(4, 10)
	require.NoError(t, err)

	assert.Equal(t, time.Date(2024, 7, 15, 9, 30, 45, 0, time.UTC), snapshot.BestGame.Date)
}
