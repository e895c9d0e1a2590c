package stats

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/rs/zerolog"
	_ "modernc.org/sqlite"
)

// Logical keys in the durable store.
const (
	keyCorrect    = "correct"
	keyTotal      = "total"
	keyGamesCount = "gamesCount"
	keyBestGame   = "bestGame"
)

const schema = `CREATE TABLE IF NOT EXISTS quiz_stats (
	key   TEXT PRIMARY KEY,
	value TEXT NOT NULL
)`

// SQLiteStore is a Service backed by a SQLite database file. Missing keys
// read as zero defaults, so a fresh database behaves like an empty history.
type SQLiteStore struct {
	db     *sql.DB
	logger zerolog.Logger
	now    func() time.Time
}

// NewSQLiteStore opens (and if needed creates) the statistics database.
func NewSQLiteStore(path string, logger zerolog.Logger) (*SQLiteStore, error) {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create statistics directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open statistics database: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize statistics schema: %w", err)
	}

	return &SQLiteStore{
		db:     db,
		logger: logger,
		now:    time.Now,
	}, nil
}

// Record folds one finished round into the store inside a single
// transaction: best-game comparison, games counter, lifetime counters.
func (s *SQLiteStore) Record(correct, total int) (Snapshot, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return Snapshot{}, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	lifetimeCorrect, err := readInt(tx, keyCorrect)
	if err != nil {
		return Snapshot{}, err
	}
	lifetimeTotal, err := readInt(tx, keyTotal)
	if err != nil {
		return Snapshot{}, err
	}
	gamesCount, err := readInt(tx, keyGamesCount)
	if err != nil {
		return Snapshot{}, err
	}
	best, err := readBestGame(tx)
	if err != nil {
		return Snapshot{}, err
	}

	// RFC3339 keeps second precision; truncate so the stored record reads
	// back exactly equal.
	record := GameRecord{Correct: correct, Total: total, Date: s.now().UTC().Truncate(time.Second)}
	if record.Beats(best) {
		best = record
	}
	gamesCount++
	lifetimeCorrect += correct
	lifetimeTotal += total

	bestJSON, err := json.Marshal(best)
	if err != nil {
		return Snapshot{}, fmt.Errorf("failed to encode best game: %w", err)
	}

	for key, value := range map[string]string{
		keyCorrect:    strconv.Itoa(lifetimeCorrect),
		keyTotal:      strconv.Itoa(lifetimeTotal),
		keyGamesCount: strconv.Itoa(gamesCount),
		keyBestGame:   string(bestJSON),
	} {
		if _, err := tx.Exec(
			`INSERT INTO quiz_stats (key, value) VALUES ($1, $2)
			 ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value`,
			key, value,
		); err != nil {
			return Snapshot{}, fmt.Errorf("failed to store %s: %w", key, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return Snapshot{}, fmt.Errorf("failed to commit statistics: %w", err)
	}

	s.logger.Debug().
		Int("correct", correct).
		Int("total", total).
		Int("games", gamesCount).
		Msg("Recorded session")

	return Snapshot{
		GamesCount:    gamesCount,
		BestGame:      best,
		TotalAccuracy: accuracy(lifetimeCorrect, lifetimeTotal),
	}, nil
}

// Snapshot reads the current statistics.
func (s *SQLiteStore) Snapshot() (Snapshot, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return Snapshot{}, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	lifetimeCorrect, err := readInt(tx, keyCorrect)
	if err != nil {
		return Snapshot{}, err
	}
	lifetimeTotal, err := readInt(tx, keyTotal)
	if err != nil {
		return Snapshot{}, err
	}
	gamesCount, err := readInt(tx, keyGamesCount)
	if err != nil {
		return Snapshot{}, err
	}
	best, err := readBestGame(tx)
	if err != nil {
		return Snapshot{}, err
	}

	return Snapshot{
		GamesCount:    gamesCount,
		BestGame:      best,
		TotalAccuracy: accuracy(lifetimeCorrect, lifetimeTotal),
	}, nil
}

// Close closes the underlying database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func readValue(tx *sql.Tx, key string) (string, bool, error) {
	var value string
	err := tx.QueryRow(`SELECT value FROM quiz_stats WHERE key = $1`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to read %s: %w", key, err)
	}
	return value, true, nil
}

func readInt(tx *sql.Tx, key string) (int, error) {
	value, ok, err := readValue(tx, key)
	if err != nil || !ok {
		return 0, err
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("corrupt value for %s: %w", key, err)
	}
	return n, nil
}

func readBestGame(tx *sql.Tx) (GameRecord, error) {
	value, ok, err := readValue(tx, keyBestGame)
	if err != nil || !ok {
		return GameRecord{}, err
	}
	var record GameRecord
	if err := json.Unmarshal([]byte(value), &record); err != nil {
		return GameRecord{}, fmt.Errorf("corrupt best game record: %w", err)
	}
	return record, nil
}
