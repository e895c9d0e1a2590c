package stats

import "time"

// GameRecord is the result of one finished round. Immutable once created.
type GameRecord struct {
	Correct int       `json:"correct"`
	Total   int       `json:"total"`
	Date    time.Time `json:"date"`
}

// Beats reports whether this record replaces other as the best game.
// Strictly greater only: an equal correct count keeps the stored record.
func (r GameRecord) Beats(other GameRecord) bool {
	return r.Correct > other.Correct
}

// Snapshot is the durable statistics at one point in time.
type Snapshot struct {
	GamesCount    int
	BestGame      GameRecord
	TotalAccuracy float64
}

// Service tracks statistics across rounds. Record folds one finished
// round into the lifetime counters and the best-game record atomically,
// and returns the state after the update.
type Service interface {
	Record(correct, total int) (Snapshot, error)
	Snapshot() (Snapshot, error)
	Close() error
}

// accuracy is the lifetime percentage of correct answers; 0 before any
// question has been answered.
func accuracy(correct, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(correct) / float64(total) * 100
}
