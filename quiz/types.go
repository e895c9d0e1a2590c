package quiz

import (
	"fmt"

	"moviequiz/stats"
)

// Question is a single yes/no quiz question: the movie poster, the
// question text and the answer the player is scored against. Immutable
// once produced.
type Question struct {
	Poster        []byte
	Text          string
	CorrectAnswer bool
}

// Summary is the result of a completed round, combined with the lifetime
// statistics after recording it.
type Summary struct {
	Correct       int
	Total         int
	GamesCount    int
	BestGame      stats.GameRecord
	TotalAccuracy float64
}

// State is the session controller's lifecycle state.
type State int

const (
	// StateIdle means no round is running and no data is loaded.
	StateIdle State = iota
	// StateInProgress means a round is running.
	StateInProgress
	// StateComplete means the round finished; restart re-enters InProgress.
	StateComplete
)

// String implements fmt.Stringer.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateInProgress:
		return "in progress"
	case StateComplete:
		return "complete"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}
