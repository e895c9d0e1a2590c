package quiz

import (
	"context"
	"errors"
	"sync"

	"github.com/rs/zerolog"

	"moviequiz/stats"
)

// DefaultQuestionsPerRound is the round length when none is configured.
const DefaultQuestionsPerRound = 10

// QuestionSource is the controller's view of the question factory.
// *Factory satisfies it.
type QuestionSource interface {
	LoadData(ctx context.Context) error
	NextQuestion(ctx context.Context) (Question, error)
	ResetState()
}

// View is the presentation collaborator the controller notifies. Callbacks
// are invoked while the controller holds its internal lock, so a View must
// not call back into the controller synchronously; hand the event off to
// another goroutine (or a buffered channel) instead.
type View interface {
	LoadComplete()
	QuestionReady(question Question, number, total int)
	AnswerResult(correct bool)
	LoadFailed(err error)
	NoMoreQuestions()
	RoundComplete(summary Summary)
}

// Controller drives a fixed-length round of questions: it owns the
// factory, scores answers, and folds finished rounds into the statistics
// store. Calls for one session must be serialized by the caller; results
// of loads and fetches still in flight when a round restarts are dropped
// via a per-round generation token.
type Controller struct {
	factory           QuestionSource
	stats             stats.Service
	view              View
	logger            zerolog.Logger
	questionsPerRound int

	mu           sync.Mutex
	state        State
	generation   uint64
	currentIndex int
	correct      int
	current      *Question
}

// NewController creates a session controller. A questionsPerRound of 0 or
// less falls back to DefaultQuestionsPerRound.
func NewController(factory QuestionSource, store stats.Service, view View, questionsPerRound int, logger zerolog.Logger) *Controller {
	if questionsPerRound <= 0 {
		questionsPerRound = DefaultQuestionsPerRound
	}
	return &Controller{
		factory:           factory,
		stats:             store,
		view:              view,
		logger:            logger,
		questionsPerRound: questionsPerRound,
		state:             StateIdle,
	}
}

// State returns the current session state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// RequestLoad starts a round: counters reset, the factory's asked-set is
// cleared and the catalog is (re)loaded. Any outstanding fetch from a
// previous round becomes stale.
func (c *Controller) RequestLoad(ctx context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.startLocked(ctx)
}

// RequestRestart re-enters a new round from the Complete state.
func (c *Controller) RequestRestart(ctx context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state != StateComplete {
		return
	}
	c.startLocked(ctx)
}

// RequestNextQuestion re-requests a question after a per-question fetch
// failure. It is a no-op unless a round is in progress with no question
// pending an answer.
func (c *Controller) RequestNextQuestion(ctx context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state != StateInProgress || c.current != nil {
		return
	}
	c.fetchQuestionLocked(ctx)
}

// SubmitAnswer scores the answer against the current question and either
// requests the next question or completes the round. Answers arriving with
// no question pending are ignored.
func (c *Controller) SubmitAnswer(ctx context.Context, answer bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != StateInProgress || c.current == nil {
		return
	}

	correct := answer == c.current.CorrectAnswer
	if correct {
		c.correct++
	}
	c.currentIndex++
	c.current = nil
	c.view.AnswerResult(correct)

	if c.currentIndex >= c.questionsPerRound {
		c.completeLocked()
		return
	}
	c.fetchQuestionLocked(ctx)
}

func (c *Controller) startLocked(ctx context.Context) {
	c.generation++
	generation := c.generation
	c.state = StateInProgress
	c.currentIndex = 0
	c.correct = 0
	c.current = nil
	c.factory.ResetState()

	go func() {
		err := c.factory.LoadData(ctx)

		c.mu.Lock()
		defer c.mu.Unlock()
		if generation != c.generation {
			return
		}
		if err != nil {
			c.logger.Error().Err(err).Msg("Failed to load movie catalog")
			c.state = StateIdle
			c.view.LoadFailed(err)
			return
		}
		c.view.LoadComplete()
		c.fetchQuestionLocked(ctx)
	}()
}

func (c *Controller) fetchQuestionLocked(ctx context.Context) {
	generation := c.generation

	go func() {
		question, err := c.factory.NextQuestion(ctx)

		c.mu.Lock()
		defer c.mu.Unlock()
		if generation != c.generation {
			return
		}

		switch {
		case errors.Is(err, ErrNoMoreQuestions):
			c.view.NoMoreQuestions()
			if c.currentIndex == 0 {
				// Nothing answered yet: no round to record.
				c.state = StateIdle
				return
			}
			c.completeLocked()
		case err != nil:
			// Per-question failure: round stays in progress, the caller
			// may retry via RequestNextQuestion.
			c.view.LoadFailed(err)
		default:
			c.current = &question
			c.view.QuestionReady(question, c.currentIndex+1, c.questionsPerRound)
		}
	}()
}

func (c *Controller) completeLocked() {
	c.state = StateComplete

	snapshot, err := c.stats.Record(c.correct, c.currentIndex)
	if err != nil {
		c.logger.Error().Err(err).Msg("Failed to record session statistics")
	}

	c.view.RoundComplete(Summary{
		Correct:       c.correct,
		Total:         c.currentIndex,
		GamesCount:    snapshot.GamesCount,
		BestGame:      snapshot.BestGame,
		TotalAccuracy: snapshot.TotalAccuracy,
	})
}
