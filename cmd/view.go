package cmd

import (
	"errors"

	"moviequiz/imdb"
	"moviequiz/quiz"
)

// eventKind tags a view event delivered over the console view's channel.
type eventKind int

const (
	eventLoadComplete eventKind = iota
	eventQuestion
	eventAnswer
	eventLoadFailed
	eventNoMoreQuestions
	eventRoundComplete
)

// viewEvent is one tagged notification from the session controller.
type viewEvent struct {
	kind     eventKind
	question quiz.Question
	number   int
	total    int
	correct  bool
	err      error
	summary  quiz.Summary
}

// consoleView forwards controller callbacks onto a channel so the
// interactive loop can consume them sequentially. The buffer covers the
// callbacks a single controller call can emit while the loop is still
// inside that call.
type consoleView struct {
	events chan viewEvent
}

func newConsoleView() *consoleView {
	return &consoleView{events: make(chan viewEvent, 8)}
}

func (v *consoleView) LoadComplete() {
	v.events <- viewEvent{kind: eventLoadComplete}
}

func (v *consoleView) QuestionReady(question quiz.Question, number, total int) {
	v.events <- viewEvent{kind: eventQuestion, question: question, number: number, total: total}
}

func (v *consoleView) AnswerResult(correct bool) {
	v.events <- viewEvent{kind: eventAnswer, correct: correct}
}

func (v *consoleView) LoadFailed(err error) {
	v.events <- viewEvent{kind: eventLoadFailed, err: err}
}

func (v *consoleView) NoMoreQuestions() {
	v.events <- viewEvent{kind: eventNoMoreQuestions}
}

func (v *consoleView) RoundComplete(summary quiz.Summary) {
	v.events <- viewEvent{kind: eventRoundComplete, summary: summary}
}

// errorMessage maps every error kind the engine can surface to a
// user-facing message.
func errorMessage(err error) string {
	var decodeErr *imdb.DecodeError
	var emptyCatalog *imdb.EmptyCatalogError

	switch {
	case errors.Is(err, imdb.ErrNoInternetConnection):
		return "No internet connection."
	case errors.Is(err, imdb.ErrRequestTimedOut):
		return "The request timed out."
	case errors.Is(err, imdb.ErrTooManyRequests):
		return "Too many requests, try again later."
	case errors.Is(err, imdb.ErrServiceUnavailable):
		return "The catalog service is unavailable."
	case errors.Is(err, imdb.ErrEmptyData):
		return "The server returned an empty response."
	case errors.As(err, &decodeErr):
		return "The catalog data could not be read."
	case errors.As(err, &emptyCatalog):
		if emptyCatalog.Message != "" {
			return "The catalog is empty: " + emptyCatalog.Message
		}
		return "The catalog is empty."
	case errors.Is(err, imdb.ErrUnknownError):
		return "The server returned an unexpected error."
	default:
		return "Something went wrong: " + err.Error()
	}
}
