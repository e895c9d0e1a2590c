package quiz

import "errors"

// Common errors returned by the quiz engine.
var (
	// ErrNoMoreQuestions is returned when every loaded movie has already
	// been used in the current reset-cycle, or no movies are loaded at
	// all. It signals an exhausted resource, not a failure.
	ErrNoMoreQuestions = errors.New("no more questions available")
)
