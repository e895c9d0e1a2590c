// Package quiz contains the question factory and the session state
// machine.
//
// Factory turns the loaded movie catalog into randomized, non-repeating
// yes/no rating-comparison questions. Controller runs a fixed-length round
// over those questions, scores answers, and records finished rounds into
// the statistics store. The presentation layer plugs in through the View
// interface and drives the controller through RequestLoad, SubmitAnswer,
// RequestNextQuestion and RequestRestart.
//
// Note on the default question oracle: the comparison word is chosen to
// match the movie's actual rating, so every generated question's correct
// answer is yes. That mirrors the behavior this engine was built to
// reproduce; WithHonestAnswers switches to drawing the comparison at
// random and computing the answer truthfully.
package quiz
