// Package imdb fetches and decodes the remote top-movies catalog that the
// quiz draws its questions from.
//
// Client is a one-shot byte fetcher with a closed error taxonomy: every
// failure wraps one of the sentinel errors in errors.go, so callers can
// classify outcomes with errors.Is and no default case. Loader sits on top
// of Client and turns the raw payload into a typed Catalog, treating an
// empty item list as a failure that carries the server's own error message.
//
// Neither layer retries. A failed load or poster fetch is surfaced to the
// caller, which decides whether to re-invoke.
package imdb
