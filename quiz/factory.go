package quiz

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"moviequiz/imdb"
)

// Rating thresholds are drawn uniformly from [thresholdMin, thresholdMax].
const (
	thresholdMin = 6
	thresholdMax = 9
)

// CatalogLoading loads the movie catalog. *imdb.Loader satisfies it.
type CatalogLoading interface {
	Load(ctx context.Context) (*imdb.Catalog, error)
}

// PosterFetching fetches poster bytes for a movie. *imdb.Client satisfies it.
type PosterFetching interface {
	FetchPoster(ctx context.Context, movie imdb.Movie) ([]byte, error)
}

// Factory derives non-repeating rating-comparison questions from a loaded
// movie list. Loading the list and resetting the asked-set are deliberately
// independent: a reload does not clear history, only ResetState does.
type Factory struct {
	loader  CatalogLoading
	posters PosterFetching
	logger  zerolog.Logger
	filter  MovieFilter
	honest  bool

	mu     sync.Mutex
	rng    *rand.Rand
	movies []imdb.Movie
	asked  map[int]struct{}
}

// FactoryOption configures a Factory.
type FactoryOption func(*Factory)

// WithMovieFilter restricts which movies may become question sources.
func WithMovieFilter(filter MovieFilter) FactoryOption {
	return func(f *Factory) {
		f.filter = filter
	}
}

// WithHonestAnswers draws the comparison at random and computes the answer
// truthfully, instead of the default behavior where the comparison is
// chosen to match reality and every correct answer is true.
func WithHonestAnswers() FactoryOption {
	return func(f *Factory) {
		f.honest = true
	}
}

// WithRandSource sets the randomness source, for deterministic tests.
func WithRandSource(src rand.Source) FactoryOption {
	return func(f *Factory) {
		f.rng = rand.New(src)
	}
}

// NewFactory creates a question factory.
func NewFactory(loader CatalogLoading, posters PosterFetching, logger zerolog.Logger, opts ...FactoryOption) *Factory {
	f := &Factory{
		loader:  loader,
		posters: posters,
		logger:  logger,
		rng:     rand.New(rand.NewSource(time.Now().UnixNano())),
		asked:   make(map[int]struct{}),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// LoadData loads the catalog and replaces the internal movie list. The
// asked-set is left untouched. Loader errors pass through unchanged.
func (f *Factory) LoadData(ctx context.Context) error {
	catalog, err := f.loader.Load(ctx)
	if err != nil {
		return err
	}

	movies := catalog.Items
	if f.filter != nil {
		movies = make([]imdb.Movie, 0, len(catalog.Items))
		for _, movie := range catalog.Items {
			if f.filter(movie) {
				movies = append(movies, movie)
			}
		}
		f.logger.Debug().
			Int("total", len(catalog.Items)).
			Int("eligible", len(movies)).
			Msg("Applied movie filter")
	}

	f.mu.Lock()
	f.movies = movies
	f.mu.Unlock()
	return nil
}

// NextQuestion picks a not-yet-asked movie at random, fetches its poster
// and derives a yes/no rating-comparison question. Exhaustion of the movie
// list yields ErrNoMoreQuestions. A poster fetch failure propagates and
// does not mark the movie as asked, so it can be drawn again later.
func (f *Factory) NextQuestion(ctx context.Context) (Question, error) {
	f.mu.Lock()
	remaining := make([]int, 0, len(f.movies))
	for i := range f.movies {
		if _, ok := f.asked[i]; !ok {
			remaining = append(remaining, i)
		}
	}
	if len(remaining) == 0 {
		f.mu.Unlock()
		return Question{}, ErrNoMoreQuestions
	}

	index := remaining[f.rng.Intn(len(remaining))]
	movie := f.movies[index]
	threshold := thresholdMin + f.rng.Intn(thresholdMax-thresholdMin+1)
	comparison, correctAnswer := f.compare(movie.RatingValue(), threshold)
	f.mu.Unlock()

	poster, err := f.posters.FetchPoster(ctx, movie)
	if err != nil {
		f.logger.Warn().Err(err).Str("movie", movie.Title).Msg("Poster fetch failed")
		return Question{}, err
	}

	f.mu.Lock()
	f.asked[index] = struct{}{}
	f.mu.Unlock()

	return Question{
		Poster:        poster,
		Text:          fmt.Sprintf("Is this movie's rating %s %d?", comparison, threshold),
		CorrectAnswer: correctAnswer,
	}, nil
}

// compare picks the comparison word and the correct answer. The default
// mode mirrors the always-true oracle: the word is chosen to match the
// actual relationship, so the answer is always yes.
func (f *Factory) compare(rating float64, threshold int) (string, bool) {
	if f.honest {
		switch f.rng.Intn(3) {
		case 0:
			return "greater than", rating > float64(threshold)
		case 1:
			return "less than", rating < float64(threshold)
		default:
			return "equal to", rating == float64(threshold)
		}
	}

	switch {
	case rating > float64(threshold):
		return "greater than", true
	case rating < float64(threshold):
		return "less than", true
	default:
		return "equal to", true
	}
}

// ResetState clears the asked-set. The movie list is left untouched.
func (f *Factory) ResetState() {
	f.mu.Lock()
	f.asked = make(map[int]struct{})
	f.mu.Unlock()
}
