package quiz

import (
	"context"
	"errors"
	"math/rand"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"moviequiz/imdb"
)

// stubLoader serves a canned catalog.
type stubLoader struct {
	catalog *imdb.Catalog
	err     error
}

func (s *stubLoader) Load(ctx context.Context) (*imdb.Catalog, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.catalog, nil
}

// stubPosters records which movies were fetched.
type stubPosters struct {
	err    error
	titles []string
}

func (s *stubPosters) FetchPoster(ctx context.Context, movie imdb.Movie) ([]byte, error) {
	if s.err != nil {
		return nil, s.err
	}
	s.titles = append(s.titles, movie.Title)
	return []byte("poster"), nil
}

func testCatalog(titles ...string) *imdb.Catalog {
	catalog := &imdb.Catalog{}
	for _, title := range titles {
		catalog.Items = append(catalog.Items, imdb.Movie{
			Title:  title,
			Image:  "http://x/" + title + "._V1_.jpg",
			Rating: "8.0",
		})
	}
	return catalog
}

func newTestFactory(t *testing.T, loader CatalogLoading, posters PosterFetching, opts ...FactoryOption) *Factory {
	t.Helper()
	opts = append(opts, WithRandSource(rand.NewSource(1)))
	return NewFactory(loader, posters, zerolog.Nop(), opts...)
}

func TestFactory_NextQuestion_EmptyList(t *testing.T) {
	factory := newTestFactory(t, &stubLoader{}, &stubPosters{})

	_, err := factory.NextQuestion(context.Background())
	assert.ErrorIs(t, err, ErrNoMoreQuestions)
}

func TestFactory_NextQuestion_NeverRepeats(t *testing.T) {
	posters := &stubPosters{}
	loader := &stubLoader{catalog: testCatalog("a", "b", "c", "d", "e")}
	factory := newTestFactory(t, loader, posters)
	ctx := context.Background()

	require.NoError(t, factory.LoadData(ctx))

	seen := make(map[string]bool)
	for i := 0; i < 5; i++ {
		question, err := factory.NextQuestion(ctx)
		require.NoError(t, err)
		assert.NotEmpty(t, question.Text)
		assert.Equal(t, []byte("poster"), question.Poster)
	}
	for _, title := range posters.titles {
		assert.False(t, seen[title], "movie %q drawn twice", title)
		seen[title] = true
	}

	// The list is exhausted now.
	_, err := factory.NextQuestion(ctx)
	assert.ErrorIs(t, err, ErrNoMoreQuestions)
}

func TestFactory_ResetState_AllowsRedraw(t *testing.T) {
	loader := &stubLoader{catalog: testCatalog("only")}
	factory := newTestFactory(t, loader, &stubPosters{})
	ctx := context.Background()

	require.NoError(t, factory.LoadData(ctx))

	_, err := factory.NextQuestion(ctx)
	require.NoError(t, err)
	_, err = factory.NextQuestion(ctx)
	require.ErrorIs(t, err, ErrNoMoreQuestions)

	factory.ResetState()

	_, err = factory.NextQuestion(ctx)
	assert.NoError(t, err)
}

func TestFactory_LoadData_KeepsAskedSet(t *testing.T) {
	loader := &stubLoader{catalog: testCatalog("a", "b")}
	factory := newTestFactory(t, loader, &stubPosters{})
	ctx := context.Background()

	require.NoError(t, factory.LoadData(ctx))
	for i := 0; i < 2; i++ {
		_, err := factory.NextQuestion(ctx)
		require.NoError(t, err)
	}

	// Reloading replaces the movie list but not the asked history.
	require.NoError(t, factory.LoadData(ctx))
	_, err := factory.NextQuestion(ctx)
	assert.ErrorIs(t, err, ErrNoMoreQuestions)
}

func TestFactory_NextQuestion_PosterFailureNotMarkedAsked(t *testing.T) {
	posters := &stubPosters{err: errors.New("fetch failed")}
	loader := &stubLoader{catalog: testCatalog("only")}
	factory := newTestFactory(t, loader, posters)
	ctx := context.Background()

	require.NoError(t, factory.LoadData(ctx))

	_, err := factory.NextQuestion(ctx)
	require.Error(t, err)
	require.NotErrorIs(t, err, ErrNoMoreQuestions)

	// Failure must not consume the movie: with the fetch working again
	// the single movie is still drawable.
	posters.err = nil
	question, err := factory.NextQuestion(ctx)
	require.NoError(t, err)
	assert.True(t, question.CorrectAnswer)
}

func TestFactory_LoadData_AppliesFilter(t *testing.T) {
	catalog := &imdb.Catalog{Items: []imdb.Movie{
		{Title: "good", Image: "http://x/a.jpg", Rating: "8.5"},
		{Title: "bad", Image: "http://x/b.jpg", Rating: "3.1"},
		{Title: "fine", Image: "http://x/c.jpg", Rating: "6.0"},
	}}
	filter, err := CompileMovieFilter("Rating >= 5.0")
	require.NoError(t, err)

	posters := &stubPosters{}
	factory := newTestFactory(t, &stubLoader{catalog: catalog}, posters, WithMovieFilter(filter))
	ctx := context.Background()

	require.NoError(t, factory.LoadData(ctx))

	for {
		if _, err := factory.NextQuestion(ctx); err != nil {
			require.ErrorIs(t, err, ErrNoMoreQuestions)
			break
		}
	}

	assert.ElementsMatch(t, []string{"good", "fine"}, posters.titles)
}

func TestFactory_LoadData_PassesThroughErrors(t *testing.T) {
	loadErr := &imdb.EmptyCatalogError{Message: "nothing here"}
	factory := newTestFactory(t, &stubLoader{err: loadErr}, &stubPosters{})

	err := factory.LoadData(context.Background())
	var emptyErr *imdb.EmptyCatalogError
	require.ErrorAs(t, err, &emptyErr)
	assert.Equal(t, "nothing here", emptyErr.Message)
}

func TestFactory_Compare_AlwaysTrue(t *testing.T) {
	factory := newTestFactory(t, &stubLoader{}, &stubPosters{})

	tests := []struct {
		name      string
		rating    float64
		threshold int
		word      string
	}{
		{name: "above threshold", rating: 9.9, threshold: 7, word: "greater than"},
		{name: "below threshold", rating: 2.0, threshold: 7, word: "less than"},
		{name: "missing rating", rating: 0, threshold: 6, word: "less than"},
		{name: "exact match", rating: 7, threshold: 7, word: "equal to"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			word, answer := factory.compare(tt.rating, tt.threshold)
			assert.Equal(t, tt.word, word)
			assert.True(t, answer, "default oracle must always produce a true answer")
		})
	}
}

func TestFactory_Compare_HonestAnswers(t *testing.T) {
	factory := newTestFactory(t, &stubLoader{}, &stubPosters{}, WithHonestAnswers())

	// Rating 2.0 against threshold 6: only "less than" is actually true.
	want := map[string]bool{
		"greater than": false,
		"less than":    true,
		"equal to":     false,
	}

	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		word, answer := factory.compare(2.0, 6)
		expected, ok := want[word]
		require.True(t, ok, "unexpected comparison %q", word)
		assert.Equal(t, expected, answer, "comparison %q", word)
		seen[word] = answer
	}

	// All three comparisons should come up over 100 draws.
	assert.Len(t, seen, 3)
}

func TestFactory_NextQuestion_TextAndThreshold(t *testing.T) {
	loader := &stubLoader{catalog: testCatalog("a")}
	factory := newTestFactory(t, loader, &stubPosters{})
	ctx := context.Background()

	require.NoError(t, factory.LoadData(ctx))

	question, err := factory.NextQuestion(ctx)
	require.NoError(t, err)
	assert.Regexp(t, `^Is this movie's rating (greater than|less than|equal to) [6-9]\?$`, question.Text)
	assert.True(t, question.CorrectAnswer)
}
