package quiz

import (
	"errors"
	"fmt"
	"strings"

	"github.com/expr-lang/expr"

	"moviequiz/imdb"
)

// MovieFilter reports whether a movie is eligible as a question source.
type MovieFilter func(imdb.Movie) bool

// filterEnv is the expression environment exposed to movie filters.
type filterEnv struct {
	Title  string  `expr:"Title"`
	Rating float64 `expr:"Rating"`
}

// CompileMovieFilter compiles an expr predicate over movie fields, e.g.
// `Rating >= 5.0` or `Title contains "The"`. The expression must evaluate
// to a boolean. A movie whose evaluation fails is treated as ineligible.
func CompileMovieFilter(expression string) (MovieFilter, error) {
	expression = strings.TrimSpace(expression)
	if expression == "" {
		return nil, errors.New("empty filter expression")
	}

	program, err := expr.Compile(expression,
		expr.Env(filterEnv{}),
		expr.AsBool(),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to compile filter %q: %w", expression, err)
	}

	return func(movie imdb.Movie) bool {
		out, err := expr.Run(program, filterEnv{
			Title:  movie.Title,
			Rating: movie.RatingValue(),
		})
		if err != nil {
			return false
		}
		result, ok := out.(bool)
		return ok && result
	}, nil
}
