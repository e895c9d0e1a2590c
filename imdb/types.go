package imdb

import (
	"net/url"
	"strconv"
	"strings"
)

// Catalog is the decoded Top-250 payload: the movie list plus the
// server-side status message that accompanies it.
type Catalog struct {
	Items        []Movie `json:"items"`
	ErrorMessage string  `json:"errorMessage"`
}

// Movie is a single catalog entry. Rating may be empty or non-numeric;
// use RatingValue for the parsed form.
type Movie struct {
	Title  string `json:"fullTitle"`
	Image  string `json:"image"`
	Rating string `json:"imDbRating"`
}

// resizedPosterSuffix selects a 600px-wide poster variant.
const resizedPosterSuffix = "._V0_UX600_.jpg"

// ResizedPosterURL rewrites the poster URL to the 600px variant by
// truncating at the first "._" size marker. Falls back to the original
// URL when the rewritten string does not parse.
func (m Movie) ResizedPosterURL() string {
	base, _, found := strings.Cut(m.Image, "._")
	if !found {
		return m.Image
	}

	resized := base + resizedPosterSuffix
	if _, err := url.Parse(resized); err != nil {
		return m.Image
	}
	return resized
}

// RatingValue parses the rating string, treating missing or non-numeric
// ratings as 0.
func (m Movie) RatingValue() float64 {
	rating, err := strconv.ParseFloat(m.Rating, 64)
	if err != nil {
		return 0
	}
	return rating
}
