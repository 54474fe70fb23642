package search

import "context"

// Commit is the tagged result of a committed search: either the raw text the
// user submitted or a structured place picked from the suggestion list.
type Commit interface {
	isCommit()
}

// ByText carries a raw trimmed search string.
type ByText struct {
	Text string
}

// ByPlace carries a place resolved from a suggestion.
type ByPlace struct {
	CityName  string
	Latitude  float64
	Longitude float64
}

func (ByText) isCommit()  {}
func (ByPlace) isCommit() {}

// Sink receives committed searches. Errors propagate back to the caller of
// the committing operation; the engine only guarantees its loading flag is
// released either way.
type Sink func(ctx context.Context, commit Commit) error
