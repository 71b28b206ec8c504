// Package search finds web content related to a pull request for article
// enrichment.
package search

import "context"

// Result is one web search hit.
type Result struct {
	Title   string `json:"title"`
	URL     string `json:"url"`
	Snippet string `json:"snippet"`
}

// Searcher returns up to count results for a query. An empty slice with a
// nil error means "nothing found" and callers skip enrichment.
type Searcher interface {
	Search(ctx context.Context, query string, count int) ([]Result, error)
}

// Disabled is the no-backend Searcher: every query yields an empty result
// set, so the enrichment stage becomes a no-op.
type Disabled struct{}

func (Disabled) Search(context.Context, string, int) ([]Result, error) {
	return nil, nil
}
