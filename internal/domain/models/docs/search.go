package docs

import (
	"fmt"
)

// Default search configuration values
const (
	DefaultSearchLimit  = 10
	DefaultSearchOffset = 0
	MaxSearchLimit      = 100
)

// SearchOptions configures a full-text search over published documents
type SearchOptions struct {
	// Query is the search string (required)
	Query string

	// Pagination
	Limit  int // Number of results to return (default: 10)
	Offset int // Number of results to skip (default: 0)
}

// ApplyDefaults fills in default values for unset fields
func (opts *SearchOptions) ApplyDefaults() {
	if opts.Limit <= 0 {
		opts.Limit = DefaultSearchLimit
	}
	if opts.Offset < 0 {
		opts.Offset = DefaultSearchOffset
	}
}

// Validate checks that required fields are set and values are reasonable
func (opts *SearchOptions) Validate() error {
	if opts.Query == "" {
		return fmt.Errorf("search query cannot be empty")
	}
	if opts.Limit > MaxSearchLimit {
		return fmt.Errorf("limit cannot exceed %d (requested: %d)", MaxSearchLimit, opts.Limit)
	}
	if opts.Offset < 0 {
		return fmt.Errorf("offset cannot be negative")
	}
	return nil
}

// SearchResult is a single ranked match
type SearchResult struct {
	ID         int64   `json:"id"`
	Title      string  `json:"title"`
	Slug       string  `json:"slug"`
	Excerpt    string  `json:"excerpt"`
	CategoryID string  `json:"categoryId"`
	Path       string  `json:"path"`
	Rank       float64 `json:"rank"`
}

// SearchResponse is the paginated search payload
type SearchResponse struct {
	Results []SearchResult `json:"results"`
	Total   int            `json:"total"`
	Query   string         `json:"query"`
	Page    int            `json:"page"`
	Limit   int            `json:"limit"`
}
