package locations

import (
	"context"
	"strings"
	"time"
)

// DefaultSearchQuiet is how long typing must pause before a search is sent.
const DefaultSearchQuiet = 300 * time.Millisecond

// SearchResult is delivered for the latest query once typing pauses.
type SearchResult struct {
	Query string
	Page  *Page[State]
	Err   error
}

// StateSearch runs search-as-you-type against the states endpoint. Only the
// last query of a burst reaches the backend.
type StateSearch struct {
	client    *Client
	perPage   int
	debouncer *Debouncer[string]
}

// NewStateSearch calls onResult on a background goroutine for each settled
// query. ctx bounds every request.
func (c *Client) NewStateSearch(ctx context.Context, quiet time.Duration, perPage int, onResult func(SearchResult)) *StateSearch {
	s := &StateSearch{client: c, perPage: perPage}
	s.debouncer = NewDebouncer(quiet, func(query string) {
		page, err := c.SearchStates(ctx, query, 1, s.perPage)
		onResult(SearchResult{Query: query, Page: page, Err: err})
	})
	return s
}

// Type records the current contents of the search box.
func (s *StateSearch) Type(query string) {
	s.debouncer.Trigger(strings.TrimSpace(query))
}

// Stop drops any pending search.
func (s *StateSearch) Stop() {
	s.debouncer.Stop()
}
