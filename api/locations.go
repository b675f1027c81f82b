package api

// State is a first-level location.
type State struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Code string `json:"code,omitempty"`
}

// City belongs to a State.
type City struct {
	ID      string `json:"id"`
	StateID string `json:"state_id"`
	Name    string `json:"name"`
}

// PageData is the Data of a paginated list endpoint.
type PageData[T any] struct {
	Items   []T `json:"items"`
	Page    int `json:"page"`
	PerPage int `json:"per_page"`
	Total   int `json:"total"`
}

// HasMore reports whether pages exist after this one.
func (p PageData[T]) HasMore() bool {
	return p.Page*p.PerPage < p.Total
}
