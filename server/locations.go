package server

import (
	"sort"
	"strings"

	"github.com/jrsteele09/go-legal-client/api"
)

// LocationCatalog is the read-only state/city reference data.
type LocationCatalog struct {
	states []api.State
	cities map[string][]api.City // state ID to cities
}

// NewLocationCatalog builds a catalog; states are sorted by name.
func NewLocationCatalog(states []api.State, cities []api.City) *LocationCatalog {
	c := &LocationCatalog{
		states: append([]api.State(nil), states...),
		cities: make(map[string][]api.City),
	}
	sort.Slice(c.states, func(i, j int) bool { return c.states[i].Name < c.states[j].Name })
	for _, city := range cities {
		c.cities[city.StateID] = append(c.cities[city.StateID], city)
	}
	for id := range c.cities {
		list := c.cities[id]
		sort.Slice(list, func(i, j int) bool { return list[i].Name < list[j].Name })
	}
	return c
}

// DefaultLocationCatalog is the catalog the mock backend serves out of the box.
func DefaultLocationCatalog() *LocationCatalog {
	return NewLocationCatalog(
		[]api.State{
			{ID: "st-la", Name: "Lagos", Code: "LA"},
			{ID: "st-fc", Name: "Federal Capital Territory", Code: "FC"},
			{ID: "st-ri", Name: "Rivers", Code: "RI"},
			{ID: "st-ka", Name: "Kano", Code: "KN"},
			{ID: "st-oy", Name: "Oyo", Code: "OY"},
		},
		[]api.City{
			{ID: "ct-ikeja", StateID: "st-la", Name: "Ikeja"},
			{ID: "ct-lekki", StateID: "st-la", Name: "Lekki"},
			{ID: "ct-yaba", StateID: "st-la", Name: "Yaba"},
			{ID: "ct-garki", StateID: "st-fc", Name: "Garki"},
			{ID: "ct-wuse", StateID: "st-fc", Name: "Wuse"},
			{ID: "ct-ph", StateID: "st-ri", Name: "Port Harcourt"},
			{ID: "ct-kano", StateID: "st-ka", Name: "Kano"},
			{ID: "ct-ibadan", StateID: "st-oy", Name: "Ibadan"},
		},
	)
}

// States returns one page of states whose name contains query (case-insensitive).
func (c *LocationCatalog) States(query string, page, perPage int) api.PageData[api.State] {
	return paginate(filter(c.states, query, func(s api.State) string { return s.Name }), page, perPage)
}

// Cities returns one page of a state's cities. ok is false for unknown states.
func (c *LocationCatalog) Cities(stateID, query string, page, perPage int) (api.PageData[api.City], bool) {
	if !c.hasState(stateID) {
		return api.PageData[api.City]{}, false
	}
	return paginate(filter(c.cities[stateID], query, func(c api.City) string { return c.Name }), page, perPage), true
}

func (c *LocationCatalog) hasState(id string) bool {
	for _, s := range c.states {
		if s.ID == id {
			return true
		}
	}
	return false
}

func filter[T any](items []T, query string, name func(T) string) []T {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return items
	}
	out := make([]T, 0, len(items))
	for _, it := range items {
		if strings.Contains(strings.ToLower(name(it)), query) {
			out = append(out, it)
		}
	}
	return out
}

func paginate[T any](items []T, page, perPage int) api.PageData[T] {
	start := (page - 1) * perPage
	if start > len(items) {
		start = len(items)
	}
	end := start + perPage
	if end > len(items) {
		end = len(items)
	}
	return api.PageData[T]{
		Items:   append([]T{}, items[start:end]...),
		Page:    page,
		PerPage: perPage,
		Total:   len(items),
	}
}
