package server

import (
	"net/http"
	"strconv"
)

const (
	defaultPerPage = 20
	maxPerPage     = 100
)

// StatesHandler lists states (GET /locations/states?page=&per_page=&q=)
func (s *Server) StatesHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		page, perPage := pageParams(r)
		writeSuccess(w, http.StatusOK, "States", s.repos.Locations.States(r.URL.Query().Get("q"), page, perPage))
	}
}

// CitiesHandler lists a state's cities (GET /locations/states/{stateID}/cities)
func (s *Server) CitiesHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		page, perPage := pageParams(r)
		data, ok := s.repos.Locations.Cities(r.PathValue("stateID"), r.URL.Query().Get("q"), page, perPage)
		if !ok {
			writeFailure(w, http.StatusNotFound, "State not found")
			return
		}
		writeSuccess(w, http.StatusOK, "Cities", data)
	}
}

func pageParams(r *http.Request) (page, perPage int) {
	page, err := strconv.Atoi(r.URL.Query().Get("page"))
	if err != nil || page < 1 {
		page = 1
	}
	perPage, err = strconv.Atoi(r.URL.Query().Get("per_page"))
	if err != nil || perPage < 1 {
		perPage = defaultPerPage
	}
	if perPage > maxPerPage {
		perPage = maxPerPage
	}
	return page, perPage
}
