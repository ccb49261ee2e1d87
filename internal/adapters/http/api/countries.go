// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"net/http"

	"github.com/dcohenb/olympics-scrapper/internal/domain/model"
)

// CountriesDependencies defines the interface for country-table reads.
type CountriesDependencies interface {
	Countries() []model.Country
}

// CountriesHandler serves the static country table.
type CountriesHandler struct {
	deps CountriesDependencies
}

// NewCountriesHandler creates a new countries handler.
func NewCountriesHandler(deps CountriesDependencies) *CountriesHandler {
	return &CountriesHandler{deps: deps}
}

// HandleGetCountries handles GET /countries requests.
func (h *CountriesHandler) HandleGetCountries(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	writeJSON(w, http.StatusOK, h.deps.Countries())
}
