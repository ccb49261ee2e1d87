// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/dcohenb/olympics-scrapper/internal/domain/model"
)

// Dependencies required by HTTP handlers. Using an interface bundle
// keeps the handler layer loosely coupled to the app service.
type Dependencies interface {
	// Snapshot returns the currently published leaderboard snapshot.
	Snapshot() model.Snapshot

	// Countries returns the static country table.
	Countries() []model.Country

	// CountryDetail computes per-country medal detail fresh per call.
	CountryDetail(ctx context.Context, noc string) ([]model.MedalDetailEntry, error)
}

// Server wires HTTP routes for the read-only query surface.
type Server struct {
	rootHandler      *RootHandler
	healthHandler    *HealthHandler
	statsHandler     *StatsHandler
	medalsHandler    *MedalsHandler
	countriesHandler *CountriesHandler
	detailHandler    *DetailHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider) *Server {
	return &Server{
		rootHandler:      NewRootHandler(),
		healthHandler:    NewHealthHandler(),
		statsHandler:     NewStatsHandler(statsProvider),
		medalsHandler:    NewMedalsHandler(deps),
		countriesHandler: NewCountriesHandler(deps),
		detailHandler:    NewDetailHandler(deps),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(ctx context.Context, mux *http.ServeMux) {
	// Specific paths first (most specific to least specific)
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("/countries", MetricsMiddleware(RequestIDMiddleware(s.countriesHandler.HandleGetCountries), "countries"))
	mux.HandleFunc("/medals", MetricsMiddleware(RequestIDMiddleware(s.medalsHandler.HandleGetMedals), "medals"))
	mux.HandleFunc("/medals/", MetricsMiddleware(RequestIDMiddleware(s.detailHandler.HandleGetCountryDetail), "medals_detail"))
	mux.HandleFunc("/", s.rootHandler.HandleRoot)
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}
