// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/dcohenb/olympics-scrapper/internal/domain/detail"
	"github.com/dcohenb/olympics-scrapper/internal/domain/model"
)

// DetailDependencies defines the interface for per-country detail
// queries.
type DetailDependencies interface {
	CountryDetail(ctx context.Context, noc string) ([]model.MedalDetailEntry, error)
}

// DetailHandler serves per-country medal detail, computed fresh on
// every request.
type DetailHandler struct {
	deps DetailDependencies
}

// NewDetailHandler creates a new detail handler.
func NewDetailHandler(deps DetailDependencies) *DetailHandler {
	return &DetailHandler{deps: deps}
}

// HandleGetCountryDetail handles GET /medals/{noc} requests. Unknown
// codes are a client error; upstream and reference failures surface as
// server errors with no partial results.
func (h *DetailHandler) HandleGetCountryDetail(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}

	noc := strings.TrimPrefix(r.URL.Path, "/medals/")
	if noc == "" || strings.Contains(noc, "/") {
		writeError(w, http.StatusBadRequest, "bad_request", ErrBadRequest)
		return
	}

	entries, err := h.deps.CountryDetail(r.Context(), noc)
	if err != nil {
		status, code := detailErrorStatus(err)
		writeError(w, status, code, err)
		return
	}
	writeJSON(w, http.StatusOK, entries)
}

// detailErrorStatus maps detail-query error kinds to HTTP responses.
func detailErrorStatus(err error) (int, string) {
	switch {
	case errors.Is(err, detail.ErrUnknownNOC):
		return http.StatusBadRequest, "unknown_noc"
	case errors.Is(err, detail.ErrReferenceLookup):
		return http.StatusInternalServerError, "reference_error"
	default:
		// Upstream transport failures and empty payloads.
		return http.StatusBadGateway, "upstream_error"
	}
}
