// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"net/http"

	"github.com/dcohenb/olympics-scrapper/internal/domain/model"
)

// MedalsDependencies defines the interface for snapshot reads.
type MedalsDependencies interface {
	Snapshot() model.Snapshot
}

// MedalsHandler serves the published leaderboard snapshot.
type MedalsHandler struct {
	deps MedalsDependencies
}

// NewMedalsHandler creates a new medals handler.
func NewMedalsHandler(deps MedalsDependencies) *MedalsHandler {
	return &MedalsHandler{deps: deps}
}

// HandleGetMedals handles GET /medals requests. It always answers from
// the cache and never blocks on the upstream feed; before the first
// refresh it returns the empty default shape.
func (h *MedalsHandler) HandleGetMedals(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	writeJSON(w, http.StatusOK, h.deps.Snapshot())
}
