// Package repository defines the reference store interface and its
// SQLite implementation. The store maps short codes to descriptive
// metadata for athletes, teams and event units, imported once from the
// vendor ODF dictionaries.
package repository

import (
	"context"

	"github.com/dcohenb/olympics-scrapper/internal/domain/model"
)

// Store provides read access to the reference data. Each lookup takes a
// set of codes and returns the matching rows keyed by code; codes with
// no match are simply absent from the result. An empty code set returns
// an empty result without touching the database.
type Store interface {
	// AthletesByCodes resolves athlete competitor codes.
	AthletesByCodes(ctx context.Context, codes []string) (map[string]model.Athlete, error)

	// TeamsByCodes resolves team competitor codes.
	TeamsByCodes(ctx context.Context, codes []string) (map[string]model.Team, error)

	// UnitsByCodes resolves event document codes against the DT_CODES
	// dictionary.
	UnitsByCodes(ctx context.Context, codes []string) (map[string]model.EventUnit, error)

	// Close releases the underlying database handle.
	Close() error
}
