// Package detail builds normalized per-country medal records by joining
// the upstream detail document against the reference store.
package detail

import (
	"context"
	"fmt"
	"strings"

	"github.com/dcohenb/olympics-scrapper/internal/countries"
	"github.com/dcohenb/olympics-scrapper/internal/domain/model"

	"golang.org/x/sync/errgroup"
)

// Upstream medal-type codes carry an ME_ prefix (ME_GOLD, ME_SILVER,
// ME_BRONZE); the published records use the bare lowercase name.
const medalCodePrefix = "ME_"

// Competitor type discriminators used by the upstream feed.
const (
	competitorAthlete = "A"
	competitorTeam    = "T"
)

// unknownName is the placeholder for codes the reference store cannot
// resolve. Missing reference data degrades a single entry, never the
// whole request.
const unknownName = "unknown"

// Feed is the slice of the upstream client the builder needs.
type Feed interface {
	FetchCountryDetail(ctx context.Context, noc string) (*model.CountryMedals, error)
}

// RefStore is the slice of the reference store the builder needs.
type RefStore interface {
	AthletesByCodes(ctx context.Context, codes []string) (map[string]model.Athlete, error)
	TeamsByCodes(ctx context.Context, codes []string) (map[string]model.Team, error)
	UnitsByCodes(ctx context.Context, codes []string) (map[string]model.EventUnit, error)
}

// Builder computes per-country medal detail fresh on every call.
// Results are never cached.
type Builder struct {
	table *countries.Table
	feed  Feed
	store RefStore
}

// NewBuilder creates a detail builder.
func NewBuilder(table *countries.Table, feed Feed, store RefStore) *Builder {
	return &Builder{table: table, feed: feed, store: store}
}

// Build validates the NOC code, fetches the upstream document, resolves
// the referenced codes and returns fully normalized entries. Unknown
// codes fail fast before any network or store call.
func (b *Builder) Build(ctx context.Context, noc string) ([]model.MedalDetailEntry, error) {
	if !b.table.Contains(noc) {
		return nil, fmt.Errorf("%w: %q", ErrUnknownNOC, noc)
	}

	medals, err := b.feed.FetchCountryDetail(ctx, noc)
	if err != nil {
		return nil, err
	}

	flat := flatten(medals)
	athletes, teams, units, err := b.lookupReferences(ctx, flat)
	if err != nil {
		return nil, err
	}

	entries := make([]model.MedalDetailEntry, 0, len(flat))
	for _, raw := range flat {
		entries = append(entries, normalize(raw, athletes, teams, units))
	}
	return entries, nil
}

// flatten joins the three per-medal lists into one sequence.
func flatten(m *model.CountryMedals) []model.RawMedal {
	flat := make([]model.RawMedal, 0, len(m.Bronze)+len(m.Silver)+len(m.Gold))
	flat = append(flat, m.Bronze...)
	flat = append(flat, m.Silver...)
	flat = append(flat, m.Gold...)
	return flat
}

// lookupReferences fans out the three independent store lookups and
// joins them. Completion order is not guaranteed; any failure fails the
// whole operation.
func (b *Builder) lookupReferences(ctx context.Context, flat []model.RawMedal) (
	map[string]model.Athlete, map[string]model.Team, map[string]model.EventUnit, error,
) {
	athleteCodes, teamCodes, unitCodes := collectCodes(flat)

	var (
		athletes map[string]model.Athlete
		teams    map[string]model.Team
		units    map[string]model.EventUnit
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		athletes, err = b.store.AthletesByCodes(gctx, athleteCodes)
		return err
	})
	g.Go(func() (err error) {
		teams, err = b.store.TeamsByCodes(gctx, teamCodes)
		return err
	})
	g.Go(func() (err error) {
		units, err = b.store.UnitsByCodes(gctx, unitCodes)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, nil, nil, fmt.Errorf("%w: %v", ErrReferenceLookup, err)
	}
	return athletes, teams, units, nil
}

// collectCodes gathers the distinct code sets referenced by the
// flattened list, split by competitor type.
func collectCodes(flat []model.RawMedal) (athletes, teams, units []string) {
	seenCompetitor := make(map[string]bool, len(flat))
	seenUnit := make(map[string]bool, len(flat))

	for _, raw := range flat {
		if raw.CompetitorCode != "" && !seenCompetitor[raw.CompetitorCode] {
			seenCompetitor[raw.CompetitorCode] = true
			if raw.CompetitorType == competitorAthlete {
				athletes = append(athletes, raw.CompetitorCode)
			} else {
				teams = append(teams, raw.CompetitorCode)
			}
		}
		if raw.DocumentCode != "" && !seenUnit[raw.DocumentCode] {
			seenUnit[raw.DocumentCode] = true
			units = append(units, raw.DocumentCode)
		}
	}
	return athletes, teams, units
}

// normalize produces the published entry shape. The raw feed keys are
// dropped; exactly one of athlete or team is set.
func normalize(
	raw model.RawMedal,
	athletes map[string]model.Athlete,
	teams map[string]model.Team,
	units map[string]model.EventUnit,
) model.MedalDetailEntry {
	entry := model.MedalDetailEntry{
		Medal: strings.ToLower(strings.TrimPrefix(raw.MedalCode, medalCodePrefix)),
		Event: model.EventInfo{Name: unknownName},
	}

	if u, ok := units[raw.DocumentCode]; ok {
		name := u.LongDesc
		if name == "" {
			name = u.ShortDesc
		}
		entry.Event = model.EventInfo{Name: name, Discipline: u.DisciplineCode}
	}

	if raw.CompetitorType == competitorAthlete {
		ref := model.AthleteRef{Name: unknownName}
		if a, ok := athletes[raw.CompetitorCode]; ok {
			ref = model.AthleteRef{Name: a.Name, NOC: a.NOC, Gender: a.Gender}
		}
		entry.Athlete = &ref
		return entry
	}

	ref := model.TeamRef{Name: unknownName}
	if t, ok := teams[raw.CompetitorCode]; ok {
		ref = model.TeamRef{Name: t.Name, Gender: t.Gender, Discipline: t.Discipline}
	}
	entry.Team = &ref
	return entry
}
