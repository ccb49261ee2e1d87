// Package tally joins the raw upstream medal tally against the static
// country table to produce the published leaderboard.
package tally

import (
	"sort"

	"github.com/dcohenb/olympics-scrapper/internal/domain/model"
)

// BuildLeaderboard returns one row per country, in country-table
// cardinality, with counts taken from the matching tally entry. A
// country absent from the tally keeps an all-zero row. Rows are sorted
// by total descending; ties keep their relative input order.
//
// Pure function: no I/O, deterministic given its inputs.
func BuildLeaderboard(entries []model.TallyEntry, countries []model.Country) []model.LeaderboardRow {
	byNOC := make(map[string]model.TallyEntry, len(entries))
	for _, e := range entries {
		byNOC[e.NOCCode] = e
	}

	rows := make([]model.LeaderboardRow, len(countries))
	for i, c := range countries {
		e := byNOC[c.NOC] // zero value is a valid all-zero entry
		rows[i] = model.LeaderboardRow{
			Flag:   c.Flag,
			NOC:    c.NOC,
			Name:   c.Name,
			Bronze: e.Bronze.Int(),
			Silver: e.Silver.Int(),
			Gold:   e.Gold.Int(),
			// Total is taken verbatim from the feed rather than summed:
			// upstream may report adjusted totals for shared medals.
			Total: e.Total.Int(),
		}
	}

	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Total > rows[j].Total
	})
	return rows
}
