package tally_test

import (
	"encoding/json"
	"testing"

	"github.com/dcohenb/olympics-scrapper/internal/domain/model"
	"github.com/dcohenb/olympics-scrapper/internal/domain/tally"
	. "github.com/smartystreets/goconvey/convey"
)

func countryTable() []model.Country {
	return []model.Country{
		{NOC: "USA", Name: "United States", Flag: "flags/usa.png"},
		{NOC: "GBR", Name: "Great Britain", Flag: "flags/gbr.png"},
		{NOC: "CHN", Name: "China", Flag: "flags/chn.png"},
		{NOC: "FJI", Name: "Fiji", Flag: "flags/fji.png"},
	}
}

func decodeEntries(t *testing.T, payload string) []model.TallyEntry {
	t.Helper()
	var entries []model.TallyEntry
	if err := json.Unmarshal([]byte(payload), &entries); err != nil {
		t.Fatalf("decoding fixture: %v", err)
	}
	return entries
}

func TestBuildLeaderboard(t *testing.T) {
	Convey("Given a tally payload and a country table", t, func() {
		entries := decodeEntries(t, `[
			{"noc_code":"USA","me_gold":"5","me_silver":"2","me_bronze":"1","me_tot":"9"},
			{"noc_code":"GBR","me_gold":"3","me_silver":"3","me_bronze":"3","me_tot":"9"},
			{"noc_code":"CHN","me_gold":2,"me_silver":1,"me_bronze":0,"me_tot":3}
		]`)
		countries := countryTable()

		Convey("When building the leaderboard", func() {
			rows := tally.BuildLeaderboard(entries, countries)

			Convey("Then it returns exactly one row per country", func() {
				So(len(rows), ShouldEqual, len(countries))
			})

			Convey("And counts are non-negative and sorted by total descending", func() {
				for i, row := range rows {
					So(row.Gold, ShouldBeGreaterThanOrEqualTo, 0)
					So(row.Silver, ShouldBeGreaterThanOrEqualTo, 0)
					So(row.Bronze, ShouldBeGreaterThanOrEqualTo, 0)
					So(row.Total, ShouldBeGreaterThanOrEqualTo, 0)
					if i > 0 {
						So(rows[i-1].Total, ShouldBeGreaterThanOrEqualTo, row.Total)
					}
				}
			})

			Convey("And ties keep their relative country-table order", func() {
				// USA and GBR both total 9; USA precedes GBR in the table.
				So(rows[0].NOC, ShouldEqual, "USA")
				So(rows[1].NOC, ShouldEqual, "GBR")
			})

			Convey("And a country absent from the payload gets an all-zero row", func() {
				last := rows[len(rows)-1]
				So(last.NOC, ShouldEqual, "FJI")
				So(last.Gold, ShouldEqual, 0)
				So(last.Silver, ShouldEqual, 0)
				So(last.Bronze, ShouldEqual, 0)
				So(last.Total, ShouldEqual, 0)
			})

			Convey("And country metadata is joined onto the row", func() {
				So(rows[0].Name, ShouldEqual, "United States")
				So(rows[0].Flag, ShouldEqual, "flags/usa.png")
			})
		})

		Convey("When building the leaderboard twice with identical inputs", func() {
			first := tally.BuildLeaderboard(entries, countries)
			second := tally.BuildLeaderboard(entries, countries)

			Convey("Then the outputs are identical", func() {
				So(second, ShouldResemble, first)
			})
		})
	})

	Convey("Given loosely typed upstream counts", t, func() {
		countries := []model.Country{{NOC: "USA", Name: "United States", Flag: "flags/usa.png"}}

		Convey("When a count is non-numeric", func() {
			entries := decodeEntries(t, `[{"noc_code":"USA","me_gold":"abc","me_tot":"4"}]`)
			rows := tally.BuildLeaderboard(entries, countries)

			Convey("Then it degrades to zero instead of failing", func() {
				So(rows[0].Gold, ShouldEqual, 0)
			})
		})

		Convey("When a count has trailing garbage after digits", func() {
			entries := decodeEntries(t, `[{"noc_code":"USA","me_gold":"12th"}]`)
			rows := tally.BuildLeaderboard(entries, countries)

			Convey("Then the leading digits are kept", func() {
				So(rows[0].Gold, ShouldEqual, 12)
			})
		})

		Convey("When counts are absent or null", func() {
			entries := decodeEntries(t, `[{"noc_code":"USA","me_silver":null}]`)
			rows := tally.BuildLeaderboard(entries, countries)

			Convey("Then every missing field parses to zero", func() {
				So(rows[0].Gold, ShouldEqual, 0)
				So(rows[0].Silver, ShouldEqual, 0)
				So(rows[0].Bronze, ShouldEqual, 0)
				So(rows[0].Total, ShouldEqual, 0)
			})
		})

		Convey("When the feed total disagrees with the computed sum", func() {
			entries := decodeEntries(t, `[{"noc_code":"USA","me_gold":"5","me_silver":"2","me_bronze":"1","me_tot":"7"}]`)
			rows := tally.BuildLeaderboard(entries, countries)

			Convey("Then the feed total is kept verbatim", func() {
				So(rows[0].Gold, ShouldEqual, 5)
				So(rows[0].Silver, ShouldEqual, 2)
				So(rows[0].Bronze, ShouldEqual, 1)
				So(rows[0].Total, ShouldEqual, 7)
			})
		})
	})
}
