// Package model contains domain models passed between layers.
package model

import "time"

// Country is one row of the static country table: a 3-letter NOC code,
// a display name and a flag asset reference. Loaded once at startup.
type Country struct {
	NOC  string `json:"noc"`
	Name string `json:"name"`
	Flag string `json:"flag"`
}

// LeaderboardRow is the published per-country medal count. Countries
// absent from the upstream tally keep an all-zero row.
type LeaderboardRow struct {
	Flag   string `json:"flag"`
	NOC    string `json:"noc"`
	Name   string `json:"name"`
	Bronze int    `json:"bronze"`
	Silver int    `json:"silver"`
	Gold   int    `json:"gold"`
	Total  int    `json:"total"`
}

// Snapshot is the complete published leaderboard state at one point in
// time. It is replaced wholesale on every successful refresh and never
// mutated in place.
type Snapshot struct {
	LastUpdated    time.Time        `json:"lastUpdated"`
	NextUpdate     time.Time        `json:"nextUpdate"`
	TotalCountries int              `json:"totalCountries"`
	Leaderboard    []LeaderboardRow `json:"leaderboard"`
}

// EmptySnapshot is the default shape served before the first refresh
// completes.
func EmptySnapshot() Snapshot {
	return Snapshot{Leaderboard: []LeaderboardRow{}}
}

// EventInfo describes the event a medal was won in, resolved from the
// reference store by document code.
type EventInfo struct {
	Name       string `json:"name"`
	Discipline string `json:"discipline,omitempty"`
}

// AthleteRef is the athlete shape embedded in a detail entry. The store
// code is deliberately stripped.
type AthleteRef struct {
	Name   string `json:"name"`
	NOC    string `json:"noc,omitempty"`
	Gender string `json:"gender,omitempty"`
}

// TeamRef is the team shape embedded in a detail entry.
type TeamRef struct {
	Name       string `json:"name"`
	Gender     string `json:"gender,omitempty"`
	Discipline string `json:"discipline,omitempty"`
}

// MedalDetailEntry is one fully normalized competitor-medal record for
// the per-country detail query. Exactly one of Athlete or Team is set;
// the raw feed keys (medal_code, document_code, competitor_code) never
// appear in it.
type MedalDetailEntry struct {
	Medal   string      `json:"medal"`
	Event   EventInfo   `json:"event"`
	Athlete *AthleteRef `json:"athlete,omitempty"`
	Team    *TeamRef    `json:"team,omitempty"`
}

// Athlete is a reference-store row keyed by competitor code.
type Athlete struct {
	Code   string
	Name   string
	NOC    string
	Gender string
}

// Team is a reference-store row keyed by competitor code.
type Team struct {
	Code       string
	Name       string
	Gender     string
	Discipline string
}

// EventUnit is a reference-store row from the ODF DT_CODES dictionary,
// keyed by document code.
type EventUnit struct {
	DocumentCode   string
	DisciplineCode string
	ShortDesc      string
	LongDesc       string
}
