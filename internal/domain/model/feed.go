package model

import (
	"bytes"
	"strconv"
)

// TallyEntry mirrors one element of the upstream medalsList. Counts
// arrive as loosely typed values (strings, numbers or absent) and
// decode through LooseCount.
type TallyEntry struct {
	NOCCode string     `json:"noc_code"`
	Bronze  LooseCount `json:"me_bronze"`
	Silver  LooseCount `json:"me_silver"`
	Gold    LooseCount `json:"me_gold"`
	Total   LooseCount `json:"me_tot"`
}

// RawMedal mirrors one competitor-medal record of the upstream
// per-country detail document, before normalization. CompetitorType is
// "A" for athletes and "T" for teams.
type RawMedal struct {
	MedalCode      string `json:"medal_code"`
	DocumentCode   string `json:"document_code"`
	CompetitorCode string `json:"competitor_code"`
	CompetitorType string `json:"competitor_type"`
}

// CountryMedals holds the three per-medal lists of the upstream detail
// document.
type CountryMedals struct {
	Bronze []RawMedal `json:"bronze_medals"`
	Silver []RawMedal `json:"silver_medals"`
	Gold   []RawMedal `json:"gold_medals"`
}

// LooseCount decodes an upstream count that may be a JSON number, a
// numeric-ish string, null or absent. Anything that does not start with
// digits becomes 0; a value like "12th" parses its leading digits.
type LooseCount int

// UnmarshalJSON implements the default-to-zero decoding policy.
func (c *LooseCount) UnmarshalJSON(b []byte) error {
	s := string(bytes.Trim(b, `"`))
	if s == "null" {
		*c = 0
		return nil
	}
	*c = LooseCount(leadingInt(s))
	return nil
}

// Int returns the decoded count.
func (c LooseCount) Int() int { return int(c) }

// leadingInt parses the longest run of leading digits, returning 0 when
// there is none. Upstream counts are never negative so no sign handling.
func leadingInt(s string) int {
	end := 0
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == 0 {
		return 0
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0
	}
	return n
}
