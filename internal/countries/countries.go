// Package countries holds the static country table embedded in the
// binary. The table is immutable after load.
package countries

import (
	"encoding/json"
	"fmt"

	"github.com/dcohenb/olympics-scrapper/internal/domain/model"

	_ "embed"
)

//go:embed countries.json
var rawCountries []byte

// Table is the loaded country table with a code index for validation.
type Table struct {
	rows  []model.Country
	byNOC map[string]model.Country
}

// New parses the embedded country table.
func New() (*Table, error) {
	var rows []model.Country
	if err := json.Unmarshal(rawCountries, &rows); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadTable, err)
	}
	if len(rows) == 0 {
		return nil, ErrBadTable
	}
	t := &Table{
		rows:  rows,
		byNOC: make(map[string]model.Country, len(rows)),
	}
	for _, c := range rows {
		t.byNOC[c.NOC] = c
	}
	return t, nil
}

// All returns the table rows in their embedded order.
func (t *Table) All() []model.Country { return t.rows }

// Len returns the number of countries.
func (t *Table) Len() int { return len(t.rows) }

// Contains reports whether the NOC code is in the table.
func (t *Table) Contains(noc string) bool {
	_, ok := t.byNOC[noc]
	return ok
}
