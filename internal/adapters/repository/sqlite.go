package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/dcohenb/olympics-scrapper/internal/domain/model"
	"github.com/dcohenb/olympics-scrapper/pkg/metrics"

	_ "github.com/mattn/go-sqlite3"
)

// SQLiteStore implements Store over a local SQLite file populated by
// the one-time ODF import.
type SQLiteStore struct {
	db *sql.DB
}

// Option applies a configuration option to the SQLiteStore.
type Option func(*SQLiteStore)

// Open opens the reference database and verifies the connection.
func Open(path string, opts ...Option) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrOpen, err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: %v", ErrOpen, err)
	}

	s := &SQLiteStore{db: db}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Close releases the database handle.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// AthletesByCodes resolves athlete competitor codes.
func (s *SQLiteStore) AthletesByCodes(ctx context.Context, codes []string) (map[string]model.Athlete, error) {
	out := make(map[string]model.Athlete, len(codes))
	if len(codes) == 0 {
		return out, nil
	}

	defer observeLookup("athletes", time.Now())
	query := `SELECT code, name, noc, gender FROM athletes WHERE code IN (` + placeholders(len(codes)) + `)`

	rows, err := s.db.QueryContext(ctx, query, asArgs(codes)...)
	if err != nil {
		return nil, fmt.Errorf("%w: athletes: %v", ErrLookup, err)
	}
	defer rows.Close()

	for rows.Next() {
		var a model.Athlete
		if err := rows.Scan(&a.Code, &a.Name, &a.NOC, &a.Gender); err != nil {
			return nil, fmt.Errorf("%w: scanning athlete: %v", ErrLookup, err)
		}
		out[a.Code] = a
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: athletes: %v", ErrLookup, err)
	}
	return out, nil
}

// TeamsByCodes resolves team competitor codes.
func (s *SQLiteStore) TeamsByCodes(ctx context.Context, codes []string) (map[string]model.Team, error) {
	out := make(map[string]model.Team, len(codes))
	if len(codes) == 0 {
		return out, nil
	}

	defer observeLookup("teams", time.Now())
	query := `SELECT code, name, gender, discipline FROM teams WHERE code IN (` + placeholders(len(codes)) + `)`

	rows, err := s.db.QueryContext(ctx, query, asArgs(codes)...)
	if err != nil {
		return nil, fmt.Errorf("%w: teams: %v", ErrLookup, err)
	}
	defer rows.Close()

	for rows.Next() {
		var t model.Team
		if err := rows.Scan(&t.Code, &t.Name, &t.Gender, &t.Discipline); err != nil {
			return nil, fmt.Errorf("%w: scanning team: %v", ErrLookup, err)
		}
		out[t.Code] = t
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: teams: %v", ErrLookup, err)
	}
	return out, nil
}

// UnitsByCodes resolves event document codes.
func (s *SQLiteStore) UnitsByCodes(ctx context.Context, codes []string) (map[string]model.EventUnit, error) {
	out := make(map[string]model.EventUnit, len(codes))
	if len(codes) == 0 {
		return out, nil
	}

	defer observeLookup("units", time.Now())
	query := `SELECT document_code, discipline_code, short_desc, long_desc FROM dt_codes WHERE document_code IN (` + placeholders(len(codes)) + `)`

	rows, err := s.db.QueryContext(ctx, query, asArgs(codes)...)
	if err != nil {
		return nil, fmt.Errorf("%w: units: %v", ErrLookup, err)
	}
	defer rows.Close()

	for rows.Next() {
		var u model.EventUnit
		if err := rows.Scan(&u.DocumentCode, &u.DisciplineCode, &u.ShortDesc, &u.LongDesc); err != nil {
			return nil, fmt.Errorf("%w: scanning unit: %v", ErrLookup, err)
		}
		out[u.DocumentCode] = u
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: units: %v", ErrLookup, err)
	}
	return out, nil
}

// Bootstrap creates the reference tables when they do not exist. The
// production database ships pre-populated; tests use this to build
// their own fixture.
func (s *SQLiteStore) Bootstrap(ctx context.Context) error {
	const schema = `
	CREATE TABLE IF NOT EXISTS athletes (
		code   VARCHAR(16) NOT NULL PRIMARY KEY,
		name   VARCHAR(80) NOT NULL,
		noc    VARCHAR(3)  NOT NULL,
		gender VARCHAR(1)  NULL
	);
	CREATE TABLE IF NOT EXISTS teams (
		code       VARCHAR(16) NOT NULL PRIMARY KEY,
		name       VARCHAR(80) NOT NULL,
		gender     VARCHAR(1)  NULL,
		discipline VARCHAR(2)  NULL
	);
	CREATE TABLE IF NOT EXISTS dt_codes (
		document_code   VARCHAR(9)   NOT NULL PRIMARY KEY,
		discipline_code VARCHAR(2)   NOT NULL,
		short_desc      VARCHAR(50)  NULL,
		long_desc       VARCHAR(100) NULL
	);`

	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("%w: %v", ErrOpen, err)
	}
	return nil
}

// DB exposes the handle for test fixtures.
func (s *SQLiteStore) DB() *sql.DB { return s.db }

// placeholders renders "?, ?, ?" for an IN clause of n values. Codes
// come from the upstream feed, so they must never be interpolated into
// query text.
func placeholders(n int) string {
	return strings.TrimSuffix(strings.Repeat("?,", n), ",")
}

func asArgs(codes []string) []any {
	args := make([]any, len(codes))
	for i, c := range codes {
		args[i] = c
	}
	return args
}

func observeLookup(entity string, start time.Time) {
	metrics.RecordReferenceLookup(entity, float64(time.Since(start).Milliseconds()))
}
