package repository_test

import (
	"context"
	"testing"

	"github.com/dcohenb/olympics-scrapper/internal/adapters/repository"
	. "github.com/smartystreets/goconvey/convey"
)

func openFixture(t *testing.T) *repository.SQLiteStore {
	t.Helper()
	store, err := repository.Open(":memory:", repository.WithMaxOpenConns(1))
	if err != nil {
		t.Fatalf("opening store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	ctx := context.Background()
	if err := store.Bootstrap(ctx); err != nil {
		t.Fatalf("bootstrapping schema: %v", err)
	}

	seed := `
	INSERT INTO athletes (code, name, noc, gender) VALUES
		('A1001', 'Jane Smith', 'USA', 'W'),
		('A1002', 'John Doe', 'GBR', 'M');
	INSERT INTO teams (code, name, gender, discipline) VALUES
		('T2001', 'United States', 'M', 'BK');
	INSERT INTO dt_codes (document_code, discipline_code, short_desc, long_desc) VALUES
		('ATM001101', 'AT', '100m Final', 'Men''s 100m Final'),
		('BKM400101', 'BK', 'Basketball Final', 'Men''s Basketball Gold Medal Game');`
	if _, err := store.DB().ExecContext(ctx, seed); err != nil {
		t.Fatalf("seeding fixture: %v", err)
	}
	return store
}

func TestSQLiteStore_Lookups(t *testing.T) {
	Convey("Given a seeded reference store", t, func() {
		ctx := context.Background()
		store := openFixture(t)

		Convey("When resolving athlete codes", func() {
			athletes, err := store.AthletesByCodes(ctx, []string{"A1001", "A1002", "A9999"})

			Convey("Then matching rows come back keyed by code", func() {
				So(err, ShouldBeNil)
				So(len(athletes), ShouldEqual, 2)
				So(athletes["A1001"].Name, ShouldEqual, "Jane Smith")
				So(athletes["A1002"].NOC, ShouldEqual, "GBR")
			})

			Convey("And unmatched codes are simply absent", func() {
				So(err, ShouldBeNil)
				_, ok := athletes["A9999"]
				So(ok, ShouldBeFalse)
			})
		})

		Convey("When resolving team codes", func() {
			teams, err := store.TeamsByCodes(ctx, []string{"T2001"})

			Convey("Then the team row is returned", func() {
				So(err, ShouldBeNil)
				So(teams["T2001"].Name, ShouldEqual, "United States")
				So(teams["T2001"].Discipline, ShouldEqual, "BK")
			})
		})

		Convey("When resolving document codes", func() {
			units, err := store.UnitsByCodes(ctx, []string{"ATM001101", "BKM400101"})

			Convey("Then the dictionary rows are returned", func() {
				So(err, ShouldBeNil)
				So(len(units), ShouldEqual, 2)
				So(units["ATM001101"].LongDesc, ShouldEqual, "Men's 100m Final")
				So(units["BKM400101"].DisciplineCode, ShouldEqual, "BK")
			})
		})

		Convey("When the code set is empty", func() {
			athletes, err := store.AthletesByCodes(ctx, nil)

			Convey("Then an empty result comes back without a query", func() {
				So(err, ShouldBeNil)
				So(len(athletes), ShouldEqual, 0)
			})
		})

		Convey("When a code contains SQL metacharacters", func() {
			athletes, err := store.AthletesByCodes(ctx, []string{"A1001' OR '1'='1"})

			Convey("Then it matches nothing instead of widening the query", func() {
				So(err, ShouldBeNil)
				So(len(athletes), ShouldEqual, 0)
			})
		})
	})
}
