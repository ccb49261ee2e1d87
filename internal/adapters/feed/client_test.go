package feed_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dcohenb/olympics-scrapper/internal/adapters/feed"
	. "github.com/smartystreets/goconvey/convey"
)

func TestClient_FetchTally(t *testing.T) {
	Convey("Given an upstream serving the medals list", t, func() {
		ctx := context.Background()

		Convey("When the document is well formed", func() {
			var gotPath string
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				gotPath = r.URL.Path
				w.Write([]byte(`{"body":{"medalRank":{"medalsList":[
					{"noc_code":"USA","me_gold":"5","me_silver":"2","me_bronze":"1","me_tot":"8"}
				]}}}`))
			}))
			defer srv.Close()

			client := feed.NewClient(feed.WithBaseURL(srv.URL))
			entries, err := client.FetchTally(ctx)

			Convey("Then the raw entries are returned", func() {
				So(err, ShouldBeNil)
				So(gotPath, ShouldEqual, "/json/medals/OG2016_medalsList.json")
				So(len(entries), ShouldEqual, 1)
				So(entries[0].NOCCode, ShouldEqual, "USA")
				So(entries[0].Gold.Int(), ShouldEqual, 5)
			})
		})

		Convey("When the upstream answers non-2xx", func() {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusBadGateway)
			}))
			defer srv.Close()

			client := feed.NewClient(feed.WithBaseURL(srv.URL))
			_, err := client.FetchTally(ctx)

			Convey("Then it reports an upstream error", func() {
				So(errors.Is(err, feed.ErrUpstream), ShouldBeTrue)
			})
		})

		Convey("When the nested medals list is absent", func() {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(`{"body":{"medalRank":{}}}`))
			}))
			defer srv.Close()

			client := feed.NewClient(feed.WithBaseURL(srv.URL))
			_, err := client.FetchTally(ctx)

			Convey("Then it reports an empty payload", func() {
				So(errors.Is(err, feed.ErrEmptyPayload), ShouldBeTrue)
			})
		})

		Convey("When the upstream is unreachable", func() {
			client := feed.NewClient(feed.WithBaseURL("http://127.0.0.1:1"))
			_, err := client.FetchTally(ctx)

			Convey("Then it reports an upstream error", func() {
				So(errors.Is(err, feed.ErrUpstream), ShouldBeTrue)
			})
		})
	})
}

func TestClient_FetchCountryDetail(t *testing.T) {
	Convey("Given an upstream serving per-country documents", t, func() {
		ctx := context.Background()

		Convey("When the document is well formed", func() {
			var gotPath string
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				gotPath = r.URL.Path
				w.Write([]byte(`{"body":{"medals":{
					"gold_medals":[{"medal_code":"ME_GOLD","document_code":"ATM001101","competitor_code":"A1","competitor_type":"A"}],
					"silver_medals":[],
					"bronze_medals":[]
				}}}`))
			}))
			defer srv.Close()

			client := feed.NewClient(feed.WithBaseURL(srv.URL))
			medals, err := client.FetchCountryDetail(ctx, "USA")

			Convey("Then the three medal lists are returned", func() {
				So(err, ShouldBeNil)
				So(gotPath, ShouldEqual, "/json/medals/OG2016_medalsNOC_USA.json")
				So(len(medals.Gold), ShouldEqual, 1)
				So(medals.Gold[0].MedalCode, ShouldEqual, "ME_GOLD")
				So(len(medals.Silver), ShouldEqual, 0)
			})
		})

		Convey("When the medals body is absent", func() {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(`{"body":{}}`))
			}))
			defer srv.Close()

			client := feed.NewClient(feed.WithBaseURL(srv.URL))
			_, err := client.FetchCountryDetail(ctx, "USA")

			Convey("Then it reports an empty payload", func() {
				So(errors.Is(err, feed.ErrEmptyPayload), ShouldBeTrue)
			})
		})
	})
}
