// Package feed fetches the upstream Rio medal documents over HTTP.
package feed

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/dcohenb/olympics-scrapper/internal/domain/model"
	"github.com/dcohenb/olympics-scrapper/pkg/metrics"
)

// Upstream locations are fixed for the Games; they are deliberately not
// configurable.
const (
	baseURL           = "http://wowappprd.rio2016.com"
	tallyPath         = "/json/medals/OG2016_medalsList.json"
	countryDetailPath = "/json/medals/OG2016_medalsNOC_%s.json"

	defaultTimeout = 15 * time.Second
)

// Client talks to the upstream feed. It performs no retries; backoff is
// the caller's concern.
type Client struct {
	client  *http.Client
	baseURL string
}

// Option applies a configuration option to the Client.
type Option func(*Client)

// WithBaseURL overrides the upstream base URL. Used by tests.
func WithBaseURL(u string) Option {
	return func(c *Client) {
		if u != "" {
			c.baseURL = u
		}
	}
}

// WithTimeout overrides the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.client.Timeout = d
		}
	}
}

// NewClient creates a feed client with a bounded request timeout.
func NewClient(opts ...Option) *Client {
	c := &Client{
		client:  &http.Client{Timeout: defaultTimeout},
		baseURL: baseURL,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// tallyResponse mirrors the envelope of the medals-list document.
type tallyResponse struct {
	Body struct {
		MedalRank struct {
			MedalsList []model.TallyEntry `json:"medalsList"`
		} `json:"medalRank"`
	} `json:"body"`
}

// detailResponse mirrors the envelope of the per-country document.
type detailResponse struct {
	Body struct {
		Medals *model.CountryMedals `json:"medals"`
	} `json:"body"`
}

// FetchTally retrieves the raw medal tally. A response without the
// nested medals list is reported as ErrEmptyPayload, which callers
// treat the same as a transport failure.
func (c *Client) FetchTally(ctx context.Context) ([]model.TallyEntry, error) {
	body, err := c.get(ctx, "tally", c.baseURL+tallyPath)
	if err != nil {
		return nil, err
	}

	var resp tallyResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("%w: decoding medals list: %v", ErrUpstream, err)
	}
	if resp.Body.MedalRank.MedalsList == nil {
		return nil, fmt.Errorf("%w: no medals in the response", ErrEmptyPayload)
	}
	return resp.Body.MedalRank.MedalsList, nil
}

// FetchCountryDetail retrieves the per-country medal document.
func (c *Client) FetchCountryDetail(ctx context.Context, noc string) (*model.CountryMedals, error) {
	url := c.baseURL + fmt.Sprintf(countryDetailPath, noc)
	body, err := c.get(ctx, "country_detail", url)
	if err != nil {
		return nil, err
	}

	var resp detailResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("%w: decoding country detail: %v", ErrUpstream, err)
	}
	if resp.Body.Medals == nil {
		return nil, fmt.Errorf("%w: no medals for %s in the response", ErrEmptyPayload, noc)
	}
	return resp.Body.Medals, nil
}

// get performs a single HTTP GET and returns the body on a 2xx status.
func (c *Client) get(ctx context.Context, document, url string) ([]byte, error) {
	start := time.Now()
	body, err := c.doGet(ctx, url)
	if err != nil {
		metrics.RecordUpstreamFetchError(document)
		return nil, err
	}
	metrics.RecordUpstreamFetch(document, float64(time.Since(start).Milliseconds()))
	return body, nil
}

func (c *Client) doGet(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: creating request: %v", ErrUpstream, err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, fmt.Errorf("%w: unexpected status %d from %s", ErrUpstream, resp.StatusCode, url)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: reading response: %v", ErrUpstream, err)
	}
	return body, nil
}
