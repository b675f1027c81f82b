// Package locations reads the state and city reference lists used by the
// profile screens. Requests are authorized by the session's HTTP client.
package locations

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/jrsteele09/go-legal-client/api"
	"github.com/jrsteele09/go-legal-client/internal/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const (
	pathStates      = "/locations/states"
	defaultPerPage  = 20
	maxResponseSize = 1 << 20
)

type State = api.State
type City = api.City

// Page is one page of a list endpoint.
type Page[T any] struct {
	Items   []T
	Page    int
	PerPage int
	Total   int
	HasMore bool
}

// Client calls the location endpoints.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     zerolog.Logger
}

// Option defines a function type to modify the Client instance.
type Option func(*Client)

func WithLogger(logger zerolog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// NewClient creates a Client for the API rooted at baseURL. httpClient must
// add the Authorization header, e.g. session.Controller.HTTPClient.
func NewClient(baseURL string, httpClient *http.Client, options ...Option) (*Client, error) {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		return nil, errors.New("[locations NewClient] base URL is required")
	}
	if httpClient == nil {
		return nil, errors.New("[locations NewClient] http client is required")
	}
	c := &Client{
		baseURL:    baseURL,
		httpClient: httpClient,
		logger:     log.Logger,
	}
	for _, opt := range options {
		opt(c)
	}
	c.logger = c.logger.With().Str("component", "locations").Logger()
	return c, nil
}

// States returns one page of states.
func (c *Client) States(ctx context.Context, page, perPage int) (*Page[State], error) {
	return getPage[State](ctx, c, pathStates, "", page, perPage)
}

// SearchStates returns one page of states whose name contains query.
func (c *Client) SearchStates(ctx context.Context, query string, page, perPage int) (*Page[State], error) {
	return getPage[State](ctx, c, pathStates, query, page, perPage)
}

// Cities returns one page of a state's cities.
func (c *Client) Cities(ctx context.Context, stateID string, page, perPage int) (*Page[City], error) {
	if stateID == "" {
		return nil, errors.New("[locations Cities] state ID is required")
	}
	return getPage[City](ctx, c, pathStates+"/"+url.PathEscape(stateID)+"/cities", "", page, perPage)
}

// AllStates walks every page of states.
func (c *Client) AllStates(ctx context.Context, perPage int) ([]State, error) {
	var all []State
	for page := 1; ; page++ {
		p, err := c.States(ctx, page, perPage)
		if err != nil {
			return nil, err
		}
		all = append(all, p.Items...)
		if !p.HasMore || len(p.Items) == 0 {
			return all, nil
		}
	}
}

func getPage[T any](ctx context.Context, c *Client, path, query string, page, perPage int) (*Page[T], error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = defaultPerPage
	}
	q := url.Values{}
	q.Set("page", strconv.Itoa(page))
	q.Set("per_page", strconv.Itoa(perPage))
	if query != "" {
		q.Set("q", query)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+q.Encode(), nil)
	if err != nil {
		return nil, errors.Wrapf(err, "[locations] build request")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errors.Wrapf(err, "[locations] GET %s", path)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		return nil, fmt.Errorf("[locations] GET %s: %w", path, errors.ErrUnauthorized)
	case resp.StatusCode == http.StatusNotFound:
		return nil, fmt.Errorf("[locations] GET %s: %w", path, errors.ErrNotFound)
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return nil, fmt.Errorf("[locations] GET %s: %w: %d", path, errors.ErrUnexpectedStatus, resp.StatusCode)
	}

	var env api.Envelope
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseSize)).Decode(&env); err != nil {
		return nil, errors.Wrapf(err, "[locations] decode %s", path)
	}
	var data api.PageData[T]
	if err := env.DecodeData(&data); err != nil {
		return nil, errors.Wrapf(err, "[locations] decode %s data", path)
	}
	c.logger.Debug().Str("path", path).Int("page", data.Page).Int("total", data.Total).Msg("fetched page")

	return &Page[T]{
		Items:   data.Items,
		Page:    data.Page,
		PerPage: data.PerPage,
		Total:   data.Total,
		HasMore: data.HasMore(),
	}, nil
}
