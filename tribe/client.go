// Package tribe is a client for the Tribe gene-set web service REST API.
//
// Read operations never return errors: when Tribe cannot be reached or answers with
// something unexpected they degrade to empty results, so pages built on top of them
// keep rendering. The authorization code exchange and gene set creation are the
// exceptions and report failures to the caller.
package tribe

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/jrsteele09/go-tribe-client/internal/config"
	errs "github.com/jrsteele09/go-tribe-client/internal/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog/log"
	"github.com/tidwall/gjson"
	"golang.org/x/oauth2"
)

const (
	paramFormat      = "format"
	paramConsumerKey = "oauth_consumer_key"
	paramCrossRefDB  = "xrdb"
	formatJSON       = "json"
)

type Client struct {
	cfg        config.Tribe
	httpClient *http.Client
	oauth      *oauth2.Config
	registerer prometheus.Registerer
	metrics    *metrics
}

type Option func(*Client)

// WithHTTPClient replaces http.DefaultClient for every call, including the token exchange.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) {
		c.httpClient = h
	}
}

// WithRegisterer registers the client's request metrics with reg.
func WithRegisterer(reg prometheus.Registerer) Option {
	return func(c *Client) {
		c.registerer = reg
	}
}

func New(cfg config.Tribe, opts ...Option) *Client {
	c := &Client{
		cfg:        cfg,
		httpClient: http.DefaultClient,
		oauth: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			Endpoint: oauth2.Endpoint{
				AuthURL:   cfg.AuthorizeURL(),
				TokenURL:  cfg.TokenURL(),
				AuthStyle: oauth2.AuthStyleInParams,
			},
			RedirectURL: cfg.AccessCodeURL,
			Scopes:      strings.Fields(cfg.Scope),
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	c.metrics = newMetrics(c.registerer)
	return c
}

// BaseURL is the Tribe root URL, used to build links to Tribe pages.
func (c *Client) BaseURL() string {
	return c.cfg.URL
}

func (c *Client) authParams(token string) url.Values {
	return url.Values{
		paramFormat:      {formatJSON},
		paramConsumerKey: {token},
	}
}

// withFilters copies filters into params without overriding the fixed parameters.
func withFilters(params url.Values, filters Filters) url.Values {
	for k, v := range filters {
		if params.Has(k) {
			continue
		}
		params.Set(k, v)
	}
	return params
}

// get issues a GET and returns the status and body. Only transport failures are errors.
func (c *Client) get(ctx context.Context, endpoint, rawURL string, params url.Values) (int, []byte, error) {
	defer c.metrics.observe(endpoint, time.Now())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL+"?"+params.Encode(), nil)
	if err != nil {
		c.metrics.record(endpoint, outcomeTransportError)
		return 0, nil, errs.Wrapf(err, "[tribe get] new request")
	}
	req.Header.Set("Accept", "application/json")

	return c.do(endpoint, req)
}

func (c *Client) do(endpoint string, req *http.Request) (int, []byte, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.metrics.record(endpoint, outcomeTransportError)
		return 0, nil, fmt.Errorf("%w: %w", errs.ErrRemoteUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		c.metrics.record(endpoint, outcomeTransportError)
		return 0, nil, fmt.Errorf("%w: read body: %w", errs.ErrRemoteUnavailable, err)
	}
	return resp.StatusCode, body, nil
}

// listObjects fetches a Tribe list resource and decodes its "objects" array.
// Any failure is logged and yields an empty, non-nil slice.
func listObjects[T any](ctx context.Context, c *Client, endpoint, rawURL string, params url.Values) []T {
	status, body, err := c.get(ctx, endpoint, rawURL, params)
	if err != nil {
		log.Debug().Err(err).Str("endpoint", endpoint).Msg("tribe request failed")
		return []T{}
	}
	if !isSuccess(status) {
		c.metrics.record(endpoint, outcomeBadStatus)
		log.Debug().Int("status", status).Str("endpoint", endpoint).Msg("tribe request rejected")
		return []T{}
	}

	objects, err := decodeObjects[T](body)
	if err != nil {
		c.metrics.record(endpoint, outcomeMalformed)
		log.Debug().Err(err).Str("endpoint", endpoint).Msg("tribe response malformed")
		return []T{}
	}
	c.metrics.record(endpoint, outcomeOK)
	return objects
}

func decodeObjects[T any](body []byte) ([]T, error) {
	if !gjson.ValidBytes(body) {
		return nil, fmt.Errorf("%w: response is not json", errs.ErrInvalidRequest)
	}
	objects := gjson.GetBytes(body, "objects")
	if !objects.Exists() {
		return nil, fmt.Errorf("%w: response has no objects", errs.ErrInvalidRequest)
	}

	var out []T
	if err := json.Unmarshal([]byte(objects.Raw), &out); err != nil {
		return nil, errs.Wrapf(err, "decode objects")
	}
	if out == nil {
		out = []T{}
	}
	return out, nil
}

func isSuccess(status int) bool {
	return status >= 200 && status < 300
}

func errMissingField(field string) error {
	return fmt.Errorf("%w: %s is required", errs.ErrInvalidRequest, field)
}
