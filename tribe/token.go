package tribe

import (
	"context"
	"fmt"
	"time"

	errs "github.com/jrsteele09/go-tribe-client/internal/errors"
	"golang.org/x/oauth2"
)

// AuthCodeURL is the Tribe authorize URL users are sent to when connecting.
func (c *Client) AuthCodeURL(state string) string {
	return c.oauth.AuthCodeURL(state)
}

// ExchangeAuthorizationCode trades an authorization code for an access token.
// Unlike the read operations every failure is returned.
func (c *Client) ExchangeAuthorizationCode(ctx context.Context, code string) (string, error) {
	if code == "" {
		return "", errs.ErrMissingAuthCode
	}
	defer c.metrics.observe(endpointAccessToken, time.Now())

	ctx = context.WithValue(ctx, oauth2.HTTPClient, c.httpClient)
	token, err := c.oauth.Exchange(ctx, code, oauth2.SetAuthURLParam("scope", c.cfg.Scope))
	if err != nil {
		c.metrics.record(endpointAccessToken, outcomeBadStatus)
		return "", fmt.Errorf("%w: %w", errs.ErrTokenExchange, err)
	}
	c.metrics.record(endpointAccessToken, outcomeOK)
	return token.AccessToken, nil
}
