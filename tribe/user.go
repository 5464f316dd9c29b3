package tribe

import (
	"context"

	errs "github.com/jrsteele09/go-tribe-client/internal/errors"
	"github.com/rs/zerolog/log"
	"github.com/tidwall/gjson"
)

// Status tags the outcome of a call that authenticates with an access token.
type Status int

const (
	// StatusUnavailable covers every failure other than an expired token, including
	// a well formed response with no user in it.
	StatusUnavailable Status = iota
	StatusOK
	// StatusTokenExpired means Tribe flagged the access token as expired.
	StatusTokenExpired
)

func (s Status) String() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusTokenExpired:
		return "token expired"
	default:
		return "unavailable"
	}
}

// UserResult is the outcome of UserObject. Users is never nil.
type UserResult struct {
	Status Status
	Users  []User
}

func (r UserResult) OK() bool {
	return r.Status == StatusOK
}

func (r UserResult) Expired() bool {
	return r.Status == StatusTokenExpired
}

// Err is the error form of the status, nil when the lookup succeeded.
func (r UserResult) Err() error {
	return statusErr(r.Status)
}

func statusErr(s Status) error {
	switch s {
	case StatusOK:
		return nil
	case StatusTokenExpired:
		return errs.ErrTokenExpired
	default:
		return errs.ErrRemoteUnavailable
	}
}

// User returns the account owning the token when the lookup succeeded.
func (r UserResult) User() (User, bool) {
	if !r.OK() || len(r.Users) == 0 {
		return User{}, false
	}
	return r.Users[0], true
}

// UserObject resolves the user owning token. In a JSON response the expiry marker is
// honoured whatever the HTTP status or the objects list say.
func (c *Client) UserObject(ctx context.Context, token string) UserResult {
	unavailable := UserResult{Status: StatusUnavailable, Users: []User{}}

	status, body, err := c.get(ctx, endpointUser, c.cfg.APIURL("/user"), c.authParams(token))
	if err != nil {
		log.Debug().Err(err).Msg("tribe user lookup failed")
		return unavailable
	}

	if !gjson.ValidBytes(body) {
		c.metrics.record(endpointUser, outcomeMalformed)
		log.Debug().Int("status", status).Msg("tribe user response is not json")
		return unavailable
	}

	if gjson.GetBytes(body, "meta.oauth_token_expired").Exists() {
		c.metrics.record(endpointUser, outcomeExpired)
		return UserResult{Status: StatusTokenExpired, Users: []User{}}
	}

	if !isSuccess(status) {
		c.metrics.record(endpointUser, outcomeBadStatus)
		log.Debug().Int("status", status).Msg("tribe user lookup rejected")
		return unavailable
	}

	users, err := decodeObjects[User](body)
	if err != nil {
		c.metrics.record(endpointUser, outcomeMalformed)
		log.Debug().Err(err).Msg("tribe user response malformed")
		return unavailable
	}
	if len(users) == 0 {
		c.metrics.record(endpointUser, outcomeOK)
		return unavailable
	}

	c.metrics.record(endpointUser, outcomeOK)
	return UserResult{Status: StatusOK, Users: users}
}
