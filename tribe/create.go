package tribe

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"time"

	errs "github.com/jrsteele09/go-tribe-client/internal/errors"
	"github.com/tidwall/gjson"
)

// CreatedGeneset identifies a gene set Tribe accepted.
type CreatedGeneset struct {
	Slug    string
	Creator string
}

// Rejection is a create response that could not be read as a created gene set.
type Rejection struct {
	StatusCode int
	Body       []byte
}

// CreateResult holds exactly one of Created or Rejected.
type CreateResult struct {
	Created  *CreatedGeneset
	Rejected *Rejection
}

// GenesetURL is the Tribe page of a created gene set.
func (c CreatedGeneset) GenesetURL(baseURL string) string {
	return baseURL + "/#/use/detail/" + c.Creator + "/" + c.Slug
}

// CreateGeneset posts payload to Tribe on behalf of the owner of token. A response that
// does not describe the new gene set comes back as a Rejection carrying the raw body;
// the error return is reserved for requests that never got an answer.
func (c *Client) CreateGeneset(ctx context.Context, token string, payload GenesetPayload) (CreateResult, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return CreateResult{}, errs.Wrapf(err, "[tribe CreateGeneset] marshal payload")
	}

	defer c.metrics.observe(endpointCreateGeneset, time.Now())

	params := c.authParams(token)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.APIURL("/geneset/")+"?"+params.Encode(), bytes.NewReader(body))
	if err != nil {
		return CreateResult{}, errs.Wrapf(err, "[tribe CreateGeneset] new request")
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	status, raw, err := c.do(endpointCreateGeneset, req)
	if err != nil {
		return CreateResult{}, err
	}

	slug := gjson.GetBytes(raw, "slug")
	creator := gjson.GetBytes(raw, "creator.username")
	if isSuccess(status) && gjson.ValidBytes(raw) && slug.Type == gjson.String && creator.Type == gjson.String {
		c.metrics.record(endpointCreateGeneset, outcomeOK)
		return CreateResult{Created: &CreatedGeneset{Slug: slug.String(), Creator: creator.String()}}, nil
	}

	c.metrics.record(endpointCreateGeneset, outcomeMalformed)
	return CreateResult{Rejected: &Rejection{StatusCode: status, Body: raw}}, nil
}
