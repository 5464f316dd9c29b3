package tribe

import (
	"context"
	"net/url"
	"strconv"
)

// GenesetsResult is the outcome of UserGenesets. Genesets is never nil.
type GenesetsResult struct {
	Status   Status
	Genesets []Geneset
}

func (r GenesetsResult) OK() bool {
	return r.Status == StatusOK
}

func (r GenesetsResult) Expired() bool {
	return r.Status == StatusTokenExpired
}

func (r GenesetsResult) Err() error {
	return statusErr(r.Status)
}

// PublicGenesets lists public gene sets matching filters.
func (c *Client) PublicGenesets(ctx context.Context, filters Filters) []Geneset {
	params := withFilters(url.Values{paramFormat: {formatJSON}}, filters)
	return listObjects[Geneset](ctx, c, endpointGeneset, c.cfg.APIURL("/geneset/"), params)
}

// UserGenesets lists the gene sets created by the owner of token. The token is
// checked first, so an expired or unusable token is reported in Status.
func (c *Client) UserGenesets(ctx context.Context, token string, filters Filters) GenesetsResult {
	userResult := c.UserObject(ctx, token)
	user, found := userResult.User()
	if !found {
		return GenesetsResult{Status: userResult.Status, Genesets: []Geneset{}}
	}

	params := c.authParams(token)
	params.Set("creator", strconv.Itoa(user.ID))
	params = withFilters(params, filters)

	genesets := listObjects[Geneset](ctx, c, endpointGeneset, c.cfg.APIURL("/geneset/"), params)
	return GenesetsResult{Status: StatusOK, Genesets: genesets}
}
