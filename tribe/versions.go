package tribe

import (
	"context"
	"net/url"
)

// PublicVersions lists versions of public gene sets matching filters.
func (c *Client) PublicVersions(ctx context.Context, filters Filters) []Version {
	params := withFilters(url.Values{paramFormat: {formatJSON}}, filters)
	return listObjects[Version](ctx, c, endpointVersion, c.cfg.APIURL("/version/"), params)
}

// UserVersions lists the versions of one gene set visible to the owner of token.
func (c *Client) UserVersions(ctx context.Context, token, genesetID string) []Version {
	params := c.authParams(token)
	params.Set("geneset__id", genesetID)
	params.Set(paramCrossRefDB, c.cfg.CrossRefDB)
	return listObjects[Version](ctx, c, endpointVersion, c.cfg.APIURL("/version/"), params)
}

// AllUserVersions lists the tip version of every gene set visible to the owner of token.
func (c *Client) AllUserVersions(ctx context.Context, token string) []Version {
	params := c.authParams(token)
	params.Set(paramCrossRefDB, c.cfg.CrossRefDB)
	params.Set("show_tip", "true")
	return listObjects[Version](ctx, c, endpointVersion, c.cfg.APIURL("/version/"), params)
}
