package server

// Route path constants
// All application routes are defined here to ensure consistency and prevent typos
const (
	// Connection
	RouteConnect  = "/tribe"
	RouteCallback = "/tribe/callback"
	RouteLogout   = "/tribe/logout"

	// Views
	RouteGenesets = "/tribe/genesets"
	RouteVersions = "/tribe/genesets/{geneset}/versions"

	// JSON Routes
	RouteSettings     = "/tribe/settings"
	RouteAccessToken  = "/tribe/access-token"
	RouteUser         = "/tribe/user"
	RouteGenesetIndex = "/tribe/geneset-index"

	RouteMetrics = "/metrics"
)
