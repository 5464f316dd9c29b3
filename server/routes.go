package server

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func (s *Server) initRoutes() {
	// CONNECTION
	s.RegisterRouteFunc("GET "+RouteConnect, ChainMiddleware(s.ConnectHandler(), s.HTMLMiddleWare(s.LoadSession)...))
	s.RegisterRouteFunc("GET "+RouteCallback, ChainMiddleware(s.CallbackHandler(), s.HTMLMiddleWare(s.LoadSession)...))
	s.RegisterRouteFunc("GET "+RouteLogout, ChainMiddleware(s.LogoutHandler(), s.HTMLMiddleWare(s.LoadSession)...))

	// VIEWS
	s.RegisterRouteFunc("GET "+RouteGenesets, ChainMiddleware(s.GenesetsHandler(), s.HTMLMiddleWare(s.LoadSession)...))
	s.RegisterRouteFunc("GET "+RouteVersions, ChainMiddleware(s.VersionsHandler(), s.HTMLMiddleWare(s.LoadSession)...))

	// JSON routes
	s.registerAPIRoute(http.MethodGet, RouteSettings, s.SettingsHandler())
	s.registerAPIRoute(http.MethodGet, RouteAccessToken, s.AccessTokenHandler())
	s.registerAPIRoute(http.MethodGet, RouteUser, s.UserHandler())
	s.registerAPIRoute(http.MethodPost, RouteGenesets, s.CreateGenesetHandler())
	s.registerAPIRoute(http.MethodGet, RouteGenesetIndex, s.GenesetIndexHandler())

	if s.config.Metrics.Enabled && s.gatherer != nil {
		s.RegisterRouteHandler("GET "+RouteMetrics, promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{}))
	}
}

// registerAPIRoute adds a JSON route and the OPTIONS route its CORS preflight needs.
func (s *Server) registerAPIRoute(method, path string, handler http.HandlerFunc) {
	s.RegisterRouteFunc(method+" "+path, ChainMiddleware(handler, s.APIMiddleware(s.LoadSession)...))
	s.RegisterRouteFunc(http.MethodOptions+" "+path, ChainMiddleware(noContent, s.APIMiddleware()...))
}

func noContent(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusNoContent)
}
