package server

import (
	"context"
	"fmt"
	"html/template"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/jrsteele09/go-tribe-client/enrichment"
	"github.com/jrsteele09/go-tribe-client/internal/config"
	errs "github.com/jrsteele09/go-tribe-client/internal/errors"
	"github.com/jrsteele09/go-tribe-client/session"
	"github.com/jrsteele09/go-tribe-client/tribe"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog/log"
)

// Remote is the part of the Tribe API the views use.
type Remote interface {
	session.Authenticator
	AuthCodeURL(state string) string
	BaseURL() string
	UserGenesets(ctx context.Context, token string, filters tribe.Filters) tribe.GenesetsResult
	UserVersions(ctx context.Context, token, genesetID string) []tribe.Version
	CreateGeneset(ctx context.Context, token string, payload tribe.GenesetPayload) (tribe.CreateResult, error)
}

// SnapshotLoader reads the public gene sets of an organism.
type SnapshotLoader interface {
	Load(organism string) (enrichment.Snapshot, error)
}

type Server struct {
	env       string // Environment (e.g., "DEV", "PROD")
	router    chi.Router
	routes    []string
	config    config.Config
	remote    Remote
	sessions  *session.Manager
	cookies   *session.CookieSigner
	snapshots SnapshotLoader
	gatherer  prometheus.Gatherer
	cors      *cors.Cors
	templates map[string]*template.Template
}

type Option func(*Server)

// WithSnapshots replaces the folder based loader built from PUBLIC_GENESET_FOLDER.
func WithSnapshots(loader SnapshotLoader) Option {
	return func(s *Server) {
		s.snapshots = loader
	}
}

// WithGatherer serves the gatherer's metrics on /metrics when metrics are enabled.
func WithGatherer(g prometheus.Gatherer) Option {
	return func(s *Server) {
		s.gatherer = g
	}
}

func New(cfg config.Config, remote Remote, sessions *session.Manager, opts ...Option) (*Server, error) {
	s := &Server{
		env:       cfg.Env.GetEnv(),
		router:    chi.NewRouter(),
		config:    cfg,
		remote:    remote,
		sessions:  sessions,
		cookies:   session.NewCookieSigner(cfg.Session.Secret, cfg.Session.MaxAge),
		snapshots: enrichment.NewSnapshots(cfg.Tribe.PublicGenesetFolder),
		templates: map[string]*template.Template{},
	}
	for _, opt := range opts {
		opt(s)
	}

	s.cors = cors.New(cors.Options{
		AllowedOrigins:   cfg.Cors.GetAllowedOrigins().List(),
		AllowedMethods:   cfg.Cors.GetAllowedMethods(),
		AllowedHeaders:   cfg.Cors.GetAllowedHeaders(),
		AllowCredentials: true,
		MaxAge:           86400,
	})

	for _, name := range []string{templateConnect, templateGenesets, templateVersions} {
		tmpl, err := ParseTemplate(name)
		if err != nil {
			return nil, errs.Wrapf(err, "[Server New] failed to parse %s", name)
		}
		s.templates[name] = tmpl
	}

	s.router.Use(middleware.RequestID, middleware.RealIP)
	s.initRoutes()
	s.logRoutes()

	return s, nil
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) RegisterRouteHandler(pattern string, handler http.Handler) {
	method, path := splitPattern(pattern)
	s.routes = append(s.routes, pattern)
	s.router.Method(method, path, handler)
}

func (s *Server) RegisterRouteFunc(pattern string, handler func(http.ResponseWriter, *http.Request)) {
	s.RegisterRouteHandler(pattern, http.HandlerFunc(handler))
}

// splitPattern turns "GET /path" into its method and path.
func splitPattern(pattern string) (string, string) {
	parts := strings.SplitN(pattern, " ", 2)
	if len(parts) == 1 {
		return http.MethodGet, parts[0]
	}
	return parts[0], parts[1]
}

func (s *Server) logRoutes() {
	if !s.config.Env.IsDev() {
		return // Skip logging in non-development environments
	}
	for _, route := range s.routes {
		logRoute(splitPattern(route))
	}
}

func logRoute(method, path string) {
	var displayMethod string
	paddedMethod := fmt.Sprintf(" %-7s", method)
	if color, ok := methodColors[method]; ok {
		displayMethod = color + paddedMethod + ResetColor
	} else {
		displayMethod = Gray + paddedMethod + ResetColor
	}
	log.Info().Msgf("[%-19s] %s", displayMethod, path)
}

func logError(method, path string, err error) {
	var displayMethod string
	paddedMethod := fmt.Sprintf(" %-7s", method)
	if color, ok := methodColors[method]; ok {
		displayMethod = color + paddedMethod + ResetColor
	} else {
		displayMethod = Gray + paddedMethod + ResetColor
	}
	log.Error().Err(err).Msgf("[%-19s] %s", displayMethod, path)
}

// Helper function to determine the scheme (http/https)
func getScheme(r *http.Request) string {
	if r.TLS != nil {
		return "https"
	}
	if scheme := r.Header.Get("X-Forwarded-Proto"); scheme != "" {
		return scheme
	}
	return "http"
}
