package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/jrsteele09/go-tribe-client/session"
	"github.com/jrsteele09/go-tribe-client/tribe"
	"github.com/rs/zerolog/log"
)

// listingFilters are sent when listing the user's gene sets for display.
var listingFilters = tribe.Filters{"full_genes": "true", "limit": "100"}

// ConnectPageData contains data for rendering the connect page
type ConnectPageData struct {
	AppName       string
	TribeURL      string
	AuthorizeURL  string
	AccessCodeURL string
	ClientID      string
	Scope         string
}

type GenesetsPageData struct {
	AppName  string
	TribeURL string
	User     tribe.User
	Genesets []tribe.Geneset
}

type VersionsPageData struct {
	AppName   string
	TribeURL  string
	GenesetID string
	Versions  []tribe.Version
}

// ConnectHandler shows the connect page, or the gene set listing when the caller
// already holds a token (GET /tribe).
func (s *Server) ConnectHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, sess, ok := sessionFrom(r)
		if !ok {
			s.renderConnect(w, r)
			return
		}
		s.renderGenesets(w, r, id, sess)
	}
}

// GenesetsHandler lists the user's gene sets (GET /tribe/genesets).
func (s *Server) GenesetsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, sess, ok := sessionFrom(r)
		if !ok {
			s.renderConnect(w, r)
			return
		}
		s.renderGenesets(w, r, id, sess)
	}
}

// VersionsHandler lists the versions of one of the user's gene sets
// (GET /tribe/genesets/{geneset}/versions).
func (s *Server) VersionsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, sess, ok := sessionFrom(r)
		if !ok {
			s.renderConnect(w, r)
			return
		}
		if _, ok := s.revalidateForView(w, r, id, sess); !ok {
			return
		}

		genesetID := chi.URLParam(r, "geneset")
		versions := tribe.WithGeneNames(s.remote.UserVersions(r.Context(), sess.Token, genesetID))
		s.render(w, templateVersions, VersionsPageData{
			AppName:   s.config.Env.GetAppName(),
			TribeURL:  s.remote.BaseURL(),
			GenesetID: genesetID,
			Versions:  versions,
		})
	}
}

func (s *Server) renderConnect(w http.ResponseWriter, r *http.Request) {
	state := s.SetAuthStateCookie(w, r)
	s.render(w, templateConnect, ConnectPageData{
		AppName:       s.config.Env.GetAppName(),
		TribeURL:      s.config.Tribe.URL,
		AuthorizeURL:  s.remote.AuthCodeURL(state),
		AccessCodeURL: s.config.Tribe.AccessCodeURL,
		ClientID:      s.config.Tribe.ClientID,
		Scope:         s.config.Tribe.Scope,
	})
}

func (s *Server) renderGenesets(w http.ResponseWriter, r *http.Request, id string, sess session.Session) {
	user, ok := s.revalidateForView(w, r, id, sess)
	if !ok {
		return
	}

	result := s.remote.UserGenesets(r.Context(), sess.Token, listingFilters)
	if result.OK() {
		if err := s.sessions.CacheGenesets(r.Context(), id, &sess, result.Genesets); err != nil {
			log.Err(err).Msg("failed to cache user gene sets")
		}
	}

	s.render(w, templateGenesets, GenesetsPageData{
		AppName:  s.config.Env.GetAppName(),
		TribeURL: s.remote.BaseURL(),
		User:     user,
		Genesets: result.Genesets,
	})
}

// revalidateForView checks the session's token before a view is rendered. A token
// Tribe reports as expired, or one that no longer resolves to a user, ends the
// session and the connect page is shown instead.
func (s *Server) revalidateForView(w http.ResponseWriter, r *http.Request, id string, sess session.Session) (tribe.User, bool) {
	result := s.sessions.Revalidate(r.Context(), id, sess)
	user, found := result.User()
	if !found {
		s.endSession(w, r, id)
		s.renderConnect(w, r)
		return tribe.User{}, false
	}
	return user, true
}
