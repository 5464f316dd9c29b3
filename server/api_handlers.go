package server

import (
	"encoding/json"
	"html"
	"net/http"

	"github.com/jrsteele09/go-tribe-client/enrichment"
	"github.com/jrsteele09/go-tribe-client/tribe"
	"github.com/rs/zerolog/log"
)

const (
	contentTypeJSON = "application/json"

	noAccessToken = "No access token"
	unauthorized  = "Unauthorized"

	missingOrganismMessage = "No organism scientific name was sent in the request. Please specify " +
		"an organism's scientific name (e.g. 'Pseudomonas aeruginosa' or 'Homo sapiens') " +
		"using the 'organism' parameter."
	createRejectedMessage = "The following error has been returned by Tribe while attempting to create a geneset: "
)

type SettingsResponse struct {
	TribeURL      string `json:"tribe_url"`
	AccessCodeURL string `json:"access_code_url"`
	ClientID      string `json:"client_id"`
	Scope         string `json:"scope"`
}

type AccessTokenResponse struct {
	AccessToken string `json:"access_token"`
}

type CreateGenesetResponse struct {
	GenesetURL string `json:"geneset_url"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", contentTypeJSON)
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Err(err).Msg("failed to write json response")
	}
}

// SettingsHandler exposes what a host page needs to build its own authorize link
// (GET /tribe/settings).
func (s *Server) SettingsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, SettingsResponse{
			TribeURL:      s.config.Tribe.URL,
			AccessCodeURL: s.config.Tribe.AccessCodeURL,
			ClientID:      s.config.Tribe.ClientID,
			Scope:         s.config.Tribe.Scope,
		})
	}
}

func (s *Server) AccessTokenHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token := noAccessToken
		if _, sess, ok := sessionFrom(r); ok {
			token = sess.Token
		}
		writeJSON(w, http.StatusOK, AccessTokenResponse{AccessToken: token})
	}
}

// UserHandler returns the Tribe user behind the session (GET /tribe/user).
func (s *Server) UserHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, sess, ok := sessionFrom(r)
		if !ok {
			writeJSON(w, http.StatusOK, []tribe.User{})
			return
		}

		result := s.sessions.Revalidate(r.Context(), id, sess)
		if result.Expired() {
			s.ClearLoginSessionCookie(w, r)
			http.Error(w, unauthorized, http.StatusUnauthorized)
			return
		}
		writeJSON(w, http.StatusOK, result.Users)
	}
}

// CreateGenesetHandler creates a gene set on Tribe from the JSON in the "geneset"
// form field (POST /tribe/genesets).
func (s *Server) CreateGenesetHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, sess, ok := sessionFrom(r)
		if !ok {
			http.Error(w, unauthorized, http.StatusUnauthorized)
			return
		}

		if result := s.sessions.Revalidate(r.Context(), id, sess); result.Expired() {
			s.ClearLoginSessionCookie(w, r)
			http.Error(w, unauthorized, http.StatusUnauthorized)
			return
		}

		raw := r.FormValue("geneset")
		if raw == "" {
			http.Error(w, "Missing geneset parameter", http.StatusBadRequest)
			return
		}
		var payload tribe.GenesetPayload
		if err := json.Unmarshal([]byte(raw), &payload); err != nil {
			http.Error(w, "Invalid geneset: "+html.EscapeString(err.Error()), http.StatusBadRequest)
			return
		}
		if err := payload.Validate(); err != nil {
			http.Error(w, "Invalid geneset: "+html.EscapeString(err.Error()), http.StatusBadRequest)
			return
		}
		payload.CrossRefDB = s.config.Tribe.CrossRefDB

		result, err := s.remote.CreateGeneset(r.Context(), sess.Token, payload)
		if err != nil {
			logError(r.Method, r.URL.Path, err)
			http.Error(w, "Tribe could not be reached", http.StatusBadGateway)
			return
		}
		if result.Created == nil {
			var body []byte
			if result.Rejected != nil {
				body = result.Rejected.Body
			}
			http.Error(w, createRejectedMessage+`"`+html.EscapeString(string(body))+`"`, http.StatusBadRequest)
			return
		}

		genesetURL := result.Created.GenesetURL(s.remote.BaseURL())
		writeJSON(w, http.StatusOK, CreateGenesetResponse{GenesetURL: html.EscapeString(genesetURL)})
	}
}

// GenesetIndexHandler merges the organism's public gene set snapshot with the user's
// own gene sets (GET /tribe/geneset-index?organism=).
func (s *Server) GenesetIndexHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		organism := r.URL.Query().Get("organism")
		if organism == "" {
			log.Error().Msg("no organism sent to the gene set index")
			http.Error(w, missingOrganismMessage, http.StatusBadRequest)
			return
		}

		snapshot, err := s.snapshots.Load(organism)
		if err != nil {
			log.Error().Err(err).Str("organism", organism).Msg("public gene sets unavailable")
		}
		sources := snapshot.Sources()

		if _, sess, ok := sessionFrom(r); ok {
			genesets, cached := sess.CachedGenesets()
			if !cached {
				genesets = s.remote.UserGenesets(r.Context(), sess.Token, nil).Genesets
			}
			sources = append(sources, enrichment.Source{Database: enrichment.UserDatabase, Genesets: genesets})
		}

		writeJSON(w, http.StatusOK, enrichment.Merge(sources...))
	}
}
