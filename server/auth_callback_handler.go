package server

import (
	"fmt"
	"net/http"

	errs "github.com/jrsteele09/go-tribe-client/internal/errors"
	"github.com/rs/zerolog/log"
	"golang.org/x/oauth2"
)

// CallbackHandler completes the authorization code grant (GET /tribe/callback).
func (s *Server) CallbackHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		code := r.FormValue("code")
		errorParam := r.FormValue("error")
		errorDesc := r.FormValue("error_description")

		// Check for authorization errors
		if errorParam != "" {
			http.Error(w, fmt.Sprintf("Authorization failed: %s - %s", errorParam, errorDesc), http.StatusBadRequest)
			return
		}
		if code == "" {
			http.Error(w, "Missing code parameter", http.StatusBadRequest)
			return
		}
		if !stateMatches(r) {
			http.Error(w, errs.ErrInvalidState.Error(), http.StatusBadRequest)
			return
		}
		s.ClearAuthStateCookie(w, r)

		previousID, _, _ := sessionFrom(r)
		sessionID, _, err := s.sessions.Login(r.Context(), previousID, code)
		if err != nil {
			logError(r.Method, r.URL.Path, err)
			switch {
			case errs.Is(err, errs.ErrMissingAuthCode):
				http.Error(w, "Missing code parameter", http.StatusBadRequest)
			case errs.Is(err, errs.ErrTokenExchange):
				logRetrieveError(err)
				http.Error(w, "Token exchange with Tribe failed", http.StatusBadGateway)
			default:
				http.Error(w, "Failed to create session", http.StatusInternalServerError)
			}
			return
		}

		if err := s.SetLoginSessionCookie(w, r, sessionID); err != nil {
			log.Err(err).Msg("failed to sign session cookie")
			http.Error(w, "Failed to create session", http.StatusInternalServerError)
			return
		}

		redirectURL := s.config.Tribe.LoginRedirect
		if redirectURL == "" {
			redirectURL = RouteGenesets
		}
		http.Redirect(w, r, redirectURL, http.StatusFound)
	}
}

// logRetrieveError records the OAuth2 error Tribe answered the token request with.
func logRetrieveError(err error) {
	var retrieveErr *oauth2.RetrieveError
	if !errs.As(err, &retrieveErr) {
		return
	}
	event := log.Error().Str("error_code", retrieveErr.ErrorCode).Str("error_description", retrieveErr.ErrorDescription)
	if retrieveErr.Response != nil {
		event = event.Int("status", retrieveErr.Response.StatusCode)
	}
	event.Msg("tribe rejected the authorization code")
}

// LogoutHandler ends the session (GET /tribe/logout).
func (s *Server) LogoutHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if id, _, ok := sessionFrom(r); ok {
			s.endSession(w, r, id)
		}

		if s.config.Tribe.LogoutRedirect != "" {
			http.Redirect(w, r, s.config.Tribe.LogoutRedirect, http.StatusFound)
			return
		}
		s.renderConnect(w, r)
	}
}
