package server

import (
	"net/http"

	"github.com/google/uuid"
)

const (
	// authStateCookieName holds the OAuth2 state between the connect page and the callback
	authStateCookieName = "tribe_auth_state"
	authStateMaxAge     = 600
)

func (s *Server) SetLoginSessionCookie(w http.ResponseWriter, r *http.Request, sessionID string) error {
	value, err := s.cookies.Sign(sessionID)
	if err != nil {
		return err
	}

	http.SetCookie(w, &http.Cookie{
		Name:     s.config.Session.CookieName,
		Value:    value,
		Path:     "/",
		HttpOnly: true,
		Secure:   getScheme(r) == "https",
		SameSite: http.SameSiteLaxMode,
		MaxAge:   s.cookies.MaxAge(),
	})
	return nil
}

func (s *Server) ClearLoginSessionCookie(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     s.config.Session.CookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Secure:   getScheme(r) == "https",
		SameSite: http.SameSiteLaxMode,
		MaxAge:   -1,
	})
}

// SetAuthStateCookie starts an authorization round trip and returns its state value.
func (s *Server) SetAuthStateCookie(w http.ResponseWriter, r *http.Request) string {
	state := uuid.NewString()
	http.SetCookie(w, &http.Cookie{
		Name:     authStateCookieName,
		Value:    state,
		Path:     RouteConnect,
		HttpOnly: true,
		Secure:   getScheme(r) == "https",
		SameSite: http.SameSiteLaxMode,
		MaxAge:   authStateMaxAge,
	})
	return state
}

func (s *Server) ClearAuthStateCookie(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     authStateCookieName,
		Value:    "",
		Path:     RouteConnect,
		HttpOnly: true,
		Secure:   getScheme(r) == "https",
		SameSite: http.SameSiteLaxMode,
		MaxAge:   -1,
	})
}

// stateMatches requires the state parameter to equal the state cookie whenever the
// connect page issued one. Without the cookie there is nothing to compare against, as
// with authorize links built by host pages from /tribe/settings.
func stateMatches(r *http.Request) bool {
	cookie, err := r.Cookie(authStateCookieName)
	if err != nil || cookie.Value == "" {
		return true
	}
	return r.FormValue("state") == cookie.Value
}
