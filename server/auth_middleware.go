package server

import (
	"context"
	"net/http"

	errs "github.com/jrsteele09/go-tribe-client/internal/errors"
	"github.com/jrsteele09/go-tribe-client/session"
	"github.com/rs/zerolog/log"
)

// ContextKey is a custom type for context keys to avoid collisions
type ContextKey string

const (
	// ContextKeySessionID stores the id of the caller's session
	ContextKeySessionID ContextKey = "session_id"
	// ContextKeySession stores the caller's session
	ContextKeySession ContextKey = "session"
)

// LoadSession resolves the session cookie and puts the session into the request
// context. Requests without a usable session continue anonymously; a cookie that
// no longer points at a session is expired.
func (s *Server) LoadSession(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(s.config.Session.CookieName)
		if err != nil || cookie.Value == "" {
			next(w, r)
			return
		}

		id, err := s.cookies.Verify(cookie.Value)
		if err != nil {
			log.Debug().Err(err).Msg("ignoring session cookie")
			s.ClearLoginSessionCookie(w, r)
			next(w, r)
			return
		}

		sess, err := s.sessions.Load(r.Context(), id)
		if err != nil {
			if !errs.Is(err, errs.ErrSessionNotFound) && !errs.Is(err, errs.ErrSessionExpired) {
				log.Err(err).Msg("failed to load session")
			}
			s.ClearLoginSessionCookie(w, r)
			next(w, r)
			return
		}

		ctx := context.WithValue(r.Context(), ContextKeySessionID, id)
		ctx = context.WithValue(ctx, ContextKeySession, sess)
		next(w, r.WithContext(ctx))
	}
}

// sessionFrom returns the session LoadSession found, if any.
func sessionFrom(r *http.Request) (string, session.Session, bool) {
	id, _ := r.Context().Value(ContextKeySessionID).(string)
	sess, ok := r.Context().Value(ContextKeySession).(session.Session)
	if !ok || id == "" || sess.Token == "" {
		return "", session.Session{}, false
	}
	return id, sess, true
}

// endSession deletes the session and its cookie.
func (s *Server) endSession(w http.ResponseWriter, r *http.Request, id string) {
	if err := s.sessions.Clear(r.Context(), id); err != nil {
		log.Err(err).Msg("failed to clear session")
	}
	s.ClearLoginSessionCookie(w, r)
}
