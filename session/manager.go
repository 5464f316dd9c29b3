package session

import (
	"context"
	"time"

	"github.com/google/uuid"
	errs "github.com/jrsteele09/go-tribe-client/internal/errors"
	"github.com/jrsteele09/go-tribe-client/tribe"
	"github.com/rs/zerolog/log"
)

// Authenticator is the part of the Tribe client the manager needs.
type Authenticator interface {
	ExchangeAuthorizationCode(ctx context.Context, code string) (string, error)
	UserObject(ctx context.Context, token string) tribe.UserResult
}

// Manager turns an OAuth2 authorization code into a session scoped access token and
// revalidates that token against Tribe whenever a privileged operation needs it.
type Manager struct {
	store  Store
	remote Authenticator
	maxAge time.Duration
	now    func() time.Time
}

func NewManager(store Store, remote Authenticator, maxAge time.Duration) *Manager {
	return &Manager{
		store:  store,
		remote: remote,
		maxAge: maxAge,
		now:    time.Now,
	}
}

// Login exchanges code for an access token and stores it with a user snapshot under a
// fresh session id. Any session previously held by the caller is discarded.
func (m *Manager) Login(ctx context.Context, previousID, code string) (string, Session, error) {
	token, err := m.remote.ExchangeAuthorizationCode(ctx, code)
	if err != nil {
		return "", Session{}, errs.Wrapf(err, "[session Login]")
	}

	user := m.remote.UserObject(ctx, token)
	if !user.OK() {
		log.Warn().Err(user.Err()).Msg("new access token could not load its user")
	}

	now := m.now()
	sess := Session{
		Token:     token,
		User:      user.Users,
		CreatedAt: now,
	}
	if m.maxAge > 0 {
		sess.ExpiresAt = now.Add(m.maxAge)
	}

	if previousID != "" {
		if err := m.store.Delete(ctx, previousID); err != nil {
			log.Err(err).Msg("failed to discard previous session")
		}
	}

	id := uuid.NewString()
	if err := m.store.Save(ctx, id, sess); err != nil {
		return "", Session{}, errs.Wrapf(err, "[session Login] save")
	}
	return id, sess, nil
}

func (m *Manager) Load(ctx context.Context, id string) (Session, error) {
	if id == "" {
		return Session{}, errs.ErrSessionNotFound
	}
	return m.store.Get(ctx, id)
}

// Revalidate asks Tribe whether the session's token still works. When Tribe reports it
// expired the whole session is cleared; other failures leave it alone.
func (m *Manager) Revalidate(ctx context.Context, id string, sess Session) tribe.UserResult {
	result := m.remote.UserObject(ctx, sess.Token)
	if result.Expired() {
		log.Info().Err(result.Err()).Msg("clearing session")
		if err := m.Clear(ctx, id); err != nil {
			log.Err(err).Msg("failed to clear session with expired token")
		}
	}
	return result
}

// CacheGenesets stores the user's gene sets in the session.
func (m *Manager) CacheGenesets(ctx context.Context, id string, sess *Session, genesets []tribe.Geneset) error {
	if genesets == nil {
		genesets = []tribe.Geneset{}
	}
	sess.Genesets = genesets
	if err := m.store.Save(ctx, id, *sess); err != nil {
		return errs.Wrapf(err, "[session CacheGenesets]")
	}
	return nil
}

// Clear deletes every piece of state held for the session.
func (m *Manager) Clear(ctx context.Context, id string) error {
	if id == "" {
		return nil
	}
	return m.store.Delete(ctx, id)
}
