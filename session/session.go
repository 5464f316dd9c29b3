// Package session keeps a user's Tribe access token and related snapshots server side.
//
// A session is created on the first successful authentication and deleted wholesale on
// logout or when Tribe reports the token as expired. Browsers only hold a signed
// reference to it, see CookieSigner.
package session

import (
	"context"
	"time"

	"github.com/jrsteele09/go-tribe-client/tribe"
)

type Session struct {
	// Token is the Tribe OAuth2 access token. Its validity is only ever learnt by using it.
	Token string `json:"token"`
	// User is the user snapshot fetched at login.
	User []tribe.User `json:"user"`
	// Genesets caches the user's gene sets. Nil means not fetched yet.
	Genesets []tribe.Geneset `json:"genesets"`

	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// CachedGenesets returns the cached gene sets and whether a snapshot was stored.
func (s Session) CachedGenesets() ([]tribe.Geneset, bool) {
	return s.Genesets, s.Genesets != nil
}

func (s Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && now.After(s.ExpiresAt)
}

type Store interface {
	Get(ctx context.Context, id string) (Session, error)
	Save(ctx context.Context, id string, session Session) error
	Delete(ctx context.Context, id string) error
}
