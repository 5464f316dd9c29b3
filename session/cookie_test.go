package session_test

import (
	"testing"
	"time"

	errs "github.com/jrsteele09/go-tribe-client/internal/errors"
	"github.com/jrsteele09/go-tribe-client/session"
	"github.com/stretchr/testify/require"
)

func TestCookieSigner(t *testing.T) {
	signer := session.NewCookieSigner("secret-1", time.Hour)
	require.Equal(t, 3600, signer.MaxAge())

	value, err := signer.Sign("session-1")
	require.NoError(t, err)

	t.Run("round trip", func(t *testing.T) {
		id, err := signer.Verify(value)
		require.NoError(t, err)
		require.Equal(t, "session-1", id)
	})

	t.Run("tampered", func(t *testing.T) {
		_, err := signer.Verify(value[:len(value)-2] + "xx")
		require.ErrorIs(t, err, errs.ErrInvalidCookie)
	})

	t.Run("other secret", func(t *testing.T) {
		_, err := session.NewCookieSigner("secret-2", time.Hour).Verify(value)
		require.ErrorIs(t, err, errs.ErrInvalidCookie)
	})

	t.Run("raw session id", func(t *testing.T) {
		_, err := signer.Verify("session-1")
		require.ErrorIs(t, err, errs.ErrInvalidCookie)
	})

	t.Run("expired", func(t *testing.T) {
		old, err := session.NewCookieSigner("secret-1", time.Nanosecond).Sign("session-1")
		require.NoError(t, err)

		_, err = signer.Verify(old)
		require.ErrorIs(t, err, errs.ErrInvalidCookie)
	})

	t.Run("missing expiry", func(t *testing.T) {
		unbounded, err := session.NewCookieSigner("secret-1", 0).Sign("session-1")
		require.NoError(t, err)

		_, err = signer.Verify(unbounded)
		require.ErrorIs(t, err, errs.ErrInvalidCookie)
	})
}

func TestCookieSigner_NoMaxAge(t *testing.T) {
	for _, maxAge := range []time.Duration{0, -time.Minute} {
		signer := session.NewCookieSigner("secret-1", maxAge)
		require.Equal(t, 0, signer.MaxAge())

		value, err := signer.Sign("session-1")
		require.NoError(t, err)

		id, err := signer.Verify(value)
		require.NoError(t, err)
		require.Equal(t, "session-1", id)
	}

	t.Run("bounded token still expires", func(t *testing.T) {
		old, err := session.NewCookieSigner("secret-1", time.Nanosecond).Sign("session-1")
		require.NoError(t, err)

		_, err = session.NewCookieSigner("secret-1", 0).Verify(old)
		require.ErrorIs(t, err, errs.ErrInvalidCookie)
	})
}
