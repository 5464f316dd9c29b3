package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/jrsteele09/go-tribe-client/internal/config"
	"github.com/stretchr/testify/require"
)

func TestFromEnv_Defaults(t *testing.T) {
	t.Setenv("SESSION_SECRET", "")

	c, err := config.FromEnv()
	require.NoError(t, err)

	require.Equal(t, ":8080", c.Env.GetPort())
	require.Equal(t, "DEV", c.Env.GetEnv())
	require.True(t, c.Env.IsDev())
	require.Equal(t, "http://tribe.dartmouth.edu", c.Tribe.URL)
	require.Equal(t, "read", c.Tribe.Scope)
	require.Equal(t, "Entrez", c.Tribe.CrossRefDB)
	require.Equal(t, "tribe_session", c.Session.CookieName)
	require.Equal(t, 14*24*time.Hour, c.Session.MaxAge)
	require.Equal(t, config.SessionStoreMemory, c.Session.Store)
	require.Equal(t, "tribe:session:", c.Session.Redis.KeyPrefix)
	require.True(t, c.Metrics.Enabled)
	require.Len(t, c.Session.Secret, 64, "a random secret is generated when none is set")
}

func TestFromEnv_Overrides(t *testing.T) {
	t.Setenv("PORT", ":9000")
	t.Setenv("TRIBE_URL", "https://tribe.example.org/")
	t.Setenv("TRIBE_ID", "client-1")
	t.Setenv("TRIBE_SECRET", "secret-1")
	t.Setenv("TRIBE_CROSSREF_DB", "Symbol")
	t.Setenv("SESSION_SECRET", "fixed")
	t.Setenv("SESSION_STORE", "redis")
	t.Setenv("REDIS_DB", "3")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://b.example.org, https://a.example.org,")

	c, err := config.FromEnv()
	require.NoError(t, err)

	require.Equal(t, ":9000", c.Env.GetPort())
	require.Equal(t, "https://tribe.example.org", c.Tribe.URL)
	require.Equal(t, "https://tribe.example.org/oauth2/authorize", c.Tribe.AuthorizeURL())
	require.Equal(t, "https://tribe.example.org/oauth2/access_token", c.Tribe.TokenURL())
	require.Equal(t, "https://tribe.example.org/api/v1/geneset/", c.Tribe.APIURL("/geneset/"))
	require.Equal(t, "client-1", c.Tribe.ClientID)
	require.Equal(t, "secret-1", c.Tribe.ClientSecret)
	require.Equal(t, "Symbol", c.Tribe.CrossRefDB)
	require.Equal(t, "fixed", c.Session.Secret)
	require.Equal(t, config.SessionStoreRedis, c.Session.Store)
	require.Equal(t, 3, c.Session.Redis.DB)

	origins := c.Cors.GetAllowedOrigins()
	require.True(t, origins.IsAllowedOrigin("https://a.example.org"))
	require.False(t, origins.IsAllowedOrigin("https://c.example.org"))
	require.Equal(t, []string{"https://a.example.org", "https://b.example.org"}, origins.List())
}

func TestLoad_DotEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(path, []byte("TRIBE_SCOPE=write\n"), 0o600))
	t.Setenv("SESSION_SECRET", "fixed")
	t.Cleanup(func() { os.Unsetenv("TRIBE_SCOPE") })

	c, err := config.Load(path)
	require.NoError(t, err)
	require.Equal(t, "write", c.Tribe.Scope)
}

func TestLoad_MissingDotEnvIsIgnored(t *testing.T) {
	t.Setenv("SESSION_SECRET", "fixed")

	_, err := config.Load(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)
}
