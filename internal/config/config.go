package config

import (
	"crypto/rand"
	"encoding/hex"
	"io/fs"
	"strings"

	"github.com/caarlos0/env/v11"
	errs "github.com/jrsteele09/go-tribe-client/internal/errors"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

// Config is resolved once at start-up and handed to every component.
type Config struct {
	Env     EnvVars
	Tribe   Tribe
	Session Session
	Cors    Cors
	Metrics Metrics
}

// Load reads an optional .env file followed by the process environment.
func Load(dotenvFiles ...string) (Config, error) {
	if err := godotenv.Load(dotenvFiles...); err != nil && !errs.Is(err, fs.ErrNotExist) {
		return Config{}, errs.Wrapf(err, "[config Load] failed to load dotenv")
	}
	return FromEnv()
}

// FromEnv builds a Config from environment variables only.
func FromEnv() (Config, error) {
	var c Config
	if err := env.Parse(&c); err != nil {
		return Config{}, errs.Wrapf(err, "[config FromEnv] parse env")
	}

	if !strings.HasPrefix(c.Env.Port, ":") {
		c.Env.Port = ":" + c.Env.Port
	}
	c.Tribe.URL = strings.TrimRight(c.Tribe.URL, "/")
	c.Env.BaseURL = strings.TrimRight(c.Env.BaseURL, "/")

	if c.Session.Secret == "" {
		secret, err := randomSecret()
		if err != nil {
			return Config{}, errs.Wrapf(err, "[config FromEnv] session secret")
		}
		log.Warn().Msg("SESSION_SECRET not set, sessions will not survive a restart")
		c.Session.Secret = secret
	}
	return c, nil
}

func randomSecret() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
