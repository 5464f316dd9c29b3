package config

import "time"

const (
	SessionStoreMemory = "memory"
	SessionStoreRedis  = "redis"
)

type Session struct {
	Secret     string        `env:"SESSION_SECRET"`
	CookieName string        `env:"SESSION_COOKIE" envDefault:"tribe_session"`
	MaxAge     time.Duration `env:"SESSION_MAX_AGE" envDefault:"336h"`
	Store      string        `env:"SESSION_STORE" envDefault:"memory"`
	Redis      Redis
}

type Redis struct {
	Addr      string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	Password  string `env:"REDIS_PASSWORD"`
	DB        int    `env:"REDIS_DB" envDefault:"0"`
	KeyPrefix string `env:"REDIS_KEY_PREFIX" envDefault:"tribe:session:"`
}
