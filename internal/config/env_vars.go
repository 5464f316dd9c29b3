package config

type EnvVars struct {
	Port    string `env:"PORT" envDefault:"8080"`
	AppName string `env:"APP_NAME" envDefault:"Tribe Client"`
	Env     string `env:"ENV" envDefault:"DEV"`
	// BaseURL is where this service is reachable, used to derive the OAuth redirect URI.
	BaseURL string `env:"BASE_URL" envDefault:"http://localhost:8080"`
}

func (e EnvVars) GetPort() string {
	return e.Port
}

func (e EnvVars) GetAppName() string {
	return e.AppName
}

func (e EnvVars) GetEnv() string {
	return e.Env
}

func (e EnvVars) IsDev() bool {
	return e.Env == "DEV"
}

type Metrics struct {
	Enabled bool `env:"METRICS_ENABLED" envDefault:"true"`
}
