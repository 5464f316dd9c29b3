package config

import (
	"slices"
	"strings"

	"github.com/jrsteele09/go-tribe-client/internal/utils"
)

type Cors struct {
	Origins []string `env:"CORS_ALLOWED_ORIGINS" envSeparator:","`
}

func (c Cors) GetAllowedOrigins() AllowedOrigins {
	return NewAllowedOrigins(c.Origins...)
}

type AllowedOrigins map[string]struct{}
type nullValue = struct{}

func NewAllowedOrigins(origins ...string) AllowedOrigins {
	a := AllowedOrigins{}
	for _, o := range utils.TrimCSV(origins) {
		a[o] = nullValue{}
	}
	return a
}

func (a AllowedOrigins) IsAllowedOrigin(origin string) bool {
	_, ok := a[origin]
	return ok
}

// List returns the origins in a stable order.
func (a AllowedOrigins) List() []string {
	return utils.SortedKeys(a)
}

func (a AllowedOrigins) String() string {
	return strings.Join(a.List(), ", ")
}

func (Cors) GetAllowedMethods() []string {
	return slices.Clone(allowedMethods)
}

func (Cors) GetAllowedHeaders() []string {
	return slices.Clone(allowedHeaders)
}

var (
	allowedMethods = []string{"GET", "POST", "OPTIONS"}
	allowedHeaders = []string{"Content-Type", "Authorization", "X-CSRFToken"}
)
