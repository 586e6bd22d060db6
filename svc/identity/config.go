package identity

import (
	"strings"
	"time"
)

// Config points at the Supabase Auth (GoTrue) instance of the project.
type Config struct {
	URL            string `env:"SUPABASE_URL"`
	ServiceRoleKey string `env:"SUPABASE_SERVICE_ROLE_KEY"`
	// JWTSecret signs the short-lived user tokens used to revoke sessions.
	JWTSecret       string        `env:"SUPABASE_JWT_SECRET"`
	SessionTokenTTL time.Duration `env:"SUPABASE_SESSION_TOKEN_TTL" envDefault:"1m"`
}

// AuthURL is the GoTrue base URL derived from the project URL.
func (c Config) AuthURL() string {
	return strings.TrimRight(c.URL, "/") + "/auth/v1"
}
