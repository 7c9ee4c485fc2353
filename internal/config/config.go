package config // package config loads application configuration from environment variables

import (
	"os"
)

// Config holds all runtime configuration values. Each field corresponds to
// an environment variable. Store credentials are deliberately optional:
// when absent the service still boots and every store-dependent call
// returns a uniform "not configured" error instead of crashing.
type Config struct {
	Env           string // application environment (e.g. "dev", "prod")
	Port          string // HTTP port to listen on
	SupabaseURL   string // project URL of the hosted store
	SupabaseKey   string // service-role key for the hosted store
	SiteURL       string // externally visible base URL (Open-Graph pages, file links)
	UploadDir     string // root directory for uploaded binaries
	JWTSecret     string // secret used to sign session tokens returned by login
	TokenTTLHours int    // session token time-to-live in hours
}

// Load reads configuration from environment variables, applying defaults
// suitable for local development.
func Load() Config {
	port := envStr("PORT", "3001")
	return Config{
		Env:           envStr("APP_ENV", "dev"),
		Port:          port,
		SupabaseURL:   os.Getenv("SUPABASE_URL"),
		SupabaseKey:   firstEnv("SUPABASE_SERVICE_KEY", "SUPABASE_SERVICE_ROLE_KEY", "SUPABASE_KEY"),
		SiteURL:       envStr("SITE_URL", "http://localhost:"+port),
		UploadDir:     envStr("UPLOAD_DIR", "uploads"),
		JWTSecret:     envStr("JWT_SECRET", "meutreino-dev-secret"),
		TokenTTLHours: envInt("TOKEN_TTL_HOURS", 168),
	}
}

// StoreConfigured reports whether both store credentials were supplied.
func (c Config) StoreConfigured() bool {
	return c.SupabaseURL != "" && c.SupabaseKey != ""
}

// firstEnv returns the first non-empty value among the given variables.
func firstEnv(keys ...string) string {
	for _, k := range keys {
		if v := os.Getenv(k); v != "" {
			return v
		}
	}
	return ""
}
