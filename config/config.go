package config

import (
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Env         string
	Port        string
	DatabaseURL string

	JWTSecret []byte
	JWTTTL    time.Duration

	GoogleClientID     string
	GoogleClientSecret string
	GoogleRedirectURL  string
	FrontendURL        string

	FCMProjectID       string
	FCMCredentialsJSON string

	AllowedOrigins []string

	Seed bool
}

// C is the active configuration, set by Load.
var C *Config

// Load reads configuration from the environment. A .env file is
// picked up when present so local runs work without exported vars.
func Load() *Config {
	_ = godotenv.Load()

	C = &Config{
		Env:         getEnv("APP_ENV", "development"),
		Port:        getEnv("PORT", "8080"),
		DatabaseURL: getEnv("DATABASE_URL", "campus_cravings.db"),

		JWTSecret: []byte(getEnv("JWT_SECRET", "campus_cravings_dev_secret")),
		JWTTTL:    parseDuration(getEnv("JWT_TTL", "24h")),

		GoogleClientID:     getEnv("GOOGLE_CLIENT_ID", ""),
		GoogleClientSecret: getEnv("GOOGLE_CLIENT_SECRET", ""),
		GoogleRedirectURL:  getEnv("GOOGLE_REDIRECT_URL", "http://localhost:8080/api/auth/google/callback"),
		FrontendURL:        getEnv("FRONTEND_URL", "http://localhost:3000"),

		FCMProjectID:       getEnv("FCM_PROJECT_ID", ""),
		FCMCredentialsJSON: getEnv("FCM_CREDENTIALS_JSON", ""),

		AllowedOrigins: splitOrigins(getEnv("ALLOWED_ORIGINS", "http://localhost:3000")),

		Seed: getEnv("SEED", "") == "true",
	}
	return C
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func parseDuration(s string) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 {
		return 24 * time.Hour
	}
	return d
}

func splitOrigins(s string) []string {
	var origins []string
	for _, o := range strings.Split(s, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}
