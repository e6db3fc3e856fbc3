package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Env struct {
	AppAddr string
	GinMode string

	DBUser string
	DBPass string
	DBHost string
	DBName string

	// StorageTimeout bounds every round trip to the backing store.
	StorageTimeout time.Duration

	JWTSecret string
	TokenTTL  time.Duration

	CORSAllowedOrigins []string

	// Wave checkout links are static per price tier.
	WaveLink2500 string
	WaveLink3000 string

	AdminPromoteSecret string
}

func LoadEnv() Env {
	// Missing .env is fine; process env still applies.
	_ = godotenv.Load()

	env := Env{
		AppAddr:            getString("APP_ADDR", ":8080"),
		GinMode:            getString("GIN_MODE", ""),
		DBUser:             getString("DB_USER", "root"),
		DBPass:             getString("DB_PASS", ""),
		DBHost:             getString("DB_HOST", "127.0.0.1:3306"),
		DBName:             getString("DB_NAME", "dabus"),
		StorageTimeout:     getSeconds("DB_TIMEOUT_SECONDS", 5*time.Second),
		JWTSecret:          getString("JWT_SECRET", "change-me"),
		TokenTTL:           getHours("TOKEN_TTL_HOURS", 7*24*time.Hour),
		WaveLink2500:       getString("WAVE_LINK_2500", ""),
		WaveLink3000:       getString("WAVE_LINK_3000", ""),
		AdminPromoteSecret: getString("ADMIN_PROMOTE_SECRET", ""),
	}

	if raw := strings.TrimSpace(os.Getenv("CORS_ALLOWED_ORIGINS")); raw != "" {
		for _, o := range strings.Split(raw, ",") {
			if o = strings.TrimSpace(o); o != "" {
				env.CORSAllowedOrigins = append(env.CORSAllowedOrigins, o)
			}
		}
	}

	return env
}

func getString(key, def string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	return v
}

func getSeconds(key string, def time.Duration) time.Duration {
	n, err := strconv.Atoi(strings.TrimSpace(os.Getenv(key)))
	if err != nil || n <= 0 {
		return def
	}
	return time.Duration(n) * time.Second
}

func getHours(key string, def time.Duration) time.Duration {
	n, err := strconv.Atoi(strings.TrimSpace(os.Getenv(key)))
	if err != nil || n <= 0 {
		return def
	}
	return time.Duration(n) * time.Hour
}
