package config

import (
	"os"
	"strings"
)

type Config struct {
	HTTPAddr string

	DBDriver string
	DBDSN    string
	// InMemory skips the database entirely (dev/test runs).
	InMemory bool

	AuthSecret     string
	AuthorUser     string
	AuthorPassHash string // bcrypt

	CORSOrigins []string
}

func FromEnv() Config {
	addr := os.Getenv("HTTP_ADDR")
	if addr == "" {
		addr = ":8080"
	}
	return Config{
		HTTPAddr:   addr,
		DBDriver:   envOr("DB_DRIVER", "sqlite"),
		DBDSN:      envOr("DB_DSN", ""),
		InMemory:   envBool("IN_MEMORY_STORE", false),
		AuthSecret: envOr("AUTH_HMAC_SECRET", "supersecret-dev-key"),
		AuthorUser: envOr("AUTHOR_USER", "author"),
		// default hash is bcrypt("author"), dev only
		AuthorPassHash: envOr("AUTHOR_PASS_HASH", "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"),
		CORSOrigins:    csvOr("CORS_ORIGINS", "http://localhost:3000,http://localhost:5173"),
	}
}

func envOr(k, def string) string {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	return v
}

func envBool(k string, def bool) bool {
	switch os.Getenv(k) {
	case "1", "true", "TRUE", "yes", "YES":
		return true
	case "0", "false", "FALSE", "no", "NO":
		return false
	default:
		return def
	}
}

func csvOr(k, def string) []string {
	v := envOr(k, def)
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			out = append(out, s)
		}
	}
	return out
}
