package cliparse

import (
	"errors"
	"flag"
	"os"
	"strconv"
)

// Default session lifetime in minutes when SESSION_TTL_MINUTES is unset.
const defaultSessionTTL = 720

type Config struct {
	Port              int
	DatabaseURL       string
	DatabaseType      string
	SessionSecret     string
	SessionTTLMinutes int
}

// ParseFlags validates flags and sets port number
func ParseFlags(args []string) (Config, error) {
	var cfg Config

	fs := flag.NewFlagSet("sevis-watch", flag.ContinueOnError)

	// Network config (can be CLI args or env)
	fs.IntVar(&cfg.Port, "p", 0, "Server port")
	fs.StringVar(&cfg.DatabaseURL, "d", "", "Database URL")
	fs.StringVar(&cfg.DatabaseType, "t", "", "Database type (sqlite or postgres)")

	// Secrets (prefer env variables, but allow CLI for dev)
	fs.StringVar(&cfg.SessionSecret, "session-secret", "", "Dashboard session signing secret (prefer env)")
	fs.IntVar(&cfg.SessionTTLMinutes, "session-ttl", 0, "Dashboard session lifetime in minutes")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	// Fall back to environment variables
	if cfg.Port == 0 {
		if portStr := os.Getenv("PORT"); portStr != "" {
			port, err := strconv.Atoi(portStr)
			if err != nil {
				return Config{}, errors.New("invalid PORT env variable")
			}
			cfg.Port = port
		} else {
			cfg.Port = 3424 // default
		}
	}
	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	}
	if cfg.DatabaseURL == "" {
		return Config{}, errors.New("database URL required (use -d or DATABASE_URL env)")
	}

	if cfg.DatabaseType == "" {
		cfg.DatabaseType = os.Getenv("DATABASE_TYPE")
		if cfg.DatabaseType == "" {
			cfg.DatabaseType = "sqlite"
		}
	}
	if cfg.DatabaseType != "sqlite" && cfg.DatabaseType != "postgres" {
		return Config{}, errors.New("database type must be sqlite or postgres")
	}

	// Secrets - MUST be provided
	if cfg.SessionSecret == "" {
		cfg.SessionSecret = os.Getenv("SESSION_SECRET")
	}
	if cfg.SessionSecret == "" {
		return Config{}, errors.New("SESSION_SECRET required")
	}

	if cfg.SessionTTLMinutes == 0 {
		if ttlStr := os.Getenv("SESSION_TTL_MINUTES"); ttlStr != "" {
			ttl, err := strconv.Atoi(ttlStr)
			if err != nil || ttl <= 0 {
				return Config{}, errors.New("invalid SESSION_TTL_MINUTES env variable")
			}
			cfg.SessionTTLMinutes = ttl
		} else {
			cfg.SessionTTLMinutes = defaultSessionTTL
		}
	}

	return cfg, nil
}
