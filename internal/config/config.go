package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	ServerPort  string
	StoreDriver string // "file" or "postgres"
	DataDir     string
	DatabaseURL string

	JWTSecret string
	TokenTTL  time.Duration

	// TaxRateBP is the invoice tax rate in basis points (800 = 8%).
	TaxRateBP int64

	Staff struct {
		Email    string
		Password string
		Name     string
	}
}

func Load() (*Config, error) {
	// Load .env file if it exists (useful for local dev)
	_ = godotenv.Load()

	cfg := &Config{}

	cfg.ServerPort = os.Getenv("SERVER_PORT")
	if cfg.ServerPort == "" {
		cfg.ServerPort = "8080"
	}

	cfg.StoreDriver = os.Getenv("STORE_DRIVER")
	if cfg.StoreDriver == "" {
		cfg.StoreDriver = "file"
	}
	switch cfg.StoreDriver {
	case "file":
		cfg.DataDir = os.Getenv("DATA_DIR")
		if cfg.DataDir == "" {
			cfg.DataDir = "data"
		}
	case "postgres":
		cfg.DatabaseURL = os.Getenv("DATABASE_URL")
		if cfg.DatabaseURL == "" {
			return nil, fmt.Errorf("DATABASE_URL must be set when STORE_DRIVER=postgres")
		}
	default:
		return nil, fmt.Errorf("unknown STORE_DRIVER %q", cfg.StoreDriver)
	}

	cfg.JWTSecret = os.Getenv("JWT_SECRET")
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET must be set")
	}

	cfg.TokenTTL = 24 * time.Hour
	if ttl := os.Getenv("TOKEN_TTL"); ttl != "" {
		d, err := time.ParseDuration(ttl)
		if err != nil {
			return nil, fmt.Errorf("invalid TOKEN_TTL %q: %w", ttl, err)
		}
		cfg.TokenTTL = d
	}

	cfg.TaxRateBP = 800
	if raw := os.Getenv("TAX_RATE_BP"); raw != "" {
		bp, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || bp < 0 {
			return nil, fmt.Errorf("invalid TAX_RATE_BP %q", raw)
		}
		cfg.TaxRateBP = bp
	}

	cfg.Staff.Email = os.Getenv("STAFF_EMAIL")
	cfg.Staff.Password = os.Getenv("STAFF_PASSWORD")
	cfg.Staff.Name = os.Getenv("STAFF_NAME")
	if cfg.Staff.Name == "" {
		cfg.Staff.Name = "Counter Staff"
	}
	if cfg.Staff.Email != "" && cfg.Staff.Password == "" {
		return nil, fmt.Errorf("STAFF_PASSWORD must be set when STAFF_EMAIL is set")
	}

	return cfg, nil
}
