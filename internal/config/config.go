package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	defaultListenAddr    = ":8080"
	defaultDatabaseDSN   = "roomledger.db"
	defaultJWTSecret     = "change-me-jwt-secret"
	defaultJWTAccessTTL  = "24h"
	defaultNightDuration = "24h"
	defaultGracePeriod   = "120s"
	defaultLedgerBaseURL = "http://localhost:9090"
)

// Config carries every runtime knob, loaded once at bootstrap and read-only
// afterwards. In particular HoldingFee is fixed at process start: there is no
// API to change it later, and order amounts computed from it stay frozen on
// the order itself.
type Config struct {
	AppEnv     string
	ListenAddr string

	DatabaseDSN string

	JWTSecret    string
	JWTAccessTTL time.Duration

	// HoldingFee is the refundable deposit in the smallest currency unit.
	// Zero means "not configured": reservation operations refuse to run.
	HoldingFee int64

	// NightDuration is the clock interval one reservation night occupies.
	// Production runs a full day; test deployments compress it.
	NightDuration time.Duration

	// GracePeriod is how long an unpaid pending order survives before the
	// expiry callback discards it.
	GracePeriod time.Duration

	LedgerBaseURL  string
	LedgerAPIToken string
	// LedgerServiceAddress is this service's own address on the ledger,
	// the expected receiver of every reservation payment.
	LedgerServiceAddress string
}

func Load() (*Config, error) {
	cfg := &Config{}

	appEnv := strings.TrimSpace(os.Getenv("APP_ENV"))
	if appEnv == "" {
		appEnv = "dev"
	}
	cfg.AppEnv = strings.ToLower(appEnv)

	cfg.ListenAddr = getEnv("LISTEN_ADDR", defaultListenAddr)
	cfg.DatabaseDSN = getEnv("DATABASE_URL", defaultDatabaseDSN)
	cfg.JWTSecret = strings.TrimSpace(getEnv("JWT_SECRET", defaultJWTSecret))

	var err error
	cfg.JWTAccessTTL, err = parseDurationEnv("JWT_ACCESS_TTL", defaultJWTAccessTTL)
	if err != nil {
		return nil, err
	}
	cfg.NightDuration, err = parseDurationEnv("NIGHT_DURATION", defaultNightDuration)
	if err != nil {
		return nil, err
	}
	cfg.GracePeriod, err = parseDurationEnv("ORDER_GRACE_PERIOD", defaultGracePeriod)
	if err != nil {
		return nil, err
	}

	cfg.HoldingFee, err = parseInt64Env("HOLDING_FEE", "0")
	if err != nil {
		return nil, err
	}

	cfg.LedgerBaseURL = strings.TrimSpace(getEnv("LEDGER_BASE_URL", defaultLedgerBaseURL))
	cfg.LedgerAPIToken = strings.TrimSpace(os.Getenv("LEDGER_API_TOKEN"))
	cfg.LedgerServiceAddress = strings.TrimSpace(os.Getenv("LEDGER_SERVICE_ADDRESS"))

	if err := validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func validate(cfg *Config) error {
	if cfg.JWTAccessTTL <= 0 {
		return fmt.Errorf("JWT_ACCESS_TTL must be > 0")
	}
	if cfg.NightDuration <= 0 {
		return fmt.Errorf("NIGHT_DURATION must be > 0")
	}
	if cfg.GracePeriod <= 0 {
		return fmt.Errorf("ORDER_GRACE_PERIOD must be > 0")
	}
	if cfg.HoldingFee < 0 {
		return fmt.Errorf("HOLDING_FEE must be >= 0")
	}
	if cfg.LedgerBaseURL == "" {
		return fmt.Errorf("LEDGER_BASE_URL must not be empty")
	}

	if IsProdLike(cfg.AppEnv) {
		if cfg.JWTSecret == "" || cfg.JWTSecret == defaultJWTSecret {
			return fmt.Errorf("in prod/release JWT_SECRET must be set and not default")
		}
		if cfg.HoldingFee == 0 {
			return fmt.Errorf("in prod/release HOLDING_FEE must be set")
		}
		if cfg.LedgerServiceAddress == "" {
			return fmt.Errorf("in prod/release LEDGER_SERVICE_ADDRESS must be set")
		}
	}
	return nil
}

// IsProdLike reports whether env names a production-grade deployment.
func IsProdLike(env string) bool {
	env = strings.ToLower(strings.TrimSpace(env))
	return env == "prod" || env == "production" || env == "release"
}

func parseDurationEnv(name, fallback string) (time.Duration, error) {
	value := strings.TrimSpace(getEnv(name, fallback))
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value %q: %w", name, value, err)
	}
	return d, nil
}

func parseInt64Env(name, fallback string) (int64, error) {
	value := strings.TrimSpace(getEnv(name, fallback))
	n, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value %q: %w", name, value, err)
	}
	return n, nil
}

func getEnv(name, fallback string) string {
	if v := os.Getenv(name); v != "" {
		return v
	}
	return fallback
}
