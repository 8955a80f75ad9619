package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"tripmap/internal/engine"
)

type Config struct {
	TripFile        string
	TripID          string
	DatabaseURL     string
	TripDatabase    string
	TripRefresh     time.Duration
	NATSURL         string
	LogNATSSubjects bool
	MetricsAddr     string
	FrameInterval   time.Duration
	BottomPadding   int
	Animation       engine.AnimationConfig
}

func Load() (*Config, error) {
	// Load .env into environment (ignore if missing)
	_ = godotenv.Load()

	cfg := &Config{
		TripFile: strings.TrimSpace(os.Getenv("TRIP_FILE")),
		TripID:   strings.TrimSpace(os.Getenv("TRIP_ID")),
	}
	if cfg.TripFile == "" && cfg.TripID == "" {
		return nil, errors.New("TRIP_FILE or TRIP_ID must be set")
	}

	// The trip store is only needed when the trip is not read from a file.
	if cfg.TripFile == "" {
		dsn, err := databaseURL()
		if err != nil {
			return nil, err
		}
		cfg.DatabaseURL = dsn
		// Optional database holding the trips table, when it differs from the DSN's.
		cfg.TripDatabase = strings.TrimSpace(os.Getenv("TRIP_DATABASE"))

		// Trips refresh interval (seconds)
		if v := os.Getenv("TRIP_REFRESH_INTERVAL_SEC"); v != "" {
			sec, err := strconv.Atoi(v)
			if err != nil || sec <= 0 {
				return nil, fmt.Errorf("invalid TRIP_REFRESH_INTERVAL_SEC: %q", v)
			}
			cfg.TripRefresh = time.Duration(sec) * time.Second
		} else {
			cfg.TripRefresh = 60 * time.Second
		}
	}

	cfg.NATSURL = getenvDefault("NATS_URL", "nats://127.0.0.1:4222")
	cfg.LogNATSSubjects = parseBool(os.Getenv("LOG_NATS_SUBJECTS"))

	// Metrics listen address (e.g., ":9102"). Empty disables the metrics server.
	cfg.MetricsAddr = os.Getenv("METRICS_ADDR")

	var err error
	if cfg.FrameInterval, err = millis("FRAME_INTERVAL_MS", 16*time.Millisecond, false); err != nil {
		return nil, err
	}

	cfg.Animation = engine.DefaultAnimationConfig()
	if cfg.Animation.Duration, err = millis("ANIMATION_DURATION_MS", cfg.Animation.Duration, false); err != nil {
		return nil, err
	}
	if cfg.Animation.PrimeDelay, err = millis("ANIMATION_PRIME_MS", cfg.Animation.PrimeDelay, true); err != nil {
		return nil, err
	}
	if cfg.Animation.SettleDelay, err = millis("ANIMATION_SETTLE_MS", cfg.Animation.SettleDelay, true); err != nil {
		return nil, err
	}

	if v := os.Getenv("BOTTOM_PADDING_PX"); v != "" {
		px, err := strconv.Atoi(v)
		if err != nil || px < 0 {
			return nil, fmt.Errorf("invalid BOTTOM_PADDING_PX: %q", v)
		}
		cfg.BottomPadding = px
	}

	return cfg, nil
}

// databaseURL prefers DATABASE_URL / PG_DSN, else builds a DSN from PG* vars.
func databaseURL() (string, error) {
	if dsn := firstNonEmpty(os.Getenv("DATABASE_URL"), os.Getenv("PG_DSN")); dsn != "" {
		return dsn, nil
	}
	host := getenvDefault("PGHOST", "127.0.0.1")
	port := getenvDefault("PGPORT", "5432")
	user := getenvDefault("PGUSER", "postgres")
	pass := os.Getenv("PGPASSWORD")
	db := os.Getenv("PGDATABASE")
	if db == "" {
		return "", errors.New("PGDATABASE or DATABASE_URL must be set when TRIP_FILE is empty")
	}
	sslmode := getenvDefault("PGSSLMODE", "disable")
	if pass != "" {
		return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s", urlEscape(user), urlEscape(pass), host, port, db, sslmode), nil
	}
	return fmt.Sprintf("postgres://%s@%s:%s/%s?sslmode=%s", urlEscape(user), host, port, db, sslmode), nil
}

func millis(key string, def time.Duration, allowZero bool) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	ms, err := strconv.Atoi(v)
	if err != nil || ms < 0 || (ms == 0 && !allowZero) {
		return 0, fmt.Errorf("invalid %s: %q", key, v)
	}
	return time.Duration(ms) * time.Millisecond, nil
}

func parseBool(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "1", "true", "t", "yes", "y", "on":
		return true
	}
	return false
}

func getenvDefault(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}

func urlEscape(s string) string {
	// Minimal escape for DSN user/pass with special chars
	r := strings.NewReplacer("@", "%40", ":", "%3A", "/", "%2F", "?", "%3F", "#", "%23")
	return r.Replace(s)
}
