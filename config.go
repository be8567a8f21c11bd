package stockwatch

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// Config holds everything a run needs, read once at startup and passed
// explicitly into each component. There is no ambient global configuration.
type Config struct {
	// Notification channel (Elastic Email).
	EmailAPIKey   string
	EmailEndpoint string
	SenderEmail   string
	SenderName    string
	Recipients    []string

	// Price history provider (EODHD).
	EodhdAPIKey string

	// Tracker data layout.
	DataDir      string // working directory for persisted state
	InputDir     string // broker CSV exports to import
	RegistryFile string // persisted symbol registry
	TrackingFile string // persisted tracking table

	// Tracker tuning.
	LookbackDays     int     // business days of price history per refresh
	StagnationDays   int     // days between high_date and updated before a position is stagnant
	DefaultTolerance Percent // tolerance seeded on newly tracked symbols
}

// DefaultEmailEndpoint is the Elastic Email API base used when none is configured.
const DefaultEmailEndpoint = "https://api.elasticemail.com/v2"

// LoadConfig builds a Config from environment variables, falling back to the
// defaults of the original tracker for everything optional.
func LoadConfig() Config {
	dataDir := envString("DATA_DIR", "data")
	return Config{
		EmailAPIKey:   os.Getenv("ELASTIC_EMAIL_API_KEY"),
		EmailEndpoint: envString("ELASTIC_EMAIL_API_URI", DefaultEmailEndpoint),
		SenderEmail:   os.Getenv("SENDER_EMAIL"),
		SenderName:    envString("SENDER_NAME", "Stock Tracker"),
		Recipients:    splitList(os.Getenv("RECIPIENT_EMAILS")),

		EodhdAPIKey: os.Getenv("EODHD_API_KEY"),

		DataDir:      dataDir,
		InputDir:     envString("INPUT_DIR", filepath.Join(dataDir, "input")),
		RegistryFile: envString("INVESTMENTS_FILE", filepath.Join(dataDir, "investments.csv")),
		TrackingFile: envString("DATA_FILE", filepath.Join(dataDir, "tracking.csv")),

		LookbackDays:     envInt("LOOKBACK_DAYS", 5),
		StagnationDays:   envInt("STAGNATION_THRESHOLD", 45),
		DefaultTolerance: Percent(envFloat("DEFAULT_TOLERANCE", 15.0)),
	}
}

// Validate reports every missing notification credential at once, so a
// misconfigured deployment is diagnosed before any phase runs.
func (c Config) Validate() error {
	var errs error
	if c.EmailAPIKey == "" {
		errs = errors.Join(errs, errors.New("ELASTIC_EMAIL_API_KEY environment variable is required"))
	}
	if c.SenderEmail == "" {
		errs = errors.Join(errs, errors.New("SENDER_EMAIL environment variable is required"))
	}
	if len(c.Recipients) == 0 {
		errs = errors.Join(errs, errors.New("RECIPIENT_EMAILS environment variable is required"))
	}
	return errs
}

// EnsureDirs creates the data and input directories if they do not exist.
func (c Config) EnsureDirs() error {
	for _, dir := range []string{c.DataDir, c.InputDir} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("cannot create directory %q: %w", dir, err)
		}
	}
	return nil
}

func envString(name, fallback string) string {
	if v := os.Getenv(name); v != "" {
		return v
	}
	return fallback
}

func envInt(name string, fallback int) int {
	v := os.Getenv(name)
	if v == "" {
		return fallback
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		log.Printf("invalid %s=%q, using default %d", name, v, fallback)
		return fallback
	}
	return i
}

func envFloat(name string, fallback float64) float64 {
	v := os.Getenv(name)
	if v == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		log.Printf("invalid %s=%q, using default %g", name, v, fallback)
		return fallback
	}
	return f
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
