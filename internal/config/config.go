package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"

	"expensetracker/internal/core"
)

// Config holds the application configuration loaded from environment variables.
type Config struct {
	// DBPath is the SQLite data file.
	// Environment variable: EXPENSE_DB_PATH
	DBPath string `koanf:"EXPENSE_DB_PATH"`

	// DataBackend selects the record store: sqlite or memory.
	// Environment variable: DATA_BACKEND
	DataBackend string `koanf:"DATA_BACKEND"`

	// Environment variables: LOG_LEVEL, LOG_FORMAT
	LogLevel  string `koanf:"LOG_LEVEL"`
	LogFormat string `koanf:"LOG_FORMAT"`

	// AmountPolicy is strict (positive amounts only) or lenient.
	// Environment variable: AMOUNT_POLICY
	AmountPolicy string `koanf:"AMOUNT_POLICY"`

	// Categories overrides the entry-time category list (comma separated).
	// Environment variable: EXPENSE_CATEGORIES
	Categories []string `koanf:"EXPENSE_CATEGORIES"`

	// ConfirmDelete asks before removing a record.
	// Environment variable: CONFIRM_DELETE
	ConfirmDelete bool `koanf:"CONFIRM_DELETE"`
}

// Default returns the configuration used when no environment is set.
func Default() *Config {
	return &Config{
		DBPath:        "expense.db",
		DataBackend:   "sqlite",
		LogLevel:      "INFO",
		LogFormat:     "text",
		AmountPolicy:  string(core.AmountPolicyStrict),
		Categories:    append([]string(nil), core.DefaultCategories...),
		ConfirmDelete: true,
	}
}

// Load reads the environment on top of Default. Empty variables count as unset.
func Load() (*Config, error) {
	k := koanf.New(".")
	provider := env.ProviderWithValue("", ".", func(key, value string) (string, interface{}) {
		if strings.TrimSpace(value) == "" {
			return "", nil
		}
		return key, value
	})
	if err := k.Load(provider, nil); err != nil {
		return nil, fmt.Errorf("load environment: %w", err)
	}

	cfg := Default()
	cfg.Categories = nil
	if err := k.UnmarshalWithConf("", cfg, koanf.UnmarshalConf{Tag: "koanf", FlatPaths: true}); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	cfg.Categories = cleanCategories(cfg.Categories)
	if len(cfg.Categories) == 0 {
		cfg.Categories = append([]string(nil), core.DefaultCategories...)
	}
	return cfg, nil
}

// Validate validates the configuration and returns an error if invalid
func (c *Config) Validate() error {
	var errors []string

	validBackends := []string{"sqlite", "memory"}
	isValidBackend := false
	for _, backend := range validBackends {
		if c.DataBackend == backend {
			isValidBackend = true
			break
		}
	}
	if !isValidBackend {
		errors = append(errors, fmt.Sprintf("invalid data backend '%s': must be one of %v", c.DataBackend, validBackends))
	}

	if c.DataBackend == "sqlite" {
		if c.DBPath == "" {
			errors = append(errors, "SQLite database path cannot be empty when using sqlite backend")
		} else if info, err := os.Stat(c.DBPath); err == nil && info.IsDir() {
			errors = append(errors, fmt.Sprintf("SQLite database path '%s' is a directory", c.DBPath))
		} else if dir := filepath.Dir(c.DBPath); dir != "." && dir != "" {
			if info, err := os.Stat(dir); err == nil && !info.IsDir() {
				errors = append(errors, fmt.Sprintf("SQLite database directory '%s' is not a directory", dir))
			}
		}
	}

	switch strings.ToUpper(c.LogLevel) {
	case "DEBUG", "INFO", "WARN", "WARNING", "ERROR":
	default:
		errors = append(errors, fmt.Sprintf("invalid log level '%s': must be one of DEBUG, INFO, WARN, ERROR", c.LogLevel))
	}

	if c.LogFormat != "text" && c.LogFormat != "json" {
		errors = append(errors, fmt.Sprintf("invalid log format '%s': must be 'text' or 'json'", c.LogFormat))
	}

	if !core.AmountPolicy(c.AmountPolicy).IsValid() {
		errors = append(errors, fmt.Sprintf("invalid amount policy '%s': must be 'strict' or 'lenient'", c.AmountPolicy))
	}

	if len(c.Categories) == 0 {
		errors = append(errors, "at least one expense category is required")
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errors, "\n- "))
	}

	return nil
}

func cleanCategories(in []string) []string {
	seen := map[string]struct{}{}
	out := make([]string, 0, len(in))
	for _, v := range in {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		key := strings.ToLower(v)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, v)
	}
	return out
}
