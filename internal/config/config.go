// Package config loads debtbook configuration: defaults, then an optional
// YAML file, then environment overrides.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/mheller/debtbook/internal/model"
)

// Config holds all runtime settings.
type Config struct {
	// DBPath is where the durable mirror lives.
	DBPath string `koanf:"db_path"`

	// AdminSecret is the shared secret gating admin commands.
	AdminSecret string `koanf:"admin_secret"`

	// Currency is the symbol used in summaries and audit details.
	Currency string `koanf:"currency"`

	// Products is the closed product tag set.
	Products []string `koanf:"products"`

	// DefaultLocation is used when a new entry carries no explicit
	// location. The DEBTBOOK_LOCATION environment variable, when set,
	// acts as a best-effort caller-environment override.
	DefaultLocation string `koanf:"default_location"`

	// LogLevel controls the event sink logger.
	LogLevel string `koanf:"log_level"`
}

// Load builds the configuration. path may be empty; a missing explicit file
// is an error, per the usual fail-loud rule for user-provided paths.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("load config file: %w", err)
		}
	}

	applyDefaults(k)
	applyEnvOverrides(k)

	var cfg Config
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	return &cfg, nil
}

func applyDefaults(k *koanf.Koanf) {
	home, _ := os.UserHomeDir()
	setDefault(k, "db_path", filepath.Join(home, ".debtbook", "debtbook.db"))
	setDefault(k, "admin_secret", "IB0o")
	setDefault(k, "currency", "€")
	setDefault(k, "products", model.DefaultProducts)
	setDefault(k, "default_location", "557")
	setDefault(k, "log_level", "info")
}

func applyEnvOverrides(k *koanf.Koanf) {
	if v := os.Getenv("DEBTBOOK_DB"); v != "" {
		set(k, "db_path", v)
	}
	if v := os.Getenv("DEBTBOOK_ADMIN_SECRET"); v != "" {
		set(k, "admin_secret", v)
	}
	if v := os.Getenv("DEBTBOOK_CURRENCY"); v != "" {
		set(k, "currency", v)
	}
	if v := os.Getenv("DEBTBOOK_PRODUCTS"); v != "" {
		var products []string
		for _, p := range strings.Split(v, ",") {
			if p = strings.TrimSpace(p); p != "" {
				products = append(products, p)
			}
		}
		set(k, "products", products)
	}
	if v := os.Getenv("DEBTBOOK_LOCATION"); v != "" {
		set(k, "default_location", v)
	}
	if v := os.Getenv("DEBTBOOK_LOG_LEVEL"); v != "" {
		set(k, "log_level", v)
	}
}

// set writes an in-process value. Set only errors on unmergeable shapes,
// which plain strings and slices never are.
func set(k *koanf.Koanf, key string, value any) {
	_ = k.Set(key, value)
}

// setDefault only sets the value if the key doesn't already exist
func setDefault(k *koanf.Koanf, key string, value any) {
	if !k.Exists(key) {
		set(k, key, value)
	}
}
