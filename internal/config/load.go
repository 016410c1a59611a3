package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/mitchellh/mapstructure"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes every environment override, e.g. LCA_LIFETIME_YEARS or
// LCA_SWEEP_SLEEP_FRACTIONS_COUNT.
const EnvPrefix = "LCA_"

// overridableKeys lists every scalar key that can be set from the
// environment or with key=value overrides.
var overridableKeys = []string{
	"lifetime_years",
	"manufacturing_energy_kwh",
	"eol_energy_kwh",
	"base_power_kw",
	"grid_factor",
	"grid_region",
	"renewable_factor",
	"recycling_factor",
	"default_sleep_reduction",
	"default_partial_renewable",
	"manufacturing_spread",
	"clamp_fractions",
	"sweep.sleep_fractions.start",
	"sweep.sleep_fractions.stop",
	"sweep.sleep_fractions.count",
	"sweep.renewable_shares.start",
	"sweep.renewable_shares.stop",
	"sweep.renewable_shares.count",
}

// Keys returns the keys accepted by Load overrides, sorted.
func Keys() []string {
	keys := append([]string(nil), overridableKeys...)
	sort.Strings(keys)
	return keys
}

// EnvName returns the environment variable that overrides key.
func EnvName(key string) string {
	return EnvPrefix + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
}

// ParseOverrides parses key=value pairs. Keys are dotted paths such as
// sweep.sleep_fractions.count.
func ParseOverrides(pairs []string) (map[string]string, error) {
	out := make(map[string]string, len(pairs))
	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, fmt.Errorf("%w: override %q is not key=value", ErrInvalidConfig, pair)
		}
		out[key] = strings.TrimSpace(value)
	}
	return out, nil
}

// Load builds the configuration from the embedded defaults, the YAML file at
// path (skipped when empty), LCA_* environment variables, and overrides, in
// that order. The result is validated.
func Load(path string, overrides map[string]string, logger zerolog.Logger) (Config, error) {
	cfg := Default()

	if path != "" {
		if err := loadFile(path, &cfg); err != nil {
			return Config{}, err
		}
		logger.Debug().Str("path", path).Msg("configuration file loaded")
	}

	values := make(map[string]string)
	for _, key := range overridableKeys {
		if v, ok := os.LookupEnv(EnvName(key)); ok {
			values[key] = v
			logger.Debug().Str("key", key).Str("env", EnvName(key)).Msg("environment override")
		}
	}
	for key, v := range overrides {
		values[key] = v
	}

	if err := apply(&cfg, values); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func loadFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("%w: %s: %w", ErrInvalidConfig, path, err)
	}
	return nil
}

// apply decodes flat dotted keys onto cfg. Keys not present keep their
// current value.
func apply(cfg *Config, values map[string]string) error {
	if len(values) == 0 {
		return nil
	}

	known := make(map[string]bool, len(overridableKeys))
	for _, k := range overridableKeys {
		known[k] = true
	}

	nested := make(map[string]interface{})
	for key, value := range values {
		if !known[key] {
			return fmt.Errorf("%w: unknown key %q (known: %s)", ErrInvalidConfig, key, strings.Join(Keys(), ", "))
		}
		setPath(nested, strings.Split(key, "."), value)
	}

	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           cfg,
		WeaklyTypedInput: true,
		ErrorUnused:      true,
	})
	if err != nil {
		return err
	}
	if err := dec.Decode(nested); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return nil
}

func setPath(m map[string]interface{}, path []string, value string) {
	for _, p := range path[:len(path)-1] {
		child, ok := m[p].(map[string]interface{})
		if !ok {
			child = make(map[string]interface{})
			m[p] = child
		}
		m = child
	}
	m[path[len(path)-1]] = value
}
