// Package config loads sqlfrag configuration from defaults, an optional config.yaml and
// SQLFRAG_ prefixed environment variables, in increasing priority.
package config

import (
	"fmt"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix is stripped from environment variables before they are mapped onto keys.
// SQLFRAG_DATABASE_HOST sets database.host.
const EnvPrefix = "SQLFRAG_"

// DefaultFile is the optional YAML file Load reads from the working directory.
const DefaultFile = "config.yaml"

// Load loads configuration from multiple sources with priority:
// 1. Environment variables (highest priority)
// 2. config.yaml in the working directory
// 3. Default values (lowest priority)
func Load() (*Config, error) {
	return load(func(k *koanf.Koanf) {
		// YAML file is optional
		_ = k.Load(file.Provider(DefaultFile), yaml.Parser())
	})
}

// LoadFromBytes loads configuration from an in-memory YAML document instead of config.yaml.
// Defaults and environment variables apply as in Load.
func LoadFromBytes(data []byte) (*Config, error) {
	var yamlErr error
	cfg, err := load(func(k *koanf.Koanf) {
		yamlErr = k.Load(rawbytes.Provider(data), yaml.Parser())
	})
	if yamlErr != nil {
		return nil, fmt.Errorf("failed to parse yaml config: %w", yamlErr)
	}
	return cfg, err
}

func load(loadYAML func(k *koanf.Koanf)) (*Config, error) {
	k := koanf.New(".")

	if err := loadDefaults(k); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	loadYAML(k)

	if err := k.Load(env.Provider(".", env.Opt{
		Prefix:        EnvPrefix,
		TransformFunc: envKey,
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	cfg.k = k

	if err := Validate(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// envKey converts SQLFRAG_DATABASE_POOL_MAX_CONNECTIONS to database.pool.max.connections.
func envKey(key, value string) (string, any) {
	key = strings.TrimPrefix(key, EnvPrefix)
	return strings.ReplaceAll(strings.ToLower(key), "_", "."), value
}

func loadDefaults(k *koanf.Koanf) error {
	defaults := map[string]any{
		// Database defaults not provided; the executor database is only
		// enabled when explicitly configured

		"builder.vendor": "",
		"builder.joiner": "AND",

		"log.level":  "info",
		"log.pretty": false,
	}

	return k.Load(confmap.Provider(defaults, "."), nil)
}

// Exists reports whether key was set by any configuration source.
func (c *Config) Exists(key string) bool {
	return c != nil && c.k != nil && c.k.Exists(key)
}

// GetString retrieves a string value from the configuration or the provided default.
func (c *Config) GetString(key string, defaultVal ...string) string {
	if !c.Exists(key) {
		if len(defaultVal) > 0 {
			return defaultVal[0]
		}
		return ""
	}
	return c.k.String(key)
}
