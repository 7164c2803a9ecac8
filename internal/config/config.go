package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds the socialsearch configuration.
type Config struct {
	HTTP       HTTPConfig       `yaml:"http"`
	Database   DatabaseConfig   `yaml:"database"`
	Storage    StorageConfig    `yaml:"storage"`
	Engine     EngineConfig     `yaml:"engine"`
	Federation FederationConfig `yaml:"federation"`
	Social     SocialConfig     `yaml:"social"`
	Indexing   IndexingConfig   `yaml:"indexing"`
	Auth       AuthConfig       `yaml:"auth"`
	Logging    LoggingConfig    `yaml:"logging"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error (default: determined by env)
}

// AuthConfig holds API authentication settings.
type AuthConfig struct {
	APIKeys []string `yaml:"api_keys"`
}

// HTTPConfig holds HTTP server settings.
type HTTPConfig struct {
	Port            int `yaml:"port"`
	ReadTimeoutSec  int `yaml:"read_timeout_sec"`
	WriteTimeoutSec int `yaml:"write_timeout_sec"`
	ShutdownSec     int `yaml:"shutdown_timeout_sec"`
}

// DatabaseConfig holds database connection settings.
type DatabaseConfig struct {
	Addrs            []string `yaml:"addrs"`
	Username         string   `yaml:"username"`
	Password         string   `yaml:"password"`
	DB               int      `yaml:"db"`
	ReadinessTimeout int      `yaml:"readiness_timeout_sec"`
}

// StorageConfig holds storage settings.
type StorageConfig struct {
	KeyPrefix string `yaml:"key_prefix"`
}

// EngineConfig bounds what a single search may touch.
type EngineConfig struct {
	MaxShardsPerRequest int `yaml:"max_shards_per_request"`
	DefaultShards       int `yaml:"default_shards"`
}

// Federation strategies.
const (
	StrategyWildcard  = "wildcard"
	StrategyEnumerate = "enumerate"
)

// FederationConfig selects how a search from the root tenant spans tenants.
type FederationConfig struct {
	Strategy   string `yaml:"strategy"` // wildcard (default), enumerate
	RootTenant string `yaml:"root_tenant"`
	PageSize   int    `yaml:"page_size"`
}

// SocialConfig toggles the social feature.
type SocialConfig struct {
	Enabled    bool     `yaml:"enabled"`
	ExtraKinds []string `yaml:"extra_kinds"` // nil keeps the extension document defaults
}

// IndexingConfig tunes bulk indexing.
type IndexingConfig struct {
	BatchSize      int      `yaml:"batch_size"`
	Retries        int      `yaml:"retries"`
	RetryBackoffMS int      `yaml:"retry_backoff_ms"`
	Taxonomies     []string `yaml:"taxonomies"`
}

// Load reads configuration from a YAML file by environment name (local, dev, prod).
func Load(env string) (Config, error) {
	return LoadFile(findConfigPath(env))
}

// LoadFile reads, expands, defaults and validates the configuration at path.
func LoadFile(configPath string) (Config, error) {
	data, err := os.ReadFile(filepath.Clean(configPath))
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config %s: %w", configPath, err)
	}

	data = expandEnvVars(data)

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.ApplyDefaults()

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// GetEnv returns the current environment from the ENV variable, defaulting to "local".
func GetEnv() string {
	if env := os.Getenv("ENV"); env != "" {
		return env
	}
	return "local"
}

// ApplyDefaults fills empty fields with default values.
func (c *Config) ApplyDefaults() {
	if c.HTTP.ReadTimeoutSec <= 0 {
		c.HTTP.ReadTimeoutSec = 10
	}
	if c.HTTP.WriteTimeoutSec <= 0 {
		c.HTTP.WriteTimeoutSec = 10
	}
	if c.HTTP.ShutdownSec <= 0 {
		c.HTTP.ShutdownSec = 10
	}
	if c.Database.ReadinessTimeout <= 0 {
		c.Database.ReadinessTimeout = 10
	}
	if c.Storage.KeyPrefix == "" {
		c.Storage.KeyPrefix = "socialsearch:"
	}
	if c.Engine.MaxShardsPerRequest <= 0 {
		c.Engine.MaxShardsPerRequest = 1000
	}
	if c.Engine.DefaultShards <= 0 {
		c.Engine.DefaultShards = 5
	}
	if c.Federation.Strategy == "" {
		c.Federation.Strategy = StrategyWildcard
	}
	if c.Federation.RootTenant == "" {
		c.Federation.RootTenant = "1"
	}
	if c.Federation.PageSize <= 0 {
		c.Federation.PageSize = 50
	}
	if c.Indexing.BatchSize <= 0 {
		c.Indexing.BatchSize = 100
	}
	if c.Indexing.Retries < 0 {
		c.Indexing.Retries = 0
	}
	if len(c.Indexing.Taxonomies) == 0 {
		c.Indexing.Taxonomies = []string{"category", "post_tag"}
	}
}

// Validate checks the configuration for correctness.
func (c *Config) Validate() error {
	if c.HTTP.Port <= 0 || c.HTTP.Port > 65535 {
		return fmt.Errorf("http.port must be between 1 and 65535, got %d", c.HTTP.Port)
	}
	if len(c.Database.Addrs) == 0 {
		return fmt.Errorf("database.addrs is required")
	}
	if !strings.HasSuffix(c.Storage.KeyPrefix, ":") {
		return fmt.Errorf("storage.key_prefix must end with \":\", got %q", c.Storage.KeyPrefix)
	}
	switch c.Federation.Strategy {
	case StrategyWildcard, StrategyEnumerate:
	default:
		return fmt.Errorf(
			"federation.strategy must be %q or %q, got %q",
			StrategyWildcard, StrategyEnumerate, c.Federation.Strategy,
		)
	}
	if c.Engine.DefaultShards > c.Engine.MaxShardsPerRequest {
		return fmt.Errorf("engine.default_shards (%d) exceeds engine.max_shards_per_request (%d)",
			c.Engine.DefaultShards, c.Engine.MaxShardsPerRequest)
	}
	return nil
}

// findConfigPath locates the config file.
func findConfigPath(env string) string {
	filename := fmt.Sprintf("%s.yaml", env)

	// 1. Check ./config/
	if path := filepath.Join("config", filename); fileExists(path) {
		return path
	}

	// 2. Check relative to the source file
	_, b, _, _ := runtime.Caller(0)
	projectRoot := filepath.Dir(filepath.Dir(filepath.Dir(b))) // internal/config -> project root
	if path := filepath.Join(projectRoot, "config", filename); fileExists(path) {
		return path
	}

	return filepath.Join("config", filename)
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// expandEnvVars replaces ${VAR} and ${VAR:-default} with environment variable values.
var envVarRegex = regexp.MustCompile(`\$\{([^}]+)\}`)

func expandEnvVars(data []byte) []byte {
	return envVarRegex.ReplaceAllFunc(data, func(match []byte) []byte {
		expr := string(match[2 : len(match)-1])
		varName, defaultVal, hasDefault := strings.Cut(expr, ":-")
		val := os.Getenv(varName)
		if val == "" && hasDefault {
			val = defaultVal
		}
		return []byte(val)
	})
}
