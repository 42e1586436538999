// Package config loads application settings and prepares the working directories.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Settings validation errors.
var (
	ErrMissingAppName     = errors.New("app_name is required")
	ErrInvalidEnvironment = errors.New("environment must be one of: development, staging, production, test")
	ErrInvalidLogLevel    = errors.New("log_level must be one of: debug, info, warn, error")
	ErrInvalidWorkers     = errors.New("concurrency.workers must be at least 1")
	ErrInvalidCacheTTL    = errors.New("cache TTLs must be non-negative")
)

// EnvPrefix namespaces nested keys in the environment (NEWSANALYST_CACHE_ENABLED)
const EnvPrefix = "NEWSANALYST"

// Settings holds every configurable value of the application
type Settings struct {
	AppName     string            `mapstructure:"app_name" yaml:"app_name"`
	AppVersion  string            `mapstructure:"app_version" yaml:"app_version"`
	Environment string            `mapstructure:"environment" yaml:"environment"`
	Debug       bool              `mapstructure:"debug" yaml:"debug"`
	LogLevel    string            `mapstructure:"log_level" yaml:"log_level"`
	DatabaseURL string            `mapstructure:"database_url" yaml:"database_url"`
	ProjectRoot string            `mapstructure:"project_root" yaml:"project_root"`
	Cache       CacheSettings     `mapstructure:"cache" yaml:"cache"`
	Concurrency ConcurrencyConfig `mapstructure:"concurrency" yaml:"concurrency"`
	Authority   AuthorityConfig   `mapstructure:"authority" yaml:"authority"`
}

// CacheSettings controls the assessment cache
type CacheSettings struct {
	Enabled   bool          `mapstructure:"enabled" yaml:"enabled"`
	MemoryTTL time.Duration `mapstructure:"memory_ttl" yaml:"memory_ttl"`
	DiskTTL   time.Duration `mapstructure:"disk_ttl" yaml:"disk_ttl"`
}

// ConcurrencyConfig controls batch validation parallelism
type ConcurrencyConfig struct {
	Workers int `mapstructure:"workers" yaml:"workers"`
}

// AuthorityConfig lists domains used to rank fact-check sources
type AuthorityConfig struct {
	PrimaryDomains   []string          `mapstructure:"primary_domains" yaml:"primary_domains"`
	SecondaryDomains []string          `mapstructure:"secondary_domains" yaml:"secondary_domains"`
	DomainMap        map[string]string `mapstructure:"domain_map" yaml:"domain_map,omitempty"`
	PathPatterns     []PathPattern     `mapstructure:"path_patterns" yaml:"path_patterns,omitempty"`
}

// PathPattern assigns a tier to URLs whose path matches a regular expression
type PathPattern struct {
	Pattern string `mapstructure:"pattern" yaml:"pattern"`
	Tier    string `mapstructure:"tier" yaml:"tier"`
}

// Default returns the built-in settings
func Default() Settings {
	return Settings{
		AppName:     "AI News Analyst",
		AppVersion:  "0.1.0",
		Environment: "development",
		Debug:       true,
		DatabaseURL: "sqlite+aiosqlite:///./data/news_analyst.db",
		ProjectRoot: ".",
		Cache: CacheSettings{
			Enabled:   true,
			MemoryTTL: 10 * time.Minute,
			DiskTTL:   24 * time.Hour,
		},
		Concurrency: ConcurrencyConfig{Workers: 4},
		Authority: AuthorityConfig{
			PrimaryDomains: []string{
				"who.int", "un.org", "europa.eu", "census.gov", "bls.gov", "nih.gov", "nature.com", "science.org",
			},
			SecondaryDomains: []string{
				"reuters.com", "apnews.com", "bbc.co.uk", "bbc.com", "politifact.com", "factcheck.org", "snopes.com", "fullfact.org",
			},
		},
	}
}

// SetDefaults registers the built-in settings on v
func SetDefaults(v *viper.Viper) {
	d := Default()
	v.SetDefault("app_name", d.AppName)
	v.SetDefault("app_version", d.AppVersion)
	v.SetDefault("environment", d.Environment)
	v.SetDefault("debug", d.Debug)
	v.SetDefault("log_level", d.LogLevel)
	v.SetDefault("database_url", d.DatabaseURL)
	v.SetDefault("project_root", d.ProjectRoot)
	v.SetDefault("cache.enabled", d.Cache.Enabled)
	v.SetDefault("cache.memory_ttl", d.Cache.MemoryTTL)
	v.SetDefault("cache.disk_ttl", d.Cache.DiskTTL)
	v.SetDefault("concurrency.workers", d.Concurrency.Workers)
	v.SetDefault("authority.primary_domains", d.Authority.PrimaryDomains)
	v.SetDefault("authority.secondary_domains", d.Authority.SecondaryDomains)
}

// BindEnv wires environment lookups: top-level keys match their upper-case
// name (DEBUG, DATABASE_URL), every key also answers to NEWSANALYST_<KEY>
func BindEnv(v *viper.Viper) {
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	for _, key := range []string{"app_name", "app_version", "environment", "debug", "log_level", "database_url", "project_root"} {
		_ = v.BindEnv(key, EnvPrefix+"_"+strings.ToUpper(key), strings.ToUpper(key))
	}
}

// MergeDotEnv merges a dotenv file into v's config layer when it exists, so
// real environment variables still win. A missing file is not an error.
// Keys follow the environment naming: DEBUG for top-level settings and
// CACHE_ENABLED or NEWSANALYST_CACHE_ENABLED for nested ones.
func MergeDotEnv(v *viper.Viper, path string) error {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("stat %s: %w", path, err)
	}

	env := viper.New()
	env.SetConfigFile(path)
	env.SetConfigType("env")
	if err := env.ReadInConfig(); err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}

	if err := v.MergeConfigMap(nestEnvKeys(v.AllKeys(), env.AllSettings())); err != nil {
		return fmt.Errorf("merge %s: %w", path, err)
	}
	return nil
}

// nestEnvKeys maps flat dotenv keys (cache_enabled, newsanalyst_cache_enabled)
// onto the known dotted keys (cache.enabled) and nests them for merging.
// Unknown keys are kept as they are.
func nestEnvKeys(known []string, flat map[string]any) map[string]any {
	byEnvName := make(map[string]string, len(known))
	for _, key := range known {
		byEnvName[strings.ReplaceAll(key, ".", "_")] = key
	}

	prefix := strings.ToLower(EnvPrefix) + "_"
	out := make(map[string]any, len(flat))
	for name, value := range flat {
		key, ok := byEnvName[strings.TrimPrefix(name, prefix)]
		if !ok {
			key = name
		}

		parts := strings.Split(key, ".")
		node := out
		for _, part := range parts[:len(parts)-1] {
			child, ok := node[part].(map[string]any)
			if !ok {
				child = make(map[string]any)
				node[part] = child
			}
			node = child
		}
		node[parts[len(parts)-1]] = value
	}
	return out
}

// Load builds Settings from v (defaults, config file, .env, environment)
func Load(v *viper.Viper) (Settings, error) {
	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return Settings{}, fmt.Errorf("decode settings: %w", err)
	}
	if err := s.Validate(); err != nil {
		return Settings{}, err
	}
	return s, nil
}

// Validate checks settings for consistency
func (s Settings) Validate() error {
	if strings.TrimSpace(s.AppName) == "" {
		return ErrMissingAppName
	}

	switch s.Environment {
	case "development", "staging", "production", "test":
	default:
		return fmt.Errorf("%w: got %q", ErrInvalidEnvironment, s.Environment)
	}

	switch strings.ToLower(s.LogLevel) {
	case "", "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("%w: got %q", ErrInvalidLogLevel, s.LogLevel)
	}

	if s.Concurrency.Workers < 1 {
		return ErrInvalidWorkers
	}

	if s.Cache.MemoryTTL < 0 || s.Cache.DiskTTL < 0 {
		return ErrInvalidCacheTTL
	}

	return nil
}

// EffectiveLogLevel resolves the log level, falling back on the debug flag
func (s Settings) EffectiveLogLevel() string {
	if s.LogLevel != "" {
		return s.LogLevel
	}
	if s.Debug {
		return "debug"
	}
	return "info"
}

// DataDir is the root of raw, processed, and cached data
func (s Settings) DataDir() string {
	return filepath.Join(s.ProjectRoot, "data")
}

// LogsDir holds application logs
func (s Settings) LogsDir() string {
	return filepath.Join(s.ProjectRoot, "logs")
}

// CacheDir holds the on-disk assessment cache
func (s Settings) CacheDir() string {
	return filepath.Join(s.DataDir(), "cache")
}

// Directories lists every directory EnsureDirectories creates
func (s Settings) Directories() []string {
	return []string{
		filepath.Join(s.DataDir(), "raw"),
		filepath.Join(s.DataDir(), "processed"),
		s.CacheDir(),
		s.LogsDir(),
	}
}

// EnsureDirectories creates the data and log directories if they are missing
func (s Settings) EnsureDirectories() error {
	for _, dir := range s.Directories() {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create directory %s: %w", dir, err)
		}
	}
	return nil
}
