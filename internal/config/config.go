// Package config layers jbang-lens settings: defaults, then an optional
// .jbang-lens.yaml, then JBANG_LENS_* environment variables (a .env file in
// the working directory is loaded first), then command-line flags bound by
// the caller.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"jbang-lens/internal/gav"
	"jbang-lens/internal/walkwalk"
)

// EnvPrefix is prepended to every environment key, e.g. JBANG_LENS_JOBS.
const EnvPrefix = "JBANG_LENS"

// Config is the resolved configuration.
type Config struct {
	LogLevel     string   `mapstructure:"log_level"`
	Format       string   `mapstructure:"format"`
	Jobs         int      `mapstructure:"jobs"`
	CacheSize    int      `mapstructure:"cache_size"`
	CacheDir     string   `mapstructure:"cache_dir"`
	MaxFileBytes int64    `mapstructure:"max_file_bytes"`
	Exclude      []string `mapstructure:"exclude"`
	Extensions   []string `mapstructure:"extensions"`
	UseGitignore bool     `mapstructure:"use_gitignore"`
	MavenHome    string   `mapstructure:"maven_home"`
}

// SetDefaults registers the defaults on v. Every key needs a default so
// that AutomaticEnv can see it during Unmarshal.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("log_level", "info")
	v.SetDefault("format", "text")
	v.SetDefault("jobs", 0)
	v.SetDefault("cache_size", 1024)
	v.SetDefault("cache_dir", "")
	v.SetDefault("max_file_bytes", int64(2_000_000))
	v.SetDefault("exclude", walkwalk.DefaultExclude)
	v.SetDefault("extensions", walkwalk.DefaultExtensions)
	v.SetDefault("use_gitignore", true)
	v.SetDefault("maven_home", "")
}

// New returns a viper instance with defaults, environment binding and, if
// found, the config file applied. An explicit configFile must exist; the
// default search (".", then $HOME, for .jbang-lens.yaml) may find nothing.
func New(configFile string) (*viper.Viper, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	SetDefaults(v)

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(home)
		}
		v.SetConfigType("yaml")
		v.SetConfigName(".jbang-lens")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}
	return v, nil
}

// Load decodes v into a Config.
func Load(v *viper.Viper) (Config, error) {
	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	if c.CacheSize < 0 {
		return Config{}, fmt.Errorf("cache_size must not be negative, got %d", c.CacheSize)
	}
	return c, nil
}

// LocalRepo is the Maven repository used for POM lookups: maven_home when
// set, otherwise ~/.m2/repository.
func (c Config) LocalRepo() string {
	if c.MavenHome != "" {
		return c.MavenHome
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".m2", "repository")
	}
	return gav.DefaultLocalRepo(home)
}

// WalkOptions converts the walk settings for walkwalk.Collect.
func (c Config) WalkOptions() walkwalk.Options {
	return walkwalk.Options{
		Extensions:   c.Extensions,
		Exclude:      c.Exclude,
		MaxFileBytes: c.MaxFileBytes,
		UseGitignore: c.UseGitignore,
	}
}
