package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/dfloer/OpenCity2k"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

const (
	defaultDB        = "opencity2k.db"
	defaultLogSizeMB = 10
	defaultLogFiles  = 3
)

// Config is the optional YAML configuration file. Command line flags take
// precedence over anything set here.
type Config struct {
	DB        string `yaml:"db"`
	Workers   int    `yaml:"workers"`
	CacheSize int64  `yaml:"cache_size"`

	LogFile    string `yaml:"log_file"`
	LogLevel   string `yaml:"log_level"`
	LogSizeMB  int    `yaml:"log_size_mb"`
	LogBackups int    `yaml:"log_backups"`

	LegacyThumbnailBorder bool `yaml:"legacy_thumbnail_border"`
}

func defaults() Config {
	return Config{
		DB:         defaultDB,
		CacheSize:  opencity2k.DefaultCacheSize,
		LogLevel:   "info",
		LogSizeMB:  defaultLogSizeMB,
		LogBackups: defaultLogFiles,
	}
}

// Load reads the configuration at path over the defaults. An empty path
// returns the defaults.
func Load(path string) (Config, error) {
	cfg := defaults()
	if strings.TrimSpace(path) == "" {
		cfg.Normalize()
		return cfg, nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return cfg, fmt.Errorf("%s: %w", path, err)
	}
	cfg.Normalize()
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Normalize fills in anything left empty.
func (c *Config) Normalize() {
	if c == nil {
		return
	}
	c.DB = strings.TrimSpace(c.DB)
	if c.DB == "" {
		c.DB = defaultDB
	}
	c.LogFile = strings.TrimSpace(c.LogFile)
	c.LogLevel = strings.ToLower(strings.TrimSpace(c.LogLevel))
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	if c.CacheSize == 0 {
		c.CacheSize = opencity2k.DefaultCacheSize
	}
	if c.LogSizeMB == 0 {
		c.LogSizeMB = defaultLogSizeMB
	}
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	if c == nil {
		return errors.New("nil config")
	}
	if c.Workers < 0 {
		return fmt.Errorf("workers must be >= 0, got %d", c.Workers)
	}
	if c.CacheSize < 0 {
		return fmt.Errorf("cache_size must be >= 0, got %d", c.CacheSize)
	}
	if c.LogSizeMB < 0 {
		return fmt.Errorf("log_size_mb must be >= 0, got %d", c.LogSizeMB)
	}
	if c.LogBackups < 0 {
		return fmt.Errorf("log_backups must be >= 0, got %d", c.LogBackups)
	}
	if _, err := logrus.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("log_level: %w", err)
	}
	return nil
}

// Level returns the parsed log level.
func (c *Config) Level() logrus.Level {
	l, err := logrus.ParseLevel(c.LogLevel)
	if err != nil {
		return logrus.InfoLevel
	}
	return l
}
