// Package config loads pip-safe settings from an optional YAML file and the
// environment.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/frederic-klein/pip-safe/internal/index"
	"github.com/frederic-klein/pip-safe/internal/metadata"
)

// Environment variables that override file settings.
const (
	EnvConfig         = "PIP_SAFE_CONFIG"
	EnvPython         = "PIP_SAFE_PYTHON"
	EnvIndexURL       = "PIP_SAFE_INDEX_URL"
	EnvMetadataSource = "PIP_SAFE_METADATA_SOURCE"
	EnvTimeout        = "PIP_SAFE_TIMEOUT"
	EnvVerbose        = "PIP_SAFE_VERBOSE"
)

// Config holds the runtime settings.
type Config struct {
	Python         string        `yaml:"python"`
	IndexURL       string        `yaml:"index_url"`
	MetadataSource string        `yaml:"metadata_source"`
	Timeout        time.Duration `yaml:"timeout"`
	Verbose        bool          `yaml:"verbose"`
}

// Default returns the settings used when nothing is configured.
func Default() Config {
	return Config{
		Python:         "python3",
		IndexURL:       index.DefaultURL,
		MetadataSource: metadata.SourceIndex,
		Timeout:        30 * time.Second,
	}
}

// Path returns the config file location: $PIP_SAFE_CONFIG, else
// <user config dir>/pip-safe/config.yaml. It returns "" when there is no user
// config dir (no $HOME), which Load treats like a missing file.
func Path(getenv func(string) string) string {
	if p := getenv(EnvConfig); p != "" {
		return p
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "pip-safe", "config.yaml")
}

// Load reads the file at path over the defaults, then applies environment
// overrides. A missing or empty file is not an error.
func Load(path string, getenv func(string) string) (Config, error) {
	cfg := Default()

	if path != "" {
		if err := cfg.readFile(path); err != nil {
			return Config{}, err
		}
	}
	if err := cfg.applyEnv(getenv); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) readFile(path string) error {
	file, err := os.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("opening config: %w", err)
	}
	defer file.Close()

	dec := yaml.NewDecoder(file)
	dec.KnownFields(true)
	if err := dec.Decode(c); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("parsing config %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnv(getenv func(string) string) error {
	if v := getenv(EnvPython); v != "" {
		c.Python = v
	}
	if v := getenv(EnvIndexURL); v != "" {
		c.IndexURL = v
	}
	if v := getenv(EnvMetadataSource); v != "" {
		c.MetadataSource = v
	}
	if v := getenv(EnvTimeout); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvTimeout, err)
		}
		c.Timeout = d
	}
	if v := getenv(EnvVerbose); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvVerbose, err)
		}
		c.Verbose = b
	}
	return nil
}

// Validate checks that every setting is usable.
func (c Config) Validate() error {
	if c.Python == "" {
		return errors.New("python must not be empty")
	}
	if c.IndexURL == "" {
		return errors.New("index_url must not be empty")
	}
	switch c.MetadataSource {
	case metadata.SourceIndex, metadata.SourceReport:
	default:
		return fmt.Errorf("metadata_source must be %q or %q, got %q",
			metadata.SourceIndex, metadata.SourceReport, c.MetadataSource)
	}
	if c.Timeout < 0 {
		return fmt.Errorf("timeout must not be negative, got %s", c.Timeout)
	}
	return nil
}
