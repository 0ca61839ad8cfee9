package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/Epistemic-Technology/pdf-splitter/internal/logger"
)

const (
	DefaultAddr           = ":8080"
	DefaultScale          = 1.5
	DefaultMaxUploadBytes = 64 << 20
)

// Config holds application configuration
type Config struct {
	Server ServerConfig     `yaml:"server"`
	Render RenderConfig     `yaml:"render"`
	Zotero ZoteroConfig     `yaml:"zotero"`
	Log    logger.LogConfig `yaml:"log"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Addr           string `yaml:"addr"`
	MaxUploadBytes int64  `yaml:"max_upload_bytes"`
}

// RenderConfig holds page preview configuration
type RenderConfig struct {
	Scale float64 `yaml:"scale"`
}

// ZoteroConfig holds credentials for the Zotero candidate source
type ZoteroConfig struct {
	APIKey    string `yaml:"api_key"`
	LibraryID string `yaml:"library_id"`
}

// Default returns the configuration used when no file or env overrides exist
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Addr:           DefaultAddr,
			MaxUploadBytes: DefaultMaxUploadBytes,
		},
		Render: RenderConfig{
			Scale: DefaultScale,
		},
	}
}

// Load builds the configuration from defaults, the YAML file at path (if
// path is empty, PDF_SPLITTER_CONFIG is consulted; a missing default file is
// not an error) and finally environment variables.
func Load(path string) (*Config, error) {
	cfg := Default()

	explicit := path != ""
	if path == "" {
		path = os.Getenv("PDF_SPLITTER_CONFIG")
		explicit = path != ""
	}
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
			}
		case errors.Is(err, os.ErrNotExist) && !explicit:
		default:
			return nil, fmt.Errorf("failed to read config %s: %w", path, err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	c.Server.Addr = getEnv("PDF_SPLITTER_ADDR", c.Server.Addr)
	c.Zotero.APIKey = getEnv("ZOTERO_API_KEY", c.Zotero.APIKey)
	c.Zotero.LibraryID = getEnv("ZOTERO_LIBRARY_ID", c.Zotero.LibraryID)

	if v := os.Getenv("PDF_SPLITTER_SCALE"); v != "" {
		scale, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("invalid PDF_SPLITTER_SCALE %q: %w", v, err)
		}
		c.Render.Scale = scale
	}
	if v := os.Getenv("PDF_SPLITTER_MAX_UPLOAD"); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid PDF_SPLITTER_MAX_UPLOAD %q: %w", v, err)
		}
		c.Server.MaxUploadBytes = n
	}
	return nil
}

// Validate reports configuration values no component can work with
func (c *Config) Validate() error {
	if c.Render.Scale <= 0 {
		return fmt.Errorf("render scale must be positive, got %v", c.Render.Scale)
	}
	if c.Server.MaxUploadBytes <= 0 {
		return fmt.Errorf("max upload bytes must be positive, got %d", c.Server.MaxUploadBytes)
	}
	return nil
}

// getEnv gets an environment variable with a fallback default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
