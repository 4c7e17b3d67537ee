package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/nexusnext/nexusnext/common"
)

const (
	defaultPort          = 3001
	defaultDatabasePath  = "nexusnext.db"
	defaultWindowWidth   = 1280
	defaultWindowHeight  = 720
	defaultEmailEndpoint = "https://api.resend.com/emails"
	defaultEmailSender   = "Nexusnext <hello@nexusnext.io>"
)

// ServerConfig holds the HTTP server settings.
type ServerConfig struct {
	// Port is the TCP port the waitlist API listens on.
	Port int `yaml:"port"`
	// BaseURL is the externally visible origin, used in notification emails.
	BaseURL string `yaml:"base_url"`
}

// DatabaseConfig holds the waitlist storage settings.
type DatabaseConfig struct {
	// Path is the SQLite database file. ":memory:" keeps the waitlist
	// in-process, which is what the tests use.
	Path string `yaml:"path"`
}

// EmailConfig holds the outbound notification settings. An empty APIKey
// disables sending entirely.
type EmailConfig struct {
	APIKey   string `yaml:"api_key"`
	Sender   string `yaml:"sender"`
	Endpoint string `yaml:"endpoint"`
}

// ShowcaseConfig holds the desktop showcase window settings.
type ShowcaseConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
	// NetworkProbeURL, when set, is HEAD-requested once at startup to
	// estimate the network class fed into quality selection.
	NetworkProbeURL string `yaml:"network_probe_url"`
}

// Config is the root configuration for both the web server and the showcase.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Email    EmailConfig    `yaml:"email"`
	Showcase ShowcaseConfig `yaml:"showcase"`
}

// Default returns the built-in configuration used when no file and no
// environment overrides are present.
//
// Returns:
//   - Config: the default configuration
func Default() Config {
	return Config{
		Server: ServerConfig{
			Port: defaultPort,
		},
		Database: DatabaseConfig{
			Path: defaultDatabasePath,
		},
		Email: EmailConfig{
			Sender:   defaultEmailSender,
			Endpoint: defaultEmailEndpoint,
		},
		Showcase: ShowcaseConfig{
			Width:  defaultWindowWidth,
			Height: defaultWindowHeight,
		},
	}
}

// Load builds the effective configuration by layering, in order of
// precedence: NEXUSNEXT_* environment variables, the YAML file at path
// (skipped when path is empty or the file does not exist), and the built-in
// defaults.
//
// Parameters:
//   - path: optional YAML configuration file
//
// Returns:
//   - Config: the effective configuration
//   - error: error if the file exists but cannot be parsed
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case os.IsNotExist(err):
			// Missing file falls through to defaults.
		case err != nil:
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		default:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return Config{}, fmt.Errorf("parse config %s: %w", path, err)
			}
		}
	}

	applyEnv(&cfg)

	if cfg.Server.Port <= 0 || cfg.Server.Port > 65535 {
		return Config{}, fmt.Errorf("invalid server port %d", cfg.Server.Port)
	}
	return cfg, nil
}

// applyEnv overlays NEXUSNEXT_* environment variables onto cfg. Unset and
// malformed values leave the existing setting untouched.
func applyEnv(cfg *Config) {
	cfg.Server.Port = common.Coalesce(envInt("NEXUSNEXT_PORT"), cfg.Server.Port)
	cfg.Server.BaseURL = common.Coalesce(os.Getenv("NEXUSNEXT_BASE_URL"), cfg.Server.BaseURL)
	cfg.Database.Path = common.Coalesce(os.Getenv("NEXUSNEXT_DB_PATH"), cfg.Database.Path)
	cfg.Email.APIKey = common.Coalesce(os.Getenv("NEXUSNEXT_EMAIL_API_KEY"), cfg.Email.APIKey)
	cfg.Email.Sender = common.Coalesce(os.Getenv("NEXUSNEXT_EMAIL_SENDER"), cfg.Email.Sender)
	cfg.Email.Endpoint = common.Coalesce(os.Getenv("NEXUSNEXT_EMAIL_ENDPOINT"), cfg.Email.Endpoint)
	cfg.Showcase.Width = common.Coalesce(envInt("NEXUSNEXT_WINDOW_WIDTH"), cfg.Showcase.Width)
	cfg.Showcase.Height = common.Coalesce(envInt("NEXUSNEXT_WINDOW_HEIGHT"), cfg.Showcase.Height)
	cfg.Showcase.NetworkProbeURL = common.Coalesce(os.Getenv("NEXUSNEXT_NETWORK_PROBE_URL"), cfg.Showcase.NetworkProbeURL)
}

// envInt parses an integer environment variable, returning 0 when unset or
// malformed so Coalesce skips it.
func envInt(key string) int {
	raw := os.Getenv(key)
	if raw == "" {
		return 0
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0
	}
	return v
}
