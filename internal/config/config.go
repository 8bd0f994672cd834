package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	configEnv = "PRISMSCAN_CONFIG"
	serverEnv = "PRISMSCAN_SERVER"
)

// Config holds runtime settings for the scan client.
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	History HistoryConfig `yaml:"history"`
}

// ServerConfig locates the analysis service.
type ServerConfig struct {
	BaseURL string   `yaml:"base_url"`
	Timeout Duration `yaml:"timeout"`
}

// HistoryConfig controls the recent-scans feed.
type HistoryConfig struct {
	Limit        int      `yaml:"limit"`
	PollInterval Duration `yaml:"poll_interval"`
	// RefreshDelay is the grace period before the post-submission fetch, so
	// the service has time to persist the scan we just sent.
	RefreshDelay Duration `yaml:"refresh_delay"`
}

// Duration is a time.Duration that unmarshals from YAML strings like "10s".
type Duration time.Duration

func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	var raw string
	if err := node.Decode(&raw); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(raw)
	if err != nil {
		return fmt.Errorf("config: invalid duration %q: %w", raw, err)
	}
	*d = Duration(parsed)
	return nil
}

// Value returns the underlying time.Duration.
func (d Duration) Value() time.Duration { return time.Duration(d) }

// Load reads YAML configuration from path and applies environment overrides.
// An empty path falls back to the PRISMSCAN_CONFIG environment variable; a
// missing file is not an error and defaults are used instead.
func Load(path string) (Config, error) {
	cfg := defaultConfig()

	if path == "" {
		path = os.Getenv(configEnv)
	}
	if path != "" {
		raw, err := os.ReadFile(path)
		switch {
		case os.IsNotExist(err):
			// fall through to defaults
		case err != nil:
			return Config{}, err
		default:
			if err := yaml.Unmarshal(raw, &cfg); err != nil {
				return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
			}
		}
	}

	if v := os.Getenv(serverEnv); v != "" {
		cfg.Server.BaseURL = v
	}
	cfg.fillGaps()
	return cfg, nil
}

func (c *Config) fillGaps() {
	defaults := defaultConfig()
	if c.Server.BaseURL == "" {
		c.Server.BaseURL = defaults.Server.BaseURL
	}
	if c.Server.Timeout <= 0 {
		c.Server.Timeout = defaults.Server.Timeout
	}
	if c.History.Limit <= 0 {
		c.History.Limit = defaults.History.Limit
	}
	if c.History.PollInterval <= 0 {
		c.History.PollInterval = defaults.History.PollInterval
	}
	if c.History.RefreshDelay <= 0 {
		c.History.RefreshDelay = defaults.History.RefreshDelay
	}
}

func defaultConfig() Config {
	return Config{
		Server: ServerConfig{
			BaseURL: "http://localhost:5000",
			Timeout: Duration(35 * time.Second),
		},
		History: HistoryConfig{
			Limit:        5,
			PollInterval: Duration(10 * time.Second),
			RefreshDelay: Duration(500 * time.Millisecond),
		},
	}
}
