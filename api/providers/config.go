package providers

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the accounts configuration file: one optional section per
// platform. Secrets can also come from the environment so the file can
// be committed without them.
type Config struct {
	Mastodon *MastodonConfig `yaml:"mastodon,omitempty"`
	Bluesky  *BlueskyConfig  `yaml:"bluesky,omitempty"`
}

// LoadConfig reads the accounts configuration from a YAML file and
// applies environment overrides (MASTODON_ACCESS_TOKEN,
// BLUESKY_PASSWORD)
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read accounts file: %w", err)
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse accounts file: %w", err)
	}

	if token := os.Getenv("MASTODON_ACCESS_TOKEN"); token != "" && config.Mastodon != nil {
		config.Mastodon.AccessToken = token
	}
	if password := os.Getenv("BLUESKY_PASSWORD"); password != "" && config.Bluesky != nil {
		config.Bluesky.Password = password
	}

	return &config, nil
}

// NewRegistry builds a provider registry from the configured accounts
func (c *Config) NewRegistry() *Registry {
	registry := NewRegistry()

	if c.Mastodon != nil && c.Mastodon.Server != "" {
		registry.Register(NewMastodon(*c.Mastodon))
	}
	if c.Bluesky != nil && c.Bluesky.Identifier != "" {
		registry.Register(NewBluesky(*c.Bluesky))
	}

	return registry
}
