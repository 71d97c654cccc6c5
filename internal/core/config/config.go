// Package config loads and saves the tubesiphon YAML configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	ConfigFileName = "config.yml"
	AppDirName     = "tubesiphon"

	// Environment variables override anything in the config file. Secrets
	// are expected to arrive this way in deployments.
	EnvUpstreamKey  = "RAPIDAPI_KEY"
	EnvAnthropicKey = "ANTHROPIC_API_KEY"
	EnvOpenAIKey    = "OPENAI_API_KEY"
)

// Upstream endpoint defaults. Both are RapidAPI-hosted extraction services;
// the host doubles as the x-rapidapi-host header value.
const (
	DefaultMetadataHost = "youtube-media-downloader.p.rapidapi.com"
	DefaultMetadataPath = "/v2/misc/list-items"
	DefaultAudioHost    = "youtube-v2.p.rapidapi.com"
	DefaultAudioPath    = "/audio/videos/continuation"
)

// ConfigDir returns the standard config directory for tubesiphon.
// Windows: %APPDATA%\tubesiphon\
// macOS/Linux: ~/.config/tubesiphon/
func ConfigDir() (string, error) {
	if runtime.GOOS == "windows" {
		appData := os.Getenv("APPDATA")
		if appData != "" {
			return filepath.Join(appData, AppDirName), nil
		}
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", AppDirName), nil
}

// ConfigPath returns the path to the config file.
// e.g., ~/.config/tubesiphon/config.yml
func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, ConfigFileName), nil
}

type Config struct {
	// Server configuration for `tubesiphon serve`
	Server ServerConfig `yaml:"server,omitempty"`

	// Upstream extraction API configuration
	Upstream UpstreamConfig `yaml:"upstream,omitempty"`

	// AI thumbnail ranking configuration
	AI AIConfig `yaml:"ai,omitempty"`
}

// ServerConfig holds HTTP server settings for `tubesiphon serve`
type ServerConfig struct {
	// Port is the HTTP listen port (default: 8080)
	Port int `yaml:"port,omitempty"`

	// APIKey for authentication (optional, if set all API requests must
	// include an X-API-Key header)
	APIKey string `yaml:"api_key,omitempty"`
}

// UpstreamConfig holds the third-party extraction API settings
type UpstreamConfig struct {
	// Key is the RapidAPI credential. The RAPIDAPI_KEY environment
	// variable takes precedence; storing it here is a convenience for
	// local use.
	Key string `yaml:"key,omitempty"`

	// MetadataHost overrides the metadata extraction API host
	MetadataHost string `yaml:"metadata_host,omitempty"`

	// AudioHost overrides the audio continuation API host
	AudioHost string `yaml:"audio_host,omitempty"`
}

// AIConfig holds thumbnail ranker settings
type AIConfig struct {
	// Provider is "anthropic" or "openai" (default: anthropic)
	Provider string `yaml:"provider,omitempty"`

	// Model overrides the provider's default model
	Model string `yaml:"model,omitempty"`

	// APIKey for the provider. ANTHROPIC_API_KEY / OPENAI_API_KEY take
	// precedence.
	APIKey string `yaml:"api_key,omitempty"`
}

// UpstreamKey resolves the upstream credential: environment first, then the
// config file. Empty means not configured.
func (c *Config) UpstreamKey() string {
	if key := os.Getenv(EnvUpstreamKey); key != "" {
		return key
	}
	return c.Upstream.Key
}

// RankerProvider returns the configured AI provider, defaulting to anthropic.
func (c *Config) RankerProvider() string {
	if c.AI.Provider != "" {
		return c.AI.Provider
	}
	return "anthropic"
}

// RankerKey resolves the AI credential for the active provider.
func (c *Config) RankerKey() string {
	var env string
	switch c.RankerProvider() {
	case "openai":
		env = EnvOpenAIKey
	default:
		env = EnvAnthropicKey
	}
	if key := os.Getenv(env); key != "" {
		return key
	}
	return c.AI.APIKey
}

// MetadataHost returns the configured metadata API host or the default.
func (c *Config) MetadataHost() string {
	if c.Upstream.MetadataHost != "" {
		return c.Upstream.MetadataHost
	}
	return DefaultMetadataHost
}

// AudioHost returns the configured audio API host or the default.
func (c *Config) AudioHost() string {
	if c.Upstream.AudioHost != "" {
		return c.Upstream.AudioHost
	}
	return DefaultAudioHost
}

// Exists reports whether a config file is present.
func Exists() bool {
	path, err := ConfigPath()
	if err != nil {
		return false
	}
	_, err = os.Stat(path)
	return err == nil
}

// Load reads the config file.
func Load() (*Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return &cfg, nil
}

// LoadOrDefault reads the config file, falling back to an empty config when
// the file is missing or unreadable.
func LoadOrDefault() *Config {
	cfg, err := Load()
	if err != nil {
		return &Config{}
	}
	return cfg
}

// Save writes the config file, creating the config directory if needed.
func Save(cfg *Config) error {
	dir, err := ConfigDir()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to serialize config: %w", err)
	}

	path := filepath.Join(dir, ConfigFileName)
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// Set updates a single config value by dotted key, for `tubesiphon config set`.
func (c *Config) Set(key, value string) error {
	switch key {
	case "server.port", "server_port":
		var port int
		if _, err := fmt.Sscanf(value, "%d", &port); err != nil {
			return fmt.Errorf("invalid value for port: %s", value)
		}
		c.Server.Port = port
	case "server.api_key", "server_api_key":
		c.Server.APIKey = value
	case "upstream.key":
		c.Upstream.Key = value
	case "upstream.metadata_host":
		c.Upstream.MetadataHost = value
	case "upstream.audio_host":
		c.Upstream.AudioHost = value
	case "ai.provider":
		switch value {
		case "anthropic", "openai":
		default:
			return fmt.Errorf("invalid provider: must be anthropic or openai")
		}
		c.AI.Provider = value
	case "ai.model":
		c.AI.Model = value
	case "ai.api_key":
		c.AI.APIKey = value
	default:
		return fmt.Errorf("unknown config key: %s", key)
	}
	return nil
}

// expandPath expands a leading ~ to the user's home directory.
func expandPath(path string) string {
	if path == "" {
		return path
	}
	if path == "~" {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return home
	}
	if strings.HasPrefix(path, "~/") || strings.HasPrefix(path, `~\`) {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[2:])
	}
	return path
}

// ExpandPath is the exported form used by the CLI for flag values.
func ExpandPath(path string) string {
	return expandPath(path)
}
