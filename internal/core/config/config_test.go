package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "Empty path",
			input:    "",
			expected: "",
		},
		{
			name:     "Absolute path",
			input:    "/absolute/path",
			expected: "/absolute/path",
		},
		{
			name:     "Home directory only",
			input:    "~",
			expected: home,
		},
		{
			name:     "Home directory with forward slash",
			input:    "~/videos",
			expected: filepath.Join(home, "videos"),
		},
		{
			name:     "Invalid tilde use (middle)",
			input:    "/path/~/test",
			expected: "/path/~/test",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := expandPath(tt.input)
			if got != tt.expected {
				t.Errorf("expandPath(%q) = %q; want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestUpstreamKeyPrecedence(t *testing.T) {
	cfg := &Config{Upstream: UpstreamConfig{Key: "from-config"}}

	t.Setenv(EnvUpstreamKey, "")
	if got := cfg.UpstreamKey(); got != "from-config" {
		t.Errorf("UpstreamKey = %q; want from-config", got)
	}

	t.Setenv(EnvUpstreamKey, "from-env")
	if got := cfg.UpstreamKey(); got != "from-env" {
		t.Errorf("UpstreamKey = %q; want env to win", got)
	}
}

func TestRankerDefaults(t *testing.T) {
	cfg := &Config{}

	if got := cfg.RankerProvider(); got != "anthropic" {
		t.Errorf("RankerProvider = %q; want anthropic", got)
	}

	t.Setenv(EnvAnthropicKey, "sk-test")
	if got := cfg.RankerKey(); got != "sk-test" {
		t.Errorf("RankerKey = %q; want sk-test", got)
	}

	cfg.AI.Provider = "openai"
	t.Setenv(EnvOpenAIKey, "sk-openai")
	if got := cfg.RankerKey(); got != "sk-openai" {
		t.Errorf("RankerKey = %q; want sk-openai", got)
	}
}

func TestHostDefaults(t *testing.T) {
	cfg := &Config{}
	if got := cfg.MetadataHost(); got != DefaultMetadataHost {
		t.Errorf("MetadataHost = %q; want default", got)
	}
	if got := cfg.AudioHost(); got != DefaultAudioHost {
		t.Errorf("AudioHost = %q; want default", got)
	}

	cfg.Upstream.MetadataHost = "example.test"
	if got := cfg.MetadataHost(); got != "example.test" {
		t.Errorf("MetadataHost = %q; want override", got)
	}
}

func TestSet(t *testing.T) {
	cfg := &Config{}

	if err := cfg.Set("server.port", "9090"); err != nil {
		t.Fatal(err)
	}
	if cfg.Server.Port != 9090 {
		t.Errorf("Port = %d; want 9090", cfg.Server.Port)
	}

	if err := cfg.Set("ai.provider", "openai"); err != nil {
		t.Fatal(err)
	}
	if err := cfg.Set("ai.provider", "genkit"); err == nil {
		t.Error("Set accepted an unknown provider")
	}
	if err := cfg.Set("nope", "x"); err == nil {
		t.Error("Set accepted an unknown key")
	}
}
