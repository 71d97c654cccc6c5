package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/tubesiphon/tubesiphon/internal/core/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage tubesiphon configuration",
	Long:  "View and modify tubesiphon settings",
}

// tubesiphon config show - show current config
var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	Run: func(cmd *cobra.Command, args []string) {
		cfg := config.LoadOrDefault()
		path, _ := config.ConfigPath()

		fmt.Println("Current configuration:")
		fmt.Printf("  Config:        %s\n", path)
		fmt.Printf("  Server port:   %d\n", cfg.Server.Port)
		fmt.Printf("  Server key:    %s\n", mask(cfg.Server.APIKey))
		fmt.Printf("  Upstream key:  %s\n", mask(cfg.Upstream.Key))
		fmt.Printf("  Metadata host: %s\n", cfg.MetadataHost())
		fmt.Printf("  Audio host:    %s\n", cfg.AudioHost())
		fmt.Printf("  AI provider:   %s\n", cfg.RankerProvider())
		if cfg.AI.Model != "" {
			fmt.Printf("  AI model:      %s\n", cfg.AI.Model)
		}
		fmt.Printf("  AI key:        %s\n", mask(cfg.AI.APIKey))
	},
}

// tubesiphon config path - show config file path
var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Show config file path",
	Run: func(cmd *cobra.Command, args []string) {
		path, err := config.ConfigPath()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Println(path)
	},
}

// tubesiphon config set KEY VALUE - set a config value
var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value",
	Long: `Set a configuration value in config.yml.

Supported keys:
  server.port             HTTP listen port
  server.api_key          Server API key (X-API-Key header)
  upstream.key            RapidAPI credential
  upstream.metadata_host  Metadata extraction API host
  upstream.audio_host     Audio continuation API host
  ai.provider             anthropic or openai
  ai.model                Model override for the provider
  ai.api_key              AI provider credential

Examples:
  tubesiphon config set upstream.key YOUR_KEY
  tubesiphon config set ai.provider openai`,
	Args: cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		cfg := config.LoadOrDefault()

		if err := cfg.Set(args[0], args[1]); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		if err := config.Save(cfg); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to save config: %v\n", err)
			os.Exit(1)
		}

		fmt.Printf("Set %s = %s\n", args[0], args[1])
	},
}

// tubesiphon config get KEY - get a config value
var configGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Get a configuration value",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg := config.LoadOrDefault()

		value, err := getConfigValue(cfg, args[0])
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Println(value)
	},
}

func getConfigValue(cfg *config.Config, key string) (string, error) {
	switch key {
	case "server.port":
		return fmt.Sprintf("%d", cfg.Server.Port), nil
	case "server.api_key":
		return cfg.Server.APIKey, nil
	case "upstream.key":
		return cfg.Upstream.Key, nil
	case "upstream.metadata_host":
		return cfg.MetadataHost(), nil
	case "upstream.audio_host":
		return cfg.AudioHost(), nil
	case "ai.provider":
		return cfg.RankerProvider(), nil
	case "ai.model":
		return cfg.AI.Model, nil
	case "ai.api_key":
		return cfg.AI.APIKey, nil
	default:
		return "", fmt.Errorf("unknown config key: %s", key)
	}
}

// mask hides all but the tail of a credential.
func mask(s string) string {
	if s == "" {
		return "(not set)"
	}
	if len(s) <= 4 {
		return "****"
	}
	return "****" + s[len(s)-4:]
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configPathCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configGetCmd)
	rootCmd.AddCommand(configCmd)
}
