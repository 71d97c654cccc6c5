package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/tubesiphon/tubesiphon/internal/core/config"
	"github.com/tubesiphon/tubesiphon/internal/core/mediainfo"
	"github.com/tubesiphon/tubesiphon/internal/core/upstream"
	"github.com/tubesiphon/tubesiphon/internal/core/version"
)

var (
	jsonOutput bool
	typeFilter string
)

var rootCmd = &cobra.Command{
	Use:     "tubesiphon [url]",
	Short:   "Look up downloadable video and audio formats for a video URL",
	Version: version.Version,
	Args:    cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			return cmd.Help()
		}
		return runLookup(args[0])
	},
}

func init() {
	rootCmd.Flags().BoolVar(&jsonOutput, "json", false, "print the canonical record as JSON")
	rootCmd.Flags().StringVarP(&typeFilter, "type", "t", "", "only list formats of this type (video or audio)")
	rootCmd.SilenceUsage = true
}

func Execute() error {
	return rootCmd.Execute()
}

func runLookup(videoURL string) error {
	cfg := config.LoadOrDefault()

	key := cfg.UpstreamKey()
	if key == "" {
		fmt.Fprintln(os.Stderr, color.RedString("Error: no upstream API key configured"))
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintf(os.Stderr, "Set the %s environment variable, or run:\n", config.EnvUpstreamKey)
		fmt.Fprintln(os.Stderr, "  tubesiphon config set upstream.key <your_key>")
		return fmt.Errorf("missing upstream credentials")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 45*time.Second)
	defer cancel()

	client := upstream.NewClient(key, cfg)
	raw, err := client.FetchRaw(ctx, videoURL)
	if err != nil {
		return err
	}

	info, err := mediainfo.Normalize(raw)
	if err != nil {
		return fmt.Errorf("unrecognized upstream response: %w", err)
	}

	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(info)
	}

	printInfo(info, typeFilter)
	return nil
}

func printInfo(info *mediainfo.VideoInfo, filter string) {
	bold := color.New(color.Bold)
	cyan := color.New(color.FgCyan)

	bold.Println(info.Title)
	if info.Author != "" {
		fmt.Printf("  Channel:  %s\n", info.Author)
	}
	fmt.Printf("  Duration: %s\n", info.Duration)
	fmt.Printf("  Views:    %s\n", info.ViewCount)
	if len(info.ThumbnailURLs) > 0 {
		fmt.Printf("  Thumbnail: %s\n", info.ThumbnailURLs[0])
	}

	fmt.Println()
	cyan.Printf("Formats (%d):\n", len(info.Formats))
	for _, f := range info.Formats {
		if filter != "" && string(f.Type) != filter {
			continue
		}
		fmt.Printf("  [%s] %s\n", f.ID, formatLine(f))
	}
}

// formatLine renders one format entry for terminal output.
func formatLine(f mediainfo.Format) string {
	line := fmt.Sprintf("%-5s %s (%s)", f.Type, f.QualityLabel, f.FileExtension)
	if f.Resolution != "" {
		line += " " + f.Resolution
	}
	if f.Type == mediainfo.TypeAudio && f.Bitrate > 0 && f.QualityLabel == "" {
		line += fmt.Sprintf(" %dkbps", f.Bitrate)
	}
	if f.Size != "" {
		line += " " + f.Size
	}
	if f.HasAudio != nil && !*f.HasAudio {
		line += " [no audio]"
	}
	return line
}
