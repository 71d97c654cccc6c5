package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/tubesiphon/tubesiphon/internal/core/config"
	"github.com/tubesiphon/tubesiphon/internal/core/mediainfo"
	"github.com/tubesiphon/tubesiphon/internal/core/ranker"
	"github.com/tubesiphon/tubesiphon/internal/core/upstream"
)

var recommendCmd = &cobra.Command{
	Use:   "recommend <url>",
	Short: "Pick the most engaging thumbnail for a video",
	Long: `Fetch a video's thumbnails and ask the configured AI provider which one
is most likely to attract clicks.

Configuration:
  tubesiphon config set ai.provider anthropic   # or openai
  tubesiphon config set ai.api_key <your_key>

The ANTHROPIC_API_KEY / OPENAI_API_KEY environment variables take
precedence over the config file.`,
	Args: cobra.ExactArgs(1),
	RunE: runRecommend,
}

func init() {
	rootCmd.AddCommand(recommendCmd)
}

func runRecommend(cmd *cobra.Command, args []string) error {
	cfg := config.LoadOrDefault()

	key := cfg.RankerKey()
	if key == "" {
		fmt.Fprintln(os.Stderr, color.RedString("Error: no AI API key configured"))
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Set one with:")
		fmt.Fprintln(os.Stderr, "  tubesiphon config set ai.api_key <your_key>")
		return fmt.Errorf("missing AI credentials")
	}

	r, err := ranker.New(cfg.RankerProvider(), cfg.AI.Model, key)
	if err != nil {
		return err
	}

	upstreamKey := cfg.UpstreamKey()
	if upstreamKey == "" {
		return fmt.Errorf("no upstream API key configured; run 'tubesiphon config set upstream.key <your_key>'")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 90*time.Second)
	defer cancel()

	client := upstream.NewClient(upstreamKey, cfg)
	raw, err := client.FetchRaw(ctx, args[0])
	if err != nil {
		return err
	}

	info, err := mediainfo.Normalize(raw)
	if err != nil {
		return fmt.Errorf("unrecognized upstream response: %w", err)
	}
	if len(info.ThumbnailURLs) == 0 {
		return fmt.Errorf("no thumbnails found for this video")
	}

	fmt.Printf("Ranking %d thumbnail(s) with %s...\n\n", len(info.ThumbnailURLs), r.Name())

	rec, err := r.Rank(ctx, ranker.Request{
		ThumbnailURLs:    info.ThumbnailURLs,
		VideoTitle:       info.Title,
		VideoDescription: info.Description,
	})
	if err != nil {
		return err
	}

	bold := color.New(color.Bold)
	green := color.New(color.FgGreen)

	bold.Printf("Recommended: ")
	green.Println(rec.ThumbnailURL)
	if rec.Reason != "" {
		fmt.Printf("Reason: %s\n", rec.Reason)
	}
	return nil
}
