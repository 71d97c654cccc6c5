package ranker

import (
	"fmt"
	"strings"
)

// rankingPrompt is the instruction preamble for the thumbnail choice. The
// model must answer with a single JSON object so the reply can be parsed
// without provider-specific structured-output features.
const rankingPrompt = `You are an expert in video optimization. Given the following information about a video, analyze the provided thumbnails and recommend the most engaging one.

Consider factors like click-through rate, visual appeal, relevance to the video content, and overall aesthetic.

Respond with ONLY a JSON object in exactly this format, with no other text:
{
  "recommendedThumbnailUrl": "<url of the recommended thumbnail>",
  "reason": "<concise reason for the recommendation>"
}
`

// buildPrompt renders the full prompt for one ranking request.
func buildPrompt(req Request) string {
	var b strings.Builder
	b.WriteString(rankingPrompt)
	fmt.Fprintf(&b, "\nVideo Title: %s\n", req.VideoTitle)
	fmt.Fprintf(&b, "Video Description: %s\n", req.VideoDescription)
	b.WriteString("\nThumbnails:\n")
	for _, u := range req.ThumbnailURLs {
		fmt.Fprintf(&b, "- %s\n", u)
	}
	return b.String()
}
