package mediainfo

import (
	"net/url"
	"path"
	"regexp"
	"strconv"
	"strings"
)

// videoExtensions and audioExtensions back the last-resort classification
// step: deciding an item's type from its download URL.
var videoExtensions = map[string]bool{
	"mp4": true, "webm": true, "mkv": true, "mov": true, "avi": true, "flv": true,
}

var audioExtensions = map[string]bool{
	"mp3": true, "m4a": true, "ogg": true, "wav": true, "aac": true, "opus": true,
}

var (
	// "1920x1080", "640×360"
	dimensionToken = regexp.MustCompile(`(\d{2,5})\s*[x×]\s*(\d{2,5})`)
	// "720p", "1080p60" — a resolution-style quality label
	trailingPToken = regexp.MustCompile(`\b\d{3,4}p\b`)
	digitRun       = regexp.MustCompile(`\d+`)
)

// classify decides whether a raw media item is a video or an audio stream.
// The rules run in strict priority order; an item matching none of them is
// not classifiable and gets dropped by the caller.
//
//  1. explicit "type" field
//  2. videoAvailable / audioAvailable flags
//  3. quality/format label heuristics
//  4. download URL file extension
func classify(item map[string]any, opts Options) (MediaType, bool) {
	switch strings.ToLower(str(item["type"], "")) {
	case "video":
		return TypeVideo, true
	case "audio":
		return TypeAudio, true
	}

	videoFlag, videoPresent := boolField(item, "videoAvailable")
	audioFlag, audioPresent := boolField(item, "audioAvailable")
	switch {
	case videoPresent && audioPresent && videoFlag && audioFlag:
		return opts.FlagTieBreak, true
	case audioPresent && audioFlag && (!videoPresent || !videoFlag):
		if videoPresent {
			return TypeAudio, true
		}
		// audioAvailable true, videoAvailable absent: lean video
		return TypeVideo, true
	case videoPresent && videoFlag:
		return TypeVideo, true
	}

	label := qualityText(item)
	lower := strings.ToLower(label)
	switch {
	case strings.Contains(lower, "audio"):
		return TypeAudio, true
	case dimensionToken.MatchString(label) || trailingPToken.MatchString(lower):
		return TypeVideo, true
	case strings.Contains(lower, "kbps"):
		return TypeAudio, true
	}

	switch ext := urlExtension(str(item["url"], "")); {
	case videoExtensions[ext]:
		return TypeVideo, true
	case audioExtensions[ext]:
		return TypeAudio, true
	}

	return "", false
}

// qualityText returns the free-form quality/format description of an item,
// whichever field the upstream chose to use.
func qualityText(item map[string]any) string {
	return firstString(item, "", "quality", "format")
}

// urlExtension extracts a lowercase file extension from a download URL,
// ignoring query strings.
func urlExtension(raw string) string {
	if raw == "" {
		return ""
	}
	u, err := url.Parse(raw)
	if err != nil {
		return ""
	}
	return strings.ToLower(strings.TrimPrefix(path.Ext(u.Path), "."))
}

// resolutionFromLabel pulls a "WxH" token out of a quality label. A bare
// "720p" label carries no dimensions and yields nothing.
func resolutionFromLabel(label string) string {
	m := dimensionToken.FindStringSubmatch(label)
	if m == nil {
		return ""
	}
	return m[1] + "x" + m[2]
}

// parseBitrate extracts the first run of digits from a quality label as kbps.
// Labels like "Audio (128kbps)" and "320" both work; no digits means 128.
func parseBitrate(label string) int {
	m := digitRun.FindString(label)
	if m == "" {
		return 128
	}
	n, err := strconv.Atoi(m)
	if err != nil {
		return 128
	}
	return n
}

// inferHasAudio guesses whether a video stream carries sound when the
// upstream doesn't say. Labels signalling a silent stream win, everything
// else counts as muxed.
func inferHasAudio(label string) bool {
	lower := strings.ToLower(label)
	if strings.Contains(lower, "no audio") || strings.Contains(lower, "video only") || strings.Contains(lower, "videoonly") {
		return false
	}
	return true
}
