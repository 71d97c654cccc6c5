// Package mediainfo converts loosely-typed upstream API payloads into the
// canonical video metadata model used across the server, CLI, and web UI.
//
// Upstream media-extraction APIs have shipped several incompatible response
// schemas over time. Normalize accepts any parsed JSON value, detects which
// schema it is looking at, and produces one stable VideoInfo record. Fields
// that don't match their expected type are replaced with defaults instead of
// failing the whole response.
package mediainfo

// MediaType tags a format entry as a video or audio stream.
type MediaType string

const (
	TypeVideo MediaType = "video"
	TypeAudio MediaType = "audio"
)

// VideoInfo is the canonical record for one video: scalar metadata plus the
// downloadable format listing. It is built fresh per request and never
// persisted.
type VideoInfo struct {
	ID            string   `json:"id"`
	Title         string   `json:"title"`
	Author        string   `json:"author"`
	Description   string   `json:"description"`
	Duration      string   `json:"duration"`  // human-readable, e.g. "00:10:35"
	ViewCount     string   `json:"viewCount"` // "N/A" when the upstream omits it
	ThumbnailURLs []string `json:"thumbnailUrls"`
	Formats       []Format `json:"formats"`
}

// Format is one downloadable stream. Type selects the variant: video entries
// carry Resolution/FPS/HasAudio, audio entries carry Bitrate.
type Format struct {
	ID           string    `json:"id"`
	Type         MediaType `json:"type"`
	Container    string    `json:"container"`
	QualityLabel string    `json:"qualityLabel"`
	FileExtension string   `json:"fileExtension"`
	Size         string    `json:"size"`
	DownloadURL  string    `json:"downloadUrl"`

	// Video variant
	Resolution string `json:"resolution,omitempty"` // "WxH" when known
	FPS        int    `json:"fps,omitempty"`
	HasAudio   *bool  `json:"hasAudio,omitempty"` // set on every video entry

	// Audio variant
	Bitrate int `json:"bitrate,omitempty"` // kbps
}

// Options tunes normalization behavior.
type Options struct {
	// FlagTieBreak classifies an item whose videoAvailable and audioAvailable
	// flags are both true. The two historical upstream parsers disagreed on
	// this case, so it is a knob rather than a constant.
	FlagTieBreak MediaType

	// FallbackID is used as the record id when the upstream provides none.
	FallbackID string
}

// DefaultOptions returns the defaults: both-flags items count as video.
func DefaultOptions() Options {
	return Options{FlagTieBreak: TypeVideo}
}

// NormalizeError reports a root payload that could not be used at all.
// Malformed individual fields never produce it; they degrade to defaults.
type NormalizeError struct {
	Reason string
}

func (e *NormalizeError) Error() string {
	return "could not parse video information: " + e.Reason
}
