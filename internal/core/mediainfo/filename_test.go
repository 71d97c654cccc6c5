package mediainfo

import (
	"strings"
	"testing"
)

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "already safe",
			input:    "my_video-1.mp4",
			expected: "my_video-1.mp4",
		},
		{
			name:     "spaces and punctuation",
			input:    "Top 10: cats & dogs!",
			expected: "Top_10__cats___dogs_",
		},
		{
			name:     "unicode replaced",
			input:    "日本語 title",
			expected: "____title",
		},
		{
			name:     "empty",
			input:    "",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SanitizeFilename(tt.input); got != tt.expected {
				t.Errorf("SanitizeFilename(%q) = %q; want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestDownloadFilename(t *testing.T) {
	got := DownloadFilename("My Video", "720p", "mp4")
	if got != "My_Video_720p.mp4" {
		t.Errorf("DownloadFilename = %q; want My_Video_720p.mp4", got)
	}

	// Titles are cut to 50 characters before sanitization.
	long := strings.Repeat("a", 80)
	got = DownloadFilename(long, "360p", "webm")
	want := strings.Repeat("a", 50) + "_360p.webm"
	if got != want {
		t.Errorf("DownloadFilename(long) = %q; want %q", got, want)
	}

	// Extension is stripped, not underscored.
	got = DownloadFilename("t", "q", "m p4/")
	if got != "t_q.mp4" {
		t.Errorf("DownloadFilename = %q; want t_q.mp4", got)
	}
}

func TestPlaceholderFilename(t *testing.T) {
	got := PlaceholderFilename("Clip", "Audio (128kbps)", "m4a")
	if got != "Clip_Audio__128kbps_.m4a.txt" {
		t.Errorf("PlaceholderFilename = %q", got)
	}
}
