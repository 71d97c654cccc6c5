package mediainfo

import "testing"

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		item map[string]any
		want MediaType
		ok   bool
	}{
		{
			name: "explicit type wins over everything",
			item: map[string]any{"type": "audio", "quality": "1080p", "url": "http://x/v.mp4"},
			want: TypeAudio,
			ok:   true,
		},
		{
			name: "explicit type case-insensitive",
			item: map[string]any{"type": "Video"},
			want: TypeVideo,
			ok:   true,
		},
		{
			name: "audio-only flags",
			item: map[string]any{"audioAvailable": true, "videoAvailable": false, "quality": "720p"},
			want: TypeAudio,
			ok:   true,
		},
		{
			name: "video flag true",
			item: map[string]any{"videoAvailable": true},
			want: TypeVideo,
			ok:   true,
		},
		{
			name: "audio flag true with video flag absent leans video",
			item: map[string]any{"audioAvailable": true},
			want: TypeVideo,
			ok:   true,
		},
		{
			name: "trailing p label",
			item: map[string]any{"quality": "720p"},
			want: TypeVideo,
			ok:   true,
		},
		{
			name: "dimension token label",
			item: map[string]any{"format": "640x360 (medium)"},
			want: TypeVideo,
			ok:   true,
		},
		{
			name: "audio substring label",
			item: map[string]any{"quality": "Audio (128kbps)"},
			want: TypeAudio,
			ok:   true,
		},
		{
			name: "kbps label",
			item: map[string]any{"quality": "320kbps"},
			want: TypeAudio,
			ok:   true,
		},
		{
			name: "video extension fallback",
			item: map[string]any{"url": "http://x/clip.webm?token=1"},
			want: TypeVideo,
			ok:   true,
		},
		{
			name: "audio extension fallback",
			item: map[string]any{"url": "http://x/track.opus"},
			want: TypeAudio,
			ok:   true,
		},
		{
			name: "nothing matches",
			item: map[string]any{"quality": "best", "url": "http://x/file.bin"},
			ok:   false,
		},
		{
			name: "empty item",
			item: map[string]any{},
			ok:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := classify(tt.item, DefaultOptions())
			if ok != tt.ok {
				t.Fatalf("classify ok = %v; want %v", ok, tt.ok)
			}
			if ok && got != tt.want {
				t.Errorf("classify = %q; want %q", got, tt.want)
			}
		})
	}
}

func TestClassifyFlagTieBreak(t *testing.T) {
	item := map[string]any{"videoAvailable": true, "audioAvailable": true}

	got, ok := classify(item, Options{FlagTieBreak: TypeVideo})
	if !ok || got != TypeVideo {
		t.Errorf("video tie-break: got %q, %v", got, ok)
	}

	got, ok = classify(item, Options{FlagTieBreak: TypeAudio})
	if !ok || got != TypeAudio {
		t.Errorf("audio tie-break: got %q, %v", got, ok)
	}
}

func TestParseBitrate(t *testing.T) {
	tests := []struct {
		label string
		want  int
	}{
		{"128kbps", 128},
		{"Audio (320kbps)", 320},
		{"70", 70},
		{"high quality", 128},
		{"", 128},
	}

	for _, tt := range tests {
		if got := parseBitrate(tt.label); got != tt.want {
			t.Errorf("parseBitrate(%q) = %d; want %d", tt.label, got, tt.want)
		}
	}
}

func TestResolutionFromLabel(t *testing.T) {
	tests := []struct {
		label string
		want  string
	}{
		{"1920x1080", "1920x1080"},
		{"hd 1280 x 720", "1280x720"},
		{"640×360", "640x360"},
		{"720p", ""},
		{"", ""},
	}

	for _, tt := range tests {
		if got := resolutionFromLabel(tt.label); got != tt.want {
			t.Errorf("resolutionFromLabel(%q) = %q; want %q", tt.label, got, tt.want)
		}
	}
}

func TestInferHasAudio(t *testing.T) {
	tests := []struct {
		label string
		want  bool
	}{
		{"720p", true},
		{"1080p (no audio)", false},
		{"480p video only", false},
		{"", true},
	}

	for _, tt := range tests {
		if got := inferHasAudio(tt.label); got != tt.want {
			t.Errorf("inferHasAudio(%q) = %v; want %v", tt.label, got, tt.want)
		}
	}
}
