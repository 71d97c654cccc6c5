package mediainfo

import "strings"

const maxTitleLen = 50

// SanitizeFilename replaces every character outside [A-Za-z0-9_.-] with an
// underscore. Matches the filenames the web UI asks the browser to save.
func SanitizeFilename(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if isFilenameSafe(r) {
			b.WriteRune(r)
		} else {
			b.WriteByte('_')
		}
	}
	return b.String()
}

// stripUnsafe removes (rather than replaces) unsafe characters; used for
// file extensions, where stray underscores would corrupt the suffix.
func stripUnsafe(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if isFilenameSafe(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func isFilenameSafe(r rune) bool {
	return r >= 'a' && r <= 'z' ||
		r >= 'A' && r <= 'Z' ||
		r >= '0' && r <= '9' ||
		r == '_' || r == '.' || r == '-'
}

// DownloadFilename builds the suggested filename for a format download:
// the title truncated to 50 characters and sanitized, the quality label,
// and the file extension.
func DownloadFilename(title, qualityLabel, ext string) string {
	if len(title) > maxTitleLen {
		title = title[:maxTitleLen]
	}
	return SanitizeFilename(title) + "_" + SanitizeFilename(qualityLabel) + "." + stripUnsafe(ext)
}

// PlaceholderFilename names the text stub served when a format has no
// direct download URL.
func PlaceholderFilename(title, qualityLabel, ext string) string {
	return DownloadFilename(title, qualityLabel, ext) + ".txt"
}
