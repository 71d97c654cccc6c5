package mediainfo

import "fmt"

// Normalize converts a parsed upstream JSON value into the canonical model
// using the default options.
func Normalize(raw any) (*VideoInfo, error) {
	return NormalizeWithOptions(raw, DefaultOptions())
}

// NormalizeWithOptions is total over any JSON value: malformed fields degrade
// to defaults, and only a root that is unusable altogether (not an object, or
// carrying neither an id nor a title after every fallback) returns a
// *NormalizeError.
//
// Three upstream schemas are recognized, dispatched on top-level keys:
//
//   - media.video[] / media.audio[] with typed itag entries
//   - medias[] (array or single object) with free-form quality strings and
//     optional availability flags
//   - anything else is treated as already canonical-ish
func NormalizeWithOptions(raw any, opts Options) (*VideoInfo, error) {
	root, ok := asObject(raw)
	if !ok {
		return nil, &NormalizeError{Reason: "root is not an object"}
	}

	// Some upstreams wrap the record in responseData, either as a bare
	// object or as a single-element result array.
	if wrapped, present := root["responseData"]; present {
		switch w := wrapped.(type) {
		case map[string]any:
			root = w
		case []any:
			if len(w) > 0 {
				if m, ok := asObject(w[0]); ok {
					root = m
				}
			}
		}
	}

	info := &VideoInfo{
		ID:            firstString(root, "", "videoId", "id", "vid"),
		Title:         str(root["title"], ""),
		Author:        firstString(root, "", "channelName", "author", "uploader", "channel"),
		Description:   str(root["description"], ""),
		Duration:      extractDuration(root),
		ViewCount:     "N/A",
		ThumbnailURLs: extractThumbnails(root),
	}
	if vc := str(root["viewCount"], ""); vc != "" {
		info.ViewCount = vc
	}
	if info.ID == "" {
		info.ID = opts.FallbackID
	}
	if info.ID == "" && info.Title == "" {
		return nil, &NormalizeError{Reason: "no video id or title found"}
	}
	if info.ID == "" {
		// Deterministic stand-in so the record stays addressable.
		id := info.Title
		if len(id) > 50 {
			id = id[:50]
		}
		info.ID = SanitizeFilename(id)
	}

	b := &formatBuilder{opts: opts}
	if media, ok := asObject(root["media"]); ok && (media["video"] != nil || media["audio"] != nil) {
		for _, item := range asItems(media["video"]) {
			b.addTyped(item, TypeVideo)
		}
		for _, item := range asItems(media["audio"]) {
			b.addTyped(item, TypeAudio)
		}
	} else if root["medias"] != nil {
		for _, item := range asItems(root["medias"]) {
			b.addLoose(item)
		}
	} else if root["formats"] != nil {
		for _, item := range asItems(root["formats"]) {
			b.addLoose(item)
		}
	}
	info.Formats = b.finish()

	return info, nil
}

// formatBuilder accumulates format entries, assigning positional synthetic
// ids and keeping the output free of dangling or duplicate entries.
type formatBuilder struct {
	opts    Options
	formats []Format
	counts  map[MediaType]int
}

// nextIndex returns the item's position within its type-specific sub-list,
// counted at time of encounter. Reprocessing identical input reproduces
// identical ids.
func (b *formatBuilder) nextIndex(t MediaType) int {
	if b.counts == nil {
		b.counts = make(map[MediaType]int)
	}
	i := b.counts[t]
	b.counts[t] = i + 1
	return i
}

// addTyped handles items from the typed media.video/media.audio listing.
func (b *formatBuilder) addTyped(item map[string]any, t MediaType) {
	downloadURL := str(item["url"], "")
	index := b.nextIndex(t)
	if downloadURL == "" {
		return
	}

	id := idString(item["itag"])
	if id == "" {
		id = syntheticID(t, index)
	}

	ext := str(item["extension"], "")
	label := str(item["quality"], "")
	f := Format{
		ID:            id,
		Type:          t,
		Container:     ext,
		QualityLabel:  label,
		FileExtension: ext,
		Size:          extractSize(item),
		DownloadURL:   downloadURL,
	}

	if t == TypeVideo {
		f.Resolution = extractResolution(item, label)
		f.FPS = intval(item["fps"], 0)
		hasAudio := boolean(item["hasAudio"], inferHasAudio(label))
		f.HasAudio = &hasAudio
	} else {
		if f.QualityLabel == "" {
			if kbps := intval(item["bitrateAudio"], 0); kbps > 0 {
				f.QualityLabel = fmt.Sprintf("%dkbps", kbps)
			}
		}
		f.Bitrate = intval(item["bitrateAudio"], parseBitrate(label))
	}

	b.formats = append(b.formats, f)
}

// addLoose handles items whose type must be inferred (the medias[] schema
// and canonical-ish passthrough).
func (b *formatBuilder) addLoose(item map[string]any) {
	t, ok := classify(item, b.opts)
	if !ok {
		return // not recognizably video or audio
	}

	downloadURL := firstString(item, "", "url", "downloadUrl")
	index := b.nextIndex(t)
	if downloadURL == "" {
		return
	}

	id := firstString(item, "", "id")
	if id == "" {
		id = idString(item["itag"])
	}
	if id == "" {
		id = syntheticID(t, index)
	}

	label := firstString(item, "", "quality", "qualityLabel", "format")
	ext := firstString(item, "", "extension", "ext", "fileExtension")
	if ext == "" {
		ext = urlExtension(downloadURL)
	}
	container := str(item["container"], ext)

	f := Format{
		ID:            id,
		Type:          t,
		Container:     container,
		QualityLabel:  label,
		FileExtension: ext,
		Size:          extractSize(item),
		DownloadURL:   downloadURL,
	}

	if t == TypeVideo {
		f.Resolution = extractResolution(item, label)
		f.FPS = intval(item["fps"], 0)
		hasAudio := inferHasAudio(label)
		if flag, present := boolField(item, "audioAvailable"); present {
			hasAudio = flag
		}
		if flag, present := boolField(item, "hasAudio"); present {
			hasAudio = flag
		}
		f.HasAudio = &hasAudio
	} else {
		f.Bitrate = intval(item["bitrate"], parseBitrate(label))
	}

	b.formats = append(b.formats, f)
}

// finish deduplicates ids and returns the assembled sequence. Collisions get
// a positional suffix so the unique-id invariant holds for any input.
func (b *formatBuilder) finish() []Format {
	seen := make(map[string]int, len(b.formats))
	for i := range b.formats {
		id := b.formats[i].ID
		if n, dup := seen[id]; dup {
			seen[id] = n + 1
			b.formats[i].ID = fmt.Sprintf("%s_%d", id, n+1)
			seen[b.formats[i].ID] = 0
			continue
		}
		seen[id] = 0
	}
	if b.formats == nil {
		return []Format{}
	}
	return b.formats
}

func syntheticID(t MediaType, index int) string {
	return fmt.Sprintf("%s_%d", t, index)
}

// extractResolution prefers explicit width/height, then a WxH token in the
// quality label. A bare "720p" has no dimensions and yields nothing.
func extractResolution(item map[string]any, label string) string {
	w := intval(item["width"], 0)
	h := intval(item["height"], 0)
	if w > 0 && h > 0 {
		return fmt.Sprintf("%dx%d", w, h)
	}
	return resolutionFromLabel(label)
}

// extractSize prefers the upstream's preformatted size string, then renders
// a byte count, else empty.
func extractSize(item map[string]any) string {
	if s := firstString(item, "", "sizeFormatted", "size_text", "formattedSize"); s != "" {
		return s
	}
	switch v := item["size"].(type) {
	case string:
		return v
	case float64:
		if v > 0 {
			return fmt.Sprintf("%.2fMB", v/(1024*1024))
		}
	}
	return ""
}

// extractDuration prefers the upstream's human-readable string, else renders
// a seconds count as HH:MM:SS. Raw seconds never leak into the output.
func extractDuration(root map[string]any) string {
	if s := firstString(root, "", "durationFormatted", "duration_formatted"); s != "" {
		return s
	}
	switch v := root["duration"].(type) {
	case string:
		if v != "" {
			return v
		}
	case float64:
		if v > 0 {
			return formatDuration(int(v))
		}
	}
	return "N/A"
}

func formatDuration(seconds int) string {
	h := seconds / 3600
	m := (seconds % 3600) / 60
	s := seconds % 60
	return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
}

// extractThumbnails reads the thumbnail listing in the shapes upstreams use:
// an array of {url,width,height} objects, an array of bare strings, or a
// single string. Insertion order is upstream relevance order.
func extractThumbnails(root map[string]any) []string {
	urls := []string{}
	for _, key := range []string{"thumbnail", "thumbnails", "thumbnailUrls"} {
		v, present := root[key]
		if !present {
			continue
		}
		switch t := v.(type) {
		case string:
			if t != "" {
				urls = append(urls, t)
			}
		case []any:
			for _, e := range t {
				switch thumb := e.(type) {
				case string:
					if thumb != "" {
						urls = append(urls, thumb)
					}
				case map[string]any:
					if u := str(thumb["url"], ""); u != "" {
						urls = append(urls, u)
					}
				}
			}
		}
		if len(urls) > 0 {
			break
		}
	}
	return urls
}
