package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tubesiphon/tubesiphon/internal/core/mediainfo"
	"github.com/tubesiphon/tubesiphon/internal/core/ranker"
	"github.com/tubesiphon/tubesiphon/internal/core/upstream"
	"github.com/tubesiphon/tubesiphon/internal/core/version"
)

// VideoInfoRequest accepts both the current and the legacy body field.
type VideoInfoRequest struct {
	URL      string `json:"url"`
	VideoURL string `json:"videoUrl"`
}

// RecommendRequest is the body for POST /api/recommend-thumbnail.
type RecommendRequest struct {
	ThumbnailURLs    []string `json:"thumbnail_urls"`
	VideoTitle       string   `json:"video_title"`
	VideoDescription string   `json:"video_description"`
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"version": version.Version,
	})
}

// handleVideoInfo fetches raw metadata from the upstream extraction API and
// answers with the canonical record. Error bodies are {error, details?};
// upstream failures keep their original status code.
func (s *Server) handleVideoInfo(c *gin.Context) {
	var req VideoInfoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "url is required"})
		return
	}
	videoURL := req.URL
	if videoURL == "" {
		videoURL = req.VideoURL
	}
	if videoURL == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "url is required"})
		return
	}

	raw, err := s.upstream.FetchRaw(c.Request.Context(), videoURL)
	if err != nil {
		s.renderUpstreamError(c, err)
		return
	}

	info, err := mediainfo.Normalize(raw)
	if err != nil {
		payload, _ := json.Marshal(raw)
		log.Printf("Unexpected upstream response structure: %s", preview(payload))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to parse video information from API response"})
		return
	}

	c.JSON(http.StatusOK, info)
}

// handleAudioData relays the paginated audio-stream listing verbatim.
func (s *Server) handleAudioData(c *gin.Context) {
	audioID := c.Query("audio_id")
	if audioID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "audio_id is required"})
		return
	}

	body, err := s.upstream.AudioContinuation(c.Request.Context(), audioID, c.Query("continuation_token"))
	if err != nil {
		s.renderUpstreamError(c, err)
		return
	}

	c.Data(http.StatusOK, "application/json", body)
}

// handleDownloadPlaceholder serves the text stub used when a format has no
// direct download URL. The canonical model is supposed to make this
// unreachable; it stays as a defensive fallback for the UI.
func (s *Server) handleDownloadPlaceholder(c *gin.Context) {
	title := c.DefaultQuery("title", "unknown_video")
	quality := c.DefaultQuery("quality", "unknown_quality")
	ext := c.DefaultQuery("ext", "txt")

	filename := mediainfo.PlaceholderFilename(title, quality, ext)
	content := fmt.Sprintf(`This is a server-generated placeholder file for the video: %q
Format: %s
File Type: %s

This is a mock download from the tubesiphon backend.
In a real deployment this endpoint would fetch and process the actual media.
`, title, quality, ext)

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "text/plain; charset=utf-8", []byte(content))
}

// handleRecommendThumbnail runs the AI thumbnail ranking.
func (s *Server) handleRecommendThumbnail(c *gin.Context) {
	var req RecommendRequest
	if err := c.ShouldBindJSON(&req); err != nil || len(req.ThumbnailURLs) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "thumbnail_urls is required"})
		return
	}

	if s.ranker == nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "AI ranking not configured on server."})
		return
	}

	rec, err := s.ranker.Rank(c.Request.Context(), ranker.Request{
		ThumbnailURLs:    req.ThumbnailURLs,
		VideoTitle:       req.VideoTitle,
		VideoDescription: req.VideoDescription,
	})
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "thumbnail ranking failed", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"recommended_thumbnail_url": rec.ThumbnailURL,
		"reason":                    rec.Reason,
	})
}

// renderUpstreamError maps upstream client failures onto the wire format:
// missing credential and transport problems are server-side errors, non-2xx
// upstream replies pass their status and body through.
func (s *Server) renderUpstreamError(c *gin.Context, err error) {
	var statusErr *upstream.StatusError
	switch {
	case errors.Is(err, upstream.ErrNotConfigured):
		c.JSON(http.StatusInternalServerError, gin.H{"error": "API key not configured on server."})
	case errors.As(err, &statusErr):
		log.Printf("Upstream error: %d %s", statusErr.StatusCode, preview([]byte(statusErr.Body)))
		c.JSON(statusErr.StatusCode, gin.H{
			"error":   fmt.Sprintf("Failed to fetch from upstream: %d", statusErr.StatusCode),
			"details": statusErr.Body,
		})
	default:
		log.Printf("Upstream request failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error", "details": err.Error()})
	}
}

// preview bounds logged payloads.
func preview(b []byte) string {
	const limit = 512
	if len(b) > limit {
		return string(b[:limit]) + "..."
	}
	return string(b)
}
