// Package server exposes the tubesiphon HTTP API: video metadata lookup,
// thumbnail recommendation, the audio-data relay, and the placeholder
// download endpoint, plus the embedded web UI.
package server

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/tubesiphon/tubesiphon/internal/core/config"
	"github.com/tubesiphon/tubesiphon/internal/core/ranker"
	"github.com/tubesiphon/tubesiphon/internal/core/upstream"
)

// Server is the tubesiphon HTTP server.
type Server struct {
	port     int
	cfg      *config.Config
	upstream *upstream.Client
	ranker   ranker.Ranker // nil when no AI credential is configured
	engine   *gin.Engine
	server   *http.Server
}

// NewServer wires a server from configuration. A missing upstream key is not
// fatal here; the affected endpoints answer 500 until it is provided.
func NewServer(port int, cfg *config.Config) *Server {
	s := &Server{
		port:     port,
		cfg:      cfg,
		upstream: upstream.NewClient(cfg.UpstreamKey(), cfg),
	}

	if key := cfg.RankerKey(); key != "" {
		r, err := ranker.New(cfg.RankerProvider(), cfg.AI.Model, key)
		if err != nil {
			log.Printf("Warning: thumbnail ranker disabled: %v", err)
		} else {
			s.ranker = r
		}
	}

	return s
}

// Handler builds (once) and returns the HTTP handler.
func (s *Server) Handler() http.Handler {
	if s.engine != nil {
		return s.engine
	}

	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(s.loggingMiddleware())
	if s.cfg.Server.APIKey != "" {
		engine.Use(s.authMiddleware())
	}

	api := engine.Group("/api")
	api.GET("/health", s.handleHealth)
	api.POST("/video-info", s.handleVideoInfo)
	api.GET("/audio-data", s.handleAudioData)
	api.GET("/download", s.handleDownloadPlaceholder)
	api.POST("/recommend-thumbnail", s.handleRecommendThumbnail)

	s.setupStaticFiles(engine)

	s.engine = engine
	return engine
}

// Start runs the server until Stop or a listener error.
func (s *Server) Start() error {
	if s.cfg.UpstreamKey() == "" {
		log.Printf("⚠️  %s is not set; metadata lookups will fail until it is configured", config.EnvUpstreamKey)
	}
	if s.ranker == nil {
		log.Printf("Thumbnail ranking disabled (no AI credential configured)")
	}

	s.server = &http.Server{
		Addr:         fmt.Sprintf(":%d", s.port),
		Handler:      s.Handler(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	log.Printf("Starting tubesiphon server on port %d", s.port)
	if s.cfg.Server.APIKey != "" {
		log.Printf("API key authentication enabled")
	}

	return s.server.ListenAndServe()
}

// Stop gracefully shuts down the server.
func (s *Server) Stop(ctx context.Context) error {
	if s.server == nil {
		return nil
	}
	return s.server.Shutdown(ctx)
}

// Middleware

func (s *Server) loggingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		requestID := uuid.NewString()
		c.Header("X-Request-ID", requestID)
		c.Next()
		log.Printf("%s %s %d %s %s", c.Request.Method, c.Request.URL.Path, c.Writer.Status(), time.Since(start), requestID)
	}
}

func (s *Server) authMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path

		// Health and the UI don't require auth
		if path == "/api/health" || !isAPIPath(path) {
			c.Next()
			return
		}

		if c.GetHeader("X-API-Key") != s.cfg.Server.APIKey {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid or missing API key"})
			c.Abort()
			return
		}
		c.Next()
	}
}

func isAPIPath(path string) bool {
	return len(path) >= 4 && path[:4] == "/api"
}
