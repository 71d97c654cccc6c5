package server

import (
	"embed"
	"io/fs"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

//go:embed all:web
var webFS embed.FS

// GetWebFS returns the embedded web UI filesystem
// Returns nil if the web directory doesn't exist (dev mode)
func GetWebFS() fs.FS {
	subFS, err := fs.Sub(webFS, "web")
	if err != nil {
		return nil
	}
	return subFS
}

// setupStaticFiles serves the embedded UI with fallback to index.html
func (s *Server) setupStaticFiles(engine *gin.Engine) {
	uiFS := GetWebFS()
	if uiFS == nil {
		return
	}

	engine.GET("/favicon.ico", func(c *gin.Context) {
		c.FileFromFS("favicon.ico", http.FS(uiFS))
	})

	// Fallback to index.html for non-API routes
	engine.NoRoute(func(c *gin.Context) {
		if strings.HasPrefix(c.Request.URL.Path, "/api") {
			c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
			return
		}

		indexFile, err := fs.ReadFile(uiFS, "index.html")
		if err != nil {
			c.String(http.StatusNotFound, "index.html not found")
			return
		}

		c.Header("Content-Type", "text/html; charset=utf-8")
		c.String(http.StatusOK, string(indexFile))
	})
}
