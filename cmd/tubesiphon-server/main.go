package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/tubesiphon/tubesiphon/internal/core/config"
	"github.com/tubesiphon/tubesiphon/internal/core/version"
	"github.com/tubesiphon/tubesiphon/internal/server"
)

func main() {
	port := flag.Int("port", 0, "HTTP listen port (default: 8080)")
	showVersion := flag.Bool("version", false, "show version")
	flag.Parse()

	if *showVersion {
		fmt.Printf("tubesiphon-server %s\n", version.Version)
		return
	}

	cfg := config.LoadOrDefault()

	// Resolve port (flag > config > default)
	serverPort := *port
	if serverPort == 0 {
		if cfg.Server.Port > 0 {
			serverPort = cfg.Server.Port
		} else {
			serverPort = 8080
		}
	}

	srv := server.NewServer(serverPort, cfg)

	// Handle graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigChan
		log.Println("Shutting down server...")
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		srv.Stop(ctx)
	}()

	if err := srv.Start(); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}
