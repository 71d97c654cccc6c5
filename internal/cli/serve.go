package cli

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/exec"
	"os/signal"
	"path/filepath"
	"strconv"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/tubesiphon/tubesiphon/internal/core/config"
	"github.com/tubesiphon/tubesiphon/internal/server"
)

var (
	servePort   int
	serveDaemon bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the tubesiphon HTTP server",
	Long: `Start the HTTP server that backs the web UI.

Examples:
  tubesiphon serve            # Start server on port 8080
  tubesiphon serve -p 9000    # Start server on port 9000
  tubesiphon serve -d         # Start server as background daemon

API Endpoints:
  GET  /api/health                 # Health check
  POST /api/video-info             # Look up formats for a video URL
  GET  /api/audio-data             # Paginated audio stream listing
  GET  /api/download               # Placeholder download
  POST /api/recommend-thumbnail    # AI thumbnail recommendation`,
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) > 0 {
			switch args[0] {
			case "stop":
				if err := stopDaemon(); err != nil {
					fmt.Fprintf(os.Stderr, "Error: %v\n", err)
					os.Exit(1)
				}
				return
			case "status":
				if err := daemonStatus(); err != nil {
					fmt.Fprintf(os.Stderr, "Error: %v\n", err)
					os.Exit(1)
				}
				return
			}
		}

		if err := runServe(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	serveCmd.Flags().IntVarP(&servePort, "port", "p", 0, "HTTP listen port (default: 8080)")
	serveCmd.Flags().BoolVarP(&serveDaemon, "daemon", "d", false, "run as background daemon")

	rootCmd.AddCommand(serveCmd)
}

func runServe() error {
	cfg := config.LoadOrDefault()

	// Resolve port (flag > config > default)
	port := servePort
	if port == 0 {
		if cfg.Server.Port > 0 {
			port = cfg.Server.Port
		} else {
			port = 8080
		}
	}

	if serveDaemon {
		return startDaemon(port)
	}

	return runServer(port, cfg)
}

func runServer(port int, cfg *config.Config) error {
	srv := server.NewServer(port, cfg)

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

	return srv.Start()
}

func startDaemon(port int) error {
	if pid := getDaemonPID(); pid > 0 {
		if processExists(pid) {
			return fmt.Errorf("daemon already running (PID %d)", pid)
		}
		// Stale PID file, remove it
		os.Remove(getPIDFilePath())
	}

	executable, err := os.Executable()
	if err != nil {
		return fmt.Errorf("failed to get executable path: %w", err)
	}

	args := []string{"serve", "-p", strconv.Itoa(port)}

	logFile, err := os.OpenFile(getLogFilePath(), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("failed to create log file: %w", err)
	}

	cmd := exec.Command(executable, args...)
	cmd.Stdout = logFile
	cmd.Stderr = logFile
	cmd.Stdin = nil

	// Detach from parent
	cmd.SysProcAttr = &syscall.SysProcAttr{
		Setsid: true,
	}

	if err := cmd.Start(); err != nil {
		logFile.Close()
		return fmt.Errorf("failed to start daemon: %w", err)
	}

	if err := savePID(cmd.Process.Pid); err != nil {
		cmd.Process.Kill()
		logFile.Close()
		return fmt.Errorf("failed to save PID: %w", err)
	}

	fmt.Printf("tubesiphon server started as daemon (PID %d)\n", cmd.Process.Pid)
	fmt.Printf("  Port: %d\n", port)
	fmt.Printf("  Log: %s\n", getLogFilePath())
	fmt.Printf("\nUse 'tubesiphon serve stop' to stop the daemon\n")

	return nil
}

func stopDaemon() error {
	pid := getDaemonPID()
	if pid <= 0 {
		return fmt.Errorf("daemon is not running")
	}

	process, err := os.FindProcess(pid)
	if err != nil {
		os.Remove(getPIDFilePath())
		return fmt.Errorf("daemon process not found")
	}

	if err := process.Signal(syscall.SIGTERM); err != nil {
		os.Remove(getPIDFilePath())
		return fmt.Errorf("failed to stop daemon: %w", err)
	}

	// Wait for process to exit
	for i := 0; i < 30; i++ {
		if !processExists(pid) {
			break
		}
		time.Sleep(100 * time.Millisecond)
	}

	os.Remove(getPIDFilePath())
	fmt.Println("Daemon stopped")
	return nil
}

func daemonStatus() error {
	pid := getDaemonPID()
	if pid <= 0 {
		fmt.Println("Daemon is not running")
		return nil
	}

	if !processExists(pid) {
		os.Remove(getPIDFilePath())
		fmt.Println("Daemon is not running (stale PID file removed)")
		return nil
	}

	fmt.Printf("Daemon is running (PID %d)\n", pid)
	fmt.Printf("Log file: %s\n", getLogFilePath())
	return nil
}

// PID file management

func getPIDFilePath() string {
	configDir, err := config.ConfigDir()
	if err != nil {
		return "/tmp/tubesiphon-serve.pid"
	}
	return filepath.Join(configDir, "serve.pid")
}

func getLogFilePath() string {
	configDir, err := config.ConfigDir()
	if err != nil {
		return "/tmp/tubesiphon-serve.log"
	}
	return filepath.Join(configDir, "serve.log")
}

func savePID(pid int) error {
	pidFile := getPIDFilePath()
	if err := os.MkdirAll(filepath.Dir(pidFile), 0755); err != nil {
		return err
	}
	return os.WriteFile(pidFile, []byte(strconv.Itoa(pid)), 0644)
}

func getDaemonPID() int {
	data, err := os.ReadFile(getPIDFilePath())
	if err != nil {
		return 0
	}
	pid, err := strconv.Atoi(string(data))
	if err != nil {
		return 0
	}
	return pid
}

func processExists(pid int) bool {
	process, err := os.FindProcess(pid)
	if err != nil {
		return false
	}
	// On Unix, FindProcess always succeeds, so send signal 0 to check
	err = process.Signal(syscall.Signal(0))
	return err == nil
}
