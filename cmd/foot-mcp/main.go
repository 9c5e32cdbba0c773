package main

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"

	"github.com/joho/godotenv"

	"github.com/ironsheep/foot-shape-mcp/internal/config"
	"github.com/ironsheep/foot-shape-mcp/internal/server"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "--version", "-v", "version":
			fmt.Printf("foot-shape-mcp %s\n", Version)
			fmt.Printf("  Build time: %s\n", BuildTime)
			fmt.Printf("  Git commit: %s\n", GitCommit)
			return
		case "--help", "-h", "help":
			printHelp()
			return
		case "--init-config", "init-config":
			initConfig()
			return
		}
	}

	// Configure logging to stderr (stdout is for MCP protocol)
	log.SetOutput(os.Stderr)
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)

	// A .env file in the working directory may set FOOT_MCP_* variables.
	// Variables already in the environment win.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Printf("Ignoring .env: %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Config error: %v", err)
	}

	if cfg.Debug() {
		log.Printf("Foot Shape MCP Server v%s (built %s, commit %s)", Version, BuildTime, GitCommit)
		log.Printf("Segmentation: mode=%s fixed=%.1f adaptive=%.2f alpha=%d, max width %d",
			cfg.Segmentation.Mode, cfg.Segmentation.FixedThreshold, cfg.Segmentation.AdaptiveFactor,
			cfg.Segmentation.AlphaThreshold, cfg.Loader.MaxWidth)
	}

	if Version != "dev" {
		server.Version = Version
	}

	srv, err := server.New(cfg)
	if err != nil {
		log.Fatalf("Server error: %v", err)
	}
	if err := srv.Run(); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}

func printHelp() {
	fmt.Println("foot-shape-mcp - MCP server for foot shape analysis and boot fit advice")
	fmt.Println()
	fmt.Println("Usage: foot-shape-mcp [options]")
	fmt.Println()
	fmt.Println("Options:")
	fmt.Println("  --version, -v    Print version information")
	fmt.Println("  --help, -h       Print this help message")
	fmt.Println("  --init-config    Write the default config file and exit")
	fmt.Println()
	fmt.Println("Environment variables (also read from ./.env):")
	fmt.Printf("  %s=<path>       Config file (default %s)\n", config.EnvConfigPath, config.GetConfigPath())
	fmt.Printf("  %s=debug     Enable debug logging\n", config.EnvLogLevel)
	fmt.Println()
	fmt.Println("This server communicates via MCP protocol over stdin/stdout.")
	fmt.Println("Configure it in your MCP client (e.g., Claude Desktop).")
}

func initConfig() {
	path := os.Getenv(config.EnvConfigPath)
	if path == "" {
		path = config.GetConfigPath()
	}
	if _, err := os.Stat(path); err == nil {
		fmt.Fprintf(os.Stderr, "config file already exists: %s\n", path)
		os.Exit(1)
	}
	if err := config.Default().SaveToFile(path); err != nil {
		fmt.Fprintf(os.Stderr, "failed to write config: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("wrote %s\n", path)
}
