package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/ironsheep/smartcrop-mcp/internal/config"
	"github.com/ironsheep/smartcrop-mcp/internal/server"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	var configPath string

	args := os.Args[1:]
	for len(args) > 0 {
		switch args[0] {
		case "--version", "-v", "version":
			fmt.Printf("smartcrop-mcp %s\n", Version)
			fmt.Printf("  Build time: %s\n", BuildTime)
			fmt.Printf("  Git commit: %s\n", GitCommit)
			return
		case "--help", "-h", "help":
			printUsage()
			return
		case "--config", "-c":
			if len(args) < 2 {
				fmt.Fprintln(os.Stderr, "--config requires a path")
				os.Exit(2)
			}
			configPath = args[1]
			args = args[2:]
			continue
		default:
			fmt.Fprintf(os.Stderr, "unknown option: %s\n", args[0])
			printUsage()
			os.Exit(2)
		}
	}

	// Configure logging to stderr (stdout is for MCP protocol)
	log.SetOutput(os.Stderr)
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("Config error: %v", err)
	}

	if cfg.Debug() {
		log.Printf("Smartcrop MCP Server v%s (built %s, commit %s)", Version, BuildTime, GitCommit)
		log.Printf("Analyzer: step=%d down_sample=%d scales=[%.2f,%.2f] workers=%d",
			cfg.Analyzer.Step, cfg.Analyzer.ScoreDownSample, cfg.Analyzer.MinScale, cfg.Analyzer.MaxScale, cfg.Analyzer.Workers)
	}

	if Version != "dev" {
		server.Version = Version
	}

	srv := server.New(cfg)
	if err := srv.Run(context.Background()); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}

func printUsage() {
	fmt.Println("smartcrop-mcp - MCP server for content-aware image cropping")
	fmt.Println()
	fmt.Println("Usage: smartcrop-mcp [options]")
	fmt.Println()
	fmt.Println("Options:")
	fmt.Println("  --config, -c PATH  Read configuration from a YAML, JSON or TOML file")
	fmt.Println("  --version, -v      Print version information")
	fmt.Println("  --help, -h         Print this help message")
	fmt.Println()
	fmt.Println("Environment variables:")
	fmt.Println("  SMARTCROP_MCP_CONFIG=PATH          Configuration file when --config is not given")
	fmt.Println("  SMARTCROP_MCP_LOG_LEVEL=debug      Enable debug logging")
	fmt.Println("  SMARTCROP_MCP_CACHE_SIZE=N         Number of decoded images to keep")
	fmt.Println("  SMARTCROP_MCP_ANALYZER_STEP=N      Any analyzer.* or heuristics.* key, upper-cased")
	fmt.Println()
	fmt.Println("This server communicates via MCP protocol over stdin/stdout.")
	fmt.Println("Configure it in your MCP client.")
}
