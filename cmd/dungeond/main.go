package main

import (
	"flag"
	"fmt"
	"net/http"
	"os"

	"github.com/gorilla/handlers"

	"dungeon-generator/internal/archive"
	"dungeon-generator/internal/config"
	"dungeon-generator/internal/logger"
)

func main() {
	configPath := flag.String("config", "dungeon.yaml", "Path to the YAML config file")
	addr := flag.String("addr", "", "Listen address (default: server.addr from config)")
	flag.Parse()

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to load config: %v\n", err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if *addr != "" {
		cfg.Server.Addr = *addr
	}

	cfg.Logging.ApplyEnv()
	if err := logger.Initialize(cfg.Logging); err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to initialize logger: %v\n", err)
		os.Exit(1)
	}

	logger.Info("🚀 Dungeon Generator Server")

	var a *archive.Archive
	if cfg.Server.ArchivePath != "" {
		a, err = archive.Open(cfg.Server.ArchivePath)
		if err != nil {
			logger.Error("failed to open archive", "path", cfg.Server.ArchivePath, "error", err)
			os.Exit(1)
		}
		defer a.Close()
		logger.Info("archive opened", "path", cfg.Server.ArchivePath)
	} else {
		logger.Info("ℹ️  archiving disabled (set server.archive_path to enable)")
	}

	srv := newServer(cfg.Generation, a)

	logger.Info("server starting",
		"addr", cfg.Server.Addr,
		"endpoints", []string{
			"POST /generate",
			"GET /layout/lines",
			"GET /layout/geojson",
			"GET /layout/ascii",
			"GET /layouts",
			"GET /layouts/{seed}",
			"GET /health",
		})

	handler := handlers.CombinedLoggingHandler(os.Stdout, srv.routes())
	if err := http.ListenAndServe(cfg.Server.Addr, handler); err != nil {
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
}
