// Command lmbox runs the LM Box diagnostics daemon: it starts the
// capture-and-detect loop and serves the player, high-score, and live
// landmark APIs. Game sessions themselves are launched by the menu
// frontend through the app package.
package main

import (
	"flag"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/lmittmann/tint"

	"github.com/Samspei01/LM-BOX-5/internal/capture"
	"github.com/Samspei01/LM-BOX-5/internal/config"
	"github.com/Samspei01/LM-BOX-5/internal/detector"
	"github.com/Samspei01/LM-BOX-5/internal/server"
	"github.com/Samspei01/LM-BOX-5/internal/store"
)

func main() {
	addr := flag.String("addr", "", "diagnostics listen address (overrides LMBOX_DIAG_ADDR)")
	verbose := flag.Bool("v", false, "debug logging")
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(
		tint.NewHandler(os.Stderr, &tint.Options{
			Level:      level,
			TimeFormat: "15:04:05",
		}),
	)
	slog.SetDefault(logger)

	cfg, err := config.Load()
	if err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(1)
	}
	if *addr != "" {
		cfg.DiagAddr = *addr
	}
	if cfg.DiagAddr == "" {
		cfg.DiagAddr = ":8080"
	}

	dbPath := cfg.DBPath
	if dbPath == "" {
		dbPath, err = defaultDBPath()
		if err != nil {
			logger.Error("failed to resolve data directory", "error", err)
			os.Exit(1)
		}
	}

	st, err := store.New(dbPath)
	if err != nil {
		logger.Error("failed to initialize store", "path", dbPath, "error", err)
		os.Exit(1)
	}
	defer st.Close()
	logger.Info("store ready", "path", dbPath)

	// The diagnostics feeds run hand tracking; a missing camera or
	// detector only disables the live endpoints.
	loop := startCapture(cfg, logger)
	if loop != nil {
		defer loop.Stop()
	}

	srv := server.New(server.Config{
		StaticDir: findWebDir(),
		Store:     st,
		Capture:   loop,
	})

	logger.Info("diagnostics server listening", "addr", cfg.DiagAddr)
	if err := srv.ListenAndServe(cfg.DiagAddr); err != nil {
		logger.Error("server failed", "error", err)
		os.Exit(1)
	}
}

// startCapture builds the background capture loop, or returns nil when no
// camera or detector is available. The loop owns the detector and closes
// it on Stop.
func startCapture(cfg config.Config, logger *slog.Logger) *capture.Loop {
	det, err := detector.NewMediaPipeDetector(detector.DefaultConfig(detector.ModeHands))
	if err != nil {
		logger.Warn("landmark detector unavailable, live feeds disabled", "error", err)
		return nil
	}

	loop := capture.NewLoop(capture.Config{
		DeviceIDs:     capture.DeviceFallback(cfg.CameraIndex),
		Detector:      det,
		CloseDetector: true,
		FPS:           cfg.CaptureFPS,
		Mirror:        true,
		Logger:        logger,
	})
	if err := loop.Start(); err != nil {
		logger.Warn("camera unavailable, live feeds disabled", "error", err)
		det.Close()
		return nil
	}
	return loop
}

// defaultDBPath resolves ~/.lmbox/lmbox.db, creating the directory.
func defaultDBPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}

	dataDir := filepath.Join(homeDir, ".lmbox")
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return "", err
	}

	return filepath.Join(dataDir, "lmbox.db"), nil
}

// findWebDir searches for the diagnostics web directory in common
// locations. Returns the first existing directory or "" if none found.
func findWebDir() string {
	relativePaths := []string{"web", "../web", "../../web"}
	for _, p := range relativePaths {
		if info, err := os.Stat(p); err == nil && info.IsDir() {
			if absPath, err := filepath.Abs(p); err == nil {
				return absPath
			}
			return p
		}
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ""
	}

	homeWebDir := filepath.Join(homeDir, ".lmbox", "web")
	if info, err := os.Stat(homeWebDir); err == nil && info.IsDir() {
		return homeWebDir
	}

	return ""
}
