package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"sunoproc/internal/config"
	"sunoproc/internal/logger"
	"sunoproc/internal/shutdown"
	"sunoproc/internal/web"
)

func main() {
	var (
		addr       string
		configPath string
	)
	flag.StringVar(&addr, "addr", ":8080", "listen address")
	flag.StringVar(&configPath, "config", "", "config file path")
	flag.Parse()

	if err := run(addr, configPath); err != nil {
		fmt.Fprintf(os.Stderr, "[ERROR] %v\n", err)
		os.Exit(1)
	}
}

func run(addr, configPath string) error {
	cfg, err := config.LoadConfigFile(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	log := logger.New(cfg.Verbose)
	defer log.Close()

	logDir := config.GetDefaultLogPath()
	if err := os.MkdirAll(logDir, 0755); err == nil {
		logFile := filepath.Join(logDir, fmt.Sprintf("sunoproc-web_%s.log", time.Now().Format("2006-01-02_15-04-05")))
		if err := log.SetFileLog(logFile); err != nil {
			log.Warn("Failed to setup file logging: %v", err)
		}
	}

	sh := shutdown.New()
	sh.Listen()

	jobMgr := web.NewJobManager()
	jobMgr.StartCleanup(sh.Context())

	srv := &http.Server{
		Addr:         addr,
		Handler:      web.NewServer(jobMgr, cfg, log).Router(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("Listening on %s", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
	case <-sh.Context().Done():
		log.Info("Shutting down...")
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			return fmt.Errorf("shutdown failed: %w", err)
		}
	}

	log.Info("Server stopped")
	return nil
}
