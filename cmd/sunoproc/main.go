package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"sunoproc/internal/config"
	"sunoproc/internal/encoder"
	"sunoproc/internal/logger"
	"sunoproc/internal/pipeline"
	"sunoproc/internal/progress"
	"sunoproc/internal/shutdown"
	"sunoproc/pkg/utils"
)

func main() {
	cfg, configPath, err := parseArgs()
	if err != nil {
		fmt.Fprintf(os.Stderr, "[ERROR] %v\n", err)
		os.Exit(1)
	}

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "[ERROR] %v\n", err)
		os.Exit(1)
	}

	sh := shutdown.New()
	sh.Listen()

	log := logger.New(cfg.Verbose)
	defer log.Close()

	if cfg.Quiet {
		logDir := config.GetDefaultLogPath()
		if err := os.MkdirAll(logDir, 0755); err != nil {
			fmt.Fprintf(os.Stderr, "[WARN] Failed to create log directory: %v\n", err)
		} else {
			logFile := filepath.Join(logDir, fmt.Sprintf("sunoproc_%s.log", time.Now().Format("2006-01-02_15-04-05")))
			if err := log.SetFileLog(logFile); err != nil {
				fmt.Fprintf(os.Stderr, "[WARN] Failed to setup file logging: %v\n", err)
			}
		}
	}

	if configPath != "" {
		log.Debug("Loaded configuration from: %s", configPath)
	}

	if err := run(sh, cfg, log); err != nil {
		log.Error("%v", err)
		os.Exit(1)
	}
}

func run(sh *shutdown.Handler, cfg config.Config, log *logger.Logger) error {
	if err := utils.CheckDependencies(); err != nil {
		// Files already in the target format can still be processed;
		// triplets that need conversion will fail individually.
		log.Warn("%v", err)
	}

	var bar *progress.Bar
	hooks := pipeline.Hooks{
		OnMatched: func(total int) {
			if cfg.Quiet && !cfg.DryRun {
				bar = progress.New(total)
				log.SetProgressBar(true)
			}
		},
		OnUnitDone: func(bool) {
			if bar != nil {
				bar.Increment()
			}
		},
	}

	proc := pipeline.New(cfg, log, encoder.New(log))
	stats, err := proc.Run(sh.Context(), hooks)

	if bar != nil {
		bar.Finish()
		log.SetProgressBar(false)
	}

	if err != nil {
		return err
	}

	if stats.Total > 0 && !cfg.DryRun {
		log.Info("=== Process completed: %d/%d triplets ===", stats.Succeeded, stats.Total)
	}
	return nil
}
