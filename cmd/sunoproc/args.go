package main

import (
	"fmt"
	"os"

	"sunoproc/internal/config"
)

// parseArgs parses command-line arguments and loads configuration.
// Priority: CLI flags > config file > defaults
func parseArgs() (config.Config, string, error) {
	args := os.Args[1:]

	for _, arg := range args {
		if arg == "--help" || arg == "-h" {
			printUsage()
			os.Exit(0)
		}
		if arg == "--init-config" {
			return config.Config{}, "", initConfigFile()
		}
	}

	var configPath string
	var cfg config.Config
	var err error

	for i := 0; i < len(args); i++ {
		if args[i] == "--config" || args[i] == "-c" {
			if i+1 >= len(args) {
				return config.Config{}, "", fmt.Errorf("--config requires a path argument")
			}
			configPath = args[i+1]
			break
		}
	}

	cfg, err = config.LoadConfigFile(configPath)
	if err != nil {
		return config.Config{}, "", fmt.Errorf("failed to load config: %w", err)
	}
	if configPath == "" {
		configPath = config.FindConfigFile()
	}

	for i := 0; i < len(args); i++ {
		arg := args[i]

		switch arg {
		case "--verbose", "-v":
			cfg.Verbose = true

		case "--quiet", "-q":
			cfg.Quiet = true

		case "--dry-run", "-n":
			cfg.DryRun = true

		case "--keep", "-k":
			cfg.KeepStaging = true

		case "--output", "-o":
			if i+1 >= len(args) {
				return config.Config{}, "", fmt.Errorf("--output requires a directory argument")
			}
			i++
			cfg.OutputDir = config.ExpandHome(args[i])

		case "--config", "-c":
			i++

		default:
			if len(arg) > 0 && arg[0] == '-' {
				return config.Config{}, "", fmt.Errorf("unknown flag: %s", arg)
			}
			cfg.Directory = arg
		}
	}

	return cfg, configPath, nil
}

// initConfigFile creates a new config file with default values
func initConfigFile() error {
	path := config.GetDefaultConfigPath()

	if _, err := os.Stat(path); err == nil {
		fmt.Printf("Config file already exists at: %s\n", path)
		fmt.Println("Delete it first if you want to recreate it.")
		os.Exit(0)
	}

	cfg := config.DefaultConfig()

	if err := config.SaveConfigFile(cfg, path); err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}

	fmt.Printf("Created default config file at: %s\n", path)
	fmt.Println("\nYou can now edit this file to customize your settings.")
	fmt.Println("Available options:")
	fmt.Println("  directory: directory to scan for triplets")
	fmt.Println("  keep_staging: true/false (keep sidecar/cover/original files)")
	fmt.Println("  output_dir: move finished MP3s here (empty: leave in place)")
	fmt.Println("  organize_by_tags: true/false (Artist/Album subfolders in output_dir)")
	fmt.Println("  verbose: true/false (enable detailed logging)")
	fmt.Println("  quiet: true/false (progress bar instead of commentary)")
	fmt.Println("  dry_run: true/false (preview mode)")

	os.Exit(0)
	return nil
}

// printUsage displays the help message
func printUsage() {
	fmt.Println("sunoproc - Convert downloaded Suno triplets to tagged MP3s")
	fmt.Println()
	fmt.Println("Usage: sunoproc [options] [directory]")
	fmt.Println()
	fmt.Println("Scans the directory (default: current directory) for triplets and")
	fmt.Println("processes each one: convert to MP3, apply tags, embed cover art,")
	fmt.Println("and clean up the staging files.")
	fmt.Println()
	fmt.Println("A triplet consists of:")
	fmt.Println("  - Audio file (*.m4a, *.mp4, *.mp3, *.flac)")
	fmt.Println("  - Tags file (*_tags.json)")
	fmt.Println("  - Cover art (*_cover.jpeg/jpg/png/webp) [optional]")
	fmt.Println()
	fmt.Println("Options:")
	fmt.Println("  -v, --verbose              Show detailed output")
	fmt.Println("  -q, --quiet                Progress bar only, commentary goes to the log file")
	fmt.Println("  -n, --dry-run              List triplets without processing them")
	fmt.Println("  -k, --keep                 Keep staging files after processing")
	fmt.Println("  -o, --output <dir>         Move finished MP3s to this directory")
	fmt.Println("  -c, --config <path>        Path to config file")
	fmt.Println("  -h, --help                 Show this help message")
	fmt.Println()
	fmt.Println("Configuration:")
	fmt.Println("  --init-config              Create a default config file")
	fmt.Println()
	fmt.Println("Config file locations (checked in order):")
	fmt.Println("  ./sunoproc.yaml")
	fmt.Println("  ~/.config/sunoproc/config.yaml")
	fmt.Println("  ~/.sunoproc.yaml")
	fmt.Println()
	fmt.Println("Examples:")
	fmt.Println("  # Process triplets in the current directory")
	fmt.Println("  sunoproc")
	fmt.Println()
	fmt.Println("  # Preview what would be processed")
	fmt.Println("  sunoproc --dry-run ~/Downloads/suno")
	fmt.Println()
	fmt.Println("  # Process and file the results into a music library")
	fmt.Println("  sunoproc -o ~/Music ~/Downloads/suno")
}
