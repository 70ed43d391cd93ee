package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config contains the program configuration
type Config struct {
	Directory      string `yaml:"directory"`
	Verbose        bool   `yaml:"verbose"`
	Quiet          bool   `yaml:"quiet"`
	DryRun         bool   `yaml:"dry_run"`
	KeepStaging    bool   `yaml:"keep_staging"`
	OutputDir      string `yaml:"output_dir"`
	OrganizeByTags bool   `yaml:"organize_by_tags"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() Config {
	return Config{
		Directory:      ".",
		Verbose:        false,
		Quiet:          false,
		DryRun:         false,
		KeepStaging:    false,
		OrganizeByTags: true,
	}
}

// LoadConfigFile loads configuration from a YAML file.
// If path is empty, searches standard locations. Returns defaults if no file found.
func LoadConfigFile(path string) (Config, error) {
	cfg := DefaultConfig()

	if path == "" {
		path = FindConfigFile()
		if path == "" {
			return cfg, nil
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	cfg.Directory = ExpandHome(cfg.Directory)
	cfg.OutputDir = ExpandHome(cfg.OutputDir)

	return cfg, nil
}

// ExpandHome replaces a leading ~ with the user's home directory.
func ExpandHome(path string) string {
	if strings.HasPrefix(path, "~/") {
		return filepath.Join(homeDir(), path[2:])
	}
	return path
}

// FindConfigFile searches for a config file in standard locations
func FindConfigFile() string {
	home := homeDir()
	locations := []string{
		"./sunoproc.yaml",
		"./sunoproc.yml",
		filepath.Join(home, ".config", "sunoproc", "config.yaml"),
		filepath.Join(home, ".config", "sunoproc", "config.yml"),
		filepath.Join(home, ".sunoproc.yaml"),
		filepath.Join(home, ".sunoproc.yml"),
	}

	for _, path := range locations {
		if path == "" {
			continue
		}
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}

// SaveConfigFile saves the current configuration to a YAML file
func SaveConfigFile(cfg Config, path string) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// GetDefaultConfigPath returns the default config file path
func GetDefaultConfigPath() string {
	return filepath.Join(homeDir(), ".config", "sunoproc", "config.yaml")
}

// GetDefaultLogPath returns the default log directory path
func GetDefaultLogPath() string {
	return filepath.Join(homeDir(), ".local", "share", "sunoproc", "logs")
}

func homeDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return os.Getenv("HOME")
	}
	return home
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Directory == "" {
		return fmt.Errorf("target directory cannot be empty")
	}

	if c.Verbose && c.Quiet {
		return fmt.Errorf("verbose and quiet modes are mutually exclusive")
	}

	return nil
}
