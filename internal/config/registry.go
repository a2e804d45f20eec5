package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sync"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	appName    = "tmcatcher"
	configFile = "config.yaml"
	logFile    = "tmcatcher.log"
)

// Environment variables that override the config file
const (
	EnvConfigPath = "TMCATCHER_CONFIG"
	EnvBaseURL    = "TMCATCHER_BASE_URL"
	EnvLimitURL   = "TMCATCHER_LIMIT_URL"
	EnvCensusPath = "TMCATCHER_CENSUS_PATH"
	EnvTimeout    = "TMCATCHER_TIMEOUT"
	EnvListen     = "TMCATCHER_EXPORTER_LISTEN"
)

// Mutex for thread-safe file operations
var fileMutex sync.Mutex

// GetConfigDir returns the OS-appropriate configuration directory for the application.
// This follows platform conventions:
//   - Linux: $XDG_CONFIG_HOME/tmcatcher or $HOME/.config/tmcatcher
//   - macOS: $HOME/.config/tmcatcher
//   - Windows: %LOCALAPPDATA%\tmcatcher
func GetConfigDir() (string, error) {
	switch runtime.GOOS {
	case "windows":
		if localAppData := os.Getenv("LOCALAPPDATA"); localAppData != "" {
			return filepath.Join(localAppData, appName), nil
		}
		userProfile := os.Getenv("USERPROFILE")
		if userProfile == "" {
			return "", fmt.Errorf("cannot determine user profile directory (LOCALAPPDATA and USERPROFILE not set)")
		}
		return filepath.Join(userProfile, "AppData", "Local", appName), nil

	case "darwin":
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("cannot determine home directory: %w", err)
		}
		return filepath.Join(homeDir, ".config", appName), nil

	default:
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			return filepath.Join(xdg, appName), nil
		}
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("cannot determine home directory: %w", err)
		}
		return filepath.Join(homeDir, ".config", appName), nil
	}
}

// GetConfigPath returns the full path to the configuration file.
// TMCATCHER_CONFIG takes precedence over the platform directory.
func GetConfigPath() (string, error) {
	if p := os.Getenv(EnvConfigPath); p != "" {
		return p, nil
	}
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, configFile), nil
}

// GetLogPath returns the default log file used while the TUI owns the terminal.
func GetLogPath() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, logFile), nil
}

// LoadDotEnv loads .env from the working directory or its nearest parent
// that has one. Variables already set in the environment win.
func LoadDotEnv(maxDepth int) {
	if maxDepth <= 0 {
		maxDepth = 6
	}

	dir, err := os.Getwd()
	if err != nil {
		return
	}

	for i := 0; i <= maxDepth; i++ {
		p := filepath.Join(dir, ".env")
		if _, err := os.Stat(p); err == nil {
			_ = godotenv.Load(p)
			return
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return
		}
		dir = parent
	}
}

// Load reads the config from the default path and applies environment
// overrides. A missing file yields the defaults.
func Load() (*Config, error) {
	path, err := GetConfigPath()
	if err != nil {
		return nil, fmt.Errorf("failed to get config path: %w", err)
	}
	cfg, err := LoadFile(path)
	if err != nil {
		return nil, err
	}
	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadFile reads the config at path without environment overrides.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		cfg := Default()
		cfg.path = path
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if cfg.Version == 0 {
		cfg.Version = CurrentVersion
	}
	if cfg.Version != CurrentVersion {
		return nil, fmt.Errorf("unsupported config version: %d (expected %d)", cfg.Version, CurrentVersion)
	}

	cfg.fillDefaults()
	cfg.path = path
	return cfg, nil
}

// ApplyEnv overrides values from TMCATCHER_* environment variables.
func (c *Config) ApplyEnv() error {
	if v := os.Getenv(EnvBaseURL); v != "" {
		c.API.BaseURL = v
	}
	if v := os.Getenv(EnvLimitURL); v != "" {
		c.API.LimitURL = v
	}
	if v := os.Getenv(EnvCensusPath); v != "" {
		c.API.CensusPath = v
	}
	if v := os.Getenv(EnvListen); v != "" {
		c.Exporter.Listen = v
	}
	if v := os.Getenv(EnvTimeout); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", EnvTimeout, err)
		}
		c.API.Timeout = d
	}
	return nil
}

// Save writes the config to its path.
// Performs an atomic write to prevent corruption on crash.
func (c *Config) Save() error {
	if c.path == "" {
		path, err := GetConfigPath()
		if err != nil {
			return fmt.Errorf("failed to get config path: %w", err)
		}
		c.path = path
	}
	return c.SaveTo(c.path)
}

// SaveTo writes the config to path atomically.
func (c *Config) SaveTo(path string) error {
	fileMutex.Lock()
	defer fileMutex.Unlock()

	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	c.mu.Lock()
	data, err := yaml.Marshal(c)
	c.mu.Unlock()
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	header := []byte(`# tmcatcher configuration file
# Environment variables TMCATCHER_BASE_URL, TMCATCHER_LIMIT_URL and
# TMCATCHER_CENSUS_PATH override the api section.
#
# Location: ` + path + `

`)
	data = append(header, data...)

	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0600); err != nil {
		return fmt.Errorf("failed to write temporary config file: %w", err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to save config file: %w", err)
	}

	return nil
}

// CreateDefaultConfig writes a default config file to the default path
// unless one already exists. It returns the path.
func CreateDefaultConfig() (string, error) {
	path, err := GetConfigPath()
	if err != nil {
		return "", err
	}
	if _, err := os.Stat(path); err == nil {
		return path, fmt.Errorf("config file already exists: %s", path)
	}
	return path, Default().SaveTo(path)
}
