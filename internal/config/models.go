package config

import (
	"sync"
	"time"

	"github.com/muurk/tmcatcher/internal/api"
	"github.com/muurk/tmcatcher/internal/urls"
)

// CurrentVersion is the config file schema version
const CurrentVersion = 1

// Config represents the entire user configuration file.
type Config struct {
	Version  int            `yaml:"version"`
	API      APIConfig      `yaml:"api"`
	Polling  PollingConfig  `yaml:"polling"`
	Exporter ExporterConfig `yaml:"exporter"`
	Session  SessionConfig  `yaml:"session"`

	path string     // File this config was loaded from and is saved to
	mu   sync.Mutex // Guards Session between the TUI and Save
}

// APIConfig holds backend endpoints and timeouts.
type APIConfig struct {
	BaseURL       string        `yaml:"base_url"`
	LimitURL      string        `yaml:"limit_url,omitempty"` // Delete-limit host, unset by default
	CensusPath    string        `yaml:"census_path"`
	Timeout       time.Duration `yaml:"timeout"`
	HealthTimeout time.Duration `yaml:"health_timeout"`
}

// PollingConfig holds the intervals of the recurring timers.
type PollingConfig struct {
	Census    time.Duration `yaml:"census"`
	Health    time.Duration `yaml:"health"`
	Countdown time.Duration `yaml:"countdown"`
}

// ExporterConfig configures `tmcatcher exporter`.
type ExporterConfig struct {
	Listen string `yaml:"listen"`
}

// SessionConfig holds values cached between runs.
type SessionConfig struct {
	LastPhone string `yaml:"last_phone,omitempty"` // Registrant phone of the last successful submit
}

// Default returns a Config with default values.
func Default() *Config {
	return &Config{
		Version: CurrentVersion,
		API: APIConfig{
			BaseURL:       urls.DefaultBaseURL,
			LimitURL:      urls.DefaultLimitURL,
			CensusPath:    api.DefaultCensusPath,
			Timeout:       api.DefaultTimeout,
			HealthTimeout: api.DefaultHealthTimeout,
		},
		Polling: PollingConfig{
			Census:    10 * time.Second,
			Health:    30 * time.Second,
			Countdown: time.Second,
		},
		Exporter: ExporterConfig{
			Listen: urls.DefaultExporterListen,
		},
	}
}

// fillDefaults replaces zero values left by a partial config file.
func (c *Config) fillDefaults() {
	d := Default()
	if c.API.BaseURL == "" {
		c.API.BaseURL = d.API.BaseURL
	}
	if c.API.CensusPath == "" {
		c.API.CensusPath = d.API.CensusPath
	}
	if c.API.Timeout <= 0 {
		c.API.Timeout = d.API.Timeout
	}
	if c.API.HealthTimeout <= 0 {
		c.API.HealthTimeout = d.API.HealthTimeout
	}
	if c.Polling.Census <= 0 {
		c.Polling.Census = d.Polling.Census
	}
	if c.Polling.Health <= 0 {
		c.Polling.Health = d.Polling.Health
	}
	if c.Polling.Countdown <= 0 {
		c.Polling.Countdown = d.Polling.Countdown
	}
	if c.Exporter.Listen == "" {
		c.Exporter.Listen = d.Exporter.Listen
	}
}

// Path returns the file the config is saved to.
func (c *Config) Path() string {
	return c.path
}

// NewClient builds an API client from the api section.
func (c *Config) NewClient() *api.Client {
	client := api.NewClientWithURL(c.API.BaseURL)
	client.LimitURL = c.API.LimitURL
	client.CensusPath = c.API.CensusPath
	client.SetTimeout(c.API.Timeout)
	client.HealthTimeout = c.API.HealthTimeout
	return client
}

// RegistrantPhone returns the cached registrant phone.
func (c *Config) RegistrantPhone() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.Session.LastPhone
}

// SaveRegistrantPhone caches phone and persists it. Only the session
// section is written: the file is re-read so that environment and flag
// overrides applied to c stay out of it.
func (c *Config) SaveRegistrantPhone(phone string) error {
	c.mu.Lock()
	c.Session.LastPhone = phone
	c.mu.Unlock()

	if c.path == "" {
		return nil
	}
	onDisk, err := LoadFile(c.path)
	if err != nil {
		return err
	}
	onDisk.Session.LastPhone = phone
	return onDisk.SaveTo(c.path)
}
