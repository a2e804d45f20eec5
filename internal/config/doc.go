// Package config provides user configuration management for tmcatcher.
//
// Settings live in a YAML file: API endpoints and timeouts, poll
// intervals, the exporter listen address, and the registrant phone cached
// from the last successful submit.
//
// # Configuration File Location
//
//   - Linux: $XDG_CONFIG_HOME/tmcatcher/config.yaml or $HOME/.config/tmcatcher/config.yaml
//   - macOS: $HOME/.config/tmcatcher/config.yaml
//   - Windows: %LOCALAPPDATA%\tmcatcher\config.yaml
//
// TMCATCHER_CONFIG points at a different file.
//
// # Precedence
//
// Command-line flags override environment variables, which override the
// file. LoadDotEnv can seed the environment from a .env file first.
//
//	config.LoadDotEnv(0)
//	cfg, err := config.Load()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	client := cfg.NewClient()
//
// *Config implements wizard.PhoneStore, so the registration wizard persists
// the registrant phone through it.
package config
