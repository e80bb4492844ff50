// Package config provides user configuration management for the OpenShock CLI.
//
// Two sources are handled here:
//
//   - A YAML registry holding shocker nicknames and preferences
//   - OPENSHOCK_* environment variables, read with envconfig
//
// Resolve merges them with command-line flags. Flags win over the
// environment, the environment wins over the registry, and the registry
// wins over built-in defaults.
//
// # Configuration File Location
//
//   - Linux: $XDG_CONFIG_HOME/openshock/config.yaml or $HOME/.config/openshock/config.yaml
//   - macOS: $HOME/.config/openshock/config.yaml
//   - Windows: %LOCALAPPDATA%\openshock\config.yaml
//
// # Security
//
// IMPORTANT: This package NEVER writes the API key to disk. It is read from
// a flag, the environment, or an interactive prompt.
//
// # Usage Example
//
//	registry, err := config.LoadRegistry()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	_ = registry.SetShocker("collar", &config.Shocker{ID: "7d3c...", MaxIntensity: 40})
//
//	if err := registry.Save(); err != nil {
//	    log.Fatal(err)
//	}
package config
