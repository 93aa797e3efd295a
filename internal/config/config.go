// Package config provides configuration management for the IAM CLI.
//
// Purpose:
//
//	Load tool settings from multiple sources: environment variables, an
//	optional config file and command-line flags. Uses Viper with clear
//	precedence: flags > environment variables > config file > defaults.
//	The admin-account list file (see accounts.go) is separate operator
//	data with its own strict loading semantics and is not handled here.
//
// Dependencies:
//   - github.com/spf13/viper: Configuration management
//
// Configuration Sources:
//   - Environment variables: IAMCTL_* prefix (e.g. IAMCTL_HOST)
//   - Config file: ~/.iamctl/config.yaml or ./config.yaml
//   - Command-line flags: take precedence over all other sources
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all CLI settings.
type Config struct {
	// Backend
	Host        string
	APIBasePath string

	// Admin-account list discovery
	AccountFile  string   // file name searched in each account path
	AccountPaths []string // directories to search; empty means home directory

	// Output settings
	OutputFormat string // table, json
	Verbose      bool
	Quiet        bool

	// Request settings
	Timeout int // seconds

	// Config file path actually used (for diagnostics)
	ConfigFile string
}

// Load loads configuration from all sources with proper precedence.
func Load() (*Config, error) {
	v := viper.New()

	ApplyDefaults(v)

	v.SetEnvPrefix("IAMCTL")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))

	homeDir, err := os.UserHomeDir()
	if err == nil {
		v.AddConfigPath(filepath.Join(homeDir, ".iamctl"))
	}
	v.AddConfigPath(".")
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	// The config file is optional; only real read/parse errors are fatal.
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	cfg := &Config{
		Host:         v.GetString("backend.host"),
		APIBasePath:  v.GetString("backend.base-path"),
		AccountFile:  v.GetString("accounts.filename"),
		AccountPaths: v.GetStringSlice("accounts.paths"),
		OutputFormat: v.GetString("defaults.output-format"),
		Verbose:      v.GetBool("defaults.verbose"),
		Quiet:        v.GetBool("defaults.quiet"),
		Timeout:      v.GetInt("request.timeout"),
		ConfigFile:   v.ConfigFileUsed(),
	}

	return cfg, nil
}
