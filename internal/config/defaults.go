package config

import (
	"github.com/spf13/viper"
)

// DefaultHost is the production IAM endpoint.
const DefaultHost = "https://iam.passwort.ethz.ch"

// DefaultAPIBasePath is the fixed base path of the IAM web service.
const DefaultAPIBasePath = "/iam-ws-legacy"

// DefaultAccountFile is the admin-account list searched in each account path.
const DefaultAccountFile = ".ethz_iam_webservice"

// ApplyDefaults sets default configuration values in the provided Viper instance.
func ApplyDefaults(v *viper.Viper) {
	// Backend
	v.SetDefault("backend.host", DefaultHost)
	v.SetDefault("backend.base-path", DefaultAPIBasePath)

	// Admin-account list discovery. An empty path list means the home
	// directory is searched.
	v.SetDefault("accounts.filename", DefaultAccountFile)
	v.SetDefault("accounts.paths", []string{})

	// Output settings. Entity attribute maps render as JSON unless the
	// operator configures tables.
	v.SetDefault("defaults.output-format", "json") // table, json
	v.SetDefault("defaults.verbose", false)
	v.SetDefault("defaults.quiet", false)

	// Request settings
	v.SetDefault("request.timeout", 30) // seconds
}
