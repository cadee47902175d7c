// Package config resolves the runtime configuration from cobra flags,
// FEAST_ environment variables and the optional YAML config file, in that
// order of precedence.
package config

import "github.com/spf13/viper"

// Config is the runtime configuration resolved from flags, environment
// variables and the optional config file.
type Config struct {
	DatabasePath string
	Listen       string
	LogLevel     string
	LogFormat    string
	// LedgerEnabled gates the budget ledger endpoints. An explicit value
	// passed into the routing layer, not global mutable state.
	LedgerEnabled bool
}

// Load resolves the configuration from viper.
func Load() Config {
	viper.SetDefault("database.path", "feast.db")
	viper.SetDefault("server.listen", ":5000")
	viper.SetDefault("server.ledger_enabled", false)
	viper.SetDefault("logging.level", "info")
	viper.SetDefault("logging.format", "console")

	return Config{
		DatabasePath:  ExpandPath(viper.GetString("database.path")),
		Listen:        viper.GetString("server.listen"),
		LedgerEnabled: viper.GetBool("server.ledger_enabled"),
		LogLevel:      viper.GetString("logging.level"),
		LogFormat:     viper.GetString("logging.format"),
	}
}
