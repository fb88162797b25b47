// Package config provides configuration management for cdflint using Viper.
package config

import (
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/spf13/viper"

	"github.com/civictools/cdflint/internal/diag"
	"github.com/civictools/cdflint/internal/errors"
)

// AppName is the application name used for config file naming.
const AppName = "cdflint"

// Config represents the top-level configuration file structure.
type Config struct {
	Version   int    `mapstructure:"version" yaml:"version"`
	RuleSet   string `mapstructure:"rule_set" yaml:"rule_set"`
	Severity  string `mapstructure:"severity" yaml:"severity"`
	Country   string `mapstructure:"country" yaml:"country"`
	Overrides string `mapstructure:"overrides" yaml:"overrides"`
}

// Init initializes Viper with default configuration.
// Call this once at application startup before accessing config values.
func Init() {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	// Search paths (in order of precedence)
	viper.AddConfigPath(".")
	viper.AddConfigPath(filepath.Join(xdg.ConfigHome, AppName))

	viper.SetEnvPrefix("CDFLINT")
	viper.AutomaticEnv()

	viper.SetDefault("version", 1)
	viper.SetDefault("rule_set", "election")
	viper.SetDefault("severity", "Error")
	viper.SetDefault("country", "us")
}

// Load reads the configuration file.
// If path is provided, it reads from that specific file.
// If path is empty, it searches in the default locations and falls back to
// defaults when no file exists.
func Load(path string) (*Config, error) {
	if path != "" {
		viper.SetConfigFile(path)
	}

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			if path != "" {
				return nil, errors.Wrapf(err, "config file not found at %s", path)
			}
		} else {
			return nil, errors.Wrap(err, "reading config file")
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, errors.Wrap(err, "unmarshaling config")
	}

	return &cfg, nil
}

// Run is the resolved configuration of one validation run. Constructed once
// from flags and the config file, read-only thereafter.
type Run struct {
	// RuleSet names the rule family to apply.
	RuleSet string

	// Include restricts the run to the named rules when non-empty.
	Include []string

	// Exclude removes the named rules from the run.
	Exclude []string

	// MinSeverity is the lowest severity retained in the report.
	MinSeverity diag.Severity

	// Verbose lists every diagnostic instead of the per-rule summary.
	Verbose bool

	// StopOnSchemaError suppresses semantic rules when the structural
	// pre-pass failed. Off by default: both categories are reported
	// together.
	StopOnSchemaError bool

	// Country selects which cached OCD-ID division list applies.
	Country string

	// OCDIDFile points at a local division list, overriding the cache.
	OCDIDFile string

	// SeverityOverrides remaps the severity of individual rules by name.
	SeverityOverrides map[string]diag.Severity
}
