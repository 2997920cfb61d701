package config

import "github.com/spf13/viper"

// Config holds all runtime configuration for a comet run.
// Values are populated from .comet.yaml, COMET_* env vars, and CLI flags.
type Config struct {
	ClaudePath    string `mapstructure:"claude_path"`
	Model         string `mapstructure:"model"`
	MaxCandidates int    `mapstructure:"max_candidates"`
	MaxDiffBytes  int    `mapstructure:"max_diff_bytes"`
	Push          bool   `mapstructure:"push"`

	// Feature toggles. Each gates a whole pipeline stage: a disabled stage
	// simply never runs.
	History     bool `mapstructure:"history"`
	MultiCommit bool `mapstructure:"multi_commit"`
	IssueRefs   bool `mapstructure:"issue_refs"`

	HistoryDepth    int `mapstructure:"history_depth"`
	CacheTTLMinutes int `mapstructure:"cache_ttl_minutes"`

	TelemetryDB string `mapstructure:"telemetry_db"`
	ProfilePath string `mapstructure:"profile_path"`

	Verbose bool `mapstructure:"verbose"`
}

// Load reads configuration from viper, applying built-in defaults for any
// values not set by config file, environment, or flags.
func Load() Config {
	viper.SetDefault("claude_path", "claude")
	viper.SetDefault("model", "")
	viper.SetDefault("max_candidates", 3)
	viper.SetDefault("max_diff_bytes", 16*1024)
	viper.SetDefault("push", false)
	viper.SetDefault("history", true)
	viper.SetDefault("multi_commit", true)
	viper.SetDefault("issue_refs", true)
	viper.SetDefault("history_depth", 50)
	viper.SetDefault("cache_ttl_minutes", 5)
	viper.SetDefault("telemetry_db", ".comet/telemetry.db")
	viper.SetDefault("profile_path", ".comet/profile.toml")
	viper.SetDefault("verbose", false)

	var cfg Config
	_ = viper.Unmarshal(&cfg)
	return cfg
}
