package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Load loads the configuration from file. When no explicit path is given
// and no config file exists in the standard locations, the defaults are
// used as-is.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	// Set default values
	setDefaults(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		// Look for config in standard locations
		v.SetConfigName("config")
		v.SetConfigType("yaml")

		// Check current directory first
		v.AddConfigPath(".")

		// Check home directory
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".moviequiz"))
		}

		// Check /etc
		v.AddConfigPath("/etc/moviequiz/")
	}

	// Read config file
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config: %w", err)
		}
		if configPath != "" {
			return nil, fmt.Errorf("config file not found: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	// Validate configuration
	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// Catalog defaults
	v.SetDefault("imdb.url", "https://tv-api.com/en/API/Top250Movies/")
	v.SetDefault("imdb.api_key", "k_zcuw1ytf")

	// Quiz defaults
	v.SetDefault("quiz.questions_per_round", 10)
	v.SetDefault("quiz.honest_answers", false)
	v.SetDefault("quiz.filter", "")

	// Statistics defaults
	v.SetDefault("stats.database", defaultDatabasePath())

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
	v.SetDefault("logging.color", true)
}

// defaultDatabasePath puts the statistics database in the user's home
// directory, falling back to the working directory.
func defaultDatabasePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "moviequiz-stats.db"
	}
	return filepath.Join(home, ".moviequiz", "stats.db")
}

// validate checks if the configuration is valid
func validate(cfg *Config) error {
	if cfg.IMDb.URL == "" {
		return fmt.Errorf("imdb.url is required")
	}

	if cfg.IMDb.APIKey == "" {
		return fmt.Errorf("imdb.api_key is required")
	}

	if cfg.Quiz.QuestionsPerRound <= 0 {
		return fmt.Errorf("quiz.questions_per_round must be positive")
	}

	if cfg.Stats.Database == "" {
		return fmt.Errorf("stats.database is required")
	}

	// Validate logging level
	validLevels := map[string]bool{
		"trace": true,
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLevels[cfg.Logging.Level] {
		return fmt.Errorf("invalid logging level: %s", cfg.Logging.Level)
	}

	// Validate logging format
	validFormats := map[string]bool{
		"console": true,
		"json":    true,
	}
	if !validFormats[cfg.Logging.Format] {
		return fmt.Errorf("invalid logging format: %s", cfg.Logging.Format)
	}

	return nil
}
