package config

import (
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/mitchellh/go-homedir"
	"github.com/spf13/afero"
	"github.com/spf13/viper"
)

var AppFs = afero.NewOsFs()

// Config holds the CLI configuration
type Config struct {
	// DatabasePath is the default rupture database file used when a
	// command is not given one explicitly.
	DatabasePath string
	// Debug enables debug logging.
	Debug bool
}

// Load loads configuration from config files, environment variables and
// .env files, in that order of increasing priority.
func Load() (*Config, error) {
	home, err := homedir.Dir()
	if err != nil {
		return nil, err
	}

	viper.SetConfigName(".nshmdb")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath(home)
	viper.AddConfigPath(filepath.Join(home, ".config", "nshmdb"))

	viper.SetEnvPrefix("NSHMDB")
	viper.AutomaticEnv()

	viper.SetDefault("database_path", "nshm2022.db")
	viper.SetDefault("debug", false)

	// The config file is optional.
	_ = viper.ReadInConfig()

	// Load .env file if it exists
	if _, err := AppFs.Stat(".env"); err == nil {
		_ = godotenv.Load()
	}

	// Load .env.local if it exists (higher priority)
	if _, err := AppFs.Stat(".env.local"); err == nil {
		_ = godotenv.Overload(".env.local")
	}

	return &Config{
		DatabasePath: viper.GetString("database_path"),
		Debug:        viper.GetBool("debug"),
	}, nil
}

// Save writes the configuration to ~/.config/nshmdb/.nshmdb.yaml.
func Save(cfg *Config) error {
	viper.Set("database_path", cfg.DatabasePath)
	viper.Set("debug", cfg.Debug)

	home, err := homedir.Dir()
	if err != nil {
		return err
	}

	configPath := filepath.Join(home, ".config", "nshmdb")
	if err := AppFs.MkdirAll(configPath, 0755); err != nil {
		return err
	}
	return viper.WriteConfigAs(filepath.Join(configPath, ".nshmdb.yaml"))
}
