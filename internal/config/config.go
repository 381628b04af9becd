// Package config loads the furniturectl configuration.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config holds the sandbox settings.
type Config struct {
	LogLevel        string `mapstructure:"logLevel"`
	CatalogDir      string `mapstructure:"catalogDir"`
	Database        string `mapstructure:"database"`
	DisplayEntities bool   `mapstructure:"displayEntities"`
	DefaultKind     string `mapstructure:"defaultKind"`
	Ground          int    `mapstructure:"ground"`
}

// Load reads furniturectl.yaml from configDir, if present, and applies
// FURNITURE_* environment overrides on top of the defaults.
func Load(configDir string) (Config, error) {
	v := viper.New()

	// Set default values
	v.SetDefault("logLevel", "info")
	v.SetDefault("catalogDir", "./furniture")
	v.SetDefault("database", "./furniture.db")
	v.SetDefault("displayEntities", true)
	v.SetDefault("defaultKind", "DISPLAY_ENTITY")
	v.SetDefault("ground", 64)

	v.SetConfigName("furniturectl")
	v.SetConfigType("yaml")
	if configDir != "" {
		v.AddConfigPath(configDir)
	}

	v.SetEnvPrefix("FURNITURE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("error decoding config: %w", err)
	}
	return c, nil
}
