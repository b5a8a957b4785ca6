package config

import (
	"errors"
	"fmt"

	"github.com/spf13/viper"
)

// Config is the application configuration, loadable from a config file
// (config.yaml/json/toml in the working directory) with environment
// variable overrides. Key material is referenced here but never logged.
type Config struct {
	Environment string `mapstructure:"GRVT_ENV"`
	APIKey      string `mapstructure:"GRVT_API_KEY"`
	PrivateKey  string `mapstructure:"GRVT_PRIVATE_KEY"`
	OrderFile   string `mapstructure:"GRVT_ORDER_FILE"`
	// ExpirationHours is the signing horizon applied when refreshing an
	// order's nonce and expiration.
	ExpirationHours int `mapstructure:"GRVT_EXPIRATION_HOURS"`
}

func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.AddConfigPath(".")
	v.AutomaticEnv()

	// Defaults also register the keys so AutomaticEnv values reach Unmarshal.
	v.SetDefault("GRVT_ENV", "testnet")
	v.SetDefault("GRVT_API_KEY", "")
	v.SetDefault("GRVT_PRIVATE_KEY", "")
	v.SetDefault("GRVT_ORDER_FILE", "create_order_data.json")
	v.SetDefault("GRVT_EXPIRATION_HOURS", 24)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return cfg, nil
}
