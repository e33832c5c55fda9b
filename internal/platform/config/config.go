package config

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// AppConfig holds all application configuration values.
type AppConfig struct {
	DatabaseURL       string `mapstructure:"DATABASE_URL"`
	Port              string `mapstructure:"PORT"`
	IsProduction      bool   `mapstructure:"IS_PRODUCTION"`
	EnableDBCheck     bool   `mapstructure:"ENABLE_DB_CHECK"`
	JWTSecret         string `mapstructure:"JWT_SECRET"`
	ReportingCurrency string `mapstructure:"REPORTING_CURRENCY"`
	FxGainAccountCode string `mapstructure:"FX_GAIN_ACCOUNT_CODE"`
	FxGainAccountName string `mapstructure:"FX_GAIN_ACCOUNT_NAME"`
	FxLossAccountCode string `mapstructure:"FX_LOSS_ACCOUNT_CODE"`
	FxLossAccountName string `mapstructure:"FX_LOSS_ACCOUNT_NAME"`
	RateLimitEnabled  bool   `mapstructure:"RATE_LIMIT_ENABLED"`
	RateLimitPeriod   string `mapstructure:"RATE_LIMIT_PERIOD"`
}

// LoadConfig reads configuration from a .env file (when present) and the
// environment, applying defaults for everything optional.
func LoadConfig() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		slog.Info("No .env file found, relying on environment variables")
	}

	v := viper.New()
	v.SetDefault("PORT", "8080")
	v.SetDefault("IS_PRODUCTION", false)
	v.SetDefault("ENABLE_DB_CHECK", true)
	v.SetDefault("REPORTING_CURRENCY", "BDT")
	v.SetDefault("FX_GAIN_ACCOUNT_CODE", "4900")
	v.SetDefault("FX_GAIN_ACCOUNT_NAME", "Unrealized FX Gain")
	v.SetDefault("FX_LOSS_ACCOUNT_CODE", "5900")
	v.SetDefault("FX_LOSS_ACCOUNT_NAME", "Unrealized FX Loss")
	v.SetDefault("RATE_LIMIT_ENABLED", true)
	v.SetDefault("RATE_LIMIT_PERIOD", "100-M")
	v.AutomaticEnv()

	// AutomaticEnv alone does not populate Unmarshal; bind each key explicitly.
	for _, key := range []string{
		"DATABASE_URL", "PORT", "IS_PRODUCTION", "ENABLE_DB_CHECK", "JWT_SECRET",
		"REPORTING_CURRENCY", "FX_GAIN_ACCOUNT_CODE", "FX_GAIN_ACCOUNT_NAME",
		"FX_LOSS_ACCOUNT_CODE", "FX_LOSS_ACCOUNT_NAME",
		"RATE_LIMIT_ENABLED", "RATE_LIMIT_PERIOD",
	} {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("failed to bind env key %s: %w", key, err)
		}
	}

	var cfg AppConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}
	cfg.ReportingCurrency = strings.ToUpper(cfg.ReportingCurrency)

	return &cfg, nil
}
