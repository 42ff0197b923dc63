package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/govalues/ratio"
)

// Config holds conversion parameters loaded from flags, env, or config file.
type Config struct {
	Rate     string
	Fee      string
	Round    string
	LogLevel string
}

// Load merges config file, environment variables, and flags into Config.
func Load(cfgFile string, flags *pflag.FlagSet) (Config, error) {
	v := viper.New()
	v.SetEnvPrefix("RATIOCONV")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	v.SetDefault("fee", "0/0")
	v.SetDefault("log-level", "info")

	if flags != nil {
		if err := v.BindPFlags(flags); err != nil {
			return Config{}, fmt.Errorf("bind flags: %w", err)
		}
	}

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	} else {
		v.SetConfigName("ratioconv")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return Config{}, fmt.Errorf("read config: %w", err)
			}
		}
	}

	cfg := Config{
		Rate:     strings.TrimSpace(v.GetString("rate")),
		Fee:      strings.TrimSpace(v.GetString("fee")),
		Round:    strings.TrimSpace(v.GetString("round")),
		LogLevel: v.GetString("log-level"),
	}

	return cfg, nil
}

// Converter parses the rate and fee into a converter.
func (c Config) Converter() (ratio.Converter, error) {
	if c.Rate == "" {
		return ratio.Converter{}, fmt.Errorf("rate is required")
	}
	rate, err := ratio.ParseRatio(c.Rate)
	if err != nil {
		return ratio.Converter{}, fmt.Errorf("parse rate: %w", err)
	}
	var fee ratio.Fee
	if c.Fee != "" {
		fee, err = ratio.ParseFee(c.Fee)
		if err != nil {
			return ratio.Converter{}, fmt.Errorf("parse fee: %w", err)
		}
	}
	return ratio.NewConverter(rate, fee), nil
}

// Mode parses the rounding direction.
// There is no default: the caller has to choose which party rounding favors.
func (c Config) Mode() (ratio.RoundingMode, error) {
	if c.Round == "" {
		return ratio.Down, fmt.Errorf("round is required (down or up)")
	}
	return ratio.ParseRoundingMode(c.Round)
}
