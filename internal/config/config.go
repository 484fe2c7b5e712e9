package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Config holds values loaded from flags, env, or config file.
type Config struct {
	LogLevel     string
	SlippageBps  uint16
	CurrentEpoch uint64
	CurrentTime  uint64
	CurrentSlot  uint64
}

// Load merges config file, environment variables, and flags into Config.
func Load(cfgFile string, flags *pflag.FlagSet) (Config, error) {
	v := viper.New()
	v.SetEnvPrefix("CPAMM")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	v.SetDefault("log-level", "info")
	v.SetDefault("slippage-bps", uint16(100))
	v.SetDefault("current-epoch", uint64(0))
	v.SetDefault("current-time", uint64(0))
	v.SetDefault("current-slot", uint64(0))

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
		v.SetConfigName("cpamm")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return Config{}, fmt.Errorf("read config: %w", err)
			}
		}
	}

	slippage := v.GetUint64("slippage-bps")
	if slippage > 10_000 {
		return Config{}, fmt.Errorf("slippage-bps %d exceeds 10000", slippage)
	}

	return Config{
		LogLevel:     v.GetString("log-level"),
		SlippageBps:  uint16(slippage),
		CurrentEpoch: v.GetUint64("current-epoch"),
		CurrentTime:  v.GetUint64("current-time"),
		CurrentSlot:  v.GetUint64("current-slot"),
	}, nil
}
