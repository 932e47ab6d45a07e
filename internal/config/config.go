// Package config loads command-line tool settings from flags, the
// environment, an optional .env file and an optional config file.
package config

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment variable, e.g.
// PRAYTIMES_LOCATION_LAT.
const EnvPrefix = "PRAYTIMES"

// DefaultMethod is the tool's calculation method when none is configured.
// The library itself defaults to MWL.
const DefaultMethod = "Tehran"

// Config holds all configuration for the praytimes tool.
type Config struct {
	Location    LocationConfig    `mapstructure:"location"`
	Calculation CalculationConfig `mapstructure:"calculation"`
	Logger      LoggerConfig      `mapstructure:"logger"`
}

// LocationConfig is the default observer.
type LocationConfig struct {
	Lat       float64 `mapstructure:"lat" validate:"gte=-90,lte=90"`
	Lon       float64 `mapstructure:"lon" validate:"gte=-180,lte=180"`
	Elevation float64 `mapstructure:"elevation" validate:"gte=0"`
}

// CalculationConfig names the calculation settings. Names are resolved
// by the library, which falls back to defaults for unknown ones.
type CalculationConfig struct {
	Method     string  `mapstructure:"method"`
	Asr        string  `mapstructure:"asr"`
	HighLat    string  `mapstructure:"highlat"`
	Timezone   string  `mapstructure:"timezone"`
	Format     string  `mapstructure:"format"`
	Tune       string  `mapstructure:"tune"`
	Imsak      string  `mapstructure:"imsak"`
	Dhuhr      float64 `mapstructure:"dhuhr" validate:"gte=0,lte=60"`
	Iterations int     `mapstructure:"iterations" validate:"gte=1,lte=10"`
}

// LoggerConfig holds logging configuration.
type LoggerConfig struct {
	Level  string `mapstructure:"level" validate:"oneof=debug info warn error"`
	Format string `mapstructure:"format" validate:"oneof=console json"`
}

// flagKeys maps config keys to the command-line flags that override them.
var flagKeys = map[string]string{
	"location.lat":           "lat",
	"location.lon":           "lon",
	"location.elevation":     "elevation",
	"calculation.method":     "method",
	"calculation.asr":        "asr",
	"calculation.highlat":    "highlat",
	"calculation.timezone":   "tz",
	"calculation.format":     "format",
	"calculation.tune":       "tune",
	"calculation.imsak":      "imsak",
	"calculation.dhuhr":      "dhuhr",
	"calculation.iterations": "iterations",
	"logger.level":           "log-level",
	"logger.format":          "log-format",
}

// Load merges, in increasing precedence: defaults, the config file (if
// file is non-empty), the environment (after loading .env when present)
// and any flags in fs that were set explicitly. fs may be nil.
func Load(fs *pflag.FlagSet, file string) (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	// AutomaticEnv only applies to keys viper already knows about.
	for key := range flagKeys {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("failed to bind %s: %w", key, err)
		}
	}

	if fs != nil {
		for key, name := range flagKeys {
			if f := fs.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("failed to bind flag --%s: %w", name, err)
				}
			}
		}
	}

	if file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config %s: %w", file, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validator.New().Struct(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("location.lat", 0.0)
	v.SetDefault("location.lon", 0.0)
	v.SetDefault("location.elevation", 0.0)

	v.SetDefault("calculation.method", DefaultMethod)
	v.SetDefault("calculation.asr", "Standard")
	v.SetDefault("calculation.highlat", "NightMiddle")
	v.SetDefault("calculation.timezone", "auto")
	v.SetDefault("calculation.format", "24h")
	v.SetDefault("calculation.tune", "")
	v.SetDefault("calculation.imsak", "10 min")
	v.SetDefault("calculation.dhuhr", 0.0)
	v.SetDefault("calculation.iterations", 1)

	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "console")
}
