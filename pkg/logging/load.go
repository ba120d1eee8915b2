package logging

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// EnvPrefix prefixes the environment variables read by Load, for example
// LAZYFLOW_LOGGING_LEVEL.
const EnvPrefix = "LAZYFLOW"

// Load reads the "logging" section of the config file at path. Environment
// variables override the name and level. An empty path reads the
// environment only.
func Load(path string) (Config, error) {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.UnmarshalKey("logging", &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to unmarshal logging config: %w", err)
	}

	// AutomaticEnv only applies to Get calls, not to UnmarshalKey.
	if name := v.GetString("logging.name"); name != "" {
		cfg.Name = name
	}
	if level := v.GetString("logging.level"); level != "" {
		cfg.Level = level
	}

	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
