package logging

import (
	"fmt"
	"io"
	"strings"

	"github.com/rs/zerolog"
)

// Output formats of a destination.
const (
	FormatConsole = "console"
	FormatJSON    = "json"
)

// DefaultTimeFormat is the timestamp layout of console destinations.
const DefaultTimeFormat = "2006-01-02 15:04:05"

// DefaultCodenames are the level tags of console lines, for debug, info,
// warn, error and fatal in that order.
var DefaultCodenames = []string{"DBG", "INF", "WRN", "ERR", "CRT"}

var codenameLevels = [...]zerolog.Level{
	zerolog.DebugLevel,
	zerolog.InfoLevel,
	zerolog.WarnLevel,
	zerolog.ErrorLevel,
	zerolog.FatalLevel,
}

// Destination is one output of a logger.
type Destination struct {
	// Path is a file opened for appending; "stdout" and "stderr" name the
	// process streams. Ignored when Writer is set.
	Path string `yaml:"path" mapstructure:"path"`

	// Writer receives the log lines directly.
	Writer io.Writer `yaml:"-" mapstructure:"-"`

	// Level overrides the logger level for this destination only. It can
	// raise the threshold, never lower it below the logger level.
	Level string `yaml:"level" mapstructure:"level"`

	// Format is "console" (default) or "json".
	Format string `yaml:"format" mapstructure:"format"`

	// NoColor disables ANSI colors on console destinations. Files never get colors.
	NoColor bool `yaml:"no_color" mapstructure:"no_color"`
}

// Config contains logging configuration.
type Config struct {
	Name         string        `yaml:"name" mapstructure:"name"`
	Level        string        `yaml:"level" mapstructure:"level"`
	Destinations []Destination `yaml:"destinations" mapstructure:"destinations"`
	Codenames    []string      `yaml:"codenames" mapstructure:"codenames"`
	TimeFormat   string        `yaml:"time_format" mapstructure:"time_format"`
}

// ApplyDefaults applies default values to logging configuration.
func (c *Config) ApplyDefaults() {
	if c.Name == "" {
		c.Name = "lazyflow"
	}
	if c.Level == "" {
		c.Level = "info"
	}
	if len(c.Destinations) == 0 {
		c.Destinations = []Destination{{Path: "stdout"}}
	}
	for i := range c.Destinations {
		if c.Destinations[i].Format == "" {
			c.Destinations[i].Format = FormatConsole
		}
	}
	if len(c.Codenames) == 0 {
		c.Codenames = DefaultCodenames
	}
	if c.TimeFormat == "" {
		c.TimeFormat = DefaultTimeFormat
	}
}

// Validate validates logging configuration.
func (c *Config) Validate() error {
	if len(c.Codenames) != len(codenameLevels) {
		return fmt.Errorf("logging.codenames must name %d levels (got: %d)", len(codenameLevels), len(c.Codenames))
	}
	if _, err := c.parseLevel(c.Level); err != nil {
		return fmt.Errorf("logging.level: %w", err)
	}
	for i, d := range c.Destinations {
		if d.Writer == nil && d.Path == "" {
			return fmt.Errorf("logging.destinations[%d] needs a path or a writer", i)
		}
		if d.Level != "" {
			if _, err := c.parseLevel(d.Level); err != nil {
				return fmt.Errorf("logging.destinations[%d].level: %w", i, err)
			}
		}
		if d.Format != FormatConsole && d.Format != FormatJSON {
			return fmt.Errorf("logging.destinations[%d].format must be one of [%s %s] (got: %s)",
				i, FormatConsole, FormatJSON, d.Format)
		}
	}
	return nil
}

// parseLevel accepts zerolog level names and the configured codenames.
func (c *Config) parseLevel(s string) (zerolog.Level, error) {
	for i, name := range c.Codenames {
		if i < len(codenameLevels) && strings.EqualFold(s, name) {
			return codenameLevels[i], nil
		}
	}
	switch strings.ToLower(s) {
	case "debug", "info", "warn", "error", "fatal":
		return zerolog.ParseLevel(strings.ToLower(s))
	case "warning":
		return zerolog.WarnLevel, nil
	case "critical":
		return zerolog.FatalLevel, nil
	}
	return zerolog.NoLevel, fmt.Errorf("unknown level %q", s)
}

// codename returns the console tag of a zerolog level name.
func (c *Config) codename(level string) string {
	switch level {
	case zerolog.LevelTraceValue, zerolog.LevelDebugValue:
		return c.Codenames[0]
	case zerolog.LevelInfoValue:
		return c.Codenames[1]
	case zerolog.LevelWarnValue:
		return c.Codenames[2]
	case zerolog.LevelErrorValue:
		return c.Codenames[3]
	case zerolog.LevelFatalValue, zerolog.LevelPanicValue:
		return c.Codenames[4]
	}
	return strings.ToUpper(level)
}
