// Package logging builds zerolog loggers that write to several destinations.
//
// Console destinations render lines as
//
//	[INF] 2006-01-02 15:04:05 <name> : message key=value
//
// with configurable level tags. Each destination may raise its own level
// above the logger level. Configuration can be loaded from a file and
// LAZYFLOW_ environment variables with Load.
package logging

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
)

// NameFieldName is the field holding the logger name on JSON destinations.
const NameFieldName = "logger"

type closers []io.Closer

func (cs closers) Close() error {
	var errs []error
	for _, c := range cs {
		if err := c.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// New builds a logger from cfg. The returned closer releases the files the
// logger opened; it must be called once the logger is no longer used.
func New(cfg Config) (zerolog.Logger, io.Closer, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return zerolog.Nop(), closers(nil), err
	}
	level, _ := cfg.parseLevel(cfg.Level)

	var (
		opened  closers
		writers []io.Writer
	)
	for i, d := range cfg.Destinations {
		out, file, err := open(d)
		if err != nil {
			_ = opened.Close()
			return zerolog.Nop(), closers(nil), fmt.Errorf("logging.destinations[%d]: %w", i, err)
		}
		if file != nil {
			opened = append(opened, file)
		}

		if d.Format == FormatConsole {
			out = cfg.console(out, d.NoColor || file != nil)
		}

		destLevel := level
		if d.Level != "" {
			destLevel, _ = cfg.parseLevel(d.Level)
		}
		writers = append(writers, &zerolog.FilteredLevelWriter{
			Writer: zerolog.LevelWriterAdapter{Writer: out},
			Level:  destLevel,
		})
	}

	logger := zerolog.New(zerolog.MultiLevelWriter(writers...)).
		Level(level).
		With().
		Timestamp().
		Str(NameFieldName, cfg.Name).
		Logger()
	return logger, opened, nil
}

// open resolves the writer of d and, for file paths, the file to close.
func open(d Destination) (io.Writer, *os.File, error) {
	if d.Writer != nil {
		return d.Writer, nil, nil
	}
	switch d.Path {
	case "stdout":
		return os.Stdout, nil, nil
	case "stderr":
		return os.Stderr, nil, nil
	}
	f, err := os.OpenFile(d.Path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open log file: %w", err)
	}
	return f, f, nil
}

func (c *Config) console(out io.Writer, noColor bool) io.Writer {
	return zerolog.ConsoleWriter{
		Out:           out,
		NoColor:       noColor,
		TimeFormat:    c.TimeFormat,
		PartsOrder:    []string{zerolog.LevelFieldName, zerolog.TimestampFieldName, zerolog.MessageFieldName},
		FieldsExclude: []string{NameFieldName},
		FormatLevel: func(i interface{}) string {
			s, _ := i.(string)
			return "[" + c.codename(s) + "]"
		},
		FormatMessage: func(i interface{}) string {
			if i == nil {
				return fmt.Sprintf("<%s> :", c.Name)
			}
			return fmt.Sprintf("<%s> : %v", c.Name, i)
		},
	}
}
