package main

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

func newLogger(w io.Writer, format, level string) (zerolog.Logger, error) {
	switch strings.ToLower(format) {
	case "", "text", "plain":
		w = &zerolog.ConsoleWriter{
			Out:        w,
			NoColor:    true,
			TimeFormat: time.RFC3339,
			FormatLevel: func(i any) string {
				if ll, ok := i.(string); ok {
					return strings.ToUpper(ll)
				}
				return "????"
			},
		}
	case "json":
	default:
		return zerolog.Nop(), fmt.Errorf("unsupported log format: %s", format)
	}

	logLevel, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil {
		return zerolog.Nop(), fmt.Errorf("failed to parse log level: %w", err)
	}

	return zerolog.New(w).Level(logLevel).With().Timestamp().Logger(), nil
}
