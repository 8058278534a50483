package matlib

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/arloliu/matlib/errs"
	"github.com/arloliu/matlib/format"
	"github.com/arloliu/matlib/internal/options"
	"github.com/arloliu/matlib/table"
)

// Option configures a Library.
type Option = options.Option[*Library]

// WithLogger sets the logger used for adds, replacements, merges and file
// I/O. The default logger discards everything.
func WithLogger(logger zerolog.Logger) Option {
	return options.NoError(func(l *Library) {
		l.logger = logger
	})
}

// WriteMode selects how WriteContainer treats a datapath that already holds
// a table.
type WriteMode uint8

const (
	// ModeOverwrite replaces the table and nucpath at the datapath.
	ModeOverwrite WriteMode = iota
	// ModeAppend keeps the rows already on disk and appends the library's
	// materials after them.
	ModeAppend
)

func (m WriteMode) String() string {
	switch m {
	case ModeOverwrite:
		return "overwrite"
	case ModeAppend:
		return "append"
	default:
		return "unknown"
	}
}

type writeConfig struct {
	compression format.CompressionType
	bigEndian   bool
	mode        WriteMode
}

func newWriteConfig() *writeConfig {
	return &writeConfig{
		compression: format.CompressionNone,
		mode:        ModeOverwrite,
	}
}

func (c *writeConfig) tableOptions() []table.EncoderOption {
	opts := []table.EncoderOption{table.WithCompression(c.compression)}
	if c.bigEndian {
		opts = append(opts, table.WithBigEndian())
	}

	return opts
}

// WriteOption configures WriteContainer.
type WriteOption = options.Option[*writeConfig]

// WithCompression sets the compression of the table data section.
// Default is format.CompressionNone.
func WithCompression(comp format.CompressionType) WriteOption {
	return options.New(func(c *writeConfig) error {
		if !comp.IsValid() {
			return fmt.Errorf("%w: %d", errs.ErrInvalidCompression, comp)
		}
		c.compression = comp

		return nil
	})
}

// WithBigEndian writes the table and nucpath in big-endian byte order.
func WithBigEndian() WriteOption {
	return options.NoError(func(c *writeConfig) {
		c.bigEndian = true
	})
}

// WithWriteMode sets the write mode. Default is ModeOverwrite.
func WithWriteMode(mode WriteMode) WriteOption {
	return options.New(func(c *writeConfig) error {
		if mode != ModeOverwrite && mode != ModeAppend {
			return fmt.Errorf("invalid write mode: %d", mode)
		}
		c.mode = mode

		return nil
	})
}
