package table

import (
	"fmt"

	"github.com/arloliu/matlib/compress"
	"github.com/arloliu/matlib/endian"
	"github.com/arloliu/matlib/errs"
	"github.com/arloliu/matlib/format"
	"github.com/arloliu/matlib/internal/options"
	"github.com/arloliu/matlib/section"
)

const initialRowCapacity = 16

// EncoderConfig holds table encoder configuration and row index state.
type EncoderConfig struct {
	header  *section.TableHeader
	entries []section.RowEntry
	engine  endian.EndianEngine
}

// NewEncoderConfig creates a little-endian, uncompressed configuration.
func NewEncoderConfig() *EncoderConfig {
	header, _ := section.NewTableHeader(0, 0)

	return &EncoderConfig{
		header:  header,
		entries: make([]section.RowEntry, 0, initialRowCapacity),
		engine:  header.GetEndianEngine(),
	}
}

func (c *EncoderConfig) setDataCompression(comp format.CompressionType) error {
	if !comp.IsValid() {
		return fmt.Errorf("%w: %d", errs.ErrInvalidCompression, comp)
	}
	c.header.Flag.SetDataCompression(comp)

	return nil
}

func (c *EncoderConfig) setBigEndian(big bool) {
	if big {
		c.header.Flag.WithBigEndian()
	} else {
		c.header.Flag.WithLittleEndian()
	}
	c.engine = c.header.GetEndianEngine()
}

// TableHeader returns the header for this encoder configuration.
func (c *EncoderConfig) TableHeader() *section.TableHeader {
	return c.header
}

// RowCount returns the number of rows added so far.
func (c *EncoderConfig) RowCount() int {
	return len(c.entries)
}

func (c *EncoderConfig) dataCodec() (compress.Codec, error) {
	codec, err := compress.CreateCodec(c.header.Flag.GetDataCompression(), "data")
	if err != nil {
		return nil, fmt.Errorf("failed to create data codec: %w", err)
	}

	return codec, nil
}

// EncoderOption is a functional option for configuring Encoder.
type EncoderOption = options.Option[*EncoderConfig]

// WithCompression configures compression for the data section.
// Default is format.CompressionNone.
func WithCompression(comp format.CompressionType) EncoderOption {
	return options.New(func(cfg *EncoderConfig) error {
		return cfg.setDataCompression(comp)
	})
}

// WithBigEndian writes the table and nucpath in big-endian byte order.
func WithBigEndian() EncoderOption {
	return options.NoError(func(cfg *EncoderConfig) {
		cfg.setBigEndian(true)
	})
}

// WithLittleEndian writes the table and nucpath in little-endian byte order.
// This is the default.
func WithLittleEndian() EncoderOption {
	return options.NoError(func(cfg *EncoderConfig) {
		cfg.setBigEndian(false)
	})
}
