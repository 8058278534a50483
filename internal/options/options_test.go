package options

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

type writeConfig struct {
	datapath    string
	compression int
	calls       []string
}

var errNegative = errors.New("compression cannot be negative")

func withDatapath(path string) Option[*writeConfig] {
	return NoError(func(c *writeConfig) {
		c.datapath = path
		c.calls = append(c.calls, "datapath")
	})
}

func withCompression(level int) Option[*writeConfig] {
	return New(func(c *writeConfig) error {
		if level < 0 {
			return errNegative
		}
		c.compression = level
		c.calls = append(c.calls, "compression")

		return nil
	})
}

func TestApply_InOrder(t *testing.T) {
	cfg := &writeConfig{}

	err := Apply(cfg, withDatapath("/materials"), withCompression(3), withDatapath("/other"))
	require.NoError(t, err)
	require.Equal(t, "/other", cfg.datapath)
	require.Equal(t, 3, cfg.compression)
	require.Equal(t, []string{"datapath", "compression", "datapath"}, cfg.calls)
}

func TestApply_StopsOnError(t *testing.T) {
	cfg := &writeConfig{}

	err := Apply(cfg, withCompression(-1), withDatapath("/materials"))
	require.ErrorIs(t, err, errNegative)
	require.Empty(t, cfg.datapath)
	require.Empty(t, cfg.calls)
}

func TestApply_NoOptions(t *testing.T) {
	cfg := &writeConfig{datapath: "/materials"}

	require.NoError(t, Apply(cfg))
	require.Equal(t, "/materials", cfg.datapath)
}

func TestApply_SkipsNil(t *testing.T) {
	cfg := &writeConfig{}

	require.NoError(t, Apply(cfg, nil, withCompression(1)))
	require.Equal(t, 1, cfg.compression)
}
