package main

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/arloliu/matlib"
	"github.com/arloliu/matlib/format"
)

const envPrefix = "MATLIB"

// config is the merged configuration: flags override MATLIB_* environment
// variables, which override the config file.
type config struct {
	Datapath    string `mapstructure:"datapath"`
	Compression string `mapstructure:"compression"`
	Endian      string `mapstructure:"endian"`
	LogLevel    string `mapstructure:"log-level"`
	LogFormat   string `mapstructure:"log-format"`
}

type cli struct {
	v          *viper.Viper
	configFile string
	cfg        config
	logger     zerolog.Logger
}

func newRootCmd() *cobra.Command {
	c := &cli{v: viper.New(), logger: zerolog.Nop()}

	cmd := &cobra.Command{
		Use:               "matlib",
		Short:             "Inspect and convert material libraries",
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: c.setup,
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&c.configFile, "config", "", "Config file (YAML, TOML or JSON)")
	flags.String("datapath", matlib.DefaultDatapath, "Datapath of the material table inside containers")
	flags.String("compression", "none", "Data section compression for written containers: none, zstd, s2, lz4")
	flags.String("endian", "little", "Byte order for written containers: little, big")
	flags.String("log-level", "warn", "Log level: trace, debug, info, warn, error")
	flags.String("log-format", "text", "Log format: text, json")

	flags.VisitAll(func(f *pflag.Flag) {
		if f.Name != "config" {
			_ = c.v.BindPFlag(f.Name, f)
		}
	})

	cmd.AddCommand(
		c.lsCmd(),
		c.showCmd(),
		c.nuclidesCmd(),
		c.infoCmd(),
		c.convertCmd(),
		c.mergeCmd(),
		c.rmCmd(),
		c.dropCmd(),
	)

	return cmd
}

func (c *cli) setup(cmd *cobra.Command, _ []string) error {
	c.v.SetEnvPrefix(envPrefix)
	c.v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	c.v.AutomaticEnv()

	if c.configFile != "" {
		c.v.SetConfigFile(c.configFile)
		if err := c.v.ReadInConfig(); err != nil {
			return fmt.Errorf("read config: %w", err)
		}
	}

	if err := c.v.Unmarshal(&c.cfg); err != nil {
		return fmt.Errorf("unmarshal config: %w", err)
	}

	logger, err := newLogger(cmd.ErrOrStderr(), c.cfg.LogFormat, c.cfg.LogLevel)
	if err != nil {
		return err
	}
	c.logger = logger

	return nil
}

func (c *cli) openLibrary(filename string) (*matlib.Library, error) {
	return matlib.Open(filename, c.cfg.Datapath, matlib.WithLogger(c.logger))
}

func (c *cli) newLibrary() (*matlib.Library, error) {
	return matlib.New(matlib.WithLogger(c.logger))
}

// writeOptions maps the configured compression and byte order to container
// write options.
func (c *cli) writeOptions(mode matlib.WriteMode) ([]matlib.WriteOption, error) {
	comp, ok := format.ParseCompression(strings.ToLower(c.cfg.Compression))
	if !ok {
		return nil, fmt.Errorf("unsupported compression: %s", c.cfg.Compression)
	}

	opts := []matlib.WriteOption{matlib.WithCompression(comp), matlib.WithWriteMode(mode)}
	switch strings.ToLower(c.cfg.Endian) {
	case "", "little":
	case "big":
		opts = append(opts, matlib.WithBigEndian())
	default:
		return nil, fmt.Errorf("unsupported endian: %s", c.cfg.Endian)
	}

	return opts, nil
}

// Output formats of written libraries.
const (
	formatContainer = "container"
	formatJSON      = "json"
)

func parseWriteMode(s string) (matlib.WriteMode, error) {
	switch strings.ToLower(s) {
	case "", "overwrite":
		return matlib.ModeOverwrite, nil
	case "append":
		return matlib.ModeAppend, nil
	default:
		return 0, fmt.Errorf("unsupported write mode: %s", s)
	}
}

func (c *cli) writeLibrary(lib *matlib.Library, filename, outFormat, mode string) error {
	switch strings.ToLower(outFormat) {
	case formatContainer:
		m, err := parseWriteMode(mode)
		if err != nil {
			return err
		}
		opts, err := c.writeOptions(m)
		if err != nil {
			return err
		}

		return lib.WriteContainer(filename, c.cfg.Datapath, opts...)
	case formatJSON:
		return lib.WriteJSON(filename)
	default:
		return fmt.Errorf("unsupported output format: %s", outFormat)
	}
}
