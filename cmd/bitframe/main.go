package main

import (
	"fmt"
	"os"
	"runtime"
	"runtime/debug"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	pflag "github.com/spf13/pflag"

	"github.com/ajroetker/go-bitframe/internal/cliconfig"
)

var longHelp = strings.TrimSpace(`
Pack sequences of 1-bit frames into a single continuous LSB-first buffer and
extract them again.

Frames are laid end to end with no padding between them; only the end of the
buffer is padded to an even byte count. The frame geometry is kept in a TOML
manifest next to the buffer since the buffer alone does not carry it.
`)

var exampleUsage = strings.TrimSpace(`
  bitframe encode -o out/seq frames/*.png
  bitframe encode -o out/seq --dir frames --watch
  bitframe decode -m out/seq.toml -o decoded
  bitframe inspect -m out/seq.toml
  bitframe verify -m out/seq.toml
`)

func getVersion() string {
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
		return info.Main.Version
	}
	return "dev"
}

// app carries configuration shared by all subcommands.
type app struct {
	cfg     cliconfig.Config
	cfgPath string
	log     zerolog.Logger
}

// load layers the config file and environment under explicitly set flags,
// validates the result and builds the logger.
func (a *app) load(cmd *cobra.Command) error {
	cfgFile := a.cfgPath
	if cfgFile == "" {
		cfgFile = cliconfig.DefaultConfigPath()
	}

	changed := map[string]bool{}
	cmd.Flags().Visit(func(f *pflag.Flag) { changed[f.Name] = true })

	if cfgFile != "" && cliconfig.FileExists(cfgFile) {
		fc, err := cliconfig.LoadFileConfig(cfgFile)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		if err := cliconfig.ApplyFileConfig(&a.cfg, fc, changed); err != nil {
			return err
		}
	} else if a.cfgPath != "" {
		return fmt.Errorf("config file %s not found", a.cfgPath)
	}

	if err := cliconfig.ApplyEnvConfig(&a.cfg, changed); err != nil {
		return err
	}
	if err := a.cfg.Validate(); err != nil {
		return err
	}

	a.log = cliconfig.Logger(a.cfg)
	a.log.Debug().Interface("config", a.cfg).Msg("configuration")
	return nil
}

func newRootCmd() *cobra.Command {
	a := &app{cfg: cliconfig.DefaultConfig()}

	root := &cobra.Command{
		Use:           "bitframe",
		Short:         "Encode and decode multi-frame 1-bit pixel data",
		Long:          longHelp,
		Example:       exampleUsage,
		Version:       fmt.Sprintf("%s %s/%s", getVersion(), runtime.GOOS, runtime.GOARCH),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.load(cmd)
		},
	}

	f := root.PersistentFlags()
	f.StringVar(&a.cfgPath, "config", "", "config file (default $HOME/.bitframe/config.toml)")
	f.IntVar(&a.cfg.Workers, "workers", a.cfg.Workers, "frames packed or extracted concurrently")
	f.IntVar(&a.cfg.Threshold, "threshold", a.cfg.Threshold, "luminance (1-255) at or above which an image pixel is 1")
	f.StringVar(&a.cfg.Compression, "compression", a.cfg.Compression, "buffer file compression: none or zstd")
	f.StringVar(&a.cfg.ImageFormat, "image-format", a.cfg.ImageFormat, "format of decoded frame images: png or qoi")
	f.StringVar(&a.cfg.LogLevel, "log-level", a.cfg.LogLevel, "log level: debug, info, warn, error")
	f.StringVar(&a.cfg.LogFormat, "log-format", a.cfg.LogFormat, "log format: console or json")
	f.DurationVar(&a.cfg.Debounce, "debounce", a.cfg.Debounce, "quiet period before re-encoding in watch mode")

	root.AddCommand(
		newEncodeCmd(a),
		newDecodeCmd(a),
		newInspectCmd(a),
		newVerifyCmd(a),
	)
	return root
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
