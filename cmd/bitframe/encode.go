package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/ajroetker/go-bitframe"
	"github.com/ajroetker/go-bitframe/internal/store"
	"github.com/ajroetker/go-bitframe/internal/watch"
)

func newEncodeCmd(a *app) *cobra.Command {
	var (
		out      string
		dir      string
		watchDir bool
	)

	cmd := &cobra.Command{
		Use:   "encode [flags] FRAME...",
		Short: "Pack frame images into a buffer and manifest",
		RunE: func(cmd *cobra.Command, args []string) error {
			if out == "" {
				return errors.New("--out is required")
			}
			if dir == "" && len(args) == 0 {
				return errors.New("no frames: pass image files or --dir")
			}
			if watchDir && dir == "" {
				return errors.New("--watch requires --dir")
			}

			encodeOnce := func(context.Context) error {
				paths := args
				if dir != "" {
					var err error
					if paths, err = store.ListFrames(dir); err != nil {
						return err
					}
				}
				return encodeFiles(a, paths, out)
			}

			if !watchDir {
				return encodeOnce(cmd.Context())
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return watch.New(dir, a.cfg.Debounce, a.log, encodeOnce).Run(ctx)
		},
	}

	cmd.Flags().StringVarP(&out, "out", "o", "", "output base path; writes BASE.toml and BASE.bin[.zst]")
	cmd.Flags().StringVar(&dir, "dir", "", "encode every .png/.qoi in this directory, sorted by name")
	cmd.Flags().BoolVar(&watchDir, "watch", false, "re-encode whenever --dir changes")
	return cmd
}

// encodeFiles reads the frame images at paths, packs them and writes the
// buffer and manifest for base.
func encodeFiles(a *app, paths []string, base string) error {
	if len(paths) == 0 {
		return bitframe.ErrEmptySequence
	}
	frames, err := store.ReadFrames(paths, a.cfg.Threshold)
	if err != nil {
		return err
	}
	buf, err := bitframe.Encode(frames, &bitframe.EncodeOptions{Workers: a.cfg.Workers})
	if err != nil {
		return fmt.Errorf("encode: %w", err)
	}

	manifestPath, bufferPath := store.Paths(base, a.cfg.Compression)
	if err := os.MkdirAll(filepath.Dir(manifestPath), 0o755); err != nil {
		return err
	}
	if err := store.WriteBuffer(bufferPath, buf, a.cfg.Compression); err != nil {
		return fmt.Errorf("write buffer: %w", err)
	}
	m := store.Manifest{
		Buffer:      filepath.Base(bufferPath),
		Frames:      len(frames),
		Rows:        frames[0].Rows(),
		Columns:     frames[0].Columns(),
		Length:      len(buf),
		Compression: a.cfg.Compression,
	}
	if err := store.WriteManifest(manifestPath, m); err != nil {
		return fmt.Errorf("write manifest: %w", err)
	}

	a.log.Info().
		Int("frames", m.Frames).
		Int("rows", m.Rows).
		Int("columns", m.Columns).
		Int("bytes", m.Length).
		Str("buffer", bufferPath).
		Str("manifest", manifestPath).
		Msg("encoded")
	return nil
}
