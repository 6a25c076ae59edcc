package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/ajroetker/go-bitframe"
	"github.com/ajroetker/go-bitframe/internal/store"
)

func newDecodeCmd(a *app) *cobra.Command {
	var (
		manifest string
		outDir   string
		frame    int
	)

	cmd := &cobra.Command{
		Use:   "decode",
		Short: "Extract frames from a buffer into images",
		RunE: func(cmd *cobra.Command, args []string) error {
			if manifest == "" || outDir == "" {
				return errors.New("--manifest and --out are required")
			}
			m, buf, err := loadBuffer(manifest)
			if err != nil {
				return err
			}
			g := m.Geometry()

			indices := []int{frame}
			var frames []*bitframe.Frame
			if frame < 0 {
				frames, err = bitframe.DecodeAll(buf, g, &bitframe.DecodeOptions{Workers: a.cfg.Workers})
				indices = indices[:0]
				for i := range frames {
					indices = append(indices, i)
				}
			} else {
				var f *bitframe.Frame
				f, err = bitframe.Decode(buf, g, frame)
				frames = []*bitframe.Frame{f}
			}
			if err != nil {
				return fmt.Errorf("decode: %w", err)
			}

			if err := os.MkdirAll(outDir, 0o755); err != nil {
				return err
			}
			for i, f := range frames {
				path := filepath.Join(outDir, store.FrameName(indices[i], a.cfg.ImageFormat))
				if err := store.WriteFrame(path, f, a.cfg.ImageFormat); err != nil {
					return err
				}
			}
			a.log.Info().Int("frames", len(frames)).Str("dir", outDir).Msg("decoded")
			return nil
		},
	}

	cmd.Flags().StringVarP(&manifest, "manifest", "m", "", "manifest written by encode")
	cmd.Flags().StringVarP(&outDir, "out", "o", "", "directory for frame images")
	cmd.Flags().IntVar(&frame, "frame", -1, "decode only this frame index (-1 for all)")
	return cmd
}

// loadBuffer reads a manifest and the buffer it points at.
func loadBuffer(manifestPath string) (store.Manifest, []byte, error) {
	m, err := store.ReadManifest(manifestPath)
	if err != nil {
		return m, nil, fmt.Errorf("load manifest: %w", err)
	}
	buf, err := store.ReadBuffer(m.BufferPath(manifestPath), m.Compression)
	if err != nil {
		return m, nil, fmt.Errorf("load buffer: %w", err)
	}
	return m, buf, nil
}
