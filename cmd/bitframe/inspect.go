package main

import (
	"errors"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/ajroetker/go-bitframe/internal/store"
)

func newInspectCmd(a *app) *cobra.Command {
	var manifest string

	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "Print where each frame's bits live in the buffer",
		RunE: func(cmd *cobra.Command, args []string) error {
			if manifest == "" {
				return errors.New("--manifest is required")
			}
			m, err := store.ReadManifest(manifest)
			if err != nil {
				return fmt.Errorf("load manifest: %w", err)
			}
			g := m.Geometry()

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "frames=%d rows=%d columns=%d pixels/frame=%d total_bits=%d encoded_length=%d\n",
				g.Frames, g.Rows, g.Columns, g.PixelsPerFrame(), g.TotalBits(), g.EncodedLength())

			tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "FRAME\tSTART_BIT\tBITS\tBYTES\tBIT_OFFSET")
			for i := 0; i < g.Frames; i++ {
				w, err := g.Window(i)
				if err != nil {
					return err
				}
				fmt.Fprintf(tw, "%d\t%d\t%d\t[%d,%d)\t%d\n",
					w.Index, w.StartBit, w.BitCount, w.ByteStart, w.ByteEnd, w.BitOffset)
			}
			a.log.Debug().Str("manifest", manifest).Msg("inspected")
			return tw.Flush()
		},
	}

	cmd.Flags().StringVarP(&manifest, "manifest", "m", "", "manifest written by encode")
	return cmd
}
