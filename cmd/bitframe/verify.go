package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ajroetker/go-bitframe"
)

func newVerifyCmd(a *app) *cobra.Command {
	var manifest string

	cmd := &cobra.Command{
		Use:   "verify",
		Short: "Check a buffer against its manifest and decode every frame",
		RunE: func(cmd *cobra.Command, args []string) error {
			if manifest == "" {
				return errors.New("--manifest is required")
			}
			m, buf, err := loadBuffer(manifest)
			if err != nil {
				return err
			}
			g := m.Geometry()
			if err := verifyBuffer(buf, g, m.Length, a.cfg.Workers); err != nil {
				return err
			}
			a.log.Info().Int("frames", g.Frames).Int("bytes", len(buf)).Msg("buffer verified")
			fmt.Fprintln(cmd.OutOrStdout(), "ok")
			return nil
		},
	}

	cmd.Flags().StringVarP(&manifest, "manifest", "m", "", "manifest written by encode")
	return cmd
}

// verifyBuffer checks the length law, that every frame decodes, and that the
// padding after the last pixel is zero.
func verifyBuffer(buf []byte, g bitframe.Geometry, recorded, workers int) error {
	want := g.EncodedLength()
	if len(buf) != want {
		return fmt.Errorf("buffer is %d bytes, geometry needs %d", len(buf), want)
	}
	if recorded != 0 && recorded != want {
		return fmt.Errorf("manifest records %d bytes, geometry needs %d", recorded, want)
	}
	if _, err := bitframe.DecodeAll(buf, g, &bitframe.DecodeOptions{Workers: workers}); err != nil {
		return err
	}
	return bitframe.VerifyPadding(buf, g)
}
