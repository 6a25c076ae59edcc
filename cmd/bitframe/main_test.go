package main

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ajroetker/go-bitframe"
	"github.com/ajroetker/go-bitframe/internal/store"
)

// writeFrames writes n rows × columns PNG frames with a diagonal pattern.
func writeFrames(t *testing.T, dir string, n, rows, columns int) []string {
	t.Helper()
	var paths []string
	for i := 0; i < n; i++ {
		img := image.NewGray(image.Rect(0, 0, columns, rows))
		for y := 0; y < rows; y++ {
			for x := 0; x < columns; x++ {
				if (x+y+i)%3 == 0 {
					img.SetGray(x, y, color.Gray{Y: 255})
				}
			}
		}
		path := filepath.Join(dir, store.FrameName(i, store.FormatPNG))
		out, err := os.Create(path)
		require.NoError(t, err)
		require.NoError(t, png.Encode(out, img))
		require.NoError(t, out.Close())
		paths = append(paths, path)
	}
	return paths
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append(args, "--log-level", "error"))
	err := cmd.Execute()
	return out.String(), err
}

func TestEncodeDecodeVerify(t *testing.T) {
	for _, compression := range []string{store.CompressionNone, store.CompressionZstd} {
		t.Run(compression, func(t *testing.T) {
			src := t.TempDir()
			paths := writeFrames(t, src, 5, 7, 9)
			base := filepath.Join(t.TempDir(), "out", "seq")

			_, err := run(t, append([]string{"encode", "-o", base, "--compression", compression, "--workers", "3"}, paths...)...)
			require.NoError(t, err)

			manifest := base + ".toml"
			m, err := store.ReadManifest(manifest)
			require.NoError(t, err)
			assert.Equal(t, bitframe.Geometry{Frames: 5, Rows: 7, Columns: 9}, m.Geometry())
			assert.Equal(t, m.Geometry().EncodedLength(), m.Length)
			assert.Equal(t, compression, m.Compression)

			out, err := run(t, "verify", "-m", manifest)
			require.NoError(t, err)
			assert.Contains(t, out, "ok")

			decoded := t.TempDir()
			_, err = run(t, "decode", "-m", manifest, "-o", decoded)
			require.NoError(t, err)

			for i, p := range paths {
				want, err := store.ReadFrame(p, bitframe.DefaultThreshold)
				require.NoError(t, err)
				got, err := store.ReadFrame(filepath.Join(decoded, store.FrameName(i, store.FormatPNG)), bitframe.DefaultThreshold)
				require.NoError(t, err)
				assert.True(t, got.Equal(want), "frame %d", i)
			}
		})
	}
}

func TestEncodeDirAndDecodeSingleFrame(t *testing.T) {
	src := t.TempDir()
	paths := writeFrames(t, src, 3, 4, 5)
	base := filepath.Join(t.TempDir(), "seq")

	_, err := run(t, "encode", "-o", base, "--dir", src)
	require.NoError(t, err)

	decoded := t.TempDir()
	_, err = run(t, "decode", "-m", base+".toml", "-o", decoded, "--frame", "2", "--image-format", "qoi")
	require.NoError(t, err)

	entries, err := os.ReadDir(decoded)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, store.FrameName(2, store.FormatQOI), entries[0].Name())

	want, err := store.ReadFrame(paths[2], bitframe.DefaultThreshold)
	require.NoError(t, err)
	got, err := store.ReadFrame(filepath.Join(decoded, entries[0].Name()), bitframe.DefaultThreshold)
	require.NoError(t, err)
	assert.True(t, got.Equal(want))

	_, err = run(t, "decode", "-m", base+".toml", "-o", decoded, "--frame", "3")
	assert.ErrorIs(t, err, bitframe.ErrIndexOutOfBounds)
}

func TestInspect(t *testing.T) {
	dir := t.TempDir()
	manifest := filepath.Join(dir, "seq.toml")
	require.NoError(t, store.WriteManifest(manifest, store.Manifest{
		Buffer: "seq.bin", Frames: 2, Rows: 187, Columns: 239,
	}))

	out, err := run(t, "inspect", "-m", manifest)
	require.NoError(t, err)
	assert.Contains(t, out, "pixels/frame=44693")
	assert.Contains(t, out, "encoded_length=11174")

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, []string{"1", "44693", "44693", "[5586,11174)", "5"}, strings.Fields(lines[3]))
}

func TestVerify_DetectsTruncation(t *testing.T) {
	src := t.TempDir()
	paths := writeFrames(t, src, 2, 3, 3)
	base := filepath.Join(t.TempDir(), "seq")
	_, err := run(t, append([]string{"encode", "-o", base}, paths...)...)
	require.NoError(t, err)

	buf, err := os.ReadFile(base + ".bin")
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(base+".bin", buf[:len(buf)-1], 0o644))

	_, err = run(t, "verify", "-m", base+".toml")
	assert.Error(t, err)
}

func TestEncode_Errors(t *testing.T) {
	src := t.TempDir()
	a := writeFrames(t, src, 1, 3, 3)
	b := writeFrames(t, t.TempDir(), 1, 4, 3)
	out := filepath.Join(t.TempDir(), "seq")

	_, err := run(t, "encode", "-o", out, a[0], b[0])
	assert.ErrorIs(t, err, bitframe.ErrInvalidGeometry)

	_, err = run(t, "encode", a[0])
	assert.ErrorContains(t, err, "--out")

	_, err = run(t, "encode", "-o", out, "--watch", a[0])
	assert.ErrorContains(t, err, "--dir")

	_, err = run(t, "encode", "-o", out, "--dir", t.TempDir())
	assert.ErrorIs(t, err, bitframe.ErrEmptySequence)

	_, err = run(t, "encode", "-o", out, "--threshold", "0", a[0])
	assert.ErrorContains(t, err, "threshold")
}

func TestConfigFileAndEnv(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("compression = \"zstd\"\nworkers = 2\n"), 0o644))

	src := t.TempDir()
	paths := writeFrames(t, src, 2, 2, 2)
	base := filepath.Join(t.TempDir(), "seq")

	_, err := run(t, append([]string{"encode", "--config", cfgPath, "-o", base}, paths...)...)
	require.NoError(t, err)
	assert.FileExists(t, base+".bin.zst")

	t.Setenv("BITFRAME_COMPRESSION", "none")
	base2 := filepath.Join(t.TempDir(), "seq")
	_, err = run(t, append([]string{"encode", "--config", cfgPath, "-o", base2}, paths...)...)
	require.NoError(t, err)
	assert.FileExists(t, base2+".bin")

	_, err = run(t, "inspect", "--config", filepath.Join(t.TempDir(), "missing.toml"), "-m", base+".toml")
	assert.ErrorContains(t, err, "not found")
}
