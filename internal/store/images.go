package store

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/xfmoulet/qoi"

	"github.com/ajroetker/go-bitframe"
)

// Image formats for frame files.
const (
	FormatPNG = "png"
	FormatQOI = "qoi"
)

// IsFrameImage reports whether name has an extension ReadFrame understands.
func IsFrameImage(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".png", ".qoi":
		return true
	}
	return false
}

// ListFrames returns the frame images in dir sorted by name.
func ListFrames(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var paths []string
	for _, e := range entries {
		if e.IsDir() || !IsFrameImage(e.Name()) {
			continue
		}
		paths = append(paths, filepath.Join(dir, e.Name()))
	}
	sort.Strings(paths)
	return paths, nil
}

// ReadFrame decodes a PNG or QOI image and thresholds it into a frame.
func ReadFrame(path string, threshold int) (*bitframe.Frame, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var img image.Image
	switch strings.ToLower(filepath.Ext(path)) {
	case ".qoi":
		img, err = qoi.Decode(f)
	default:
		img, err = png.Decode(f)
	}
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	frame, err := bitframe.FrameFromImage(img, threshold)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return frame, nil
}

// ReadFrames reads every path in order.
func ReadFrames(paths []string, threshold int) ([]*bitframe.Frame, error) {
	frames := make([]*bitframe.Frame, 0, len(paths))
	for _, p := range paths {
		f, err := ReadFrame(p, threshold)
		if err != nil {
			return nil, err
		}
		frames = append(frames, f)
	}
	return frames, nil
}

// FrameName returns the file name used for frame index in the given format.
func FrameName(index int, format string) string {
	return fmt.Sprintf("frame_%05d.%s", index, format)
}

// WriteFrame renders f as grayscale and writes it to path in format.
func WriteFrame(path string, f *bitframe.Frame, format string) error {
	out, err := os.Create(path)
	if err != nil {
		return err
	}

	img := f.Gray()
	switch format {
	case FormatQOI:
		err = qoi.Encode(out, img)
	case FormatPNG, "":
		err = png.Encode(out, img)
	default:
		err = fmt.Errorf("unknown image format %q", format)
	}
	if cerr := out.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
