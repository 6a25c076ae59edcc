package bitframe

import (
	"fmt"
	"image"
	"image/color"
)

// DefaultThreshold is the luminance at or above which FrameFromImage
// treats a pixel as set.
const DefaultThreshold = 128

// Frame is an immutable rows × columns plane of binary pixels stored
// row-major. Every value is 0 or 1.
type Frame struct {
	rows, cols int
	pix        []uint8
}

// NewFrame returns a frame holding a copy of pix. It fails with
// ErrInvalidGeometry if rows or columns is not positive or len(pix) is not
// rows*columns, and with ErrInvalidPixel if any value is other than 0 or 1.
func NewFrame(rows, columns int, pix []uint8) (*Frame, error) {
	if rows <= 0 || columns <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidGeometry, rows, columns)
	}
	if rows > maxInt/columns || len(pix) != rows*columns {
		return nil, fmt.Errorf("%w: %dx%d frame with %d pixels", ErrInvalidGeometry, rows, columns, len(pix))
	}
	for i, v := range pix {
		if v > 1 {
			return nil, fmt.Errorf("%w: pixel %d is %d", ErrInvalidPixel, i, v)
		}
	}
	cp := make([]uint8, len(pix))
	copy(cp, pix)
	return &Frame{rows: rows, cols: columns, pix: cp}, nil
}

// FrameFromImage thresholds the luminance of img: pixels at or above
// threshold become 1, the rest 0. A threshold outside 1..255 falls back to
// DefaultThreshold.
func FrameFromImage(img image.Image, threshold int) (*Frame, error) {
	if threshold < 1 || threshold > 255 {
		threshold = DefaultThreshold
	}
	b := img.Bounds()
	if b.Dx() <= 0 || b.Dy() <= 0 {
		return nil, fmt.Errorf("%w: empty image bounds %v", ErrInvalidGeometry, b)
	}

	pix := make([]uint8, b.Dx()*b.Dy())
	i := 0
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			g := color.GrayModel.Convert(img.At(x, y)).(color.Gray)
			if int(g.Y) >= threshold {
				pix[i] = 1
			}
			i++
		}
	}
	return &Frame{rows: b.Dy(), cols: b.Dx(), pix: pix}, nil
}

// Rows returns the number of rows.
func (f *Frame) Rows() int { return f.rows }

// Columns returns the number of columns.
func (f *Frame) Columns() int { return f.cols }

// Len returns rows*columns.
func (f *Frame) Len() int { return len(f.pix) }

// At returns the pixel at row r, column c.
func (f *Frame) At(r, c int) uint8 {
	return f.pix[r*f.cols+c]
}

// Pixels returns a copy of the row-major pixel values.
func (f *Frame) Pixels() []uint8 {
	out := make([]uint8, len(f.pix))
	copy(out, f.pix)
	return out
}

// Equal reports whether f and o have the same shape and pixels.
func (f *Frame) Equal(o *Frame) bool {
	if f == nil || o == nil {
		return f == o
	}
	if f.rows != o.rows || f.cols != o.cols {
		return false
	}
	for i := range f.pix {
		if f.pix[i] != o.pix[i] {
			return false
		}
	}
	return true
}

// Gray renders the frame as an 8-bit grayscale image, 0 as black and 1 as
// white.
func (f *Frame) Gray() *image.Gray {
	img := image.NewGray(image.Rect(0, 0, f.cols, f.rows))
	for r := 0; r < f.rows; r++ {
		row := img.Pix[r*img.Stride : r*img.Stride+f.cols]
		for c, v := range f.pix[r*f.cols : (r+1)*f.cols] {
			row[c] = v * 0xFF
		}
	}
	return img
}

// validShape reports whether f is a usable frame.
func (f *Frame) validShape() bool {
	return f != nil && f.rows > 0 && f.cols > 0 && len(f.pix) == f.rows*f.cols
}
