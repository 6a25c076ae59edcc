package bitframe

import (
	"fmt"
	"io"

	"golang.org/x/sync/errgroup"
)

// DecodeOptions controls DecodeAll.
type DecodeOptions struct {
	// Workers sets how many frames are extracted concurrently.
	// 0 or 1 extracts frames one after another.
	Workers int
}

// Decode extracts frame index from buf. Geometry must be supplied by the
// caller; it is not stored in the buffer. Each frame is addressed directly,
// so no other frame is decoded first.
//
// Decode fails with ErrInvalidGeometry for a non-positive or overflowing
// geometry, ErrIndexOutOfBounds if index is outside [0, g.Frames), and
// ErrOutOfRange if buf is too short to hold the frame. buf is never
// modified and may be shared by concurrent calls.
func Decode(buf []byte, g Geometry, index int) (*Frame, error) {
	w, err := g.Window(index)
	if err != nil {
		return nil, err
	}
	return extract(buf, w.StartBit, w.BitCount, g.Rows, g.Columns)
}

// DecodeFrom reads an encoded buffer from r and extracts frame index.
func DecodeFrom(r io.Reader, g Geometry, index int) (*Frame, error) {
	buf, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return Decode(buf, g, index)
}

// DecodeAll extracts every frame described by g. The buffer length is
// checked once up front so that either all frames are returned or none.
func DecodeAll(buf []byte, g Geometry, opts *DecodeOptions) ([]*Frame, error) {
	if opts == nil {
		opts = &DecodeOptions{}
	}
	if err := g.Validate(); err != nil {
		return nil, err
	}
	if need := byteCount(g.TotalBits()); need > uint64(len(buf)) {
		return nil, fmt.Errorf("%w: %d frames need %d bytes, buffer has %d",
			ErrOutOfRange, g.Frames, need, len(buf))
	}

	frames := make([]*Frame, g.Frames)
	if opts.Workers <= 1 {
		for i := range frames {
			f, err := Decode(buf, g, i)
			if err != nil {
				return nil, fmt.Errorf("frame %d: %w", i, err)
			}
			frames[i] = f
		}
		return frames, nil
	}

	var eg errgroup.Group
	eg.SetLimit(opts.Workers)
	for i := range frames {
		eg.Go(func() error {
			f, err := Decode(buf, g, i)
			if err != nil {
				return fmt.Errorf("frame %d: %w", i, err)
			}
			frames[i] = f
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return frames, nil
}

// VerifyPadding returns ErrNonZeroPadding if any bit of buf after the last
// pixel of g is set. Encode always zeroes the padding; buffers from other
// producers may not.
func VerifyPadding(buf []byte, g Geometry) error {
	if err := g.Validate(); err != nil {
		return err
	}
	for bit := g.TotalBits(); bit < uint64(len(buf))*8; bit++ {
		if bitOf(buf[bit/8], uint(bit%8)) != 0 {
			return fmt.Errorf("%w: bit %d", ErrNonZeroPadding, bit)
		}
	}
	return nil
}
