package bitframe

import (
	"fmt"
	"math"
)

const maxInt = math.MaxInt

// Geometry describes a homogeneous frame sequence. It cannot be recovered
// from an encoded buffer and must be supplied by the caller on decode.
type Geometry struct {
	Frames  int
	Rows    int
	Columns int
}

// Validate checks that every dimension is positive and that the encoded
// buffer length fits in an int.
func (g Geometry) Validate() error {
	if g.Frames <= 0 || g.Rows <= 0 || g.Columns <= 0 {
		return fmt.Errorf("%w: %d frames of %dx%d", ErrInvalidGeometry, g.Frames, g.Rows, g.Columns)
	}
	if g.Rows > maxInt/g.Columns {
		return fmt.Errorf("%w: %dx%d overflows pixel count", ErrInvalidGeometry, g.Rows, g.Columns)
	}
	p := g.Rows * g.Columns
	if g.Frames > maxInt/p {
		return fmt.Errorf("%w: %d frames of %d pixels overflows bit count", ErrInvalidGeometry, g.Frames, p)
	}
	return nil
}

// PixelsPerFrame returns rows*columns.
func (g Geometry) PixelsPerFrame() uint64 {
	return uint64(g.Rows) * uint64(g.Columns)
}

// TotalBits returns the number of pixel bits in the whole sequence.
func (g Geometry) TotalBits() uint64 {
	return uint64(g.Frames) * g.PixelsPerFrame()
}

// EncodedLength returns the length in bytes of the buffer Encode produces
// for this geometry: ceil(TotalBits/8) rounded up to an even count.
func (g Geometry) EncodedLength() int {
	return int(encodedLength(g.TotalBits()))
}

// FrameWindow locates one frame's bits inside an encoded buffer.
type FrameWindow struct {
	Index     int
	StartBit  uint64
	BitCount  uint64
	ByteStart uint64 // first byte holding a bit of the frame
	ByteEnd   uint64 // one past the last byte holding a bit of the frame
	BitOffset uint   // position of StartBit within ByteStart, LSB = 0
}

// Window returns the FrameWindow of frame index.
func (g Geometry) Window(index int) (FrameWindow, error) {
	if err := g.Validate(); err != nil {
		return FrameWindow{}, err
	}
	if index < 0 || index >= g.Frames {
		return FrameWindow{}, fmt.Errorf("%w: index %d, %d frames", ErrIndexOutOfBounds, index, g.Frames)
	}
	return g.window(index), nil
}

func (g Geometry) window(index int) FrameWindow {
	p := g.PixelsPerFrame()
	start := startBitOf(uint64(index), p)
	bs, be := byteRangeFor(start, p)
	return FrameWindow{
		Index:     index,
		StartBit:  start,
		BitCount:  p,
		ByteStart: bs,
		ByteEnd:   be,
		BitOffset: bitOffsetWithinFirstByte(start),
	}
}

// GeometryOf returns the geometry of a frame sequence. It fails with
// ErrEmptySequence for no frames and with ErrInvalidGeometry if any frame is
// nil, malformed, or shaped differently from the first.
func GeometryOf(frames []*Frame) (Geometry, error) {
	if len(frames) == 0 {
		return Geometry{}, ErrEmptySequence
	}
	first := frames[0]
	if !first.validShape() {
		return Geometry{}, fmt.Errorf("%w: frame 0 has no valid shape", ErrInvalidGeometry)
	}
	for i, f := range frames[1:] {
		if !f.validShape() {
			return Geometry{}, fmt.Errorf("%w: frame %d has no valid shape", ErrInvalidGeometry, i+1)
		}
		if f.rows != first.rows || f.cols != first.cols {
			return Geometry{}, fmt.Errorf("%w: frame %d is %dx%d, sequence is %dx%d",
				ErrInvalidGeometry, i+1, f.rows, f.cols, first.rows, first.cols)
		}
	}
	g := Geometry{Frames: len(frames), Rows: first.rows, Columns: first.cols}
	if err := g.Validate(); err != nil {
		return Geometry{}, err
	}
	return g, nil
}
