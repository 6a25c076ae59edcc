package bitframe

import (
	"io"

	"golang.org/x/sync/errgroup"
)

// EncodeOptions controls how a frame sequence is packed.
type EncodeOptions struct {
	// Workers sets how many frames are packed concurrently.
	// 0 or 1 packs frames one after another on the calling goroutine.
	// Both paths produce byte-identical output.
	Workers int
}

// Encode packs frames into a single continuous LSB-first buffer.
//
// Frame i occupies bits [i*P, (i+1)*P) where P = rows*columns; no bits are
// inserted between frames. The last partial byte is padded with zero bits and
// a zero byte is appended when the byte count is odd.
//
// Encode fails with ErrEmptySequence for no frames and ErrInvalidGeometry if
// any frame is nil, malformed, or shaped differently from frame 0. The
// frames are never modified.
func Encode(frames []*Frame, opts *EncodeOptions) ([]byte, error) {
	if opts == nil {
		opts = &EncodeOptions{}
	}
	g, err := GeometryOf(frames)
	if err != nil {
		return nil, err
	}
	e := &encoder{frames: frames, geom: g, opts: *opts}
	if e.opts.Workers > 1 && len(frames) > 1 {
		return e.encodeParallel(), nil
	}
	return e.encodeSequential(), nil
}

// EncodeTo encodes frames and writes the buffer to w. Nothing is written if
// encoding fails.
func EncodeTo(w io.Writer, frames []*Frame, opts *EncodeOptions) error {
	buf, err := Encode(frames, opts)
	if err != nil {
		return err
	}
	_, err = w.Write(buf)
	return err
}

type encoder struct {
	frames []*Frame
	geom   Geometry
	opts   EncodeOptions
}

func (e *encoder) encodeSequential() []byte {
	w := newBitWriter(e.geom.EncodedLength())
	for _, f := range e.frames {
		pack(w, f)
	}
	buf := w.Flush()
	return padEven(buf)
}

// encodeParallel packs each frame independently at startBitOf(i, P). Every
// worker owns the interior bytes of its frame; the first and last byte of a
// frame may be shared with a neighbour and are merged after all workers
// finish.
func (e *encoder) encodeParallel() []byte {
	p := e.geom.PixelsPerFrame()
	out := make([]byte, e.geom.EncodedLength())

	type edges struct {
		start, end uint64
		first      byte
		last       byte
	}
	merged := make([]edges, len(e.frames))

	var g errgroup.Group
	g.SetLimit(e.opts.Workers)
	for i, f := range e.frames {
		g.Go(func() error {
			startBit := startBitOf(uint64(i), p)
			bs, be := byteRangeFor(startBit, p)
			part := make([]byte, be-bs)
			packAt(part, uint64(bitOffsetWithinFirstByte(startBit)), f)
			if len(part) > 2 {
				copy(out[bs+1:be-1], part[1:len(part)-1])
			}
			merged[i] = edges{start: bs, end: be, first: part[0], last: part[len(part)-1]}
			return nil
		})
	}
	_ = g.Wait() // workers never fail

	for _, m := range merged {
		out[m.start] |= m.first
		if m.end-m.start > 1 {
			out[m.end-1] |= m.last
		}
	}
	return out
}

// padEven appends one zero byte when buf has odd length.
func padEven(buf []byte) []byte {
	if len(buf)%2 == 1 {
		buf = append(buf, 0)
	}
	return buf
}
