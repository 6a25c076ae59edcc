// Package bitframe implements a bit-exact codec for multi-frame binary
// (1 bit per pixel) pixel data.
//
// Frames are packed row-major, least significant bit first, end to end with
// no gap at frame boundaries. Only the end of the whole buffer is padded:
// the last partial byte with zero bits, then one zero byte if the length is
// odd. Frame i therefore starts at bit i*rows*columns, which may fall in the
// middle of a byte.
//
// Encoding:
//
//	f0, _ := bitframe.NewFrame(2, 3, []uint8{1, 0, 1, 0, 1, 0})
//	f1, _ := bitframe.NewFrame(2, 3, []uint8{0, 0, 1, 1, 0, 0})
//	buf, err := bitframe.Encode([]*bitframe.Frame{f0, f1}, nil)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// Decoding needs the geometry, which the buffer does not carry:
//
//	g := bitframe.Geometry{Frames: 2, Rows: 2, Columns: 3}
//	f, err := bitframe.Decode(buf, g, 1)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// Any frame can be decoded without touching the others, and a buffer may be
// shared by concurrent Decode calls. Encode and DecodeAll accept a Workers
// option to spread frames over goroutines.
package bitframe
