package bitframe

import "fmt"

// bitReader provides bit-level reading from a byte stream.
// Bits are read in LSB-first order and the reader may start at any global
// bit, aligned or not.
type bitReader struct {
	data   []byte
	pos    int  // byte position
	bitPos uint // bit position within current byte (0-7), reads LSB first
}

// newBitReaderAt creates a bit reader positioned at global bit startBit.
func newBitReaderAt(data []byte, startBit uint64) *bitReader {
	return &bitReader{
		data:   data,
		pos:    int(startBit / 8),
		bitPos: bitOffsetWithinFirstByte(startBit),
	}
}

// ReadBit reads a single bit (LSB first order).
// Returns 0 or 1, or ErrOutOfRange past the end of the data.
func (r *bitReader) ReadBit() (uint8, error) {
	if r.pos >= len(r.data) {
		return 0, ErrOutOfRange
	}

	bit := bitOf(r.data[r.pos], r.bitPos)

	r.bitPos++
	if r.bitPos == 8 {
		r.bitPos = 0
		r.pos++
	}
	return bit, nil
}

// BitPosition returns current bit position (byte * 8 + bit offset).
func (r *bitReader) BitPosition() uint64 {
	return uint64(r.pos)*8 + uint64(r.bitPos)
}

// extract reads pixelCount bits starting at startBit and returns them as a
// rows × columns frame. The buffer must cover the whole byte range of the
// frame, including the partially used last byte.
func extract(buf []byte, startBit, pixelCount uint64, rows, columns int) (*Frame, error) {
	if rows <= 0 || columns <= 0 || uint64(rows)*uint64(columns) != pixelCount {
		return nil, fmt.Errorf("%w: %d pixels for %dx%d", ErrInvalidGeometry, pixelCount, rows, columns)
	}
	_, end := byteRangeFor(startBit, pixelCount)
	if end > uint64(len(buf)) {
		return nil, fmt.Errorf("%w: frame at bit %d needs %d bytes, buffer has %d",
			ErrOutOfRange, startBit, end, len(buf))
	}

	pix := make([]uint8, pixelCount)
	r := newBitReaderAt(buf, startBit)
	k := 0
	// Whole bytes at a time once aligned.
	for ; k < len(pix) && r.bitPos != 0; k++ {
		bit, err := r.ReadBit()
		if err != nil {
			return nil, err
		}
		pix[k] = bit
	}
	for ; k+8 <= len(pix); k += 8 {
		b := r.data[r.pos]
		for i := uint(0); i < 8; i++ {
			pix[k+int(i)] = bitOf(b, i)
		}
		r.pos++
	}
	for ; k < len(pix); k++ {
		bit, err := r.ReadBit()
		if err != nil {
			return nil, err
		}
		pix[k] = bit
	}
	return &Frame{rows: rows, cols: columns, pix: pix}, nil
}
