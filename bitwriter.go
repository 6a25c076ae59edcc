package bitframe

// bitWriter provides bit-level writing to a byte buffer.
// Bits are written in LSB-first order: the first bit of each byte lands in
// bit 0. The writer never pads between calls; only Flush pads the final
// partial byte.
type bitWriter struct {
	buf     []byte // completed bytes
	curByte byte   // current byte being assembled
	bitPos  uint   // number of bits written in current byte (0-7)
	nbits   uint64 // bits written in total
}

// newBitWriter creates a bit writer whose buffer can hold sizeHint bytes
// without growing.
func newBitWriter(sizeHint int) *bitWriter {
	return &bitWriter{buf: make([]byte, 0, sizeHint)}
}

// WriteBit writes the low bit of bit.
func (w *bitWriter) WriteBit(bit uint8) {
	w.curByte = setBit(w.curByte, w.bitPos, bit)
	w.bitPos++
	w.nbits++

	if w.bitPos == 8 {
		w.flushByte()
	}
}

// flushByte appends the current assembled byte to the buffer and resets state.
func (w *bitWriter) flushByte() {
	w.buf = append(w.buf, w.curByte)
	w.curByte = 0
	w.bitPos = 0
}

// BitLen returns the number of bits written so far.
func (w *bitWriter) BitLen() uint64 {
	return w.nbits
}

// Len returns the current length in bytes, including any partial byte
// that has not yet been flushed.
func (w *bitWriter) Len() int {
	n := len(w.buf)
	if w.bitPos > 0 {
		n++
	}
	return n
}

// Flush pads the partial byte, if any, with zero bits and returns the
// buffer. The writer must not be used afterwards.
func (w *bitWriter) Flush() []byte {
	if w.bitPos > 0 {
		w.flushByte()
	}
	return w.buf
}

// pack appends f's pixels row-major to w and returns the global bit cursor
// after the last pixel. The cursor is exact; nothing is rounded to a byte
// boundary between frames.
func pack(w *bitWriter, f *Frame) uint64 {
	pix := f.pix
	// Whole bytes at a time while aligned.
	for w.bitPos == 0 && len(pix) >= 8 {
		var b byte
		for i := uint(0); i < 8; i++ {
			b = setBit(b, i, pix[i])
		}
		w.buf = append(w.buf, b)
		w.nbits += 8
		pix = pix[8:]
	}
	for _, v := range pix {
		w.WriteBit(v)
	}
	return w.nbits
}

// packAt writes f's pixels into dst starting at global bit startBit. dst must
// be zeroed over the frame's byte range and long enough to hold it.
func packAt(dst []byte, startBit uint64, f *Frame) {
	for k, v := range f.pix {
		g := startBit + uint64(k)
		dst[g/8] = setBit(dst[g/8], uint(g%8), v)
	}
}
