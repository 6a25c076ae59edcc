package bitframe

// Bit addressing over the continuous LSB-first bitstream. All positions are
// global bit indices counted from the first bit of the buffer.

// startBitOf returns the global bit at which frame frameIndex begins.
func startBitOf(frameIndex, pixelsPerFrame uint64) uint64 {
	return frameIndex * pixelsPerFrame
}

// byteRangeFor returns the half-open byte range [start, end) that holds the
// bits [startBit, startBit+bitCount). The upper bound is always rounded up.
func byteRangeFor(startBit, bitCount uint64) (start, end uint64) {
	return startBit / 8, byteCount(startBit + bitCount)
}

// bitOffsetWithinFirstByte returns the bit position of startBit inside its byte.
func bitOffsetWithinFirstByte(startBit uint64) uint {
	return uint(startBit % 8)
}

// byteCount returns the number of bytes needed to hold bitCount bits.
func byteCount(bitCount uint64) uint64 {
	return (bitCount + 7) / 8
}

// encodedLength returns the final buffer length for totalBits bits: the byte
// count rounded up to an even number.
func encodedLength(totalBits uint64) uint64 {
	n := byteCount(totalBits)
	if n%2 == 1 {
		n++
	}
	return n
}
