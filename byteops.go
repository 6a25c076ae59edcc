package bitframe

// All bit manipulation on buffer bytes goes through these helpers. Shifts are
// carried out on a wider unsigned value and masked back to 8 bits before the
// result is used, so no bit from outside the low byte can leak into a later
// right shift or mask.

// shl8 returns b shifted left by n, truncated to 8 bits.
func shl8(b byte, n uint) byte {
	return byte((uint(b) << n) & 0xFF)
}

// shr8 returns b shifted right by n.
func shr8(b byte, n uint) byte {
	return byte((uint(b) & 0xFF) >> n)
}

// bitOf returns bit i (0 = least significant) of b as 0 or 1.
func bitOf(b byte, i uint) uint8 {
	return shr8(b, i) & 1
}

// setBit ORs the low bit of v into bit i of b.
func setBit(b byte, i uint, v uint8) byte {
	return b | shl8(v&1, i)
}
