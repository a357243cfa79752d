package packedcolor

// bitsPerColor is the width of a single color code.
const bitsPerColor = 2

const colorMask = byte(1<<bitsPerColor - 1)

// getBits reads the 2-bit field starting at bit position pos of buf.
// Bits are counted LSB first within each byte. A field starting at in-byte
// offset 7 continues in the low bit of the next byte.
func getBits(buf []byte, pos int) byte {
	index, off := pos>>3, uint(pos&0x07)
	v := (buf[index] >> off) & colorMask
	if off > 8-bitsPerColor {
		// straddle: the high bits live in the next byte
		lowWidth := 8 - off
		next := buf[index+1] & (colorMask >> lowWidth)
		v |= next << lowWidth
	}
	return v
}

// setBits writes the low 2 bits of v into the field at bit position pos of buf.
func setBits(buf []byte, pos int, v byte) {
	v &= colorMask
	index, off := pos>>3, uint(pos&0x07)
	buf[index] &^= colorMask << off
	buf[index] |= v << off
	if off > 8-bitsPerColor {
		lowWidth := 8 - off
		buf[index+1] &^= colorMask >> lowWidth
		buf[index+1] |= v >> lowWidth
	}
}
