package image

// Pack packs a color into an integer laid out as 0x00RRGGBB.
func Pack(r, g, b uint8) int32 {
	return int32(r)<<16 | int32(g)<<8 | int32(b)
}

// Unpack reverses Pack. Only the low 24 bits of v are used.
func Unpack(v int32) (r, g, b uint8) {
	return uint8(v >> 16), uint8(v >> 8), uint8(v)
}

// PackRGB packs a buffer holding three bytes per pixel.
func PackRGB(pix []byte) []int32 {
	p := make([]int32, len(pix)/3)
	for i := range p {
		p[i] = Pack(pix[i*3], pix[i*3+1], pix[i*3+2])
	}
	return p
}
