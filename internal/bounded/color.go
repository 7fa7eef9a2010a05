package bounded

type Color struct {
	R, G, B Byte
}

var (
	Black = Must(NewColor(0, 0, 0))
	White = Must(NewColor(255, 255, 255))
)

func NewColor(r, g, b int) (Color, error) {
	var (
		c   Color
		err error
	)
	if c.R, err = NewByte(r); err != nil {
		return Color{}, err
	}
	if c.G, err = NewByte(g); err != nil {
		return Color{}, err
	}
	if c.B, err = NewByte(b); err != nil {
		return Color{}, err
	}
	return c, nil
}

// RGBA implements image/color.Color; colors are always opaque.
func (c Color) RGBA() (r, g, b, a uint32) {
	r = uint32(c.R)
	r |= r << 8
	g = uint32(c.G)
	g |= g << 8
	b = uint32(c.B)
	b |= b << 8
	return r, g, b, 0xffff
}
