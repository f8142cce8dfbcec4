package codec

import (
	"fmt"

	"github.com/d-ulitin/transitcat/render"
)

const (
	colorTagNamed = 0
	colorTagRGB   = 1
	colorTagRGBA  = 2
)

func writeColor(w *writer, c render.Color) error {
	switch v := c.(type) {
	case render.Named:
		w.writeUint8(colorTagNamed)
		w.writeString(string(v))
	case render.RGB:
		w.writeUint8(colorTagRGB)
		w.writeUint8(v.R)
		w.writeUint8(v.G)
		w.writeUint8(v.B)
	case render.RGBA:
		w.writeUint8(colorTagRGBA)
		w.writeUint8(v.R)
		w.writeUint8(v.G)
		w.writeUint8(v.B)
		w.writeFloat64(v.A)
	default:
		return fmt.Errorf("codec: unknown color alternative %T", c)
	}
	return nil
}

func readColor(r *reader) (render.Color, error) {
	tag, err := r.readUint8()
	if err != nil {
		return nil, err
	}
	switch tag {
	case colorTagNamed:
		s, err := r.readString()
		if err != nil {
			return nil, err
		}
		return render.Named(s), nil
	case colorTagRGB:
		red, err := r.readUint8()
		if err != nil {
			return nil, err
		}
		g, err := r.readUint8()
		if err != nil {
			return nil, err
		}
		b, err := r.readUint8()
		if err != nil {
			return nil, err
		}
		return render.RGB{R: red, G: g, B: b}, nil
	case colorTagRGBA:
		red, err := r.readUint8()
		if err != nil {
			return nil, err
		}
		g, err := r.readUint8()
		if err != nil {
			return nil, err
		}
		b, err := r.readUint8()
		if err != nil {
			return nil, err
		}
		a, err := r.readFloat64()
		if err != nil {
			return nil, err
		}
		return render.RGBA{R: red, G: g, B: b, A: a}, nil
	default:
		return nil, fmt.Errorf("codec: unknown color tag %d", tag)
	}
}
