package ssd1322

import (
	"image"
	"image/color"

	"github.com/flavioheleno/pbm/image1bit"
)

// Gray4 is a 4-bit grayscale level as stored in the display RAM.
// 0 is off and 15 is full brightness.
type Gray4 struct {
	Y uint8
}

// RGBA implements color.Color.
func (c Gray4) RGBA() (r, g, b, a uint32) {
	y := uint32(c.Y&0x0F) * 0x1111
	return y, y, y, 0xFFFF
}

// Gray4Model converts colors to Gray4.
var Gray4Model = color.ModelFunc(func(c color.Color) color.Color {
	return Gray4{Y: toGray4(c)}
})

func toGray4(c color.Color) uint8 {
	switch c := c.(type) {
	case Gray4:
		return c.Y & 0x0F
	case image1bit.Color:
		if c == image1bit.Black {
			return 0
		}
		return 0x0F
	}
	r, g, b, _ := c.RGBA()
	y := (299*r + 587*g + 114*b + 500) / 1000
	return uint8(y >> 12)
}

// levelFunc returns a reader of 4-bit levels for src.
func levelFunc(src image.Image) func(x, y int) uint8 {
	switch s := src.(type) {
	case *image1bit.PackedImage:
		return func(x, y int) uint8 {
			if s.BitAt(x, y) == image1bit.Black {
				return 0
			}
			return 0x0F
		}
	case *image.Gray:
		return func(x, y int) uint8 {
			return s.GrayAt(x, y).Y >> 4
		}
	}
	return func(x, y int) uint8 {
		return toGray4(src.At(x, y))
	}
}

// frame is the display RAM layout: rows of two pixels per byte, left pixel
// in the high nibble.
type frame struct {
	pix    []byte
	stride int
}

func newFrame(width, height int) *frame {
	stride := width / 2
	return &frame{pix: make([]byte, stride*height), stride: stride}
}

func (f *frame) offset(x, y int) (int, uint) {
	return y*f.stride + x/2, uint(4 * (1 - x&1))
}

func (f *frame) set(x, y int, v uint8) {
	i, shift := f.offset(x, y)
	f.pix[i] = f.pix[i]&^(0x0F<<shift) | (v&0x0F)<<shift
}

func (f *frame) at(x, y int) uint8 {
	i, shift := f.offset(x, y)
	return (f.pix[i] >> shift) & 0x0F
}

// region copies the bytes of columns [x0, x1) and rows [y0, y1).
// x0 and x1 must be even.
func (f *frame) region(x0, x1, y0, y1 int) []byte {
	n := (x1 - x0) / 2
	out := make([]byte, 0, n*(y1-y0))
	for y := y0; y < y1; y++ {
		start := y*f.stride + x0/2
		out = append(out, f.pix[start:start+n]...)
	}
	return out
}
