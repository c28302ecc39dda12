package graphics

import (
	"fmt"
	"unicode/utf8"

	"github.com/flavioheleno/pbm/image1bit"
)

// Gap is the horizontal spacing between characters, in pixels.
const Gap = 1

// Font is a fixed-size bitmap font table.
//
// Glyph c starts at byte c*Height*BytesPerLine(). Each glyph row is padded to
// a whole byte and its bits are packed like a horizontal image1bit row of
// Width pixels.
type Font struct {
	Data      []byte              // Glyph table, read only
	Width     uint32              // Glyph width in pixels
	Height    uint32              // Glyph height in pixels
	Alignment image1bit.Alignment // HorizontalMSB or HorizontalLSB
}

// BytesPerLine returns the number of bytes per glyph row.
func (f *Font) BytesPerLine() uint32 {
	return (f.Width + 7) / 8
}

// GlyphCount returns the number of complete glyphs in Data.
func (f *Font) GlyphCount() int {
	size := int(f.Height * f.BytesPerLine())
	if size == 0 {
		return 0
	}
	return len(f.Data) / size
}

// glyphAddress mirrors image1bit.AddressOf for a single padded glyph row.
func (f *Font) glyphAddress(code rune, x, y uint32) (offset uint32, mask byte) {
	offset = uint32(code)*f.Height*f.BytesPerLine() + y*f.BytesPerLine() + x/8
	if f.Alignment == image1bit.HorizontalLSB {
		return offset, 0x01 << (x % 8)
	}
	return offset, 0x80 >> (x % 8)
}

// GlyphBit reports whether pixel (x, y) of glyph code is set.
// Out of table lookups report false.
func (f *Font) GlyphBit(code rune, x, y uint32) bool {
	if code < 0 || x >= f.Width || y >= f.Height {
		return false
	}
	offset, mask := f.glyphAddress(code, x, y)
	if int(offset) >= len(f.Data) {
		return false
	}
	return f.Data[offset]&mask != 0
}

func (f *Font) validate() error {
	if f == nil || f.Data == nil || f.Width == 0 || f.Height == 0 {
		return fmt.Errorf("%w: missing font", image1bit.ErrInvalidArgument)
	}
	if !f.Alignment.Horizontal() {
		return fmt.Errorf("%w: font alignment %v", image1bit.ErrInvalidArgument, f.Alignment)
	}
	return nil
}

// TextWidth returns the rendered width of n characters, including the gaps
// between them.
func TextWidth(f *Font, n int) uint32 {
	if f == nil || n <= 0 {
		return 0
	}
	return uint32(n-1)*(f.Width+Gap) + f.Width
}

// WriteChar draws glyph code with its top left corner at (x, y).
//
// The whole glyph box is painted: set bits in c, clear bits in c.Inverse().
func WriteChar(img *image1bit.PackedImage, x, y uint32, c image1bit.Color, f *Font, code rune) error {
	if img == nil || img.Pix == nil {
		return fmt.Errorf("%w: missing image", image1bit.ErrInvalidArgument)
	}
	if err := f.validate(); err != nil {
		return err
	}
	if code < 0 || int(code) >= f.GlyphCount() {
		return fmt.Errorf("%w: glyph %U not in %d glyph font", image1bit.ErrOutOfRange, code, f.GlyphCount())
	}
	x, y = img.Resolve(x, y)

	for line := uint32(0); line < f.Height; line++ {
		for i := uint32(0); i < f.Width; i++ {
			pc := c.Inverse()
			if f.GlyphBit(code, i, line) {
				pc = c
			}
			if err := img.SetPixel(x+i, y+line, pc); err != nil {
				return err
			}
		}
	}
	return nil
}

// WriteString draws text so that its bounding box is anchored at (x, y)
// according to align. Each rune selects the glyph of the same index.
func WriteString(img *image1bit.PackedImage, x, y uint32, c image1bit.Color, f *Font, align StringAlignment, text string) error {
	if img == nil || img.Pix == nil {
		return fmt.Errorf("%w: missing image", image1bit.ErrInvalidArgument)
	}
	if err := f.validate(); err != nil {
		return err
	}
	if text == "" {
		return fmt.Errorf("%w: empty string", image1bit.ErrInvalidArgument)
	}
	if align > BottomRight {
		return fmt.Errorf("%w: %v", image1bit.ErrInvalidArgument, align)
	}

	width := TextWidth(f, utf8.RuneCountInString(text))
	x, y = img.Resolve(x, y)

	dx, dy := align.offset(width, f.Height)
	if dx > x || dy > y {
		return fmt.Errorf("%w: %v text of %dx%d does not fit left/above (%d, %d)",
			image1bit.ErrOutOfRange, align, width, f.Height, x, y)
	}
	x -= dx
	y -= dy

	for _, r := range text {
		if err := WriteChar(img, x, y, c, f, r); err != nil {
			return err
		}
		x += f.Width + Gap
	}
	return nil
}
