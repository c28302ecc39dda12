// Package fonts builds graphics.Font tables from golang.org/x/image font
// faces.
//
// Glyph c of a table is the face's rendering of rune c, clipped to the cell
// and thresholded at half coverage. Codes without a printable rune stay
// blank.
package fonts

import (
	"fmt"
	"image"
	"unicode"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"

	"github.com/flavioheleno/pbm/graphics"
	"github.com/flavioheleno/pbm/image1bit"
)

// Glyphs is the table size built by Basic and Mono.
const Glyphs = 256

// FromFace renders runes 0 to count-1 of face into a HorizontalMSB font of
// width x height cells. The baseline sits at the face ascent.
func FromFace(face font.Face, width, height uint32, count int) (*graphics.Font, error) {
	if face == nil || width == 0 || height == 0 || count <= 0 {
		return nil, fmt.Errorf("%w: font face of %dx%d cells, %d glyphs",
			image1bit.ErrInvalidArgument, width, height, count)
	}

	f := &graphics.Font{
		Width:     width,
		Height:    height,
		Alignment: image1bit.HorizontalMSB,
	}
	glyphSize := int(height * f.BytesPerLine())
	f.Data = make([]byte, count*glyphSize)

	cell := image.NewAlpha(image.Rect(0, 0, int(width), int(height)))
	d := &font.Drawer{
		Dst:  cell,
		Src:  image.Opaque,
		Face: face,
	}
	ascent := face.Metrics().Ascent.Ceil()

	for code := 0; code < count; code++ {
		r := rune(code)
		if !unicode.IsPrint(r) || r == ' ' {
			continue
		}
		clear(cell.Pix)
		d.Dot = fixed.P(0, ascent)
		d.DrawString(string(r))

		glyph := f.Data[code*glyphSize : (code+1)*glyphSize]
		for y := 0; y < int(height); y++ {
			for x := 0; x < int(width); x++ {
				if cell.AlphaAt(x, y).A >= 0x80 {
					glyph[y*int(f.BytesPerLine())+x/8] |= 0x80 >> (x % 8)
				}
			}
		}
	}
	return f, nil
}

// Basic returns the 6x13 basicfont.Face7x13 as a 256 glyph table. With
// graphics.Gap the characters advance 7 pixels like the face does.
func Basic() (*graphics.Font, error) {
	face := basicfont.Face7x13
	return FromFace(face, uint32(face.Width), uint32(face.Height), Glyphs)
}

// Mono returns Go Mono at size points (72 DPI) as a 256 glyph table. The
// cell is as wide as the glyph advance minus graphics.Gap and as tall as
// the line.
func Mono(size float64) (*graphics.Font, error) {
	if size <= 0 {
		return nil, fmt.Errorf("%w: font size %v", image1bit.ErrInvalidArgument, size)
	}
	parsed, err := opentype.Parse(gomono.TTF)
	if err != nil {
		return nil, fmt.Errorf("fonts: parse Go Mono: %w", err)
	}
	face, err := opentype.NewFace(parsed, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("fonts: Go Mono face: %w", err)
	}
	defer face.Close()

	m := face.Metrics()
	width := font.MeasureString(face, "M").Ceil() - graphics.Gap
	height := (m.Ascent + m.Descent).Ceil()
	if width < 1 {
		width = 1
	}
	return FromFace(face, uint32(width), uint32(height), Glyphs)
}
