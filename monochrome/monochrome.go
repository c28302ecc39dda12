// Package monochrome converts arbitrary images to 1-bit packed images.
//
// The source is optionally scaled down with Catmull-Rom resampling and laid
// over white. It is then turned to gray with a gamma correction and
// dithered to black and white with Floyd-Steinberg error diffusion.
package monochrome

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/makeworld-the-better-one/dither/v2"
	"golang.org/x/image/draw"

	"github.com/flavioheleno/pbm/image1bit"
)

// Opts controls the conversion. A nil *Opts uses the defaults.
type Opts struct {
	// MaxWidth scales wider images down, keeping the aspect ratio.
	// 0 keeps the source size.
	MaxWidth int
	// Gamma is applied to gray levels in [0, 1]. Values below 1 lighten the
	// image. 0 means 1.
	Gamma float64
	// Serpentine alternates the dithering direction on every row.
	Serpentine bool
	// Threshold disables dithering: levels below half are black.
	Threshold bool
}

var palette = []color.Color{color.Black, color.White}

// Convert returns src as a HorizontalMSB image.
func Convert(src image.Image, opts *Opts) (*image1bit.PackedImage, error) {
	if src == nil {
		return nil, fmt.Errorf("%w: missing image", image1bit.ErrInvalidArgument)
	}
	if opts == nil {
		opts = &Opts{}
	}
	if opts.MaxWidth < 0 || opts.Gamma < 0 {
		return nil, fmt.Errorf("%w: options %+v", image1bit.ErrInvalidArgument, *opts)
	}
	sb := src.Bounds()
	if sb.Empty() {
		return nil, fmt.Errorf("%w: empty %v image", image1bit.ErrInvalidArgument, sb)
	}

	gray := toGray(scale(src, opts.MaxWidth), opts.Gamma)
	b := gray.Bounds()

	out, err := image1bit.New(uint32(b.Dx()), uint32(b.Dy()), image1bit.HorizontalMSB)
	if err != nil {
		return nil, err
	}
	if opts.Threshold {
		for y := 0; y < b.Dy(); y++ {
			for x := 0; x < b.Dx(); x++ {
				if gray.Gray16At(b.Min.X+x, b.Min.Y+y).Y < 0x8000 {
					out.SetBit(x, y, image1bit.Black)
				}
			}
		}
		return out, nil
	}

	d := dither.NewDitherer(palette)
	d.Matrix = dither.FloydSteinberg
	d.Serpentine = opts.Serpentine
	p := d.DitherPaletted(gray)
	black := uint8(p.Palette.Index(color.Black))
	for y := 0; y < b.Dy(); y++ {
		for x := 0; x < b.Dx(); x++ {
			if p.ColorIndexAt(p.Rect.Min.X+x, p.Rect.Min.Y+y) == black {
				out.SetBit(x, y, image1bit.Black)
			}
		}
	}
	return out, nil
}

// scale returns src resized to maxWidth pixels wide when it is wider.
func scale(src image.Image, maxWidth int) image.Image {
	sb := src.Bounds()
	if maxWidth == 0 || sb.Dx() <= maxWidth {
		return src
	}
	height := max(1, sb.Dy()*maxWidth/sb.Dx())
	dst := image.NewRGBA(image.Rect(0, 0, maxWidth, height))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, sb, draw.Over, nil)
	return dst
}

// toGray converts src to 16-bit gray over a white background, applying
// gamma.
func toGray(src image.Image, gamma float64) *image.Gray16 {
	b := src.Bounds()
	out := image.NewGray16(image.Rect(0, 0, b.Dx(), b.Dy()))
	for y := 0; y < b.Dy(); y++ {
		for x := 0; x < b.Dx(); x++ {
			r, gr, bl, a := src.At(b.Min.X+x, b.Min.Y+y).RGBA()
			w := 0xFFFF - a
			opaque := color.RGBA64{R: uint16(r + w), G: uint16(gr + w), B: uint16(bl + w), A: 0xFFFF}
			g := color.Gray16Model.Convert(opaque).(color.Gray16)
			if gamma != 0 && gamma != 1 {
				v := math.Pow(float64(g.Y)/0xFFFF, gamma)
				g.Y = uint16(math.Round(v * 0xFFFF))
			}
			out.SetGray16(x, y, g)
		}
	}
	return out
}
