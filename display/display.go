// Package display presents 1-bit images on output devices.
//
// A Sink receives every pixel of an image as an 8-bit gray level and is then
// asked to present the frame. Three sinks are provided: Frame keeps the
// pixels in memory, DrawerSink forwards changed regions to a periph.io
// display.Drawer such as the ssd1322 driver, and Terminal draws on a tcell
// screen.
package display

import (
	"fmt"
	"image"
	"image/color"

	"github.com/flavioheleno/pbm/image1bit"
)

// Sink is an output device for rendered images.
type Sink interface {
	// PresentPixel stores the gray level of pixel (x, y). 0 is black and
	// 255 is white. Pixels outside the device are ignored.
	PresentPixel(x, y int, gray uint8)
	// Present shows the pixels stored since the previous call.
	Present() error
}

// Render sends every pixel of img to s in row-major order, then presents
// the frame once.
func Render(s Sink, img *image1bit.PackedImage) error {
	if s == nil {
		return fmt.Errorf("%w: missing sink", image1bit.ErrInvalidArgument)
	}
	if img == nil || img.Pix == nil {
		return fmt.Errorf("%w: missing image", image1bit.ErrInvalidArgument)
	}
	for y := 0; y < int(img.Height); y++ {
		for x := 0; x < int(img.Width); x++ {
			s.PresentPixel(x, y, img.BitAt(x, y).Gray())
		}
	}
	return s.Present()
}

// Frame is an in-memory Sink.
type Frame struct {
	*image.Gray

	// Presents counts the calls to Present.
	Presents int
}

// NewFrame returns a white frame of the given size.
func NewFrame(width, height int) *Frame {
	f := &Frame{Gray: image.NewGray(image.Rect(0, 0, width, height))}
	for i := range f.Pix {
		f.Pix[i] = 0xFF
	}
	return f
}

// PresentPixel implements Sink.
func (f *Frame) PresentPixel(x, y int, gray uint8) {
	f.SetGray(x, y, color.Gray{Y: gray})
}

// Present implements Sink.
func (f *Frame) Present() error {
	f.Presents++
	return nil
}

func (f *Frame) String() string {
	return fmt.Sprintf("display.Frame{%dx%d}", f.Rect.Dx(), f.Rect.Dy())
}
