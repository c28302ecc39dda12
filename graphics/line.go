// Package graphics draws lines and bitmap-font text into 1-bit images.
//
// All drawing goes through image1bit.PackedImage.SetPixel, so it works with
// every packing. Coordinates accept image1bit.Last as "far edge".
package graphics

import (
	"fmt"

	"github.com/flavioheleno/pbm/image1bit"
)

// DrawLine draws a line from (xStart, yStart) towards (xEnd, yEnd).
//
// The line is stepped along its dominant axis and the end point itself is
// not plotted. A zero-length line draws nothing.
func DrawLine(img *image1bit.PackedImage, xStart, yStart, xEnd, yEnd uint32, c image1bit.Color) error {
	if img == nil || img.Pix == nil {
		return image1bit.ErrInvalidArgument
	}
	xStart, yStart = img.Resolve(xStart, yStart)
	xEnd, yEnd = img.Resolve(xEnd, yEnd)
	if xStart >= img.Width || xEnd >= img.Width || yStart >= img.Height || yEnd >= img.Height {
		return fmt.Errorf("%w: line (%d, %d)-(%d, %d) in %dx%d", image1bit.ErrOutOfRange,
			xStart, yStart, xEnd, yEnd, img.Width, img.Height)
	}

	dx := int64(xEnd) - int64(xStart)
	dy := int64(yEnd) - int64(yStart)
	steps := max(abs(dx), abs(dy))

	for i := int64(0); i < steps; i++ {
		// Go division truncates toward zero, keeping every point inside
		// the bounding box of the two end points.
		px := int64(xStart) + dx*i/steps
		py := int64(yStart) + dy*i/steps
		if err := img.SetPixel(uint32(px), uint32(py), c); err != nil {
			return err
		}
	}
	return nil
}

// DrawRect draws the outline of the rectangle with corners (x0, y0) and
// (x1, y1) using four DrawLine calls.
func DrawRect(img *image1bit.PackedImage, x0, y0, x1, y1 uint32, c image1bit.Color) error {
	if img == nil || img.Pix == nil {
		return image1bit.ErrInvalidArgument
	}
	x0, y0 = img.Resolve(x0, y0)
	x1, y1 = img.Resolve(x1, y1)
	edges := [4][4]uint32{
		{x0, y0, x1, y0},
		{x1, y0, x1, y1},
		{x1, y1, x0, y1},
		{x0, y1, x0, y0},
	}
	for _, e := range edges {
		if err := DrawLine(img, e[0], e[1], e[2], e[3], c); err != nil {
			return err
		}
	}
	return nil
}

func abs(v int64) int64 {
	if v < 0 {
		return -v
	}
	return v
}
