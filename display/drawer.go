package display

import (
	"bytes"
	"fmt"
	"image"

	conndisplay "periph.io/x/conn/v3/display"
)

// DrawerSink presents frames on a periph.io display.Drawer.
//
// Each Present only sends the bounding box of the pixels that changed since
// the previous Present. The first Present sends the whole frame.
type DrawerSink struct {
	d    conndisplay.Drawer
	next *image.Gray
	last *image.Gray // nil until the first Present
}

// NewDrawerSink returns a sink drawing on d. The frame starts white.
func NewDrawerSink(d conndisplay.Drawer) *DrawerSink {
	next := image.NewGray(d.Bounds())
	for i := range next.Pix {
		next.Pix[i] = 0xFF
	}
	return &DrawerSink{d: d, next: next}
}

// PresentPixel implements Sink. Coordinates are relative to the top left
// corner of the drawer bounds.
func (s *DrawerSink) PresentPixel(x, y int, gray uint8) {
	p := image.Pt(x, y).Add(s.next.Rect.Min)
	if !p.In(s.next.Rect) {
		return
	}
	s.next.Pix[s.next.PixOffset(p.X, p.Y)] = gray
}

// Present implements Sink.
func (s *DrawerSink) Present() error {
	r := s.changed()
	if r.Empty() {
		return nil
	}
	if err := s.d.Draw(r, s.next, r.Min); err != nil {
		return fmt.Errorf("display: draw %v on %s: %w", r, s.d, err)
	}
	if s.last == nil {
		s.last = image.NewGray(s.next.Rect)
	}
	copy(s.last.Pix, s.next.Pix)
	return nil
}

// Halt halts the underlying drawer.
func (s *DrawerSink) Halt() error {
	return s.d.Halt()
}

func (s *DrawerSink) String() string {
	return fmt.Sprintf("display.DrawerSink{%s}", s.d)
}

// changed returns the smallest rectangle holding every pixel that differs
// from the last presented frame.
func (s *DrawerSink) changed() image.Rectangle {
	if s.last == nil {
		return s.next.Rect
	}
	width := s.next.Rect.Dx()
	height := s.next.Rect.Dy()
	stride := s.next.Stride

	minCol, maxCol := width, -1
	minRow, maxRow := height, -1
	for y := 0; y < height; y++ {
		row := y * stride
		last := s.last.Pix[row : row+width]
		next := s.next.Pix[row : row+width]
		if bytes.Equal(last, next) {
			continue
		}
		minRow = min(minRow, y)
		maxRow = y
		for x := range next {
			if last[x] != next[x] {
				minCol = min(minCol, x)
				maxCol = max(maxCol, x)
			}
		}
	}
	if maxRow < 0 {
		return image.Rectangle{}
	}
	return image.Rect(minCol, minRow, maxCol+1, maxRow+1).Add(s.next.Rect.Min)
}
