package display

import (
	"fmt"
	"image"

	"github.com/gdamore/tcell"
)

// Terminal presents frames on a tcell screen.
//
// Every character cell holds two pixel rows drawn with half block runes, so
// a screen of c columns and r rows shows c x 2r pixels.
type Terminal struct {
	screen tcell.Screen
	style  tcell.Style
	ink    []bool // black pixels, row-major
	width  int
	height int
}

// NewTerminal returns a sink drawing on screen. The screen must already be
// initialized; its current size fixes the pixel area.
func NewTerminal(screen tcell.Screen) *Terminal {
	cols, rows := screen.Size()
	return &Terminal{
		screen: screen,
		style:  tcell.StyleDefault.Foreground(tcell.ColorBlack).Background(tcell.ColorWhite),
		ink:    make([]bool, cols*rows*2),
		width:  cols,
		height: rows * 2,
	}
}

// Bounds returns the pixel area of the terminal.
func (t *Terminal) Bounds() image.Rectangle {
	return image.Rect(0, 0, t.width, t.height)
}

// PresentPixel implements Sink. Gray levels below 128 are drawn as ink.
func (t *Terminal) PresentPixel(x, y int, gray uint8) {
	if x < 0 || y < 0 || x >= t.width || y >= t.height {
		return
	}
	t.ink[y*t.width+x] = gray < 0x80
}

// Present implements Sink.
func (t *Terminal) Present() error {
	for row := 0; row < t.height/2; row++ {
		for x := 0; x < t.width; x++ {
			top := t.ink[2*row*t.width+x]
			bottom := t.ink[(2*row+1)*t.width+x]
			t.screen.SetContent(x, row, halfBlock(top, bottom), nil, t.style)
		}
	}
	t.screen.Show()
	return nil
}

func (t *Terminal) String() string {
	return fmt.Sprintf("display.Terminal{%dx%d}", t.width, t.height)
}

func halfBlock(top, bottom bool) rune {
	switch {
	case top && bottom:
		return '█'
	case top:
		return '▀'
	case bottom:
		return '▄'
	}
	return ' '
}
