package display

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/draw"
	"testing"

	"github.com/gdamore/tcell"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flavioheleno/pbm/image1bit"
)

// fromRows builds an image from strings, '#' for black.
func fromRows(t *testing.T, rows ...string) *image1bit.PackedImage {
	t.Helper()
	img, err := image1bit.New(uint32(len(rows[0])), uint32(len(rows)), image1bit.HorizontalMSB)
	require.NoError(t, err)
	for y, row := range rows {
		for x, c := range row {
			if c == '#' {
				require.NoError(t, img.SetPixel(uint32(x), uint32(y), image1bit.Black))
			}
		}
	}
	return img
}

type pixel struct {
	x, y int
	gray uint8
}

type recordingSink struct {
	pixels   []pixel
	presents int
}

func (r *recordingSink) PresentPixel(x, y int, gray uint8) {
	r.pixels = append(r.pixels, pixel{x, y, gray})
}

func (r *recordingSink) Present() error {
	r.presents++
	return nil
}

func TestRender(t *testing.T) {
	img := fromRows(t,
		"#.",
		".#",
		"##",
	)
	var s recordingSink
	require.NoError(t, Render(&s, img))

	assert.Equal(t, 1, s.presents)
	assert.Equal(t, []pixel{
		{0, 0, 0}, {1, 0, 255},
		{0, 1, 255}, {1, 1, 0},
		{0, 2, 0}, {1, 2, 0},
	}, s.pixels)
}

func TestRender_frame(t *testing.T) {
	img, err := image1bit.NewFromData(2, 2, image1bit.HorizontalMSB, []byte{0xF0})
	require.NoError(t, err)

	f := NewFrame(2, 2)
	require.NoError(t, Render(f, img))
	assert.Equal(t, []uint8{0, 0, 0, 0}, f.Pix)
	assert.Equal(t, 1, f.Presents)
	assert.Equal(t, "display.Frame{2x2}", f.String())
}

func TestRender_errors(t *testing.T) {
	img := fromRows(t, "#")
	assert.ErrorIs(t, Render(nil, img), image1bit.ErrInvalidArgument)
	assert.ErrorIs(t, Render(NewFrame(1, 1), nil), image1bit.ErrInvalidArgument)
	assert.ErrorIs(t, Render(NewFrame(1, 1), &image1bit.PackedImage{Width: 1, Height: 1}), image1bit.ErrInvalidArgument)
}

func TestFrame_ignoresOutside(t *testing.T) {
	f := NewFrame(2, 2)
	f.PresentPixel(5, 0, 0)
	f.PresentPixel(-1, 1, 0)
	assert.Equal(t, []uint8{255, 255, 255, 255}, f.Pix)
}

type fakeDrawer struct {
	rect   image.Rectangle
	screen *image.Gray
	draws  []image.Rectangle
	err    error
	halted bool
}

func newFakeDrawer(r image.Rectangle) *fakeDrawer {
	return &fakeDrawer{rect: r, screen: image.NewGray(r)}
}

func (f *fakeDrawer) String() string          { return "fake" }
func (f *fakeDrawer) Halt() error             { f.halted = true; return nil }
func (f *fakeDrawer) ColorModel() color.Model { return color.GrayModel }
func (f *fakeDrawer) Bounds() image.Rectangle { return f.rect }

func (f *fakeDrawer) Draw(dst image.Rectangle, src image.Image, sp image.Point) error {
	if f.err != nil {
		return f.err
	}
	f.draws = append(f.draws, dst)
	draw.Draw(f.screen, dst, src, sp, draw.Src)
	return nil
}

func TestDrawerSink(t *testing.T) {
	d := newFakeDrawer(image.Rect(0, 0, 8, 4))
	s := NewDrawerSink(d)

	img, err := image1bit.New(8, 4, image1bit.HorizontalMSB)
	require.NoError(t, err)
	require.NoError(t, Render(s, img))
	assert.Equal(t, []image.Rectangle{d.rect}, d.draws, "first frame is sent whole")

	require.NoError(t, Render(s, img))
	assert.Len(t, d.draws, 1, "unchanged frame is not sent")

	require.NoError(t, img.SetPixel(3, 1, image1bit.Black))
	require.NoError(t, Render(s, img))
	assert.Equal(t, image.Rect(3, 1, 4, 2), d.draws[1])

	require.NoError(t, img.SetPixel(6, 3, image1bit.Black))
	require.NoError(t, img.SetPixel(1, 2, image1bit.Black))
	require.NoError(t, Render(s, img))
	assert.Equal(t, image.Rect(1, 2, 7, 4), d.draws[2])

	assert.Equal(t, uint8(0), d.screen.GrayAt(3, 1).Y)
	assert.Equal(t, uint8(0), d.screen.GrayAt(6, 3).Y)
	assert.Equal(t, uint8(255), d.screen.GrayAt(0, 0).Y)

	require.NoError(t, s.Halt())
	assert.True(t, d.halted)
	assert.Equal(t, "display.DrawerSink{fake}", s.String())
}

func TestDrawerSink_offsetBounds(t *testing.T) {
	d := newFakeDrawer(image.Rect(10, 20, 14, 22))
	s := NewDrawerSink(d)
	require.NoError(t, s.Present())

	s.PresentPixel(1, 1, 0)
	s.PresentPixel(4, 0, 0)
	require.NoError(t, s.Present())
	require.Len(t, d.draws, 2)
	assert.Equal(t, image.Rect(11, 21, 12, 22), d.draws[1])
	assert.Equal(t, uint8(0), d.screen.GrayAt(11, 21).Y)
}

func TestDrawerSink_drawError(t *testing.T) {
	boom := errors.New("bus error")
	d := newFakeDrawer(image.Rect(0, 0, 2, 2))
	d.err = boom
	s := NewDrawerSink(d)

	err := Render(s, fromRows(t, "#.", ".#"))
	assert.ErrorIs(t, err, boom)

	// Nothing was recorded as presented, so the next attempt resends all.
	d.err = nil
	require.NoError(t, s.Present())
	assert.Equal(t, []image.Rectangle{d.rect}, d.draws)
}

func screenLines(scr tcell.SimulationScreen) []string {
	cells, width, _ := scr.GetContents()
	var lines []string
	var buf bytes.Buffer
	for i, c := range cells {
		if i > 0 && i%width == 0 {
			lines = append(lines, buf.String())
			buf.Reset()
		}
		buf.Write(c.Bytes)
	}
	return append(lines, buf.String())
}

func TestTerminal(t *testing.T) {
	scr := tcell.NewSimulationScreen("")
	require.NoError(t, scr.Init())
	defer scr.Fini()
	scr.SetSize(4, 2)

	term := NewTerminal(scr)
	assert.Equal(t, image.Rect(0, 0, 4, 4), term.Bounds())
	assert.Equal(t, "display.Terminal{4x4}", term.String())

	require.NoError(t, Render(term, fromRows(t,
		"#..#",
		"##..",
		"...#",
	)))
	assert.Equal(t, []string{
		"█▄ ▀",
		"   ▀",
	}, screenLines(scr))
}

func TestTerminal_clipsLargeImages(t *testing.T) {
	scr := tcell.NewSimulationScreen("")
	require.NoError(t, scr.Init())
	defer scr.Fini()
	scr.SetSize(2, 1)

	require.NoError(t, Render(NewTerminal(scr), fromRows(t,
		"#####",
		"#####",
		"#####",
	)))
	assert.Equal(t, []string{"██"}, screenLines(scr))
}
