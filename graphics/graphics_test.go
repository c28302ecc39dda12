package graphics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flavioheleno/pbm/image1bit"
)

// testFont is a 3x5 font with four glyphs:
// 0 blank, 1 solid, 2 left column only, 3 top row only.
func testFont(a image1bit.Alignment) *Font {
	left, top := byte(0x80), byte(0xE0)
	if a == image1bit.HorizontalLSB {
		left, top = 0x01, 0x07
	}
	data := []byte{
		0, 0, 0, 0, 0,
		0xFF, 0xFF, 0xFF, 0xFF, 0xFF,
		left, left, left, left, left,
		top, 0, 0, 0, 0,
	}
	return &Font{Data: data, Width: 3, Height: 5, Alignment: a}
}

func newImage(t *testing.T, w, h uint32) *image1bit.PackedImage {
	t.Helper()
	img, err := image1bit.New(w, h, image1bit.HorizontalMSB)
	require.NoError(t, err)
	return img
}

// rows renders img as strings, '#' for black and '.' for white.
func rows(img *image1bit.PackedImage) []string {
	out := make([]string, img.Height)
	for y := uint32(0); y < img.Height; y++ {
		row := make([]byte, img.Width)
		for x := uint32(0); x < img.Width; x++ {
			row[x] = '.'
			if c, _ := img.GetPixel(x, y); c == image1bit.Black {
				row[x] = '#'
			}
		}
		out[y] = string(row)
	}
	return out
}

func TestDrawLine_horizontal(t *testing.T) {
	img := newImage(t, 8, 3)
	require.NoError(t, DrawLine(img, 0, 0, 7, 0, image1bit.Black))
	// The end point is not plotted.
	assert.Equal(t, []string{
		"#######.",
		"........",
		"........",
	}, rows(img))
}

func TestDrawLine_sentinel(t *testing.T) {
	a, b := newImage(t, 8, 4), newImage(t, 8, 4)
	require.NoError(t, DrawLine(a, 0, image1bit.Last, image1bit.Last, 0, image1bit.Black))
	require.NoError(t, DrawLine(b, 0, 3, 7, 0, image1bit.Black))
	assert.Equal(t, rows(b), rows(a))
}

func TestDrawLine_shapes(t *testing.T) {
	for _, tc := range []struct {
		name           string
		x0, y0, x1, y1 uint32
		expected       []string
	}{
		{
			name: "diagonal",
			x0:   0, y0: 0, x1: 4, y1: 4,
			expected: []string{
				"#.....",
				".#....",
				"..#...",
				"...#..",
				"......",
			},
		},
		{
			name: "reverse vertical",
			x0:   2, y0: 4, x1: 2, y1: 0,
			expected: []string{
				"......",
				"..#...",
				"..#...",
				"..#...",
				"..#...",
			},
		},
		{
			name: "shallow",
			x0:   0, y0: 0, x1: 5, y1: 2,
			expected: []string{
				"###...",
				"...##.",
				"......",
				"......",
				"......",
			},
		},
		{
			name: "degenerate",
			x0:   3, y0: 3, x1: 3, y1: 3,
			expected: []string{
				"......",
				"......",
				"......",
				"......",
				"......",
			},
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			img := newImage(t, 6, 5)
			require.NoError(t, DrawLine(img, tc.x0, tc.y0, tc.x1, tc.y1, image1bit.Black))
			assert.Equal(t, tc.expected, rows(img))
		})
	}
}

func TestDrawLine_boundingBoxAndMonotonic(t *testing.T) {
	const w, h = 40, 30
	ends := [][4]uint32{
		{0, 0, 39, 29}, {39, 0, 0, 29}, {5, 25, 30, 2}, {12, 3, 13, 28}, {38, 17, 1, 16},
	}
	for _, e := range ends {
		img := newImage(t, w, h)
		require.NoError(t, DrawLine(img, e[0], e[1], e[2], e[3], image1bit.Black))

		minX, maxX := min(e[0], e[2]), max(e[0], e[2])
		minY, maxY := min(e[1], e[3]), max(e[1], e[3])
		for y := uint32(0); y < h; y++ {
			for x := uint32(0); x < w; x++ {
				c, _ := img.GetPixel(x, y)
				if c == image1bit.Black {
					assert.True(t, x >= minX && x <= maxX && y >= minY && y <= maxY,
						"pixel (%d, %d) outside box of %v", x, y, e)
				}
			}
		}

		// Along the dominant axis every row/column holds exactly one pixel.
		xMajor := maxX-minX >= maxY-minY
		if xMajor {
			for x := minX; x <= maxX; x++ {
				n := 0
				for y := uint32(0); y < h; y++ {
					if c, _ := img.GetPixel(x, y); c == image1bit.Black {
						n++
					}
				}
				if x == e[2] {
					assert.Equal(t, 0, n, "end column %d of %v", x, e)
				} else {
					assert.Equal(t, 1, n, "column %d of %v", x, e)
				}
			}
		}
	}
}

func TestDrawLine_errors(t *testing.T) {
	img := newImage(t, 8, 8)
	assert.ErrorIs(t, DrawLine(nil, 0, 0, 1, 1, image1bit.Black), image1bit.ErrInvalidArgument)
	assert.ErrorIs(t, DrawLine(img, 0, 0, 8, 1, image1bit.Black), image1bit.ErrOutOfRange)
	assert.ErrorIs(t, DrawLine(img, 0, 9, 1, 1, image1bit.Black), image1bit.ErrOutOfRange)
	assert.Equal(t, make([]byte, len(img.Pix)), img.Pix, "failed draws must not touch the image")
}

func TestDrawRect(t *testing.T) {
	img := newImage(t, 6, 5)
	require.NoError(t, DrawRect(img, 1, 0, image1bit.Last, 3, image1bit.Black))
	assert.Equal(t, []string{
		".#####",
		".#...#",
		".#...#",
		".#####",
		"......",
	}, rows(img))
}

func TestFont(t *testing.T) {
	f := testFont(image1bit.HorizontalMSB)
	assert.Equal(t, uint32(1), f.BytesPerLine())
	assert.Equal(t, 4, f.GlyphCount())
	assert.True(t, f.GlyphBit(2, 0, 4))
	assert.False(t, f.GlyphBit(2, 1, 4))
	assert.False(t, f.GlyphBit(9, 0, 0))

	wide := &Font{Data: make([]byte, 2*2*3), Width: 10, Height: 3}
	assert.Equal(t, uint32(2), wide.BytesPerLine())
	assert.Equal(t, 2, wide.GlyphCount())
	wide.Data[2*3+1*2+1] = 0x40 // glyph 1, row 1, x 9
	assert.True(t, wide.GlyphBit(1, 9, 1))
	assert.False(t, wide.GlyphBit(0, 9, 1))
}

func TestWriteChar(t *testing.T) {
	for _, a := range []image1bit.Alignment{image1bit.HorizontalMSB, image1bit.HorizontalLSB} {
		t.Run(a.String(), func(t *testing.T) {
			img := newImage(t, 6, 6)
			require.NoError(t, img.Fill(image1bit.Black))
			require.NoError(t, WriteChar(img, 1, 1, image1bit.Black, testFont(a), 2))
			// The glyph box is opaque: unset glyph bits are painted white.
			assert.Equal(t, []string{
				"######",
				"##..##",
				"##..##",
				"##..##",
				"##..##",
				"##..##",
			}, rows(img))
		})
	}
}

func TestWriteChar_errors(t *testing.T) {
	img := newImage(t, 6, 6)
	f := testFont(image1bit.HorizontalMSB)

	assert.ErrorIs(t, WriteChar(nil, 0, 0, image1bit.Black, f, 1), image1bit.ErrInvalidArgument)
	assert.ErrorIs(t, WriteChar(img, 0, 0, image1bit.Black, nil, 1), image1bit.ErrInvalidArgument)

	vertical := testFont(image1bit.HorizontalMSB)
	vertical.Alignment = image1bit.VerticalLSB
	assert.ErrorIs(t, WriteChar(img, 0, 0, image1bit.Black, vertical, 1), image1bit.ErrInvalidArgument)

	assert.ErrorIs(t, WriteChar(img, 0, 0, image1bit.Black, f, 4), image1bit.ErrOutOfRange)
	assert.ErrorIs(t, WriteChar(img, 4, 0, image1bit.Black, f, 1), image1bit.ErrOutOfRange)
}

func TestWriteString_advance(t *testing.T) {
	img := newImage(t, 16, 5)
	f := testFont(image1bit.HorizontalMSB)
	require.NoError(t, WriteString(img, 2, 0, image1bit.Black, f, TopLeft, "\x01\x01\x01"))

	next := uint32(2) + TextWidth(f, 3)
	assert.Equal(t, uint32(13), next)
	assert.Equal(t, "..###.###.###...", rows(img)[0])
}

func TestWriteString_alignment(t *testing.T) {
	f := testFont(image1bit.HorizontalMSB)
	// "\x03\x03" is 7 pixels wide, only its top row is black.
	for _, tc := range []struct {
		align StringAlignment
		x, y  uint32
		row   uint32
		want  string
	}{
		{TopLeft, 2, 1, 1, "..###.###..."},
		{TopCenter, 5, 1, 1, "..###.###..."},
		{TopRight, 9, 1, 1, "..###.###..."},
		{CenterLeft, 2, 3, 1, "..###.###..."},
		{Center, 5, 3, 1, "..###.###..."},
		{BottomRight, 9, 6, 1, "..###.###..."},
		{BottomLeft, image1bit.Last, image1bit.Last, 6, ""},
	} {
		t.Run(tc.align.String(), func(t *testing.T) {
			img := newImage(t, 12, 8)
			err := WriteString(img, tc.x, tc.y, image1bit.Black, f, tc.align, "\x03\x03")
			if tc.want == "" {
				assert.ErrorIs(t, err, image1bit.ErrOutOfRange)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, rows(img)[tc.row])
		})
	}
}

func TestWriteString_sentinelAnchor(t *testing.T) {
	img := newImage(t, 12, 8)
	f := testFont(image1bit.HorizontalMSB)
	require.NoError(t, WriteString(img, 0, image1bit.Last, image1bit.Black, f, BottomLeft, "\x01"))
	// Anchor y resolves to 7, the 5 pixel glyph starts at row 2.
	assert.Equal(t, []string{
		"............",
		"............",
		"###.........",
		"###.........",
		"###.........",
		"###.........",
		"###.........",
		"............",
	}, rows(img))
}

func TestWriteString_errors(t *testing.T) {
	img := newImage(t, 12, 8)
	f := testFont(image1bit.HorizontalMSB)
	assert.ErrorIs(t, WriteString(img, 0, 0, image1bit.Black, f, TopLeft, ""), image1bit.ErrInvalidArgument)
	assert.ErrorIs(t, WriteString(nil, 0, 0, image1bit.Black, f, TopLeft, "a"), image1bit.ErrInvalidArgument)
	assert.ErrorIs(t, WriteString(img, 0, 0, image1bit.Black, nil, TopLeft, "a"), image1bit.ErrInvalidArgument)
	assert.ErrorIs(t, WriteString(img, 0, 0, image1bit.Black, f, StringAlignment(12), "\x01"), image1bit.ErrInvalidArgument)
	assert.ErrorIs(t, WriteString(img, 1, 0, image1bit.Black, f, TopRight, "\x01"), image1bit.ErrOutOfRange)
}

func TestTextWidth(t *testing.T) {
	f := testFont(image1bit.HorizontalMSB)
	assert.Equal(t, uint32(0), TextWidth(f, 0))
	assert.Equal(t, uint32(3), TextWidth(f, 1))
	assert.Equal(t, uint32(3*4+3), TextWidth(f, 4))
	assert.Equal(t, "BottomCenter", BottomCenter.String())
}
