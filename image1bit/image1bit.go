// Package image1bit provides a 1-bit monochrome image format with selectable
// bit packing.
//
// A set bit is a black pixel. This package provides the Color type, the four
// Alignment packings and the PackedImage implementation.
package image1bit

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"math"
)

var (
	// ErrInvalidArgument is returned for absent images or buffers.
	ErrInvalidArgument = errors.New("image1bit: invalid argument")
	// ErrOutOfRange is returned for coordinates outside the image.
	ErrOutOfRange = errors.New("image1bit: coordinate out of range")
	// ErrUnsupported is returned for an unknown Alignment.
	ErrUnsupported = errors.New("image1bit: unsupported alignment")
)

// Last is the sentinel coordinate meaning "last valid index" along an axis.
const Last = math.MaxUint32

// Color is a monochrome color. The zero value is White.
type Color uint8

const (
	White Color = 0
	Black Color = 1
)

// RGBA converts the Color to standard RGBA. Black is 0, White is 0xFFFF.
func (c Color) RGBA() (r, g, b, a uint32) {
	if c == Black {
		return 0, 0, 0, 0xFFFF
	}
	return 0xFFFF, 0xFFFF, 0xFFFF, 0xFFFF
}

// Inverse returns the other color.
func (c Color) Inverse() Color {
	if c == Black {
		return White
	}
	return Black
}

// Gray returns the 8-bit grayscale intensity of the color.
func (c Color) Gray() uint8 {
	if c == Black {
		return 0
	}
	return 0xFF
}

func (c Color) String() string {
	if c == Black {
		return "Black"
	}
	return "White"
}

// toColor converts any color.Color to Color.
// Anything darker than mid gray is black.
func toColor(c color.Color) color.Color {
	return convertColor(c)
}

func convertColor(c color.Color) Color {
	if b, ok := c.(Color); ok {
		return b
	}
	r, g, b, _ := c.RGBA()
	// Same coefficients as color.GrayModel.
	y := (19595*r + 38470*g + 7471*b + 1<<15) >> 16
	if y < 0x8000 {
		return Black
	}
	return White
}

// BitModel converts colors to Color.
var BitModel = color.ModelFunc(toColor)

// Alignment selects how pixel (x, y) maps to a bit in the buffer.
type Alignment uint8

const (
	HorizontalMSB Alignment = iota
	HorizontalLSB
	VerticalMSB
	VerticalLSB
)

var alignmentNames = [...]string{
	HorizontalMSB: "HorizontalMSB",
	HorizontalLSB: "HorizontalLSB",
	VerticalMSB:   "VerticalMSB",
	VerticalLSB:   "VerticalLSB",
}

func (a Alignment) String() string {
	if a.Valid() {
		return alignmentNames[a]
	}
	return fmt.Sprintf("Alignment(%d)", uint8(a))
}

// Valid reports whether a is one of the four known packings.
func (a Alignment) Valid() bool {
	return a <= VerticalLSB
}

// Horizontal reports whether consecutive bits advance along x.
func (a Alignment) Horizontal() bool {
	return a == HorizontalMSB || a == HorizontalLSB
}

// AddressOf returns the byte offset and bit mask of pixel (x, y) in a buffer
// packed with alignment a. It does no bounds checking. An unknown alignment
// yields a zero mask.
func AddressOf(x, y, width, height uint32, a Alignment) (offset uint32, mask byte) {
	switch a {
	case HorizontalMSB:
		return uint32((uint64(y)*uint64(width) + uint64(x)) / 8), 0x80 >> (x % 8)
	case HorizontalLSB:
		return uint32((uint64(y)*uint64(width) + uint64(x)) / 8), 0x01 << (x % 8)
	case VerticalMSB:
		return uint32(uint64(y/8)*uint64(width) + uint64(x)), 0x80 >> (y % 8)
	case VerticalLSB:
		return uint32(uint64(y/8)*uint64(width) + uint64(x)), 0x01 << (y % 8)
	}
	return 0, 0
}

// BufferSize returns the number of bytes needed to hold a width x height
// image packed with alignment a, or 0 for an unknown alignment.
func BufferSize(width, height uint32, a Alignment) int {
	switch a {
	case HorizontalMSB, HorizontalLSB:
		return int((uint64(width)*uint64(height) + 7) / 8)
	case VerticalMSB, VerticalLSB:
		return int((uint64(height) + 7) / 8 * uint64(width))
	}
	return 0
}

// PackedImage is a 1-bit image stored in a packed byte buffer.
type PackedImage struct {
	Pix       []byte    // Pixel data, see Alignment for the layout
	Width     uint32    // Width in pixels
	Height    uint32    // Height in pixels
	Alignment Alignment // Bit packing of Pix
}

var _ image.Image = (*PackedImage)(nil)

// New returns a white width x height image packed with alignment a.
func New(width, height uint32, a Alignment) (*PackedImage, error) {
	if width == 0 || height == 0 {
		return nil, fmt.Errorf("%w: zero size %dx%d", ErrInvalidArgument, width, height)
	}
	if !a.Valid() {
		return nil, fmt.Errorf("%w: %v", ErrUnsupported, a)
	}
	return &PackedImage{
		Pix:       make([]byte, BufferSize(width, height, a)),
		Width:     width,
		Height:    height,
		Alignment: a,
	}, nil
}

// NewFromData wraps an existing buffer without copying it.
// pix may be shorter than BufferSize; missing pixels read as White.
func NewFromData(width, height uint32, a Alignment, pix []byte) (*PackedImage, error) {
	if pix == nil {
		return nil, fmt.Errorf("%w: nil buffer", ErrInvalidArgument)
	}
	if width == 0 || height == 0 {
		return nil, fmt.Errorf("%w: zero size %dx%d", ErrInvalidArgument, width, height)
	}
	if !a.Valid() {
		return nil, fmt.Errorf("%w: %v", ErrUnsupported, a)
	}
	return &PackedImage{Pix: pix, Width: width, Height: height, Alignment: a}, nil
}

// Fill sets every pixel to c.
func (p *PackedImage) Fill(c Color) error {
	if p == nil || p.Pix == nil {
		return ErrInvalidArgument
	}
	v := byte(0x00)
	if c == Black {
		v = 0xFF
	}
	for i := range p.Pix {
		p.Pix[i] = v
	}
	return nil
}

// Resolve substitutes Last with the last valid index on each axis.
func (p *PackedImage) Resolve(x, y uint32) (uint32, uint32) {
	if x == Last {
		x = p.Width - 1
	}
	if y == Last {
		y = p.Height - 1
	}
	return x, y
}

// locate validates (x, y) and returns the byte index and mask of its bit.
func (p *PackedImage) locate(x, y uint32) (int, byte, error) {
	if p == nil || p.Pix == nil {
		return 0, 0, ErrInvalidArgument
	}
	x, y = p.Resolve(x, y)
	if x >= p.Width || y >= p.Height {
		return 0, 0, fmt.Errorf("%w: (%d, %d) in %dx%d", ErrOutOfRange, x, y, p.Width, p.Height)
	}
	if !p.Alignment.Valid() {
		return 0, 0, fmt.Errorf("%w: %v", ErrUnsupported, p.Alignment)
	}
	offset, mask := AddressOf(x, y, p.Width, p.Height, p.Alignment)
	if int(offset) >= len(p.Pix) {
		// Truncated buffer, e.g. a short PBM file.
		return 0, 0, fmt.Errorf("%w: (%d, %d) beyond %d byte buffer", ErrOutOfRange, x, y, len(p.Pix))
	}
	return int(offset), mask, nil
}

// SetPixel sets pixel (x, y) to c. Either coordinate may be Last.
func (p *PackedImage) SetPixel(x, y uint32, c Color) error {
	i, mask, err := p.locate(x, y)
	if err != nil {
		return err
	}
	if c == Black {
		p.Pix[i] |= mask
	} else {
		p.Pix[i] &^= mask
	}
	return nil
}

// GetPixel returns the color of pixel (x, y). Either coordinate may be Last.
func (p *PackedImage) GetPixel(x, y uint32) (Color, error) {
	i, mask, err := p.locate(x, y)
	if err != nil {
		if errors.Is(err, ErrOutOfRange) && p.inBounds(x, y) {
			return White, nil
		}
		return White, err
	}
	if p.Pix[i]&mask != 0 {
		return Black, nil
	}
	return White, nil
}

// inBounds reports whether (x, y) lies inside the declared dimensions.
func (p *PackedImage) inBounds(x, y uint32) bool {
	x, y = p.Resolve(x, y)
	return x < p.Width && y < p.Height
}

// ColorModel returns the color model of the image.
func (p *PackedImage) ColorModel() color.Model {
	return BitModel
}

// Bounds returns the image bounds.
func (p *PackedImage) Bounds() image.Rectangle {
	return image.Rect(0, 0, int(p.Width), int(p.Height))
}

// At returns the color of the pixel at (x, y).
// It implements the image.Image interface.
func (p *PackedImage) At(x, y int) color.Color {
	return p.BitAt(x, y)
}

// BitAt returns the Color of the pixel at (x, y), White when out of bounds.
func (p *PackedImage) BitAt(x, y int) Color {
	if !(image.Point{X: x, Y: y}.In(p.Bounds())) {
		return White
	}
	c, _ := p.GetPixel(uint32(x), uint32(y))
	return c
}

// Set sets the color of the pixel at (x, y).
func (p *PackedImage) Set(x, y int, c color.Color) {
	p.SetBit(x, y, convertColor(c))
}

// SetBit sets the Color of the pixel at (x, y).
// This is faster than Set() as it doesn't require color conversion.
func (p *PackedImage) SetBit(x, y int, c Color) {
	if !(image.Point{X: x, Y: y}.In(p.Bounds())) {
		return
	}
	_ = p.SetPixel(uint32(x), uint32(y), c)
}

// Clone returns a deep copy of the image.
func (p *PackedImage) Clone() *PackedImage {
	q := *p
	q.Pix = append([]byte(nil), p.Pix...)
	return &q
}

// Equal reports whether both images have the same size and pixels.
// The packing may differ.
func (p *PackedImage) Equal(q *PackedImage) bool {
	if p == nil || q == nil {
		return p == q
	}
	if p.Width != q.Width || p.Height != q.Height {
		return false
	}
	for y := uint32(0); y < p.Height; y++ {
		for x := uint32(0); x < p.Width; x++ {
			a, _ := p.GetPixel(x, y)
			b, _ := q.GetPixel(x, y)
			if a != b {
				return false
			}
		}
	}
	return true
}

// Convert returns a copy of the image packed with alignment a.
func (p *PackedImage) Convert(a Alignment) (*PackedImage, error) {
	if p == nil || p.Pix == nil {
		return nil, ErrInvalidArgument
	}
	q, err := New(p.Width, p.Height, a)
	if err != nil {
		return nil, err
	}
	for y := uint32(0); y < p.Height; y++ {
		for x := uint32(0); x < p.Width; x++ {
			c, err := p.GetPixel(x, y)
			if err != nil {
				return nil, err
			}
			if c == Black {
				offset, mask := AddressOf(x, y, q.Width, q.Height, a)
				q.Pix[offset] |= mask
			}
		}
	}
	return q, nil
}

func (p *PackedImage) String() string {
	return fmt.Sprintf("image1bit.PackedImage{%dx%d %v}", p.Width, p.Height, p.Alignment)
}
