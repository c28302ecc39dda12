// Package ssd1322 controls a SSD1322 OLED display via SPI.
//
// The SSD1322 is a 4-bit grayscale OLED controller supporting up to 480x128
// pixels. Common display resolutions are 256x64 and 128x64.
//
// Dev implements the periph.io display.Drawer interface, so it can be used
// directly or through display.DrawerSink. 1-bit images are shown with black
// pixels off and white pixels at full brightness.
package ssd1322

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"time"

	"periph.io/x/conn/v3"
	"periph.io/x/conn/v3/display"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi"
)

var (
	errHalted     = errors.New("ssd1322: halted")
	errBufferSize = errors.New("ssd1322: invalid buffer size")
)

// Opts is the configuration for the SSD1322 display.
type Opts struct {
	// Display dimensions in pixels
	W int // Width (default: 256, must be even and ≤480)
	H int // Height (default: 64, must be ≤128)

	// Rotation and mirroring
	Rotated       bool // 180° rotation
	Sequential    bool // Sequential COM pin configuration
	SwapTopBottom bool // Swap top/bottom display halves

	// Optional hardware reset pin
	RST gpio.PinIO
}

// Dev is the device handle for the SSD1322 display.
type Dev struct {
	c   conn.Conn
	dc  gpio.PinOut // Data/Command pin
	rst gpio.PinIO

	rect         image.Rectangle
	columnOffset int // Centers the panel in the 480 column RAM

	frame *frame // Mirror of the display RAM

	halted bool
}

var _ display.Drawer = (*Dev)(nil)

// NewSPI creates a new SSD1322 device connected via SPI.
//
// The SPI port is configured for 10MHz, Mode0 (CPOL=0, CPHA=0), 8-bit transfers.
// The dc (Data/Command) GPIO pin must be provided and configured as an output.
//
// opts can be nil to use defaults (256x64 display).
func NewSPI(p spi.Port, dc gpio.PinOut, opts *Opts) (*Dev, error) {
	if opts == nil {
		opts = &Opts{W: 256, H: 64}
	}
	if err := opts.validate(); err != nil {
		return nil, err
	}

	// Mode0 or Mode3 both work, the controller accepts up to 20MHz.
	c, err := p.Connect(10*physic.MegaHertz, spi.Mode0, 8)
	if err != nil {
		return nil, fmt.Errorf("ssd1322: %w", err)
	}
	return newDev(c, dc, opts)
}

func (o *Opts) validate() error {
	if o.W <= 0 || o.W%2 != 0 || o.W > 480 {
		return errors.New("ssd1322: width must be even and between 2 and 480")
	}
	if o.H <= 0 || o.H > 128 {
		return errors.New("ssd1322: height must be between 1 and 128")
	}
	return nil
}

func newDev(c conn.Conn, dc gpio.PinOut, opts *Opts) (*Dev, error) {
	d := &Dev{
		c:            c,
		dc:           dc,
		rst:          opts.RST,
		rect:         image.Rect(0, 0, opts.W, opts.H),
		columnOffset: (480 - opts.W) / 2,
		frame:        newFrame(opts.W, opts.H),
	}
	if err := d.init(opts); err != nil {
		return nil, err
	}
	return d, nil
}

// init sends the initialization sequence to the display.
func (d *Dev) init(opts *Opts) error {
	if d.rst != nil {
		if err := d.rst.Out(gpio.Low); err != nil {
			return fmt.Errorf("ssd1322: failed to pull RST low: %w", err)
		}
		time.Sleep(200 * time.Millisecond)

		if err := d.rst.Out(gpio.High); err != nil {
			return fmt.Errorf("ssd1322: failed to pull RST high: %w", err)
		}
		time.Sleep(200 * time.Millisecond)
	}

	cmds := []byte{
		0xFD, 0x12, // Unlock command codes
		0xAE,       // Display OFF
		0xB3, 0xF2, // Clock divider and oscillator frequency
		0xCA, byte(opts.H - 1), // MUX ratio
		0xA2, 0x00, // Display offset
		0xA1, 0x00, // Start line
	}

	remap1, remap2 := byte(0x14), byte(0x11)
	if opts.Rotated {
		remap1 = 0x06
	}
	if opts.Sequential {
		remap2 |= 0x01
	}
	if opts.SwapTopBottom {
		remap2 |= 0x02
	}

	cmds = append(cmds,
		0xA0, remap1, remap2, // Remap and dual COM mode
		0xAB, 0x01, // Enable internal VDD
		0xB4, 0xA0, 0xFD, // VSL
		0xC1, 0xFF, // Contrast
		0xC7, 0x0F, // Master contrast
		0xB9,       // Default grayscale table
		0xB1, 0xE2, // Phase length
		0xD1, 0x82, 0x20, // Display enhancements
		0xBB, 0x1F, // Pre-charge voltage
		0xB6, 0x08, // Second pre-charge period
		0xBE, 0x07, // VCOMH voltage
		0xA6, // Normal display mode
		0xA9, // Exit partial display mode
	)
	if err := d.sendCommands(cmds); err != nil {
		return err
	}
	if err := d.writeFullFrame(d.frame.pix); err != nil {
		return err
	}
	return d.sendCommand(0xAF) // Display ON
}

func (d *Dev) sendCommand(cmd byte) error {
	return d.sendCommands([]byte{cmd})
}

func (d *Dev) sendCommands(cmds []byte) error {
	if err := d.dc.Out(gpio.Low); err != nil {
		return err
	}
	return d.c.Tx(cmds, nil)
}

func (d *Dev) sendData(data []byte) error {
	if err := d.dc.Out(gpio.High); err != nil {
		return err
	}
	return d.c.Tx(data, nil)
}

// writeRect writes packed pixels to a window of the display RAM. x and width
// must be even.
func (d *Dev) writeRect(x, y, width, height int, pixels []byte) error {
	colStart := byte((x + d.columnOffset) / 2)
	colEnd := byte((x + width - 1 + d.columnOffset) / 2)

	if err := d.sendCommands([]byte{
		0x15, colStart, colEnd, // Column address
		0x75, byte(y), byte(y + height - 1), // Row address
		0x5C, // Write RAM
	}); err != nil {
		return err
	}
	return d.sendData(pixels)
}

func (d *Dev) writeFullFrame(pixels []byte) error {
	return d.writeRect(0, 0, d.rect.Dx(), d.rect.Dy(), pixels)
}

// ColorModel returns Gray4Model.
func (d *Dev) ColorModel() color.Model {
	return Gray4Model
}

// Bounds returns the image bounds of the display.
func (d *Dev) Bounds() image.Rectangle {
	return d.rect
}

// Write writes a raw frame: two pixels per byte, left pixel in the high
// nibble. The data must be exactly W*H/2 bytes.
func (d *Dev) Write(pixels []byte) (int, error) {
	if d.halted {
		return 0, errHalted
	}
	if len(pixels) != len(d.frame.pix) {
		return 0, errBufferSize
	}
	if err := d.writeFullFrame(pixels); err != nil {
		return 0, err
	}
	copy(d.frame.pix, pixels)
	return len(pixels), nil
}

// Draw draws src onto the dst rectangle of the display, src point sp being
// placed at dst.Min. Only the rows and the even aligned columns covered by
// dst are sent.
func (d *Dev) Draw(dst image.Rectangle, src image.Image, sp image.Point) error {
	if d.halted {
		return errHalted
	}
	r := dst.Intersect(d.rect)
	if r.Empty() {
		return nil
	}
	sp = sp.Add(r.Min.Sub(dst.Min))

	level := levelFunc(src)
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			d.frame.set(x, y, level(x-r.Min.X+sp.X, y-r.Min.Y+sp.Y))
		}
	}

	// Two pixels share a byte.
	minCol := r.Min.X &^ 1
	maxCol := (r.Max.X + 1) &^ 1
	return d.writeRect(minCol, r.Min.Y, maxCol-minCol, r.Dy(), d.frame.region(minCol, maxCol, r.Min.Y, r.Max.Y))
}

// SetContrast sets the display contrast (0-255).
func (d *Dev) SetContrast(contrast byte) error {
	if d.halted {
		return errHalted
	}
	return d.sendCommands([]byte{0xC1, contrast})
}

// Invert inverts the display colors (black becomes white and vice versa).
func (d *Dev) Invert(invert bool) error {
	if d.halted {
		return errHalted
	}
	mode := byte(0xA6)
	if invert {
		mode = 0xA7
	}
	return d.sendCommand(mode)
}

// Halt powers off the display.
// After calling Halt, the display will not respond to further commands
// until the device is re-initialized.
func (d *Dev) Halt() error {
	d.halted = true
	return d.sendCommand(0xAE)
}

func (d *Dev) String() string {
	return fmt.Sprintf("ssd1322.Dev{%dx%d}", d.rect.Dx(), d.rect.Dy())
}

// ScrollSpeed defines the horizontal scroll frame rate.
type ScrollSpeed byte

// Scroll intervals, in display refresh cycles.
const (
	Speed6Frames   ScrollSpeed = 0x00
	Speed10Frames  ScrollSpeed = 0x01
	Speed100Frames ScrollSpeed = 0x02
	Speed200Frames ScrollSpeed = 0x03
)

// ScrollHorizontal starts horizontal scrolling of rows startRow to endRow.
// If right is true, scrolls right; otherwise scrolls left.
func (d *Dev) ScrollHorizontal(startRow, endRow byte, speed ScrollSpeed, right bool) error {
	if d.halted {
		return errHalted
	}
	if int(startRow) >= d.rect.Dy() || int(endRow) >= d.rect.Dy() {
		return errors.New("ssd1322: scroll row out of range")
	}

	scrollCmd := byte(0x26)
	if right {
		scrollCmd = 0x27
	}
	return d.sendCommands([]byte{
		scrollCmd,
		0x00, // Dummy
		startRow,
		byte(speed),
		endRow,
		0x00, 0x00, // Dummy
		0x2F, // Activate scroll
	})
}

// StopScroll stops all scrolling and resets the display to normal operation.
func (d *Dev) StopScroll() error {
	if d.halted {
		return errHalted
	}
	return d.sendCommand(0x2E)
}
