// Package pbm reads and writes 1-bit images in the binary PBM (P4) format.
//
// The pixel payload is the image1bit.HorizontalMSB buffer written as is: a
// continuous bit stream of width*height pixels, 1 meaning black.
//
// See doc.go for the file layout and usage.
package pbm

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/flavioheleno/pbm/image1bit"
)

var (
	// ErrArgument is returned when an image or its buffer is absent.
	ErrArgument = image1bit.ErrInvalidArgument
	// ErrFormat is returned for a bad magic or a malformed header.
	ErrFormat = errors.New("pbm: invalid format")
	// ErrSize is returned when encoding an image with a zero dimension.
	ErrSize = errors.New("pbm: invalid size")
	// ErrIO wraps failures of the underlying reader, writer or file.
	ErrIO = errors.New("pbm: i/o error")
)

// Magic is the P4 file signature.
const Magic = "P4"

// maxDataSize bounds the pixel buffer a header may ask for.
const maxDataSize = 1 << 30

// Config holds the dimensions read from a P4 header.
type Config struct {
	Width  uint32
	Height uint32
}

// DataSize returns the pixel payload size in bytes.
func (c Config) DataSize() int {
	return image1bit.BufferSize(c.Width, c.Height, image1bit.HorizontalMSB)
}

// DecodeConfig reads only the header of a P4 image.
func DecodeConfig(r io.Reader) (Config, error) {
	return readHeader(bufio.NewReader(r))
}

// Decode reads a P4 image.
//
// A payload shorter than the header announces is not an error: the missing
// pixels are left white.
func Decode(r io.Reader) (*image1bit.PackedImage, error) {
	br := bufio.NewReader(r)
	cfg, err := readHeader(br)
	if err != nil {
		return nil, err
	}
	rest, err := io.ReadAll(br)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrIO, err)
	}

	pix := make([]byte, cfg.DataSize())
	copy(pix, skipMaxval(rest, len(pix)))
	return image1bit.NewFromData(cfg.Width, cfg.Height, image1bit.HorizontalMSB, pix)
}

// DecodeBytes decodes a P4 image held in memory.
func DecodeBytes(b []byte) (*image1bit.PackedImage, error) {
	return Decode(bytes.NewReader(b))
}

// readHeader parses the magic, comments and dimensions, and consumes the
// single whitespace byte that ends the header.
func readHeader(br *bufio.Reader) (Config, error) {
	if err := skipSpace(br); err != nil {
		return Config{}, err
	}
	var magic [2]byte
	if _, err := io.ReadFull(br, magic[:]); err != nil {
		return Config{}, headerErr(err)
	}
	if string(magic[:]) != Magic {
		return Config{}, fmt.Errorf("%w: magic %q, want %q", ErrFormat, magic[:], Magic)
	}

	width, err := readDimension(br, "width")
	if err != nil {
		return Config{}, err
	}
	height, err := readDimension(br, "height")
	if err != nil {
		return Config{}, err
	}

	c, err := br.ReadByte()
	if err != nil {
		return Config{}, headerErr(err)
	}
	if !isSpace(c) {
		return Config{}, fmt.Errorf("%w: no whitespace after height", ErrFormat)
	}

	cfg := Config{Width: width, Height: height}
	if cfg.DataSize() > maxDataSize {
		return Config{}, fmt.Errorf("%w: %dx%d image too large", ErrFormat, width, height)
	}
	return cfg, nil
}

// skipSpace skips whitespace and full-line '#' comments.
func skipSpace(br *bufio.Reader) error {
	for {
		c, err := br.ReadByte()
		if err != nil {
			return headerErr(err)
		}
		switch {
		case isSpace(c):
		case c == '#':
			if _, err := br.ReadBytes('\n'); err != nil {
				return headerErr(err)
			}
		default:
			return br.UnreadByte()
		}
	}
}

func readDimension(br *bufio.Reader, name string) (uint32, error) {
	if err := skipSpace(br); err != nil {
		return 0, err
	}
	var digits []byte
	for {
		c, err := br.ReadByte()
		if err == io.EOF {
			break
		}
		if err != nil {
			return 0, headerErr(err)
		}
		if c < '0' || c > '9' {
			br.UnreadByte()
			break
		}
		digits = append(digits, c)
	}
	v, err := strconv.ParseUint(string(digits), 10, 32)
	if err != nil || v == 0 {
		return 0, fmt.Errorf("%w: bad %s %q", ErrFormat, name, digits)
	}
	return uint32(v), nil
}

// skipMaxval drops a decimal token and its separator from the start of rest
// when enough bytes follow it to hold the whole payload. Plain P4 files have
// no such field, so it is only skipped when clearly present.
func skipMaxval(rest []byte, need int) []byte {
	n := 0
	for n < len(rest) && rest[n] >= '0' && rest[n] <= '9' {
		n++
	}
	if n == 0 || n == len(rest) || !isSpace(rest[n]) {
		return rest
	}
	if len(rest)-(n+1) < need {
		return rest
	}
	return rest[n+1:]
}

// headerErr maps a read failure inside the header to ErrFormat when the
// input simply ended, and to ErrIO otherwise.
func headerErr(err error) error {
	if err == io.EOF || err == io.ErrUnexpectedEOF {
		return fmt.Errorf("%w: truncated header", ErrFormat)
	}
	return fmt.Errorf("%w: %w", ErrIO, err)
}

func isSpace(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\v', '\f', '\r':
		return true
	}
	return false
}

// Encode writes img as a P4 image. Images in another packing are converted
// to HorizontalMSB first.
func Encode(w io.Writer, img *image1bit.PackedImage) error {
	if img == nil || img.Pix == nil {
		return ErrArgument
	}
	if img.Width == 0 || img.Height == 0 {
		return fmt.Errorf("%w: %dx%d", ErrSize, img.Width, img.Height)
	}
	if !img.Alignment.Valid() {
		return fmt.Errorf("%w: %v", image1bit.ErrUnsupported, img.Alignment)
	}
	if img.Alignment != image1bit.HorizontalMSB {
		var err error
		if img, err = img.Convert(image1bit.HorizontalMSB); err != nil {
			return err
		}
	}

	size := image1bit.BufferSize(img.Width, img.Height, image1bit.HorizontalMSB)
	pix := img.Pix
	if len(pix) < size {
		pix = make([]byte, size)
		copy(pix, img.Pix)
	}

	b := bufio.NewWriter(w)
	fmt.Fprintf(b, "%s\n%d %d\n", Magic, img.Width, img.Height)
	b.Write(pix[:size])
	b.WriteByte('\n')
	if err := b.Flush(); err != nil {
		return fmt.Errorf("%w: %w", ErrIO, err)
	}
	return nil
}

// EncodeBytes returns img encoded as a P4 image.
func EncodeBytes(img *image1bit.PackedImage) ([]byte, error) {
	var buf bytes.Buffer
	if err := Encode(&buf, img); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
