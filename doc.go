// Package pbm reads and writes 1-bit images in the binary PBM (P4) format.
//
// # File Layout
//
//	"P4" <whitespace>
//	[ "#" <comment> <newline> ]*
//	<width> <whitespace> <height> <single whitespace>
//	<ceil(width*height/8) bytes of pixel data>
//
// Pixel data is a continuous, most-significant-bit-first bit stream over all
// width*height pixels; a set bit is black. Rows are not padded to a byte
// boundary. An optional decimal field after the height is skipped when
// present, and files whose pixel data is cut short still decode, with the
// missing pixels left white.
//
// # Basic Usage
//
//	img, err := pbm.Load("sample.pbm")
//	if err != nil {
//		return err
//	}
//
//	// Draw on it with the graphics package.
//	graphics.DrawLine(img, 0, 0, image1bit.Last, image1bit.Last, image1bit.Black)
//	graphics.WriteString(img, image1bit.Last, 0, image1bit.Black, font, graphics.TopRight, "hello")
//
//	if err := pbm.Save("saved.pbm", img); err != nil {
//		return err
//	}
//
// # Errors
//
// Every failure is returned as an error value and can be told apart with
// errors.Is:
//
//	pbm.ErrArgument          absent image or buffer
//	pbm.ErrFormat            bad magic, malformed or truncated header
//	pbm.ErrSize              zero width or height when encoding
//	pbm.ErrIO                file or stream failure
//	image1bit.ErrOutOfRange  coordinates outside the image
//	image1bit.ErrUnsupported unknown bit packing
//
// # Displaying Images
//
// The display package renders images to any display.Sink, including
// periph.io display.Drawer devices such as the SSD1322 driver in package
// ssd1322, and terminals through tcell.
package pbm
