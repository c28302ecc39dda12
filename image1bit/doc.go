// Package image1bit provides a 1-bit monochrome image format with selectable
// bit packing.
//
// Each pixel is a single bit: 1 is black, 0 is white. Four packings are
// supported, matching what common monochrome display controllers and the
// PBM P4 file format expect:
//
//	HorizontalMSB: bits run along x, leftmost pixel in bit 7 (PBM, most LCDs)
//	HorizontalLSB: bits run along x, leftmost pixel in bit 0
//	VerticalMSB:   bits run down y in 8-pixel tall strips, top pixel in bit 7
//	VerticalLSB:   bits run down y in 8-pixel tall strips, top pixel in bit 0 (SSD1306)
//
// Horizontal packings are a continuous bit stream over width*height pixels,
// so rows are not padded to a byte boundary:
//
//	Pixels (4x2):  a b c d
//	               e f g h
//	Byte 0 (MSB):  a b c d e f g h
//
// Vertical packings store one byte per column per 8-row strip:
//
//	Byte offset = (y/8)*width + x
//
// This package provides:
//
// - Color: White or Black, usable as a color.Color
// - Alignment: the four packings above
// - AddressOf: the pure (x, y) to (byte offset, bit mask) mapping
// - PackedImage: an image.Image / draw.Image backed by a packed buffer
//
// Example usage:
//
//	img, err := image1bit.New(128, 64, image1bit.HorizontalMSB)
//	if err != nil {
//		return err
//	}
//	img.Fill(image1bit.White)
//	img.SetPixel(10, 20, image1bit.Black)
//
//	// image1bit.Last addresses the far edge of the image.
//	img.SetPixel(image1bit.Last, image1bit.Last, image1bit.Black)
//
//	c, _ := img.GetPixel(10, 20)
//	println(c == image1bit.Black) // Output: true
package image1bit
