package pbm

import (
	"fmt"
	"os"

	"github.com/flavioheleno/pbm/image1bit"
)

// Load reads the P4 image stored at path.
func Load(path string) (*image1bit.PackedImage, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrIO, err)
	}
	defer f.Close()
	return Decode(f)
}

// Save writes img to path as a P4 image, replacing any existing file.
// Nothing is created when img cannot be encoded.
func Save(path string, img *image1bit.PackedImage) (err error) {
	if img == nil || img.Pix == nil {
		return ErrArgument
	}
	if img.Width == 0 || img.Height == 0 {
		return fmt.Errorf("%w: %dx%d", ErrSize, img.Width, img.Height)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrIO, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("%w: %w", ErrIO, cerr)
		}
	}()
	return Encode(f, img)
}
