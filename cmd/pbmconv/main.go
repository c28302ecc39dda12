// Command pbmconv converts images to and from the binary PBM (P4) format.
//
// Usage:
//
//	pbmconv topbm [-max-width N] [-gamma G] [-threshold] [-serpentine] in.(png|jpg|bmp) out.pbm
//	pbmconv frompbm in.pbm out.(png|bmp)
//	pbmconv info file.pbm...
package main

import (
	"errors"
	"flag"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/bmp"
	"golang.org/x/image/draw"

	"github.com/flavioheleno/pbm"
	"github.com/flavioheleno/pbm/image1bit"
	"github.com/flavioheleno/pbm/monochrome"
)

var errUsage = errors.New("usage: pbmconv topbm|frompbm|info [flags] files")

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		slog.Error("pbmconv failed", "err", err)
		os.Exit(1)
	}
}

func run(args []string, stdout io.Writer) error {
	if len(args) == 0 {
		return errUsage
	}
	switch args[0] {
	case "topbm":
		return toPBM(args[1:])
	case "frompbm":
		return fromPBM(args[1:])
	case "info":
		return info(args[1:], stdout)
	}
	return fmt.Errorf("%w: unknown command %q", errUsage, args[0])
}

func toPBM(args []string) error {
	fs := flag.NewFlagSet("topbm", flag.ContinueOnError)
	opts := &monochrome.Opts{}
	fs.IntVar(&opts.MaxWidth, "max-width", 0, "Scale wider images down to this width (0 keeps the size)")
	fs.Float64Var(&opts.Gamma, "gamma", 1, "Gamma applied before dithering")
	fs.BoolVar(&opts.Threshold, "threshold", false, "Threshold at half gray instead of dithering")
	fs.BoolVar(&opts.Serpentine, "serpentine", false, "Alternate the dithering direction per row")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 2 {
		return fmt.Errorf("%w: topbm needs an input and an output file", errUsage)
	}
	in, out := fs.Arg(0), fs.Arg(1)

	f, err := os.Open(in)
	if err != nil {
		return err
	}
	defer f.Close()
	src, format, err := image.Decode(f)
	if err != nil {
		return fmt.Errorf("decode %s: %w", in, err)
	}
	slog.Debug("Decoded source", "path", in, "format", format, "bounds", src.Bounds())

	img, err := monochrome.Convert(src, opts)
	if err != nil {
		return err
	}
	if err := pbm.Save(out, img); err != nil {
		return err
	}
	slog.Info("Wrote PBM", "path", out, "width", img.Width, "height", img.Height)
	return nil
}

func fromPBM(args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("%w: frompbm needs an input and an output file", errUsage)
	}
	in, out := args[0], args[1]

	img, err := pbm.Load(in)
	if err != nil {
		return err
	}

	var encode func(io.Writer, image.Image) error
	switch strings.ToLower(filepath.Ext(out)) {
	case ".png":
		encode = png.Encode
	case ".bmp":
		encode = bmp.Encode
	case ".jpg", ".jpeg":
		encode = func(w io.Writer, m image.Image) error {
			return jpeg.Encode(w, m, &jpeg.Options{Quality: 95})
		}
	default:
		return fmt.Errorf("%w: unsupported output format %q", errUsage, filepath.Ext(out))
	}

	gray := image.NewGray(img.Bounds())
	draw.Draw(gray, gray.Bounds(), img, image.Point{}, draw.Src)

	f, err := os.Create(out)
	if err != nil {
		return err
	}
	if err := encode(f, gray); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", out, err)
	}
	if err := f.Close(); err != nil {
		return err
	}
	slog.Info("Wrote image", "path", out, "width", img.Width, "height", img.Height)
	return nil
}

func info(paths []string, stdout io.Writer) error {
	if len(paths) == 0 {
		return fmt.Errorf("%w: info needs at least one file", errUsage)
	}
	for _, p := range paths {
		img, err := pbm.Load(p)
		if err != nil {
			return err
		}
		black := 0
		for y := 0; y < int(img.Height); y++ {
			for x := 0; x < int(img.Width); x++ {
				if img.BitAt(x, y) == image1bit.Black {
					black++
				}
			}
		}
		fmt.Fprintf(stdout, "%s: %dx%d, %d bytes, %d black pixels\n",
			p, img.Width, img.Height, len(img.Pix), black)
	}
	return nil
}
