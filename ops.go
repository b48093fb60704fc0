package imtool

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log"
	"os"
	"strings"

	"github.com/wbrown/imtool/imageutil"
)

// openInput opens path for reading, mapping failures to ErrFileOpen.
func openInput(path string) (*os.File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFileOpen, err)
	}
	return f, nil
}

// writeOutput creates path and hands a writer to write. The file is closed
// on every path; a close error is reported when write succeeded.
func writeOutput(path string, write func(w io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrFileOpen, err)
	}
	if err := write(f); err != nil {
		f.Close()
		return fmt.Errorf("%s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return nil
}

// LoadPPM reads a P6 image from path.
func LoadPPM(path string) (*imageutil.Image, error) {
	f, err := openInput(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, err := ReadPPM(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return img, nil
}

// SavePPM writes img to path as a P6 image.
func SavePPM(path string, img *imageutil.Image) error {
	return writeOutput(path, func(w io.Writer) error {
		return WritePPM(w, img)
	})
}

// CompressOptions controls the compress operation.
type CompressOptions struct {
	// Zstd wraps the C6 stream in a zstd frame. Outputs ending in .zst
	// are always wrapped.
	Zstd bool
}

// Compress converts the P6 image at in to the palette-indexed C6 format.
func Compress(in, out string, opts CompressOptions) error {
	img, err := LoadPPM(in)
	if err != nil {
		return err
	}
	pal := BuildPalette(img)
	log.Printf("compress: %dx%d, %d colors, %d-byte indices",
		img.Width(), img.Height(), pal.Len(), pal.IndexWidth())

	useZstd := opts.Zstd || strings.HasSuffix(strings.ToLower(out), ".zst")
	return writeOutput(out, func(w io.Writer) error {
		if !useZstd {
			return EncodeCPPM(w, img, pal)
		}
		zw, err := newZstdWriter(w)
		if err != nil {
			return err
		}
		if err := EncodeCPPM(zw, img, pal); err != nil {
			zw.Close()
			return err
		}
		return zw.Close()
	})
}

// LoadCPPM reads a C6 image from path, unwrapping a zstd frame if present.
func LoadCPPM(path string) (*imageutil.Image, error) {
	f, err := openInput(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	br, release, err := unwrapZstd(bufio.NewReader(f))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	defer release()

	img, err := DecodeCPPM(br)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return img, nil
}

// Decompress converts a C6 image at in back to P6.
func Decompress(in, out string) error {
	img, err := LoadCPPM(in)
	if err != nil {
		return err
	}
	return SavePPM(out, img)
}

// ResizeFile resizes the P6 image at in. An empty filter or "bilinear"
// uses the native sampler; other names select an imageutil filter.
func ResizeFile(in, out string, width, height int, filter string) error {
	if width < 1 || height < 1 {
		return fmt.Errorf("%w: resize target %dx%d", ErrInvalidArgument, width, height)
	}
	var interp imageutil.Interpolation
	native := filter == "" || strings.EqualFold(filter, "bilinear")
	if !native {
		var err error
		if interp, err = imageutil.ParseInterpolation(filter); err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidArgument, err)
		}
	}

	img, err := LoadPPM(in)
	if err != nil {
		return err
	}

	var resized *imageutil.Image
	if native {
		if resized, err = Resize(img, width, height); err != nil {
			return err
		}
	} else {
		resized = imageutil.Resample(img, width, height, interp)
	}
	return SavePPM(out, resized)
}

// MaxLevelFile rescales the P6 image at in to a new max color value.
func MaxLevelFile(in, out string, newMax int) error {
	if newMax < 0 || newMax > imageutil.MaxColor16 {
		return fmt.Errorf("%w: maxlevel %d", ErrInvalidArgument, newMax)
	}
	img, err := LoadPPM(in)
	if err != nil {
		return err
	}
	if err := MaxLevel(img, newMax); err != nil {
		return err
	}
	return SavePPM(out, img)
}

// CutfreqFile removes the n least frequent colors of the P6 image at in.
func CutfreqFile(in, out string, n int, opts CutfreqOptions) error {
	if n < 1 {
		return fmt.Errorf("%w: cutfreq count %d, must be >= 1", ErrInvalidArgument, n)
	}
	img, err := LoadPPM(in)
	if err != nil {
		return err
	}
	if _, err := Cutfreq(img, n, opts); err != nil {
		return err
	}
	return SavePPM(out, img)
}

// Export writes the P6 image at in as PNG, JPEG, GIF or TIFF depending on
// the extension of out.
func Export(in, out string) error {
	if !imageutil.SupportedExt(out) {
		return fmt.Errorf("%w: unsupported export format %q", ErrInvalidArgument, out)
	}
	img, err := LoadPPM(in)
	if err != nil {
		return err
	}
	return classifyImageErr(imageutil.SaveImage(img, out))
}

// Import converts a PNG, JPEG, GIF or TIFF image at in to an 8-bit P6
// image.
func Import(in, out string) error {
	img, err := imageutil.LoadImage(in, imageutil.MaxColor8)
	if err != nil {
		return classifyImageErr(err)
	}
	return SavePPM(out, img)
}

// classifyImageErr tags an imageutil error with ErrFileOpen when the
// filesystem failed and ErrFormat when encoding or decoding did.
func classifyImageErr(err error) error {
	if err == nil {
		return nil
	}
	var pathErr *fs.PathError
	if errors.As(err, &pathErr) {
		return fmt.Errorf("%w: %w", ErrFileOpen, err)
	}
	return fmt.Errorf("%w: %w", ErrFormat, err)
}
