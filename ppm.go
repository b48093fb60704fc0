package imtool

import (
	"bufio"
	"fmt"
	"io"

	"github.com/wbrown/imtool/imageutil"
)

// ReadPPM decodes a binary P6 image. Channels are one byte when the max
// color value is at most 255 and two bytes otherwise. Channels above the
// max color are rejected with ErrFormat.
func ReadPPM(r io.Reader) (*imageutil.Image, error) {
	br := bufio.NewReader(r)
	fields, err := readHeader(br, magicPPM, 3)
	if err != nil {
		return nil, err
	}
	width, height, maxColor := fields[0], fields[1], fields[2]
	if err := checkDepth(maxColor); err != nil {
		return nil, err
	}

	cw := channelWidth(maxColor)
	n, err := dataSize("raster", width, height, 3, cw)
	if err != nil {
		return nil, err
	}
	buf, err := readBounded(br, n, "pixel data")
	if err != nil {
		return nil, err
	}

	pix := make([]imageutil.RGB, width*height)
	decodeTriples(pix, buf, cw)
	img, err := imageutil.NewImageFromPixels(width, height, maxColor, pix)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFormat, err)
	}
	if err := img.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFormat, err)
	}
	return img, nil
}

// WritePPM encodes img as a binary P6 image.
func WritePPM(w io.Writer, img *imageutil.Image) error {
	if err := checkDepth(img.MaxColor()); err != nil {
		return err
	}
	bw := bufio.NewWriter(w)
	if _, err := fmt.Fprintf(bw, "%s\n%d %d\n%d\n",
		magicPPM, img.Width(), img.Height(), img.MaxColor()); err != nil {
		return err
	}

	// write raster one row at a time
	cw := channelWidth(img.MaxColor())
	row := make([]byte, 0, img.Width()*3*cw)
	for y := 0; y < img.Height(); y++ {
		start := y * img.Width()
		row = encodeTriples(row[:0], img.Pix[start:start+img.Width()], cw)
		if _, err := bw.Write(row); err != nil {
			return err
		}
	}
	return bw.Flush()
}
