package imtool

import (
	"bufio"
	"fmt"
	"io"

	"github.com/wbrown/imtool/imageutil"
)

// EncodeCPPM writes img in the palette-indexed C6 format:
//
//	C6 <width> <height> <max color> <palette size>\n
//	palette entries, 3 channels each (1 byte if max color <= 255, else 2)
//	one index per pixel, row-major (1, 2 or 4 bytes by palette size)
//
// Every pixel of img must be present in pal.
func EncodeCPPM(w io.Writer, img *imageutil.Image, pal *Palette) error {
	if err := checkDepth(img.MaxColor()); err != nil {
		return err
	}
	bw := bufio.NewWriter(w)
	if _, err := fmt.Fprintf(bw, "%s %d %d %d %d\n", magicCPPM,
		img.Width(), img.Height(), img.MaxColor(), pal.Len()); err != nil {
		return err
	}

	cw := channelWidth(img.MaxColor())
	if _, err := bw.Write(encodeTriples(nil, pal.Colors, cw)); err != nil {
		return err
	}

	iw := pal.IndexWidth()
	var scratch [4]byte
	for i, c := range img.Pix {
		idx, ok := pal.Index(c)
		if !ok {
			return fmt.Errorf("%w: pixel %d color %v missing from palette",
				ErrInvalidArgument, i, c)
		}
		switch iw {
		case 1:
			scratch[0] = byte(idx)
		case 2:
			byteOrder.PutUint16(scratch[:], uint16(idx))
		default:
			byteOrder.PutUint32(scratch[:], idx)
		}
		if _, err := bw.Write(scratch[:iw]); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// DecodeCPPM reads a C6 stream produced by EncodeCPPM and reconstructs the
// image by looking up each index in the stored palette.
func DecodeCPPM(r io.Reader) (*imageutil.Image, error) {
	br, ok := r.(*bufio.Reader)
	if !ok {
		br = bufio.NewReader(r)
	}
	fields, err := readHeader(br, magicCPPM, 4)
	if err != nil {
		return nil, err
	}
	width, height, maxColor, size := fields[0], fields[1], fields[2], fields[3]
	if err := checkDepth(maxColor); err != nil {
		return nil, err
	}

	cw := channelWidth(maxColor)
	n, err := dataSize("palette", size, 3, cw)
	if err != nil {
		return nil, err
	}
	buf, err := readBounded(br, n, "palette")
	if err != nil {
		return nil, err
	}
	colors := make([]imageutil.RGB, size)
	decodeTriples(colors, buf, cw)
	if err := checkChannels(colors, maxColor, "palette entry"); err != nil {
		return nil, err
	}

	iw := indexWidth(size)
	if n, err = dataSize("index", width, height, iw); err != nil {
		return nil, err
	}
	if buf, err = readBounded(br, n, "pixel indices"); err != nil {
		return nil, err
	}
	pix := make([]imageutil.RGB, width*height)
	for i := range pix {
		var idx uint32
		switch iw {
		case 1:
			idx = uint32(buf[i])
		case 2:
			idx = uint32(byteOrder.Uint16(buf[i*2:]))
		default:
			idx = byteOrder.Uint32(buf[i*4:])
		}
		if uint64(idx) >= uint64(size) {
			return nil, fmt.Errorf("%w: pixel %d index %d, palette size %d",
				ErrCorruptIndex, i, idx, size)
		}
		pix[i] = colors[idx]
	}
	img, err := imageutil.NewImageFromPixels(width, height, maxColor, pix)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFormat, err)
	}
	return img, nil
}
