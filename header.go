package imtool

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"slices"
	"strconv"

	"github.com/wbrown/imtool/imageutil"
)

// byteOrder is used for every multi-byte channel and index value. It
// matches the native layout of x86 hosts.
var byteOrder = binary.LittleEndian

const (
	magicPPM  = "P6"
	magicCPPM = "C6"
)

func isSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r' || b == '\v' || b == '\f'
}

// readToken skips whitespace and '#' comments and returns the next
// whitespace-delimited token. The delimiter after the token is left
// unread.
func readToken(r *bufio.Reader) (string, error) {
	for {
		b, err := r.ReadByte()
		if err != nil {
			return "", err
		}
		if b == '#' {
			if _, err := r.ReadString('\n'); err != nil {
				return "", err
			}
			continue
		}
		if isSpace(b) {
			continue
		}
		tok := []byte{b}
		for {
			b, err = r.ReadByte()
			if err == io.EOF {
				return string(tok), nil
			}
			if err != nil {
				return "", err
			}
			if isSpace(b) {
				return string(tok), r.UnreadByte()
			}
			tok = append(tok, b)
		}
	}
}

// readHeader reads the magic token followed by n non-negative decimal
// fields, then consumes the single whitespace byte that separates the
// header from binary data.
func readHeader(r *bufio.Reader, magic string, n int) ([]int, error) {
	tok, err := readToken(r)
	if err != nil {
		return nil, fmt.Errorf("%w: missing magic: %v", ErrFormat, err)
	}
	if tok != magic {
		return nil, fmt.Errorf("%w: expected magic %q, got %q", ErrFormat, magic, tok)
	}

	fields := make([]int, n)
	for i := range fields {
		tok, err = readToken(r)
		if err != nil {
			return nil, fmt.Errorf("%w: missing header field %d: %v", ErrFormat, i+1, err)
		}
		v, err := strconv.Atoi(tok)
		if err != nil || v < 0 {
			return nil, fmt.Errorf("%w: bad header field %q", ErrFormat, tok)
		}
		fields[i] = v
	}

	b, err := r.ReadByte()
	if err != nil {
		// A header with no data following it is only valid for empty
		// rasters; the data reader reports truncation otherwise.
		if errors.Is(err, io.EOF) {
			return fields, nil
		}
		return nil, err
	}
	if !isSpace(b) {
		return nil, fmt.Errorf("%w: header not terminated by whitespace", ErrFormat)
	}
	return fields, nil
}

func checkDepth(maxColor int) error {
	if maxColor > imageutil.MaxColor16 {
		return fmt.Errorf("%w: %d", ErrUnsupportedDepth, maxColor)
	}
	return nil
}

// channelWidth returns the bytes used per channel for a max color value.
func channelWidth(maxColor int) int {
	if maxColor <= imageutil.MaxColor8 {
		return 1
	}
	return 2
}

// readChunk bounds each allocation made while reading raster data, so a
// header claiming more data than the stream holds fails with
// ErrTruncatedData instead of allocating the claimed size up front.
const readChunk = 1 << 20

// dataSize multiplies header-derived factors, failing with ErrFormat when
// the product does not fit in an int.
func dataSize(what string, factors ...int) (int, error) {
	n := 1
	for _, f := range factors {
		if f != 0 && n > math.MaxInt/f {
			return 0, fmt.Errorf("%w: %s size overflows", ErrFormat, what)
		}
		n *= f
	}
	return n, nil
}

// readBounded reads exactly n bytes, growing the buffer one chunk at a
// time. Short reads surface as ErrTruncatedData.
func readBounded(r io.Reader, n int, what string) ([]byte, error) {
	buf := make([]byte, 0, min(n, readChunk))
	for len(buf) < n {
		chunk := min(n-len(buf), readChunk)
		buf = slices.Grow(buf, chunk)
		m, err := io.ReadFull(r, buf[len(buf):len(buf)+chunk])
		buf = buf[:len(buf)+m]
		if err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
				return nil, fmt.Errorf("%w: %s: need %d bytes, got %d",
					ErrTruncatedData, what, n, len(buf))
			}
			return nil, err
		}
	}
	return buf, nil
}

// decodeTriples decodes len(dst) RGB triples from buf at the given
// channel width.
func decodeTriples(dst []imageutil.RGB, buf []byte, width int) {
	if width == 1 {
		for i := range dst {
			o := i * 3
			dst[i] = imageutil.RGB{
				R: uint16(buf[o]),
				G: uint16(buf[o+1]),
				B: uint16(buf[o+2]),
			}
		}
		return
	}
	for i := range dst {
		o := i * 6
		dst[i] = imageutil.RGB{
			R: byteOrder.Uint16(buf[o:]),
			G: byteOrder.Uint16(buf[o+2:]),
			B: byteOrder.Uint16(buf[o+4:]),
		}
	}
}

// checkChannels fails with ErrFormat when any channel exceeds maxColor.
func checkChannels(colors []imageutil.RGB, maxColor int, what string) error {
	m := uint16(maxColor)
	for i, c := range colors {
		if c.R > m || c.G > m || c.B > m {
			return fmt.Errorf("%w: %s %d %v exceeds max color %d",
				ErrFormat, what, i, c, maxColor)
		}
	}
	return nil
}

// encodeTriples appends src to buf at the given channel width.
func encodeTriples(buf []byte, src []imageutil.RGB, width int) []byte {
	if width == 1 {
		for _, c := range src {
			buf = append(buf, byte(c.R), byte(c.G), byte(c.B))
		}
		return buf
	}
	for _, c := range src {
		buf = byteOrder.AppendUint16(buf, c.R)
		buf = byteOrder.AppendUint16(buf, c.G)
		buf = byteOrder.AppendUint16(buf, c.B)
	}
	return buf
}
