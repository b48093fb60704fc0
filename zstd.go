package imtool

import (
	"bufio"
	"bytes"
	"io"

	"github.com/klauspost/compress/zstd"
)

var zstdMagic = []byte{0x28, 0xb5, 0x2f, 0xfd}

// newZstdWriter wraps w in a single-threaded zstd encoder. Callers must
// Close the encoder to flush the frame.
func newZstdWriter(w io.Writer) (*zstd.Encoder, error) {
	return zstd.NewWriter(
		w,
		zstd.WithEncoderConcurrency(1),
		zstd.WithEncoderLevel(zstd.SpeedBetterCompression),
		zstd.WithLowerEncoderMem(true),
	)
}

// isZstd reports whether br starts with a zstd frame.
func isZstd(br *bufio.Reader) bool {
	head, err := br.Peek(len(zstdMagic))
	return err == nil && bytes.Equal(head, zstdMagic)
}

// unwrapZstd returns a reader over the decompressed stream when br holds
// a zstd frame, or br itself otherwise. The returned func releases the
// decoder.
func unwrapZstd(br *bufio.Reader) (*bufio.Reader, func(), error) {
	if !isZstd(br) {
		return br, func() {}, nil
	}
	dec, err := zstd.NewReader(
		br,
		zstd.WithDecoderConcurrency(1),
		zstd.WithDecoderLowmem(true),
	)
	if err != nil {
		return nil, nil, err
	}
	return bufio.NewReader(dec), dec.Close, nil
}
