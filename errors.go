package imtool

import "errors"

var (
	ErrFileOpen         = errors.New("imtool: cannot open file")
	ErrFormat           = errors.New("imtool: malformed image header")
	ErrTruncatedData    = errors.New("imtool: data truncated")
	ErrCorruptIndex     = errors.New("imtool: palette index out of range")
	ErrInvalidArgument  = errors.New("imtool: invalid argument")
	ErrUnsupportedDepth = errors.New("imtool: unsupported max color value")
)
