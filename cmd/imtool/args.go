package main

import (
	"fmt"
	"strconv"
)

const (
	opCompress   = "compress"
	opDecompress = "decompress"
	opResize     = "resize"
	opMaxLevel   = "maxlevel"
	opCutfreq    = "cutfreq"
	opInfo       = "info"
	opExport     = "export"
	opImport     = "import"
)

// extraArgs is the number of arguments each operation takes after its
// name.
var extraArgs = map[string]int{
	opCompress:   0,
	opDecompress: 0,
	opResize:     2,
	opMaxLevel:   1,
	opCutfreq:    1,
	opInfo:       0,
	opExport:     0,
	opImport:     0,
}

type request struct {
	input, output, op string
	width, height     int
	level             int
	count             int
}

// parseRequest validates the positional arguments of one invocation.
func parseRequest(args []string) (request, error) {
	if len(args) < 3 {
		return request{}, fmt.Errorf("expected <input> <output> <operation>, got %d arguments", len(args))
	}
	req := request{input: args[0], output: args[1], op: args[2]}
	want, ok := extraArgs[req.op]
	if !ok {
		return request{}, fmt.Errorf("unknown operation %q", req.op)
	}
	extra := args[3:]
	if len(extra) != want {
		return request{}, fmt.Errorf("%s takes %d argument(s), got %d", req.op, want, len(extra))
	}

	var err error
	switch req.op {
	case opResize:
		if req.width, err = positiveInt("width", extra[0]); err != nil {
			return request{}, err
		}
		if req.height, err = positiveInt("height", extra[1]); err != nil {
			return request{}, err
		}
	case opMaxLevel:
		req.level, err = strconv.Atoi(extra[0])
		if err != nil || req.level < 0 || req.level > 65535 {
			return request{}, fmt.Errorf("invalid maxlevel %q, must be in [0, 65535]", extra[0])
		}
	case opCutfreq:
		if req.count, err = positiveInt("cutfreq count", extra[0]); err != nil {
			return request{}, err
		}
	}
	return req, nil
}

func positiveInt(name, s string) (int, error) {
	v, err := strconv.Atoi(s)
	if err != nil || v < 1 {
		return 0, fmt.Errorf("invalid %s %q, must be a positive integer", name, s)
	}
	return v, nil
}
