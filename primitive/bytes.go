package primitive

import (
	"fmt"
	"math"
	"unicode/utf8"

	"github.com/koehlma/binarize/errs"
)

func appendBytesValue(dst []byte, value any, opts Options) ([]byte, error) {
	b, ok := value.([]byte)
	if !ok {
		return dst, fmt.Errorf("%w: got %T", errs.ErrInvalidValue, value)
	}

	return appendRaw(dst, b, opts, 0x00)
}

// appendRaw emits either the variable form (tiered size prefix followed by
// the payload) or the fixed form (exactly opts.size bytes, short values
// padded with the fill byte).
func appendRaw(dst, b []byte, opts Options, defaultFill byte) ([]byte, error) {
	if opts.size == sizeVariable {
		dst = appendSize(dst, uint64(len(b)))
		return append(dst, b...), nil
	}

	missing := opts.size - len(b)
	if missing < 0 {
		return dst, fmt.Errorf("%w: %d bytes into %d", errs.ErrLengthExceeded, len(b), opts.size)
	}
	if missing > 0 && opts.fill == fillNone {
		return dst, fmt.Errorf("%w: %d bytes into %d", errs.ErrLengthUnderrun, len(b), opts.size)
	}

	fill := defaultFill
	if opts.fill >= 0 {
		fill = byte(opts.fill)
	}

	dst = append(dst, b...)
	for i := 0; i < missing; i++ {
		dst = append(dst, fill)
	}

	return dst, nil
}

func readBytesValue(data []byte, offset int, opts Options) (int, any, error) {
	off, raw, err := readRaw(data, offset, opts)
	if err != nil {
		return offset, nil, err
	}

	return off, raw, nil
}

func readRaw(data []byte, offset int, opts Options) (int, []byte, error) {
	n := opts.size
	if n == sizeVariable {
		var sz uint64
		var err error
		offset, sz, err = readSize(data, offset)
		if err != nil {
			return offset, nil, err
		}
		if sz > math.MaxInt32 {
			return offset, nil, fmt.Errorf("%w: length %d", errs.ErrValueOutOfRange, sz)
		}
		n = int(sz)
	}

	if err := need(data, offset, n); err != nil {
		return offset, nil, err
	}

	out := make([]byte, n)
	copy(out, data[offset:offset+n])

	return offset + n, out, nil
}

func appendStringValue(dst []byte, value any, opts Options) ([]byte, error) {
	s, ok := value.(string)
	if !ok {
		return dst, fmt.Errorf("%w: got %T", errs.ErrInvalidValue, value)
	}

	b := []byte(s)
	if opts.enc != nil {
		var err error
		b, err = opts.enc.NewEncoder().Bytes(b)
		if err != nil {
			return dst, fmt.Errorf("%w: %v", errs.ErrEncoding, err)
		}
	}

	return appendRaw(dst, b, opts, 0x20)
}

func readStringValue(data []byte, offset int, opts Options) (int, any, error) {
	off, raw, err := readRaw(data, offset, opts)
	if err != nil {
		return offset, nil, err
	}

	if opts.enc == nil {
		if !utf8.Valid(raw) {
			return offset, nil, errs.ErrInvalidUTF8
		}
		return off, string(raw), nil
	}

	out, err := opts.enc.NewDecoder().Bytes(raw)
	if err != nil {
		return offset, nil, fmt.Errorf("%w: %v", errs.ErrEncoding, err)
	}

	return off, string(out), nil
}

func appendBooleanValue(dst []byte, value any) ([]byte, error) {
	b, ok := value.(bool)
	if !ok {
		return dst, fmt.Errorf("%w: got %T", errs.ErrInvalidValue, value)
	}

	if b {
		return append(dst, 0x01), nil
	}

	return append(dst, 0x00), nil
}

func readBoolean(data []byte, offset int) (int, any, error) {
	if err := need(data, offset, 1); err != nil {
		return offset, nil, err
	}

	return offset + 1, data[offset] != 0, nil
}
