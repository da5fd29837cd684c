package primitive

import (
	"fmt"
	"math"

	"github.com/koehlma/binarize/errs"
)

// Frame bases of the tiered SIZE format. Each base equals the previous
// frame's exclusive ceiling, which keeps the mapping monotone across frames.
const (
	sizeFrame2Base uint64 = 128
	sizeFrame3Base uint64 = 8320
	sizeFrame5Base uint64 = 2105472
	sizeFrame9Base uint64 = 137441058944
)

func appendVarintValue(dst []byte, value any) ([]byte, error) {
	n, err := asUint64(value)
	if err != nil {
		return dst, err
	}

	return appendVarint(dst, n), nil
}

// appendVarint emits base-128 LEB128: seven value bits per byte, low group
// first, high bit as continuation.
func appendVarint(dst []byte, n uint64) []byte {
	for n > 127 {
		dst = append(dst, byte(n&127|128))
		n >>= 7
	}

	return append(dst, byte(n))
}

func readVarintValue(data []byte, offset int) (int, any, error) {
	off, n, err := readVarint(data, offset)
	if err != nil {
		return offset, nil, err
	}

	return off, n, nil
}

func readVarint(data []byte, offset int) (int, uint64, error) {
	var value uint64
	var shift uint
	for {
		if offset >= len(data) {
			return offset, 0, errs.ErrTruncatedBuffer
		}
		b := data[offset]
		offset++

		if shift > 63 || (shift == 63 && b&127 > 1) {
			return offset, 0, fmt.Errorf("%w: varint overflows 64 bits", errs.ErrValueOutOfRange)
		}
		value |= uint64(b&127) << shift

		if b&128 == 0 {
			return offset, value, nil
		}
		shift += 7
	}
}

func appendSizeValue(dst []byte, value any) ([]byte, error) {
	n, err := asUint64(value)
	if err != nil {
		return dst, err
	}

	return appendSize(dst, n), nil
}

// appendSize emits the tiered size format: a 1-byte frame for sizes below
// 128, then 2/3/5/9-byte frames selected by the smallest range that contains
// the value. Every 64-bit size fits the 9-byte frame.
func appendSize(dst []byte, n uint64) []byte {
	switch {
	case n < sizeFrame2Base:
		return append(dst, byte(n))
	case n < sizeFrame3Base:
		return engine.AppendUint16(dst, uint16(0x8000|(n-sizeFrame2Base)))
	case n < sizeFrame5Base:
		x := 0xA00000 | (n - sizeFrame3Base)
		return append(dst, byte(x>>16), byte(x>>8), byte(x))
	case n < sizeFrame9Base:
		x := 0xC000000000 | (n - sizeFrame5Base)
		return append(dst, byte(x>>32), byte(x>>24), byte(x>>16), byte(x>>8), byte(x))
	default:
		dst = append(dst, 0xE0)
		return engine.AppendUint64(dst, n-sizeFrame9Base)
	}
}

func readSizeValue(data []byte, offset int) (int, any, error) {
	off, n, err := readSize(data, offset)
	if err != nil {
		return offset, nil, err
	}

	return off, n, nil
}

func readSize(data []byte, offset int) (int, uint64, error) {
	if err := need(data, offset, 1); err != nil {
		return offset, 0, err
	}

	b0 := data[offset]
	if b0&0x80 == 0 {
		return offset + 1, uint64(b0), nil
	}

	switch b0 >> 5 & 3 {
	case 0:
		if err := need(data, offset, 2); err != nil {
			return offset, 0, err
		}
		n := uint64(engine.Uint16(data[offset:]))&8191 + sizeFrame2Base

		return offset + 2, n, nil
	case 1:
		if err := need(data, offset, 3); err != nil {
			return offset, 0, err
		}
		x := uint64(data[offset])<<16 | uint64(data[offset+1])<<8 | uint64(data[offset+2])
		n := x&2097151 + sizeFrame3Base

		return offset + 3, n, nil
	case 2:
		if err := need(data, offset, 5); err != nil {
			return offset, 0, err
		}
		x := uint64(data[offset])<<32 | uint64(data[offset+1])<<24 | uint64(data[offset+2])<<16 |
			uint64(data[offset+3])<<8 | uint64(data[offset+4])
		n := x&137438953471 + sizeFrame5Base

		return offset + 5, n, nil
	default:
		if err := need(data, offset, 9); err != nil {
			return offset, 0, err
		}
		hi := uint64(b0 & 0x1F)
		lo := engine.Uint64(data[offset+1:])
		if hi != 0 || lo > math.MaxUint64-sizeFrame9Base {
			return offset, 0, fmt.Errorf("%w: size overflows 64 bits", errs.ErrValueOutOfRange)
		}

		return offset + 9, lo + sizeFrame9Base, nil
	}
}
