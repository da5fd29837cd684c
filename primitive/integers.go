package primitive

import (
	"fmt"
	"math"

	"github.com/koehlma/binarize/endian"
	"github.com/koehlma/binarize/errs"
)

// engine is the wire byte order for every multi-byte primitive.
var engine = endian.GetBigEndianEngine()

func need(data []byte, offset, n int) error {
	if offset < 0 || offset+n > len(data) {
		return fmt.Errorf("%w: need %d bytes at offset %d, have %d", errs.ErrTruncatedBuffer, n, offset, len(data))
	}

	return nil
}

// asInt64 coerces any Go integer value to int64.
func asInt64(value any) (int64, error) {
	switch n := value.(type) {
	case int:
		return int64(n), nil
	case int8:
		return int64(n), nil
	case int16:
		return int64(n), nil
	case int32:
		return int64(n), nil
	case int64:
		return n, nil
	case uint:
		if uint64(n) > math.MaxInt64 {
			return 0, fmt.Errorf("%w: %d", errs.ErrValueOutOfRange, n)
		}
		return int64(n), nil
	case uint8:
		return int64(n), nil
	case uint16:
		return int64(n), nil
	case uint32:
		return int64(n), nil
	case uint64:
		if n > math.MaxInt64 {
			return 0, fmt.Errorf("%w: %d", errs.ErrValueOutOfRange, n)
		}
		return int64(n), nil
	default:
		return 0, fmt.Errorf("%w: got %T", errs.ErrInvalidValue, value)
	}
}

// asUint64 coerces any non-negative Go integer value to uint64.
func asUint64(value any) (uint64, error) {
	switch n := value.(type) {
	case int:
		if n < 0 {
			return 0, fmt.Errorf("%w: %d", errs.ErrValueOutOfRange, n)
		}
		return uint64(n), nil
	case int8:
		if n < 0 {
			return 0, fmt.Errorf("%w: %d", errs.ErrValueOutOfRange, n)
		}
		return uint64(n), nil
	case int16:
		if n < 0 {
			return 0, fmt.Errorf("%w: %d", errs.ErrValueOutOfRange, n)
		}
		return uint64(n), nil
	case int32:
		if n < 0 {
			return 0, fmt.Errorf("%w: %d", errs.ErrValueOutOfRange, n)
		}
		return uint64(n), nil
	case int64:
		if n < 0 {
			return 0, fmt.Errorf("%w: %d", errs.ErrValueOutOfRange, n)
		}
		return uint64(n), nil
	case uint:
		return uint64(n), nil
	case uint8:
		return uint64(n), nil
	case uint16:
		return uint64(n), nil
	case uint32:
		return uint64(n), nil
	case uint64:
		return n, nil
	default:
		return 0, fmt.Errorf("%w: got %T", errs.ErrInvalidValue, value)
	}
}

func checkSigned(n, min, max int64) error {
	if n < min || n > max {
		return fmt.Errorf("%w: %d not in [%d, %d]", errs.ErrValueOutOfRange, n, min, max)
	}

	return nil
}

func checkUnsigned(n, max uint64) error {
	if n > max {
		return fmt.Errorf("%w: %d exceeds %d", errs.ErrValueOutOfRange, n, max)
	}

	return nil
}

func appendSint8(dst []byte, value any) ([]byte, error) {
	n, err := asInt64(value)
	if err != nil {
		return dst, err
	}
	if err := checkSigned(n, math.MinInt8, math.MaxInt8); err != nil {
		return dst, err
	}

	return append(dst, byte(int8(n))), nil
}

func readSint8(data []byte, offset int) (int, any, error) {
	if err := need(data, offset, 1); err != nil {
		return offset, nil, err
	}

	return offset + 1, int8(data[offset]), nil
}

func appendUint8(dst []byte, value any) ([]byte, error) {
	n, err := asUint64(value)
	if err != nil {
		return dst, err
	}
	if err := checkUnsigned(n, math.MaxUint8); err != nil {
		return dst, err
	}

	return append(dst, byte(n)), nil
}

func readUint8(data []byte, offset int) (int, any, error) {
	if err := need(data, offset, 1); err != nil {
		return offset, nil, err
	}

	return offset + 1, data[offset], nil
}

func appendSint16(dst []byte, value any) ([]byte, error) {
	n, err := asInt64(value)
	if err != nil {
		return dst, err
	}
	if err := checkSigned(n, math.MinInt16, math.MaxInt16); err != nil {
		return dst, err
	}

	return engine.AppendUint16(dst, uint16(int16(n))), nil
}

func readSint16(data []byte, offset int) (int, any, error) {
	if err := need(data, offset, 2); err != nil {
		return offset, nil, err
	}

	return offset + 2, int16(engine.Uint16(data[offset:])), nil
}

func appendUint16(dst []byte, value any) ([]byte, error) {
	n, err := asUint64(value)
	if err != nil {
		return dst, err
	}
	if err := checkUnsigned(n, math.MaxUint16); err != nil {
		return dst, err
	}

	return engine.AppendUint16(dst, uint16(n)), nil
}

func readUint16(data []byte, offset int) (int, any, error) {
	if err := need(data, offset, 2); err != nil {
		return offset, nil, err
	}

	return offset + 2, engine.Uint16(data[offset:]), nil
}

func appendSint32(dst []byte, value any) ([]byte, error) {
	n, err := asInt64(value)
	if err != nil {
		return dst, err
	}
	if err := checkSigned(n, math.MinInt32, math.MaxInt32); err != nil {
		return dst, err
	}

	return engine.AppendUint32(dst, uint32(int32(n))), nil
}

func readSint32(data []byte, offset int) (int, any, error) {
	if err := need(data, offset, 4); err != nil {
		return offset, nil, err
	}

	return offset + 4, int32(engine.Uint32(data[offset:])), nil
}

func appendUint32(dst []byte, value any) ([]byte, error) {
	n, err := asUint64(value)
	if err != nil {
		return dst, err
	}
	if err := checkUnsigned(n, math.MaxUint32); err != nil {
		return dst, err
	}

	return engine.AppendUint32(dst, uint32(n)), nil
}

func readUint32(data []byte, offset int) (int, any, error) {
	if err := need(data, offset, 4); err != nil {
		return offset, nil, err
	}

	return offset + 4, engine.Uint32(data[offset:]), nil
}

func appendSint64(dst []byte, value any) ([]byte, error) {
	n, err := asInt64(value)
	if err != nil {
		return dst, err
	}

	return engine.AppendUint64(dst, uint64(n)), nil
}

func readSint64(data []byte, offset int) (int, any, error) {
	if err := need(data, offset, 8); err != nil {
		return offset, nil, err
	}

	return offset + 8, int64(engine.Uint64(data[offset:])), nil
}

func appendUint64(dst []byte, value any) ([]byte, error) {
	n, err := asUint64(value)
	if err != nil {
		return dst, err
	}

	return engine.AppendUint64(dst, n), nil
}

func readUint64(data []byte, offset int) (int, any, error) {
	if err := need(data, offset, 8); err != nil {
		return offset, nil, err
	}

	return offset + 8, engine.Uint64(data[offset:]), nil
}
