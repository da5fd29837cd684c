package primitive

import (
	"fmt"
	"math"

	"github.com/koehlma/binarize/errs"
)

func asFloat64(value any) (float64, error) {
	switch f := value.(type) {
	case float32:
		return float64(f), nil
	case float64:
		return f, nil
	default:
		return 0, fmt.Errorf("%w: got %T", errs.ErrInvalidValue, value)
	}
}

func appendFloat(dst []byte, value any) ([]byte, error) {
	f, err := asFloat64(value)
	if err != nil {
		return dst, err
	}

	return engine.AppendUint32(dst, math.Float32bits(float32(f))), nil
}

func readFloat(data []byte, offset int) (int, any, error) {
	if err := need(data, offset, 4); err != nil {
		return offset, nil, err
	}

	return offset + 4, math.Float32frombits(engine.Uint32(data[offset:])), nil
}

func appendDouble(dst []byte, value any) ([]byte, error) {
	f, err := asFloat64(value)
	if err != nil {
		return dst, err
	}

	return engine.AppendUint64(dst, math.Float64bits(f)), nil
}

func readDouble(data []byte, offset int) (int, any, error) {
	if err := need(data, offset, 8); err != nil {
		return offset, nil, err
	}

	return offset + 8, math.Float64frombits(engine.Uint64(data[offset:])), nil
}
