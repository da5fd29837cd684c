package dynamic

import (
	"fmt"
	"math"
	"net/netip"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/koehlma/binarize/errs"
	"github.com/koehlma/binarize/primitive"
)

// endMarker is the internal decode result of the END sentinel. It terminates
// indefinite sequences and maps and never escapes the package.
type endMarker struct{}

// Decode decodes a single value from the start of data. Trailing bytes are
// ignored; use Unpack to learn the consumed length.
func Decode(data []byte) (any, error) {
	_, v, err := Unpack(data, 0)

	return v, err
}

// Unpack decodes a single value from data starting at offset and returns the
// first unread position.
func Unpack(data []byte, offset int) (int, any, error) {
	off, v, err := unpack(data, offset)
	if err != nil {
		return offset, nil, err
	}
	if _, isEnd := v.(endMarker); isEnd {
		return offset, nil, fmt.Errorf("%w: unexpected end sentinel", errs.ErrInvalidConstructor)
	}

	return off, v, nil
}

func unpack(data []byte, offset int) (int, any, error) {
	if offset < 0 || offset >= len(data) {
		return offset, nil, errs.ErrTruncatedBuffer
	}

	c := data[offset]
	offset++

	switch c >> 5 {
	case 0:
		return offset, int64(c), nil
	case 1:
		return offset, -int64(c & 31), nil
	case 2:
		return readString(data, offset, int(c&31))
	case 3:
		return readBytes(data, offset, int(c&31))
	case 4:
		return readSeq(data, offset, int(c&31))
	case 5:
		return readMap(data, offset, int(c&31))
	}

	switch c {
	case tagUint8:
		if err := need(data, offset, 1); err != nil {
			return offset, nil, err
		}
		return offset + 1, int64(data[offset]), nil
	case tagNegUint8:
		if err := need(data, offset, 1); err != nil {
			return offset, nil, err
		}
		return offset + 1, -int64(data[offset]), nil
	case tagUint16:
		if err := need(data, offset, 2); err != nil {
			return offset, nil, err
		}
		return offset + 2, int64(engine.Uint16(data[offset:])), nil
	case tagNegUint16:
		if err := need(data, offset, 2); err != nil {
			return offset, nil, err
		}
		return offset + 2, -int64(engine.Uint16(data[offset:])), nil
	case tagUint32:
		if err := need(data, offset, 4); err != nil {
			return offset, nil, err
		}
		return offset + 4, int64(engine.Uint32(data[offset:])), nil
	case tagNegUint32:
		if err := need(data, offset, 4); err != nil {
			return offset, nil, err
		}
		return offset + 4, -int64(engine.Uint32(data[offset:])), nil
	case tagUint64:
		if err := need(data, offset, 8); err != nil {
			return offset, nil, err
		}
		return offset + 8, unsignedValue(engine.Uint64(data[offset:])), nil
	case tagNegUint64:
		if err := need(data, offset, 8); err != nil {
			return offset, nil, err
		}
		v, err := negatedValue(engine.Uint64(data[offset:]))
		if err != nil {
			return offset, nil, err
		}
		return offset + 8, v, nil
	case tagDouble:
		return primitive.DOUBLE.Unpack(data, offset)
	case tagDecimal32:
		return primitive.DECIMAL32.Unpack(data, offset)
	case tagDecimal64:
		return primitive.DECIMAL64.Unpack(data, offset)
	case tagDecimal128:
		return primitive.DECIMAL128.Unpack(data, offset)
	case tagTrue:
		return offset, true, nil
	case tagFalse:
		return offset, false, nil
	case tagNull:
		return offset, nil, nil
	case tagVarint:
		off, v, err := primitive.VARINT.Unpack(data, offset)
		if err != nil {
			return offset, nil, err
		}
		return off, unsignedValue(v.(uint64)), nil
	case tagNegVarint:
		off, v, err := primitive.VARINT.Unpack(data, offset)
		if err != nil {
			return offset, nil, err
		}
		neg, err := negatedValue(v.(uint64))
		if err != nil {
			return offset, nil, err
		}
		return off, neg, nil
	case tagIPv4:
		if err := need(data, offset, 4); err != nil {
			return offset, nil, err
		}
		return offset + 4, netip.AddrFrom4([4]byte(data[offset : offset+4])), nil
	case tagIPv6:
		// The full 16 bytes of the address; the legacy decoder consumed
		// only 8.
		if err := need(data, offset, 16); err != nil {
			return offset, nil, err
		}
		return offset + 16, netip.AddrFrom16([16]byte(data[offset : offset+16])), nil
	case tagUUID:
		if err := need(data, offset, 16); err != nil {
			return offset, nil, err
		}
		u, err := uuid.FromBytes(data[offset : offset+16])
		if err != nil {
			return offset, nil, err
		}
		return offset + 16, u, nil
	case tagSeq:
		return readIndefiniteSeq(data, offset)
	case tagMap:
		return readIndefiniteMap(data, offset)
	case tagEnd:
		return offset, endMarker{}, nil
	case tagStr8, tagStr16, tagStr32, tagStr64:
		offset, n, err := readLength(data, offset, 1<<(c-tagStr8))
		if err != nil {
			return offset, nil, err
		}
		return readString(data, offset, n)
	case tagBytes8, tagBytes16, tagBytes32, tagBytes64:
		offset, n, err := readLength(data, offset, 1<<(c-tagBytes8))
		if err != nil {
			return offset, nil, err
		}
		return readBytes(data, offset, n)
	default:
		return offset, nil, fmt.Errorf("%w: 0x%02X", errs.ErrInvalidConstructor, c)
	}
}

func need(data []byte, offset, n int) error {
	if offset+n > len(data) {
		return fmt.Errorf("%w: need %d bytes at offset %d, have %d", errs.ErrTruncatedBuffer, n, offset, len(data))
	}

	return nil
}

// unsignedValue surfaces decoded magnitudes as int64 where possible and
// uint64 only beyond the int64 range.
func unsignedValue(n uint64) any {
	if n > math.MaxInt64 {
		return n
	}

	return int64(n)
}

func negatedValue(mag uint64) (any, error) {
	switch {
	case mag > 1<<63:
		return nil, fmt.Errorf("%w: -%d underflows 64 bits", errs.ErrValueOutOfRange, mag)
	case mag == 1<<63:
		return int64(math.MinInt64), nil
	default:
		return -int64(mag), nil
	}
}

func readLength(data []byte, offset, width int) (int, int, error) {
	if err := need(data, offset, width); err != nil {
		return offset, 0, err
	}

	var n uint64
	switch width {
	case 1:
		n = uint64(data[offset])
	case 2:
		n = uint64(engine.Uint16(data[offset:]))
	case 4:
		n = uint64(engine.Uint32(data[offset:]))
	default:
		n = engine.Uint64(data[offset:])
	}
	if n > math.MaxInt32 {
		return offset, 0, fmt.Errorf("%w: length %d", errs.ErrValueOutOfRange, n)
	}

	return offset + width, int(n), nil
}

func readString(data []byte, offset, n int) (int, any, error) {
	if err := need(data, offset, n); err != nil {
		return offset, nil, err
	}

	raw := data[offset : offset+n]
	if !utf8.Valid(raw) {
		return offset, nil, errs.ErrInvalidUTF8
	}

	return offset + n, string(raw), nil
}

func readBytes(data []byte, offset, n int) (int, any, error) {
	if err := need(data, offset, n); err != nil {
		return offset, nil, err
	}

	out := make([]byte, n)
	copy(out, data[offset:offset+n])

	return offset + n, out, nil
}

func readSeq(data []byte, offset, count int) (int, any, error) {
	items := make([]any, 0, count)
	for i := 0; i < count; i++ {
		var item any
		var err error
		offset, item, err = unpack(data, offset)
		if err != nil {
			return offset, nil, err
		}
		if _, isEnd := item.(endMarker); isEnd {
			return offset, nil, fmt.Errorf("%w: end sentinel inside counted sequence", errs.ErrInvalidConstructor)
		}
		items = append(items, item)
	}

	return offset, items, nil
}

func readIndefiniteSeq(data []byte, offset int) (int, any, error) {
	items := []any{}
	for {
		var item any
		var err error
		offset, item, err = unpack(data, offset)
		if err != nil {
			return offset, nil, err
		}
		if _, isEnd := item.(endMarker); isEnd {
			return offset, items, nil
		}
		items = append(items, item)
	}
}

func readMap(data []byte, offset, count int) (int, any, error) {
	m := make(map[any]any, count)
	for i := 0; i < count; i++ {
		var err error
		offset, _, err = readPair(data, offset, m, false)
		if err != nil {
			return offset, nil, err
		}
	}

	return offset, m, nil
}

func readIndefiniteMap(data []byte, offset int) (int, any, error) {
	m := map[any]any{}
	for {
		var done bool
		var err error
		offset, done, err = readPair(data, offset, m, true)
		if err != nil {
			return offset, nil, err
		}
		if done {
			return offset, m, nil
		}
	}
}

// readPair decodes one key/value pair into m. An END sentinel in key
// position reports done; it is only legal in indefinite mode.
func readPair(data []byte, offset int, m map[any]any, indefinite bool) (int, bool, error) {
	offset, key, err := unpack(data, offset)
	if err != nil {
		return offset, false, err
	}
	if _, isEnd := key.(endMarker); isEnd {
		if !indefinite {
			return offset, true, fmt.Errorf("%w: end sentinel inside counted map", errs.ErrInvalidConstructor)
		}
		return offset, true, nil
	}
	if !comparableKey(key) {
		return offset, false, fmt.Errorf("%w: %T", errs.ErrInvalidMapKey, key)
	}

	offset, value, err := unpack(data, offset)
	if err != nil {
		return offset, false, err
	}
	if _, isEnd := value.(endMarker); isEnd {
		return offset, false, fmt.Errorf("%w: end sentinel in value position", errs.ErrInvalidConstructor)
	}
	m[key] = value

	return offset, false, nil
}

func comparableKey(key any) bool {
	switch key.(type) {
	case []any, map[any]any, []byte:
		return false
	default:
		return true
	}
}
