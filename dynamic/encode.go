package dynamic

import (
	"bytes"
	"fmt"
	"net/netip"
	"sort"

	"github.com/cockroachdb/apd/v3"
	"github.com/google/uuid"

	"github.com/koehlma/binarize/endian"
	"github.com/koehlma/binarize/errs"
	"github.com/koehlma/binarize/primitive"
)

var engine = endian.GetBigEndianEngine()

// Encode returns the self-describing wire form of value.
func Encode(value any) ([]byte, error) {
	return Pack(nil, value)
}

// Pack appends the self-describing wire form of value to dst. On error the
// original dst is returned unchanged.
func Pack(dst []byte, value any) ([]byte, error) {
	out, err := pack(dst, value)
	if err != nil {
		return dst, err
	}

	return out, nil
}

func pack(dst []byte, value any) ([]byte, error) {
	switch v := value.(type) {
	case nil:
		return append(dst, tagNull), nil
	case bool:
		if v {
			return append(dst, tagTrue), nil
		}
		return append(dst, tagFalse), nil
	case int:
		return packInt(dst, int64(v)), nil
	case int8:
		return packInt(dst, int64(v)), nil
	case int16:
		return packInt(dst, int64(v)), nil
	case int32:
		return packInt(dst, int64(v)), nil
	case int64:
		return packInt(dst, v), nil
	case uint:
		return packUint(dst, uint64(v)), nil
	case uint8:
		return packUint(dst, uint64(v)), nil
	case uint16:
		return packUint(dst, uint64(v)), nil
	case uint32:
		return packUint(dst, uint64(v)), nil
	case uint64:
		return packUint(dst, v), nil
	case float32:
		return packDouble(dst, float64(v)), nil
	case float64:
		return packDouble(dst, v), nil
	case string:
		return packString(dst, v), nil
	case []byte:
		return packBytes(dst, v), nil
	case []any:
		return packSeq(dst, v)
	case map[any]any:
		return packMap(dst, func(yield func(any, any)) {
			for k, val := range v {
				yield(k, val)
			}
		}, len(v))
	case map[string]any:
		return packMap(dst, func(yield func(any, any)) {
			for k, val := range v {
				yield(k, val)
			}
		}, len(v))
	case *apd.Decimal:
		dst = append(dst, tagDecimal128)
		return primitive.DECIMAL128.Pack(dst, v)
	case apd.Decimal:
		dst = append(dst, tagDecimal128)
		return primitive.DECIMAL128.Pack(dst, &v)
	case netip.Addr:
		return packAddr(dst, v)
	case uuid.UUID:
		dst = append(dst, tagUUID)
		return append(dst, v[:]...), nil
	default:
		return dst, fmt.Errorf("%w: %T", errs.ErrUnsupportedType, value)
	}
}

func packUint(dst []byte, n uint64) []byte {
	switch {
	case n <= groupPayloadMax:
		return append(dst, groupSmallUint|byte(n))
	case n < 1<<8:
		return append(dst, tagUint8, byte(n))
	case n < 1<<16:
		return engine.AppendUint16(append(dst, tagUint16), uint16(n))
	case n < 1<<32:
		return engine.AppendUint32(append(dst, tagUint32), uint32(n))
	default:
		return engine.AppendUint64(append(dst, tagUint64), n)
	}
}

func packInt(dst []byte, n int64) []byte {
	if n >= 0 {
		return packUint(dst, uint64(n))
	}

	mag := uint64(-(n + 1)) + 1
	switch {
	case mag <= groupPayloadMax:
		return append(dst, groupSmallNeg|byte(mag))
	case mag < 1<<8:
		return append(dst, tagNegUint8, byte(mag))
	case mag < 1<<16:
		return engine.AppendUint16(append(dst, tagNegUint16), uint16(mag))
	case mag < 1<<32:
		return engine.AppendUint32(append(dst, tagNegUint32), uint32(mag))
	default:
		return engine.AppendUint64(append(dst, tagNegUint64), mag)
	}
}

func packDouble(dst []byte, f float64) []byte {
	dst = append(dst, tagDouble)
	out, _ := primitive.DOUBLE.Pack(dst, f)

	return out
}

func packLength(dst []byte, shortGroup, longBase byte, n int) []byte {
	switch {
	case n <= groupPayloadMax:
		return append(dst, shortGroup|byte(n))
	case n < 1<<8:
		return append(dst, longBase, byte(n))
	case n < 1<<16:
		return engine.AppendUint16(append(dst, longBase+1), uint16(n))
	case uint64(n) < 1<<32:
		return engine.AppendUint32(append(dst, longBase+2), uint32(n))
	default:
		return engine.AppendUint64(append(dst, longBase+3), uint64(n))
	}
}

func packString(dst []byte, s string) []byte {
	dst = packLength(dst, groupShortStr, tagStr8, len(s))

	return append(dst, s...)
}

func packBytes(dst []byte, b []byte) []byte {
	dst = packLength(dst, groupShortBytes, tagBytes8, len(b))

	return append(dst, b...)
}

func packSeq(dst []byte, items []any) ([]byte, error) {
	indefinite := len(items) > groupPayloadMax
	if indefinite {
		dst = append(dst, tagSeq)
	} else {
		dst = append(dst, groupShortSeq|byte(len(items)))
	}

	var err error
	for _, item := range items {
		dst, err = pack(dst, item)
		if err != nil {
			return dst, err
		}
	}

	if indefinite {
		dst = append(dst, tagEnd)
	}

	return dst, nil
}

// packMap encodes pairs in a canonical order so that map encoding stays a
// pure function of the value: string keys sort lexicographically, any other
// key kinds by their encoded bytes.
func packMap(dst []byte, iterate func(yield func(any, any)), size int) ([]byte, error) {
	type pair struct {
		key     any
		encKey  []byte
		encItem []byte
	}

	pairs := make([]pair, 0, size)
	var iterErr error
	iterate(func(k, v any) {
		if iterErr != nil {
			return
		}
		kb, err := pack(nil, k)
		if err != nil {
			iterErr = err
			return
		}
		vb, err := pack(nil, v)
		if err != nil {
			iterErr = err
			return
		}
		pairs = append(pairs, pair{key: k, encKey: kb, encItem: vb})
	})
	if iterErr != nil {
		return dst, iterErr
	}

	sort.Slice(pairs, func(i, j int) bool {
		ks, iok := pairs[i].key.(string)
		ls, jok := pairs[j].key.(string)
		if iok && jok {
			return ks < ls
		}

		return bytes.Compare(pairs[i].encKey, pairs[j].encKey) < 0
	})

	indefinite := len(pairs) > groupPayloadMax
	if indefinite {
		dst = append(dst, tagMap)
	} else {
		dst = append(dst, groupShortMap|byte(len(pairs)))
	}
	for _, p := range pairs {
		dst = append(dst, p.encKey...)
		dst = append(dst, p.encItem...)
	}
	if indefinite {
		dst = append(dst, tagEnd)
	}

	return dst, nil
}

func packAddr(dst []byte, a netip.Addr) ([]byte, error) {
	if !a.IsValid() {
		return dst, fmt.Errorf("%w: zero netip.Addr", errs.ErrUnsupportedType)
	}

	if a.Is4() || a.Is4In6() {
		b := a.As4()
		dst = append(dst, tagIPv4)

		return append(dst, b[:]...), nil
	}

	b := a.As16()
	dst = append(dst, tagIPv6)

	return append(dst, b[:]...), nil
}
