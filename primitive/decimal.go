package primitive

import (
	"fmt"
	"math/big"

	"github.com/cockroachdb/apd/v3"

	"github.com/koehlma/binarize/errs"
)

// decimalFormat captures the per-width constants of the IEEE 754-2008
// binary-integer-decimal (BID) interchange formats.
//
// smallShift is the trailing-significand width when the coefficient's high
// bits are stored directly; the large-coefficient form loses two bits to the
// combination field and carries an implicit 0b100 prefix at bit smallShift.
type decimalFormat struct {
	width      int
	expBits    uint
	smallShift uint
	bias       int32
	minExp     int32
	maxExp     int32
	maxDigits  int64
}

var (
	fmtDecimal32  = decimalFormat{width: 4, expBits: 8, smallShift: 23, bias: 101, minExp: -101, maxExp: 90, maxDigits: 7}
	fmtDecimal64  = decimalFormat{width: 8, expBits: 10, smallShift: 53, bias: 398, minExp: -398, maxExp: 369, maxDigits: 16}
	fmtDecimal128 = decimalFormat{width: 16, expBits: 14, smallShift: 113, bias: 6176, minExp: -6176, maxExp: 6111, maxDigits: 34}
)

func asDecimal(value any) (*apd.Decimal, error) {
	switch d := value.(type) {
	case *apd.Decimal:
		return d, nil
	case apd.Decimal:
		return &d, nil
	default:
		return nil, fmt.Errorf("%w: got %T", errs.ErrInvalidValue, value)
	}
}

func appendDecimalSpecial(dst []byte, d *apd.Decimal, width int) []byte {
	var lead byte
	switch d.Form {
	case apd.Infinite:
		lead = 0x78
		if d.Negative {
			lead = 0xF8
		}
	case apd.NaNSignaling:
		lead = 0x7E
	default: // quiet NaN
		lead = 0x7C
	}

	dst = append(dst, lead)
	for i := 1; i < width; i++ {
		dst = append(dst, 0x00)
	}

	return dst
}

func appendDecimal(dst []byte, value any, f decimalFormat) ([]byte, error) {
	d, err := asDecimal(value)
	if err != nil {
		return dst, err
	}

	if d.Form != apd.Finite {
		return appendDecimalSpecial(dst, d, f.width), nil
	}

	if d.NumDigits() > f.maxDigits || d.Exponent < f.minExp || d.Exponent > f.maxExp {
		return dst, fmt.Errorf("%w: %s does not fit decimal%d", errs.ErrValueOutOfRange, d.String(), f.width*8)
	}

	if f.width == 16 {
		return appendDecimal128(dst, d, f), nil
	}

	totalBits := uint(f.width * 8)
	biased := uint64(d.Exponent + f.bias)
	coeff := d.Coeff.Uint64()

	var bits uint64
	if coeff >= 1<<f.smallShift {
		largeShift := f.smallShift - 2
		bits = 3<<(totalBits-3) | biased<<largeShift | (coeff & (1<<largeShift - 1))
	} else {
		bits = biased<<f.smallShift | coeff
	}
	if d.Negative {
		bits |= 1 << (totalBits - 1)
	}

	if f.width == 4 {
		return engine.AppendUint32(dst, uint32(bits)), nil
	}

	return engine.AppendUint64(dst, bits), nil
}

func appendDecimal128(dst []byte, d *apd.Decimal, f decimalFormat) []byte {
	coeff := d.Coeff.MathBigInt()
	biased := big.NewInt(int64(d.Exponent + f.bias))

	bits := new(big.Int)
	if coeff.BitLen() > int(f.smallShift) {
		largeShift := f.smallShift - 2
		mask := new(big.Int).Lsh(big.NewInt(1), largeShift)
		mask.Sub(mask, big.NewInt(1))

		bits.SetInt64(3)
		bits.Lsh(bits, 125)
		bits.Or(bits, new(big.Int).Lsh(biased, largeShift))
		bits.Or(bits, new(big.Int).And(coeff, mask))
	} else {
		bits.Lsh(biased, f.smallShift)
		bits.Or(bits, coeff)
	}
	if d.Negative {
		bits.Or(bits, new(big.Int).Lsh(big.NewInt(1), 127))
	}

	var buf [16]byte
	bits.FillBytes(buf[:])

	return append(dst, buf[:]...)
}

// readDecimalSpecial decodes the four non-finite encodings from the leading
// byte. The combination-field checks in readDecimal guarantee the byte is
// one of them.
func readDecimalSpecial(lead byte) *apd.Decimal {
	if lead&0x04 != 0 {
		if lead&0x02 != 0 {
			return &apd.Decimal{Form: apd.NaNSignaling}
		}
		return &apd.Decimal{Form: apd.NaN}
	}

	return &apd.Decimal{Form: apd.Infinite, Negative: lead>>7 == 1}
}

func readDecimal(data []byte, offset int, f decimalFormat) (int, any, error) {
	if err := need(data, offset, f.width); err != nil {
		return offset, nil, err
	}

	// The sign, form and special layout all live in the leading byte for
	// every width: sign at bit 7, combination high bits at 6..5, special
	// marker at 4..3, NaN and signaling flags at 2..1.
	lead := data[offset]
	if lead>>5&3 == 3 && lead>>3&3 == 3 {
		return offset + f.width, readDecimalSpecial(lead), nil
	}

	if f.width == 16 {
		return readDecimal128(data, offset, f)
	}

	var bits uint64
	if f.width == 4 {
		bits = uint64(engine.Uint32(data[offset:]))
	} else {
		bits = engine.Uint64(data[offset:])
	}

	totalBits := uint(f.width * 8)
	expMask := uint64(1)<<f.expBits - 1

	var exponent int32
	var coeff uint64
	if bits>>(totalBits-3)&3 == 3 {
		largeShift := f.smallShift - 2
		exponent = int32(bits>>largeShift&expMask) - f.bias
		coeff = 1<<f.smallShift | (bits & (1<<largeShift - 1))
	} else {
		exponent = int32(bits>>f.smallShift&expMask) - f.bias
		coeff = bits & (1<<f.smallShift - 1)
	}

	d := &apd.Decimal{Negative: bits>>(totalBits-1) == 1, Exponent: exponent}
	d.Coeff.SetUint64(coeff)

	return offset + f.width, d, nil
}

func readDecimal128(data []byte, offset int, f decimalFormat) (int, any, error) {
	bits := new(big.Int).SetBytes(data[offset : offset+16])
	expMask := big.NewInt(int64(1)<<f.expBits - 1)

	var exponent int64
	coeff := new(big.Int)
	if data[offset]>>5&3 == 3 {
		largeShift := f.smallShift - 2
		e := new(big.Int).Rsh(bits, largeShift)
		e.And(e, expMask)
		exponent = e.Int64() - int64(f.bias)

		mask := new(big.Int).Lsh(big.NewInt(1), largeShift)
		mask.Sub(mask, big.NewInt(1))
		coeff.And(bits, mask)
		coeff.Or(coeff, new(big.Int).Lsh(big.NewInt(1), f.smallShift))
	} else {
		e := new(big.Int).Rsh(bits, f.smallShift)
		e.And(e, expMask)
		exponent = e.Int64() - int64(f.bias)

		mask := new(big.Int).Lsh(big.NewInt(1), f.smallShift)
		mask.Sub(mask, big.NewInt(1))
		coeff.And(bits, mask)
	}

	d := &apd.Decimal{Negative: data[offset]>>7 == 1, Exponent: int32(exponent)}
	d.Coeff.SetMathBigInt(coeff)

	return offset + 16, d, nil
}
