package primitive

import (
	"fmt"
	"net/netip"

	"github.com/google/uuid"

	"github.com/koehlma/binarize/errs"
)

func appendUUIDValue(dst []byte, value any) ([]byte, error) {
	u, ok := value.(uuid.UUID)
	if !ok {
		return dst, fmt.Errorf("%w: got %T", errs.ErrInvalidValue, value)
	}

	return append(dst, u[:]...), nil
}

func readUUID(data []byte, offset int) (int, any, error) {
	if err := need(data, offset, 16); err != nil {
		return offset, nil, err
	}

	u, err := uuid.FromBytes(data[offset : offset+16])
	if err != nil {
		return offset, nil, err
	}

	return offset + 16, u, nil
}

func appendIPv4Value(dst []byte, value any) ([]byte, error) {
	a, ok := value.(netip.Addr)
	if !ok {
		return dst, fmt.Errorf("%w: got %T", errs.ErrInvalidValue, value)
	}
	if !a.Is4() && !a.Is4In6() {
		return dst, fmt.Errorf("%w: %s is not an IPv4 address", errs.ErrInvalidValue, a)
	}

	b := a.As4()

	return append(dst, b[:]...), nil
}

func readIPv4(data []byte, offset int) (int, any, error) {
	if err := need(data, offset, 4); err != nil {
		return offset, nil, err
	}

	return offset + 4, netip.AddrFrom4([4]byte(data[offset : offset+4])), nil
}

func appendIPv6Value(dst []byte, value any) ([]byte, error) {
	a, ok := value.(netip.Addr)
	if !ok {
		return dst, fmt.Errorf("%w: got %T", errs.ErrInvalidValue, value)
	}
	if !a.Is6() || a.Is4In6() {
		return dst, fmt.Errorf("%w: %s is not an IPv6 address", errs.ErrInvalidValue, a)
	}

	b := a.As16()

	return append(dst, b[:]...), nil
}

func readIPv6(data []byte, offset int) (int, any, error) {
	if err := need(data, offset, 16); err != nil {
		return offset, nil, err
	}

	return offset + 16, netip.AddrFrom16([16]byte(data[offset : offset+16])), nil
}
