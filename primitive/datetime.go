package primitive

import (
	"fmt"
	"time"

	"cloud.google.com/go/civil"

	"github.com/koehlma/binarize/errs"
)

// Time is a wall-clock time of day with optional microsecond precision and
// an optional UTC offset, as carried by the TIME primitive.
//
// A Time with HasOffset false is naive (no zone information). A zero
// OffsetMinutes never travels on the wire: the offset suffix is emitted only
// for non-zero offsets, so UTC times round-trip as naive times.
type Time struct {
	Hour   int
	Minute int
	Second int

	// Microsecond is the sub-second component in [0, 1e6).
	Microsecond int

	// HasOffset marks the time as zone-aware; OffsetMinutes is the signed
	// offset from UTC in minutes, at most ±2047.
	HasOffset     bool
	OffsetMinutes int
}

func (t Time) validate() error {
	if t.Hour < 0 || t.Hour > 23 || t.Minute < 0 || t.Minute > 59 || t.Second < 0 || t.Second > 59 {
		return fmt.Errorf("%w: %02d:%02d:%02d", errs.ErrInvalidCalendar, t.Hour, t.Minute, t.Second)
	}
	if t.Microsecond < 0 || t.Microsecond >= 1000000 {
		return fmt.Errorf("%w: microsecond %d", errs.ErrInvalidCalendar, t.Microsecond)
	}
	if t.OffsetMinutes < -2047 || t.OffsetMinutes > 2047 {
		return fmt.Errorf("%w: UTC offset %d minutes", errs.ErrInvalidCalendar, t.OffsetMinutes)
	}

	return nil
}

func (t Time) String() string {
	s := fmt.Sprintf("%02d:%02d:%02d", t.Hour, t.Minute, t.Second)
	if t.Microsecond > 0 {
		s += fmt.Sprintf(".%06d", t.Microsecond)
	}
	if t.HasOffset {
		sign := "+"
		minutes := t.OffsetMinutes
		if minutes < 0 {
			sign = "-"
			minutes = -minutes
		}
		s += fmt.Sprintf("%s%02d:%02d", sign, minutes/60, minutes%60)
	}

	return s
}

// appendDateValue packs day (5 bits), month (4 bits) and year (14 bits) into
// three big-endian bytes; the lowest bit is unused.
func appendDateValue(dst []byte, value any) ([]byte, error) {
	d, ok := value.(civil.Date)
	if !ok {
		return dst, fmt.Errorf("%w: got %T", errs.ErrInvalidValue, value)
	}
	if !d.IsValid() || d.Year < 0 || d.Year > 16383 {
		return dst, fmt.Errorf("%w: %v", errs.ErrInvalidCalendar, d)
	}

	x := uint32(d.Day)<<19 | uint32(d.Month)<<15 | uint32(d.Year)<<1

	return append(dst, byte(x>>16), byte(x>>8), byte(x)), nil
}

func readDate(data []byte, offset int) (int, any, error) {
	if err := need(data, offset, 3); err != nil {
		return offset, nil, err
	}

	x := uint32(data[offset])<<16 | uint32(data[offset+1])<<8 | uint32(data[offset+2])
	d := civil.Date{
		Year:  int(x >> 1 & 16383),
		Month: time.Month(x >> 15 & 15),
		Day:   int(x >> 19),
	}
	if !d.IsValid() {
		return offset, nil, fmt.Errorf("%w: %v", errs.ErrInvalidCalendar, d)
	}

	return offset + 3, d, nil
}

// appendTimeValue packs hour (5), minute (6) and second (6) into the first
// three bytes together with the microsecond and offset presence flags. Each
// present extension appends two further bytes: microseconds span the low four
// bits of the base group plus sixteen more bits; the offset suffix carries a
// sign bit and eleven magnitude bits.
func appendTimeValue(dst []byte, value any) ([]byte, error) {
	t, ok := value.(Time)
	if !ok {
		return dst, fmt.Errorf("%w: got %T", errs.ErrInvalidValue, value)
	}
	if err := t.validate(); err != nil {
		return dst, err
	}

	x := uint64(t.Hour)<<19 | uint64(t.Minute)<<13 | uint64(t.Second)<<7
	size := 3

	// The offset suffix (and its flag) only exist for non-zero offsets, so
	// zero-offset times encode identically to naive times.
	writeOffset := t.HasOffset && t.OffsetMinutes != 0
	if t.Microsecond > 0 {
		x |= 1 << 6
	}
	if writeOffset {
		x |= 1 << 5
	}

	if t.Microsecond > 0 {
		x = x<<16 | uint64(t.Microsecond)
		size += 2
	}
	if writeOffset {
		minutes := t.OffsetMinutes
		var sign uint64
		if minutes < 0 {
			sign = 1
			minutes = -minutes
		}
		x = x<<16 | sign<<15 | uint64(minutes)<<4
		size += 2
	}

	for i := size - 1; i >= 0; i-- {
		dst = append(dst, byte(x>>(8*uint(i))))
	}

	return dst, nil
}

func readTime(data []byte, offset int) (int, any, error) {
	if err := need(data, offset, 3); err != nil {
		return offset, nil, err
	}

	x := uint32(data[offset])<<16 | uint32(data[offset+1])<<8 | uint32(data[offset+2])
	offset += 3

	t := Time{
		Hour:   int(x >> 19),
		Minute: int(x >> 13 & 63),
		Second: int(x >> 7 & 63),
	}

	if x>>6&1 == 1 {
		if err := need(data, offset, 2); err != nil {
			return offset, nil, err
		}
		t.Microsecond = int(x&15)<<16 | int(data[offset])<<8 | int(data[offset+1])
		offset += 2
	}
	if x>>5&1 == 1 {
		if err := need(data, offset, 2); err != nil {
			return offset, nil, err
		}
		v := uint32(data[offset])<<8 | uint32(data[offset+1])
		offset += 2

		minutes := int(v >> 4 & 2047)
		if v>>15 == 1 {
			minutes = -minutes
		}
		if minutes != 0 {
			t.HasOffset = true
			t.OffsetMinutes = minutes
		}
	}

	if err := t.validate(); err != nil {
		return offset, nil, err
	}

	return offset, t, nil
}
