package primitive

import (
	"testing"
	"time"

	"cloud.google.com/go/civil"
	"github.com/stretchr/testify/require"

	"github.com/koehlma/binarize/errs"
)

func TestDate_SeedVector(t *testing.T) {
	d := civil.Date{Year: 2014, Month: time.July, Day: 4}

	data, err := DATE.Pack(nil, d)
	require.NoError(t, err)
	require.Equal(t, []byte{0x23, 0x8F, 0xBC}, data)

	off, v, err := DATE.Unpack(data, 0)
	require.NoError(t, err)
	require.Equal(t, 3, off)
	require.Equal(t, d, v)
}

func TestDateRoundTrip(t *testing.T) {
	for _, d := range []civil.Date{
		{Year: 1, Month: time.January, Day: 1},
		{Year: 1970, Month: time.January, Day: 1},
		{Year: 2000, Month: time.February, Day: 29},
		{Year: 16383, Month: time.December, Day: 31},
	} {
		data, err := DATE.Pack(nil, d)
		require.NoError(t, err)
		require.Len(t, data, 3)

		_, v, err := DATE.Unpack(data, 0)
		require.NoError(t, err)
		require.Equal(t, d, v)
	}
}

func TestDateInvalid(t *testing.T) {
	for _, d := range []civil.Date{
		{Year: 2014, Month: 13, Day: 1},
		{Year: 2014, Month: time.February, Day: 30},
		{Year: 2023, Month: time.February, Day: 29},
		{Year: 16384, Month: time.January, Day: 1},
		{Year: -1, Month: time.January, Day: 1},
	} {
		_, err := DATE.Pack(nil, d)
		require.ErrorIs(t, err, errs.ErrInvalidCalendar, "%v", d)
	}

	// Month 13 on the wire.
	bad := (uint32(1) << 19) | (uint32(13) << 15) | (uint32(2000) << 1)
	_, _, err := DATE.Unpack([]byte{byte(bad >> 16), byte(bad >> 8), byte(bad)}, 0)
	require.ErrorIs(t, err, errs.ErrInvalidCalendar)

	_, err = DATE.Pack(nil, "2014-07-04")
	require.ErrorIs(t, err, errs.ErrInvalidValue)

	_, _, err = DATE.Unpack([]byte{0x20, 0x3B}, 0)
	require.ErrorIs(t, err, errs.ErrTruncatedBuffer)
}

func TestTime_PlainSeconds(t *testing.T) {
	tm := Time{Hour: 12, Minute: 34, Second: 56}

	data, err := TIME.Pack(nil, tm)
	require.NoError(t, err)
	require.Equal(t, []byte{0x64, 0x5C, 0x00}, data)

	off, v, err := TIME.Unpack(data, 0)
	require.NoError(t, err)
	require.Equal(t, 3, off)
	require.Equal(t, tm, v)
}

func TestTime_Microseconds(t *testing.T) {
	tm := Time{Hour: 12, Minute: 34, Second: 56, Microsecond: 123456}

	data, err := TIME.Pack(nil, tm)
	require.NoError(t, err)
	require.Equal(t, []byte{0x64, 0x5C, 0x41, 0xE2, 0x40}, data)

	off, v, err := TIME.Unpack(data, 0)
	require.NoError(t, err)
	require.Equal(t, 5, off)
	require.Equal(t, tm, v)
}

func TestTime_Offset(t *testing.T) {
	tm := Time{Hour: 12, Minute: 34, Second: 56, HasOffset: true, OffsetMinutes: 90}

	data, err := TIME.Pack(nil, tm)
	require.NoError(t, err)
	require.Equal(t, []byte{0x64, 0x5C, 0x20, 0x05, 0xA0}, data)

	off, v, err := TIME.Unpack(data, 0)
	require.NoError(t, err)
	require.Equal(t, 5, off)
	require.Equal(t, tm, v)
}

func TestTime_NegativeOffset(t *testing.T) {
	tm := Time{Hour: 1, Minute: 2, Second: 3, HasOffset: true, OffsetMinutes: -330}

	data, err := TIME.Pack(nil, tm)
	require.NoError(t, err)
	require.Len(t, data, 5)

	_, v, err := TIME.Unpack(data, 0)
	require.NoError(t, err)
	require.Equal(t, tm, v)
}

func TestTime_MicrosecondsAndOffset(t *testing.T) {
	tm := Time{Hour: 23, Minute: 59, Second: 59, Microsecond: 999999, HasOffset: true, OffsetMinutes: 2047}

	data, err := TIME.Pack(nil, tm)
	require.NoError(t, err)
	require.Len(t, data, 7)

	off, v, err := TIME.Unpack(data, 0)
	require.NoError(t, err)
	require.Equal(t, 7, off)
	require.Equal(t, tm, v)
}

func TestTime_ZeroOffsetEncodesNaive(t *testing.T) {
	// A zero UTC offset never reaches the wire: the encoding matches the
	// naive time and decodes without offset information.
	aware := Time{Hour: 6, Minute: 30, Second: 0, HasOffset: true, OffsetMinutes: 0}
	naive := Time{Hour: 6, Minute: 30, Second: 0}

	awareData, err := TIME.Pack(nil, aware)
	require.NoError(t, err)
	naiveData, err := TIME.Pack(nil, naive)
	require.NoError(t, err)
	require.Equal(t, naiveData, awareData)
	require.Len(t, awareData, 3)

	_, v, err := TIME.Unpack(awareData, 0)
	require.NoError(t, err)
	require.Equal(t, naive, v)
}

func TestTimeInvalid(t *testing.T) {
	for _, tm := range []Time{
		{Hour: 24},
		{Minute: 60},
		{Second: 60},
		{Microsecond: 1000000},
		{HasOffset: true, OffsetMinutes: 2048},
		{HasOffset: true, OffsetMinutes: -2048},
	} {
		_, err := TIME.Pack(nil, tm)
		require.ErrorIs(t, err, errs.ErrInvalidCalendar, "%+v", tm)
	}

	_, err := TIME.Pack(nil, time.Now())
	require.ErrorIs(t, err, errs.ErrInvalidValue)

	// Hour 25 on the wire.
	bad := uint32(25) << 19
	_, _, err = TIME.Unpack([]byte{byte(bad >> 16), byte(bad >> 8), byte(bad)}, 0)
	require.ErrorIs(t, err, errs.ErrInvalidCalendar)

	// Microsecond flag set but the extension bytes are missing.
	_, _, err = TIME.Unpack([]byte{0x64, 0x5C, 0x40}, 0)
	require.ErrorIs(t, err, errs.ErrTruncatedBuffer)
}
