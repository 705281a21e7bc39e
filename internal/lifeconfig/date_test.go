package lifeconfig

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	d, err := ParseDate("1990-06-15")
	require.NoError(t, err)
	assert.Equal(t, "1990-06-15", d.String())
	assert.Equal(t, time.Date(1990, 6, 15, 0, 0, 0, 0, time.UTC), d.Time())

	for _, bad := range []string{"", "x", "1990-13-01", "1990-02-30", "15/06/1990"} {
		_, err := ParseDate(bad)
		assert.Error(t, err, "expected %q to be rejected", bad)
	}
}

func TestDate_Arithmetic(t *testing.T) {
	birth := NewDate(1990, time.June, 15)

	assert.Equal(t, "1990-06-22", birth.AddDays(7).String())
	assert.Equal(t, "1991-06-15", birth.AddDays(365).String())
	assert.Equal(t, "1990-06-15", birth.String(), "AddDays must not modify the receiver")

	// 1992 is a leap year: Feb 28 + 1 = Feb 29.
	assert.Equal(t, "1992-02-29", NewDate(1992, time.February, 28).AddDays(1).String())

	assert.Equal(t, 365, NewDate(1991, time.June, 15).DaysSince(birth))
	assert.Equal(t, -7, birth.DaysSince(birth.AddDays(7)))
	assert.Equal(t, 366, NewDate(2001, time.January, 1).DaysSince(NewDate(2000, time.January, 1)))

	// Spans longer than a time.Duration can hold.
	assert.Equal(t, 149749, NewDate(2400, time.January, 1).DaysSince(NewDate(1990, time.January, 1)))
	assert.Equal(t, -178969, NewDate(1500, time.January, 1).DaysSince(NewDate(1990, time.January, 1)))
}

func TestDate_Ordering(t *testing.T) {
	a := MustParseDate("1997-08-31")
	b := MustParseDate("1997-09-01")

	assert.True(t, a.Before(b))
	assert.True(t, b.After(a))
	assert.True(t, a.Equal(MustParseDate("1997-08-31")))
	assert.Equal(t, -1, a.Compare(b))
	assert.True(t, Date{}.IsZero())
}

func TestDateOf_IgnoresClockTime(t *testing.T) {
	loc := time.FixedZone("UTC+9", 9*60*60)
	late := time.Date(2025, 3, 1, 23, 30, 0, 0, loc)
	assert.Equal(t, "2025-03-01", DateOf(late).String())
}
