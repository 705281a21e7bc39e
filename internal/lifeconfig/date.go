package lifeconfig

import (
	"fmt"
	"time"

	"github.com/tartampluch/go-lifeweeks/internal/config"
)

const secondsPerDay = 24 * 60 * 60

// Date is a calendar day with no time of day and no zone.
// It is stored as midnight UTC so that day differences are exact.
type Date struct {
	t time.Time
}

// NewDate builds a Date, normalizing out-of-range months and days like time.Date.
func NewDate(year int, month time.Month, day int) Date {
	return Date{t: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// DateOf returns the calendar day of t as seen in t's own location.
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return NewDate(y, m, d)
}

// ParseDate parses an ISO "YYYY-MM-DD" string.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(config.DateLayout, s)
	if err != nil {
		return Date{}, fmt.Errorf("%s: %w", config.ErrDateParse, err)
	}
	return Date{t: t}, nil
}

// MustParseDate is ParseDate for literals known to be valid.
func MustParseDate(s string) Date {
	d, err := ParseDate(s)
	if err != nil {
		panic(err)
	}
	return d
}

// AddDays returns the day n days after d. d itself is left untouched.
func (d Date) AddDays(n int) Date {
	return Date{t: d.t.AddDate(0, 0, n)}
}

// DaysSince returns the number of days from other to d. It works on Unix
// seconds: a time.Duration overflows past about 292 years.
func (d Date) DaysSince(other Date) int {
	return int((d.t.Unix() - other.t.Unix()) / secondsPerDay)
}

func (d Date) Compare(other Date) int { return d.t.Compare(other.t) }
func (d Date) Before(other Date) bool { return d.t.Before(other.t) }
func (d Date) After(other Date) bool  { return d.t.After(other.t) }
func (d Date) Equal(other Date) bool  { return d.t.Equal(other.t) }
func (d Date) IsZero() bool           { return d.t.IsZero() }

// Time returns midnight UTC of the day.
func (d Date) Time() time.Time { return d.t }

// String formats the day as "YYYY-MM-DD".
func (d Date) String() string {
	return d.t.Format(config.DateLayout)
}
