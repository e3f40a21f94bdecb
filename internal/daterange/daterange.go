// Package daterange models dates of partial precision (year, year-month or
// full date) as an inclusive [start, end] interval.
package daterange

import (
	"strings"
	"time"

	"github.com/mirri-tools/strainsync/internal/errors"
)

// DateRange holds a possibly partial date. A zero DateRange means "unknown".
type DateRange struct {
	year  int
	month int
	day   int
}

// New builds a DateRange from its components. Zero components mean absent;
// a day requires a month and a month requires a year.
func New(year, month, day int) (DateRange, error) {
	d := DateRange{year: year, month: month, day: day}
	if err := d.validate(); err != nil {
		return DateRange{}, err
	}
	return d, nil
}

// FromTime builds a full-precision DateRange from a time.Time.
func FromTime(t time.Time) DateRange {
	return DateRange{year: t.Year(), month: int(t.Month()), day: t.Day()}
}

func (d DateRange) validate() error {
	if d.month != 0 && d.year == 0 {
		return errors.Newf("month without year").Category(errors.CategoryValidation).Build()
	}
	if d.day != 0 && d.month == 0 {
		return errors.Newf("day without month").Category(errors.CategoryValidation).Build()
	}
	if d.month < 0 || d.month > 12 {
		return errors.Newf("month out of range: %d", d.month).Category(errors.CategoryValidation).Build()
	}
	if d.day < 0 || d.day > 31 {
		return errors.Newf("day out of range: %d", d.day).Category(errors.CategoryValidation).Build()
	}
	if d.day != 0 && d.day > daysInMonth(d.year, d.month) {
		return errors.Newf("day out of range: %d for %04d-%02d", d.day, d.year, d.month).
			Category(errors.CategoryValidation).Build()
	}
	return nil
}

func daysInMonth(year, month int) int {
	// day 0 of the next month normalizes to the last day of this one
	return time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// Strpdate parses textual forms: YYYYMMDD, YYYYMM, YYYY, with optional "-" or
// "/" separators. More than 8 digits after stripping separators is an error.
func Strpdate(text string) (DateRange, error) {
	stripped := strings.NewReplacer("-", "", "/", "").Replace(strings.TrimSpace(text))
	if len(stripped) > 8 {
		return DateRange{}, errors.Newf("date string too long: %q", text).
			Category(errors.CategoryValidation).Build()
	}
	var year, month, day int
	switch len(stripped) {
	case 8:
		day = atoi2(stripped[6:8])
		fallthrough
	case 6:
		month = atoi2(stripped[4:6])
		fallthrough
	case 4:
		year = atoi4(stripped[0:4])
	default:
		return DateRange{}, errors.Newf("malformed date string: %q", text).
			Category(errors.CategoryValidation).Build()
	}
	if year < 0 || month < 0 || day < 0 {
		return DateRange{}, errors.Newf("malformed date string: %q", text).
			Category(errors.CategoryValidation).Build()
	}
	return New(year, month, day)
}

func atoi4(s string) int { return atoiN(s, 4) }
func atoi2(s string) int { return atoiN(s, 2) }

func atoiN(s string, n int) int {
	if len(s) != n {
		return -1
	}
	v := 0
	for i := 0; i < n; i++ {
		c := s[i]
		if c < '0' || c > '9' {
			return -1
		}
		v = v*10 + int(c-'0')
	}
	return v
}

// Strfdate renders the canonical YYYYMMDD form with "--"/"----" standing in
// for unknown parts. A zero DateRange renders as the empty string.
func (d DateRange) Strfdate() string {
	if d.IsZero() {
		return ""
	}
	var b strings.Builder
	if d.year != 0 {
		b.WriteString(pad(d.year, 4))
	} else {
		b.WriteString("----")
	}
	if d.month != 0 {
		b.WriteString(pad(d.month, 2))
	} else {
		b.WriteString("--")
	}
	if d.day != 0 {
		b.WriteString(pad(d.day, 2))
	} else {
		b.WriteString("--")
	}
	return b.String()
}

func pad(v, width int) string {
	digits := []byte("0000")[:width]
	for i := width - 1; i >= 0 && v > 0; i-- {
		digits[i] = byte('0' + v%10)
		v /= 10
	}
	return string(digits)
}

// Year returns the year component, 0 if unset.
func (d DateRange) Year() int { return d.year }

// Month returns the month component, 0 if unset.
func (d DateRange) Month() int { return d.month }

// Day returns the day component, 0 if unset.
func (d DateRange) Day() int { return d.day }

// IsZero reports whether no component is set.
func (d DateRange) IsZero() bool {
	return d.year == 0 && d.month == 0 && d.day == 0
}

// Start returns the inclusive lower bound of the interval.
func (d DateRange) Start() time.Time {
	if d.IsZero() {
		return time.Time{}
	}
	month, day := d.month, d.day
	if month == 0 {
		month = 1
	}
	if day == 0 {
		day = 1
	}
	return time.Date(d.year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
}

// End returns the inclusive upper bound of the interval: Dec 31 for a
// year-only value, the last day of the month for year-month.
func (d DateRange) End() time.Time {
	if d.IsZero() {
		return time.Time{}
	}
	switch {
	case d.month == 0:
		return time.Date(d.year, time.December, 31, 0, 0, 0, 0, time.UTC)
	case d.day == 0:
		return time.Date(d.year, time.Month(d.month), daysInMonth(d.year, d.month), 0, 0, 0, 0, time.UTC)
	default:
		return time.Date(d.year, time.Month(d.month), d.day, 0, 0, 0, 0, time.UTC)
	}
}

// ISOFormat renders "YYYY-MM-DD", defaulting unknown month and day to 01.
// Returns the empty string for a zero DateRange.
func (d DateRange) ISOFormat() string {
	if d.IsZero() {
		return ""
	}
	month, day := d.month, d.day
	if month == 0 {
		month = 1
	}
	if day == 0 {
		day = 1
	}
	return pad(d.year, 4) + "-" + pad(month, 2) + "-" + pad(day, 2)
}
