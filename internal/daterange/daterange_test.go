package daterange

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStrfdate(t *testing.T) {
	tests := []struct {
		name             string
		year, month, day int
		want             string
	}{
		{"full_date", 2014, 5, 12, "20140512"},
		{"year_month", 2014, 5, 0, "201405--"},
		{"year_only", 2014, 0, 0, "2014----"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := New(tt.year, tt.month, tt.day)
			require.NoError(t, err)
			assert.Equal(t, tt.want, d.Strfdate())
		})
	}
}

func TestStrfdate_Zero(t *testing.T) {
	var d DateRange
	assert.True(t, d.IsZero())
	assert.Empty(t, d.Strfdate())
}

func TestStrpdate_RoundTrip(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"20140512", "20140512"},
		{"2014-05-12", "20140512"},
		{"2014/05/12", "20140512"},
		{"201405", "201405--"},
		{"2014-05", "201405--"},
		{"2014", "2014----"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			d, err := Strpdate(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, d.Strfdate())
		})
	}
}

func TestStrpdate_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"too_long", "201405121"},
		{"too_long_with_separators", "2014-05-12-1"},
		{"bad_length", "20145"},
		{"not_digits", "abcd"},
		{"month_out_of_range", "20141312"},
		{"day_out_of_range", "20140231"},
		{"empty", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Strpdate(tt.input)
			assert.Error(t, err)
		})
	}
}

func TestNew_PartialConstraints(t *testing.T) {
	_, err := New(0, 5, 0)
	assert.Error(t, err, "month requires a year")

	_, err = New(2014, 0, 12)
	assert.Error(t, err, "day requires a month")
}

func TestRange(t *testing.T) {
	d, err := New(2014, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2014, 1, 1, 0, 0, 0, 0, time.UTC), d.Start())
	assert.Equal(t, time.Date(2014, 12, 31, 0, 0, 0, 0, time.UTC), d.End())

	d, err = New(2014, 2, 0)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2014, 2, 1, 0, 0, 0, 0, time.UTC), d.Start())
	assert.Equal(t, time.Date(2014, 2, 28, 0, 0, 0, 0, time.UTC), d.End())

	// leap year february
	d, err = New(2016, 2, 0)
	require.NoError(t, err)
	assert.Equal(t, 29, d.End().Day())

	d, err = New(2014, 5, 12)
	require.NoError(t, err)
	assert.Equal(t, d.Start(), d.End())
}

func TestEquality(t *testing.T) {
	a, _ := New(2014, 5, 12)
	b, _ := Strpdate("2014-05-12")
	c, _ := New(2014, 5, 0)
	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
}

func TestISOFormat(t *testing.T) {
	d, _ := New(2014, 5, 12)
	assert.Equal(t, "2014-05-12", d.ISOFormat())

	d, _ = New(2014, 0, 0)
	assert.Equal(t, "2014-01-01", d.ISOFormat())

	var zero DateRange
	assert.Empty(t, zero.ISOFormat())
}

func TestFromTime(t *testing.T) {
	d := FromTime(time.Date(2020, 7, 3, 15, 4, 5, 0, time.UTC))
	assert.Equal(t, "20200703", d.Strfdate())
}
