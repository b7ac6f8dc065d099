package gtfs

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCSVBool(t *testing.T) {
	var b CSVBool
	assert.NoError(t, b.UnmarshalCSV("1"))
	assert.True(t, bool(b))
	assert.NoError(t, b.UnmarshalCSV(""))
	assert.False(t, bool(b))
	assert.Equal(t, ErrInvalidBoolField, b.UnmarshalCSV("yes"))

	s, _ := CSVBool(true).MarshalCSV()
	assert.Equal(t, "1", s)
}

func TestCSVDate(t *testing.T) {
	var d CSVDate
	assert.NoError(t, d.UnmarshalCSV("20200229"))
	assert.Equal(t, time.Date(2020, 2, 29, 0, 0, 0, 0, time.UTC), d.Time)

	s, _ := d.MarshalCSV()
	assert.Equal(t, "20200229", s)

	assert.NoError(t, d.UnmarshalCSV(""))
	assert.True(t, d.IsZero())
	assert.Equal(t, ErrInvalidDateField, d.UnmarshalCSV("20210229"))
}

func TestCSVTime(t *testing.T) {
	var ct CSVTime
	assert.NoError(t, ct.UnmarshalCSV("26:30:05"))
	assert.Equal(t, CSVTime(95405), ct)

	s, _ := ct.MarshalCSV()
	assert.Equal(t, "26:30:05", s)

	assert.Error(t, ct.UnmarshalCSV("8:20"))
}

func TestCSVNumbers(t *testing.T) {
	var i CSVInt
	assert.NoError(t, i.UnmarshalCSV(" 42 "))
	assert.Equal(t, CSVInt(42), i)
	assert.Error(t, i.UnmarshalCSV("4.2"))

	var f CSVFloat
	assert.NoError(t, f.UnmarshalCSV("1.25"))
	assert.Equal(t, CSVFloat(1.25), f)
	s, _ := f.MarshalCSV()
	assert.Equal(t, "1.25", s)
}

func TestKnownFiles(t *testing.T) {
	assert.Equal(t, []string{
		"agency.txt",
		"calendar.txt",
		"calendar_dates.txt",
		"frequencies.txt",
		"routes.txt",
		"shapes.txt",
		"stop_times.txt",
		"stops.txt",
		"trips.txt",
	}, KnownFiles())
	assert.True(t, IsKnownFile("stops.txt"))
	assert.False(t, IsKnownFile("Stops.txt"))
	assert.False(t, IsKnownFile("gtfs/stops.txt"))
}
