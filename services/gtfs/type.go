package gtfs

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

var (
	// ErrInvalidBoolField is returned if a boolean field has invalid data
	ErrInvalidBoolField = errors.New("invalid boolean field supplied")
	// ErrInvalidDateField is returned if a date field is not a real YYYYMMDD date
	ErrInvalidDateField = errors.New("invalid date field supplied")
)

// CSVBool is a GTFS 0/1 flag; an empty value is false.
type CSVBool bool

// MarshalCSV marshals the value into a string format
func (b CSVBool) MarshalCSV() (string, error) {
	if b {
		return "1", nil
	}
	return "0", nil
}

// UnmarshalCSV converts "0", "1" or an empty value into the flag.
func (b *CSVBool) UnmarshalCSV(csv string) error {
	switch strings.TrimSpace(csv) {
	case "", "0":
		*b = false
	case "1":
		*b = true
	default:
		return ErrInvalidBoolField
	}
	return nil
}

// CSVDate is a GTFS date parsed from CSV. An empty value leaves the zero time.
type CSVDate struct {
	time.Time
}

// MarshalCSV marshals the value into a string format
func (d CSVDate) MarshalCSV() (string, error) {
	if d.IsZero() {
		return "", nil
	}
	return d.Format(DateFormat), nil
}

// UnmarshalCSV parses a YYYYMMDD value.
func (d *CSVDate) UnmarshalCSV(csv string) error {
	csv = strings.TrimSpace(csv)
	if len(csv) < 1 {
		d.Time = time.Time{}
		return nil
	}

	t, ok := ParseDate(csv)
	if !ok {
		return ErrInvalidDateField
	}
	d.Time = t
	return nil
}

// CSVFloat is a CSV marshalable float64 value
type CSVFloat float64

// MarshalCSV marshals the value into a string format
func (f CSVFloat) MarshalCSV() (string, error) {
	return strconv.FormatFloat(float64(f), 'f', -1, 64), nil
}

// UnmarshalCSV takes the string representation from a CSV file and attempts to convert it to a float64.
func (f *CSVFloat) UnmarshalCSV(csv string) error {
	csv = strings.TrimSpace(csv)
	if len(csv) < 1 {
		*f = 0
		return nil
	}

	val, err := strconv.ParseFloat(csv, 64)
	if err != nil {
		return err
	}

	*f = CSVFloat(val)
	return nil
}

// CSVInt is a CSV marshalable int value
type CSVInt int

// MarshalCSV marshals the value into a string format
func (i CSVInt) MarshalCSV() (string, error) {
	return strconv.Itoa(int(i)), nil
}

// UnmarshalCSV takes the string representation from a CSV file and attempts to convert it to an int.
func (i *CSVInt) UnmarshalCSV(csv string) error {
	csv = strings.TrimSpace(csv)
	if len(csv) < 1 {
		*i = 0
		return nil
	}

	val, err := strconv.ParseInt(csv, 10, 32)
	if err != nil {
		return err
	}

	*i = CSVInt(val)
	return nil
}

// CSVTime is a GTFS HH:MM:SS time stored as seconds; hours may exceed 23.
type CSVTime int

// MarshalCSV renders the time back into HH:MM:SS.
func (t CSVTime) MarshalCSV() (string, error) {
	return fmt.Sprintf("%02d:%02d:%02d", t/3600, (t%3600)/60, t%60), nil
}

// UnmarshalCSV parses a H:MM:SS or HH:MM:SS value; an empty value is zero.
func (t *CSVTime) UnmarshalCSV(csv string) error {
	csv = strings.TrimSpace(csv)
	if len(csv) < 1 {
		*t = 0
		return nil
	}

	secs := TimeToInt(csv)
	if secs < 0 {
		return fmt.Errorf("invalid time field supplied: %q", csv)
	}
	*t = CSVTime(secs)
	return nil
}
