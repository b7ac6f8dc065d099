package gtfs

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// DateFormat is the layout of GTFS dates (YYYYMMDD).
const DateFormat = "20060102"

var (
	timePattern      = regexp.MustCompile(`^(\d{1,2}):(\d\d):(\d\d)$`)
	colorPattern     = regexp.MustCompile(`^[0-9A-Fa-f]{6}$`)
	intPrefixPattern = regexp.MustCompile(`^[+-]?\d+`)
	// The exponent is only taken when complete, so "1e" reads as 1.
	floatPrefixPattern = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?`)
)

// parseIntPrefix reads the integer at the start of s, ignoring leading whitespace
// and anything after the digits: "3.5" is 3, "12abc" is 12.
func parseIntPrefix(s string) (int, bool) {
	m := intPrefixPattern.FindString(strings.TrimSpace(s))
	if m == "" {
		return 0, false
	}
	v, err := strconv.Atoi(m)
	return v, err == nil
}

// parseFloatPrefix reads the decimal number at the start of s the same lenient way.
func parseFloatPrefix(s string) (float64, bool) {
	m := floatPrefixPattern.FindString(strings.TrimSpace(s))
	if m == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(m, 64)
	return v, err == nil
}

func parseCoordinate(s string, limit float64) (float64, bool) {
	v, ok := parseFloatPrefix(s)
	if !ok || math.IsNaN(v) || math.Abs(v) > limit {
		return 0, false
	}
	return v, true
}

// ValidLat parses a latitude from the number leading s, rejecting non-numeric values and values outside ±90.
func ValidLat(s string) (float64, bool) {
	return parseCoordinate(s, 90)
}

// ValidLon parses a longitude, rejecting non-numeric values and values outside ±180.
func ValidLon(s string) (float64, bool) {
	return parseCoordinate(s, 180)
}

// ParseDate parses a YYYYMMDD date which must exist on the calendar.
func ParseDate(s string) (time.Time, bool) {
	if len(s) != len(DateFormat) {
		return time.Time{}, false
	}
	t, err := time.Parse(DateFormat, s)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// ValidDate checks whether s is a real YYYYMMDD date.
func ValidDate(s string) bool {
	_, ok := ParseDate(s)
	return ok
}

// ValidTime checks whether s is a GTFS H:MM:SS or HH:MM:SS time.
// Hours may exceed 23 as trips can run past midnight.
func ValidTime(s string) bool {
	m := timePattern.FindStringSubmatch(s)
	if m == nil {
		return false
	}
	minutes, _ := strconv.Atoi(m[2])
	seconds, _ := strconv.Atoi(m[3])
	return minutes < 60 && seconds < 60
}

// TimeToInt converts a GTFS time into seconds since "noon minus 12h", or -1 if it is not valid.
func TimeToInt(s string) int {
	if !ValidTime(s) {
		return -1
	}
	parts := strings.Split(s, ":")
	h, _ := strconv.Atoi(parts[0])
	m, _ := strconv.Atoi(parts[1])
	sec, _ := strconv.Atoi(parts[2])
	return h*3600 + m*60 + sec
}

// SafeColor returns "#RRGGBB" for a valid route_color value, or an empty string.
func SafeColor(s string) string {
	if !colorPattern.MatchString(s) {
		return ""
	}
	return "#" + strings.ToUpper(s)
}
