// Package timeofday does wall-clock arithmetic on HH:MM[:SS] strings.
// All results wrap modulo 24 hours.
package timeofday

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// SecondsPerDay is the wrap-around modulus for every time-of-day value.
const SecondsPerDay = 24 * 60 * 60

var validPattern = regexp.MustCompile(`^([01]?[0-9]|2[0-3]):[0-5][0-9](:[0-9]{1,2})?$`)

// Time is a time of day as seconds since midnight, always in [0, SecondsPerDay).
type Time int

// Parse reads "HH:MM" or "HH:MM:SS". Missing seconds default to zero.
// Components are not range-checked; out-of-range values wrap.
func Parse(s string) (Time, error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) < 2 || len(parts) > 3 {
		return 0, fmt.Errorf("time %q: want HH:MM or HH:MM:SS", s)
	}
	var fields [3]int
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil || n < 0 {
			return 0, fmt.Errorf("time %q: bad component %q", s, p)
		}
		fields[i] = n
	}
	return FromSeconds(fields[0]*3600 + fields[1]*60 + fields[2]), nil
}

// MustParse is Parse for constants and tests; it panics on malformed input.
func MustParse(s string) Time {
	t, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return t
}

// FromSeconds wraps any integer second count, including negatives, onto the clock.
func FromSeconds(secs int) Time {
	secs %= SecondsPerDay
	if secs < 0 {
		secs += SecondsPerDay
	}
	return Time(secs)
}

// Add advances t by secs, which may be negative.
func (t Time) Add(secs int) Time {
	return FromSeconds(int(t) + secs)
}

// String formats t as zero-padded HH:MM:SS.
func (t Time) String() string {
	s := int(t)
	return fmt.Sprintf("%02d:%02d:%02d", s/3600, (s%3600)/60, s%60)
}

// AddSeconds parses s, adds secs and returns the HH:MM:SS result.
func AddSeconds(s string, secs int) (string, error) {
	t, err := Parse(s)
	if err != nil {
		return "", err
	}
	return t.Add(secs).String(), nil
}

// Normalize appends ":00" to an HH:MM value and passes anything else through.
func Normalize(s string) string {
	if strings.Count(s, ":") == 1 {
		return s + ":00"
	}
	return s
}

// IsValid reports whether s has an hour in 0-23 and a minute in 00-59.
// A trailing seconds component is accepted without range checking.
func IsValid(s string) bool {
	return validPattern.MatchString(s)
}

// FormatDuration renders seconds as "X min", "Y sec" or "X min Y sec".
func FormatDuration(seconds int) string {
	if seconds < 0 {
		return "0 sec"
	}
	m, s := seconds/60, seconds%60
	switch {
	case m == 0:
		return fmt.Sprintf("%d sec", s)
	case s == 0:
		return fmt.Sprintf("%d min", m)
	default:
		return fmt.Sprintf("%d min %d sec", m, s)
	}
}
