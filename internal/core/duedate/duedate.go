// Package duedate parses user supplied due-date tokens.
//
// Absolute dates are tried against a fixed list of layouts in order and the
// first match wins. Tokens starting with "+" are offsets from the current
// moment, e.g. "+3d", "+2w" or "+1m". A month is always 30 days; the offset
// is not calendar aware.
package duedate

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// Layout pairs a Go time layout with the human readable form shown in errors.
type Layout struct {
	Go      string
	Display string
}

// Layouts are tried in this order; the first successful parse wins.
var Layouts = []Layout{
	{Go: "2006-01-02", Display: "YYYY-MM-DD"},
	{Go: "2006-01-02 15:04", Display: "YYYY-MM-DD HH:MM"},
	{Go: "2006/01/02", Display: "YYYY/MM/DD"},
	{Go: "2006/01/02 15:04", Display: "YYYY/MM/DD HH:MM"},
	{Go: "02-01-2006", Display: "DD-MM-YYYY"},
	{Go: "02/01/2006", Display: "DD/MM/YYYY"},
}

// RelativeFormat describes the accepted relative offset syntax.
const RelativeFormat = "+N[d|w|m]"

const (
	day   = 24 * time.Hour
	week  = 7 * day
	month = 30 * day
)

var units = map[byte]time.Duration{
	'd': day,
	'w': week,
	'm': month,
}

// InvalidError is returned when a token matches none of the accepted formats.
type InvalidError struct {
	Token   string
	Formats []string
}

func (e *InvalidError) Error() string {
	return fmt.Sprintf("invalid due date %q: use one of %s", e.Token, strings.Join(e.Formats, ", "))
}

// Formats returns the accepted formats in the order they are tried.
func Formats() []string {
	out := make([]string, 0, len(Layouts)+1)
	for _, l := range Layouts {
		out = append(out, l.Display)
	}
	return append(out, RelativeFormat)
}

// Parse converts token into a timestamp. Absolute dates are interpreted in
// the location of now; relative offsets are added to now.
func Parse(token string, now time.Time) (time.Time, error) {
	loc := now.Location()
	for _, l := range Layouts {
		if t, err := time.ParseInLocation(l.Go, token, loc); err == nil {
			return t, nil
		}
	}

	if strings.HasPrefix(token, "+") {
		if d, ok := parseOffset(token[1:]); ok {
			return now.Add(d), nil
		}
	}

	return time.Time{}, &InvalidError{Token: token, Formats: Formats()}
}

// parseOffset parses "<digits><unit>".
func parseOffset(s string) (time.Duration, bool) {
	if len(s) < 2 {
		return 0, false
	}

	unit, ok := units[s[len(s)-1]]
	if !ok {
		return 0, false
	}

	digits := s[:len(s)-1]
	for i := 0; i < len(digits); i++ {
		if digits[i] < '0' || digits[i] > '9' {
			return 0, false
		}
	}

	n, err := strconv.ParseInt(digits, 10, 64)
	if err != nil || n > math.MaxInt64/int64(unit) {
		return 0, false
	}

	return time.Duration(n) * unit, true
}
