// Package localtime parses provider timestamps without consulting a timezone
// database.
//
// The offer provider reports departure and arrival instants as local
// wall-clock strings whose timezone metadata is unreliable, so every hour and
// minute comparison in the search pipeline reads the components straight out
// of the timestamp text. Keeping all of that in one package means a future
// timezone-aware comparison can be swapped in without touching callers.
package localtime

import (
	"strconv"
	"strings"
	"time"
)

var formats = []string{
	"2006-01-02T15:04:05",
	time.RFC3339,
	"2006-01-02T15:04:05-07:00",
	"2006-01-02T15:04:05-0700",
	"2006-01-02T15:04:05Z",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04",
}

// Parse reads a provider timestamp. Values carrying an offset are parsed in
// that offset; values without one are parsed as naive wall-clock time in UTC,
// so subtracting two naive values yields the wall-clock difference.
func Parse(value string) (time.Time, error) {
	for _, format := range formats {
		if t, err := time.Parse(format, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, &time.ParseError{
		Value:   value,
		Message: "unable to parse provider timestamp",
	}
}

// HourMinute extracts the local hour and minute from the raw timestamp text,
// deliberately ignoring any trailing offset. "2025-11-21T17:25:00-05:00"
// yields (17, 25) regardless of what the offset claims.
func HourMinute(value string) (hour, minute int, ok bool) {
	idx := strings.IndexByte(value, 'T')
	if idx < 0 {
		idx = strings.IndexByte(value, ' ')
	}
	if idx < 0 || len(value) < idx+6 {
		return 0, 0, false
	}
	clock := value[idx+1:]
	if len(clock) < 5 || clock[2] != ':' {
		return 0, 0, false
	}
	h, err := strconv.Atoi(clock[0:2])
	if err != nil || h < 0 || h > 23 {
		return 0, 0, false
	}
	m, err := strconv.Atoi(clock[3:5])
	if err != nil || m < 0 || m > 59 {
		return 0, 0, false
	}
	return h, m, true
}

// Offset returns the textual UTC offset of a timestamp ("-05:00", "Z"),
// or "" when the value carries none.
func Offset(value string) string {
	idx := strings.IndexByte(value, 'T')
	if idx < 0 {
		return ""
	}
	clock := value[idx+1:]
	if strings.HasSuffix(clock, "Z") {
		return "Z"
	}
	for i := len(clock) - 1; i > 0; i-- {
		if clock[i] == '+' || clock[i] == '-' {
			return clock[i:]
		}
	}
	return ""
}

// ParseISODuration converts an ISO 8601 duration such as "PT2H15M" to
// minutes. Seconds are ignored; the provider never reports them.
func ParseISODuration(value string) (int, error) {
	s := strings.TrimPrefix(strings.TrimPrefix(value, "P"), "T")
	minutes := 0
	num := 0
	seen := false
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= '0' && c <= '9':
			num = num*10 + int(c-'0')
			seen = true
		case c == 'H':
			minutes += num * 60
			num = 0
		case c == 'M':
			minutes += num
			num = 0
		case c == 'S':
			num = 0
		default:
			return 0, &time.ParseError{Value: value, Message: "unable to parse ISO 8601 duration"}
		}
	}
	if !seen {
		return 0, &time.ParseError{Value: value, Message: "unable to parse ISO 8601 duration"}
	}
	return minutes, nil
}

// FormatClock renders a parsed timestamp as HH:MM.
func FormatClock(t time.Time) string {
	return t.Format("15:04")
}

// FormatDuration renders minutes as "Xh YYm".
func FormatDuration(minutes int) string {
	h := minutes / 60
	m := minutes % 60
	return strconv.Itoa(h) + "h " + pad2(m) + "m"
}

func pad2(n int) string {
	if n < 10 {
		return "0" + strconv.Itoa(n)
	}
	return strconv.Itoa(n)
}
