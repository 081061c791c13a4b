package timex

import "time"

// DateLayout is the date-only layout used for entry dates.
const DateLayout = "2006-01-02"

// ParseDate parses an entry date. Date-only values are preferred; full
// RFC 3339 timestamps are accepted as well.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err == nil {
		return t, nil
	}
	if ts, tsErr := time.Parse(time.RFC3339, s); tsErr == nil {
		return ts, nil
	}
	return time.Time{}, err
}

// FormatDate renders t as a date-only string.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// Today returns the date-only string of now in its own location.
func Today(now time.Time) string {
	return FormatDate(now)
}
