// Package timex holds time helpers shared by config parsing and entry handling.
package timex

import (
	"encoding/json"
	"errors"
	"time"
)

// Duration wraps time.Duration for JSON config files. It accepts either a
// string understood by time.ParseDuration ("3s", "1m30s") or an integer
// number of nanoseconds.
type Duration struct {
	time.Duration
}

var errBadDuration = errors.New("invalid duration")

// UnmarshalJSON implements json.Unmarshaler.
func (d *Duration) UnmarshalJSON(b []byte) error {
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	switch value := v.(type) {
	case float64:
		d.Duration = time.Duration(value)
		return nil
	case string:
		parsed, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		d.Duration = parsed
		return nil
	default:
		return errBadDuration
	}
}

// MarshalJSON implements json.Marshaler using the string form.
func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}
