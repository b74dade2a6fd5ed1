package domain

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
)

const secondsPerDay = 24 * 60 * 60

// ErrInvalidClockTime is returned when a time of day cannot be parsed.
var ErrInvalidClockTime = errors.New("invalid time of day")

// ClockTime is a wall clock time of day with second precision, stored as
// seconds since midnight. It maps to a Postgres TIME column.
type ClockTime int

// NewClockTime builds a ClockTime from its components.
func NewClockTime(hour, minute, second int) ClockTime {
	return ClockTime(hour*3600 + minute*60 + second)
}

// ParseClockTime accepts HH:MM or HH:MM:SS.
func ParseClockTime(s string) (ClockTime, error) {
	s = strings.TrimSpace(s)
	for _, layout := range []string{"15:04:05", "15:04"} {
		if t, err := time.Parse(layout, s); err == nil {
			return NewClockTime(t.Hour(), t.Minute(), t.Second()), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidClockTime, s)
}

// ParseOptionalClockTime returns nil for an empty string.
func ParseOptionalClockTime(s string) (*ClockTime, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	c, err := ParseClockTime(s)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (c ClockTime) Hour() int   { return int(c) / 3600 }
func (c ClockTime) Minute() int { return int(c) % 3600 / 60 }
func (c ClockTime) Second() int { return int(c) % 60 }

// HoursUntil returns the hours from c to end on a 24h clock. An end before
// the start is taken to be on the following day.
func (c ClockTime) HoursUntil(end ClockTime) float64 {
	diff := int(end) - int(c)
	if diff < 0 {
		diff += secondsPerDay
	}
	return float64(diff) / 3600.0
}

// String renders HH:MM, or HH:MM:SS when seconds are set.
func (c ClockTime) String() string {
	if c.Second() != 0 {
		return fmt.Sprintf("%02d:%02d:%02d", c.Hour(), c.Minute(), c.Second())
	}
	return fmt.Sprintf("%02d:%02d", c.Hour(), c.Minute())
}

// Value implements driver.Valuer
func (c ClockTime) Value() (driver.Value, error) {
	return fmt.Sprintf("%02d:%02d:%02d", c.Hour(), c.Minute(), c.Second()), nil
}

// Scan implements sql.Scanner. lib/pq hands TIME columns over as time.Time.
func (c *ClockTime) Scan(src interface{}) error {
	switch v := src.(type) {
	case time.Time:
		*c = NewClockTime(v.Hour(), v.Minute(), v.Second())
		return nil
	case []byte:
		return c.scanString(string(v))
	case string:
		return c.scanString(v)
	default:
		return fmt.Errorf("%w: cannot scan %T", ErrInvalidClockTime, src)
	}
}

func (c *ClockTime) scanString(s string) error {
	// TIME values may carry fractional seconds
	if i := strings.IndexByte(s, '.'); i >= 0 {
		s = s[:i]
	}
	parsed, err := ParseClockTime(s)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// MarshalJSON implements json.Marshaler
func (c ClockTime) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.String())
}

// UnmarshalJSON implements json.Unmarshaler
func (c *ClockTime) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseClockTime(s)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}
