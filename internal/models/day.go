package models

import (
	"bytes"
	"database/sql/driver"
	"fmt"
	"strings"
	"time"

	"github.com/danielgtaylor/huma/v2"
)

// DateLayout is the calendar-day form start dates are stored and sent in.
const DateLayout = "2006-01-02"

// Day is a calendar date held at UTC midnight. In JSON it is "2006-01-02";
// RFC 3339 timestamps are accepted on input and cut down to their UTC day.
type Day struct {
	time.Time
}

func NewDay(year int, month time.Month, day int) Day {
	return Day{time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// DayOf returns the UTC calendar day t falls on.
func DayOf(t time.Time) Day {
	if t.IsZero() {
		return Day{}
	}
	y, m, d := t.UTC().Date()
	return NewDay(y, m, d)
}

// ParseDay accepts 2006-01-02 or RFC 3339. A blank value is the zero day.
func ParseDay(value string) (Day, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return Day{}, nil
	}
	if d, err := time.Parse(DateLayout, value); err == nil {
		return Day{d}, nil
	}
	ts, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return Day{}, fmt.Errorf("not a date: %q", value)
	}
	return DayOf(ts), nil
}

func (d Day) String() string {
	if d.IsZero() {
		return ""
	}
	return d.Format(DateLayout)
}

func (d Day) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return []byte(`"` + d.Format(DateLayout) + `"`), nil
}

func (d *Day) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		*d = Day{}
		return nil
	}
	if len(data) < 2 || data[0] != '"' || data[len(data)-1] != '"' {
		return fmt.Errorf("not a date: %s", data)
	}
	parsed, err := ParseDay(string(data[1 : len(data)-1]))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

func (d Day) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

func (d *Day) UnmarshalText(text []byte) error {
	parsed, err := ParseDay(string(text))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Value stores the day as a timestamp at UTC midnight.
func (d Day) Value() (driver.Value, error) {
	return d.Time, nil
}

func (d *Day) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*d = Day{}
	case time.Time:
		*d = DayOf(v)
	case string:
		return d.scanString(v)
	case []byte:
		return d.scanString(string(v))
	default:
		return fmt.Errorf("models.Day: cannot scan %T", src)
	}
	return nil
}

func (d *Day) scanString(s string) error {
	s = strings.TrimSpace(s)
	if len(s) >= len(DateLayout) {
		if t, err := time.Parse(DateLayout, s[:len(DateLayout)]); err == nil {
			*d = Day{t}
			return nil
		}
	}
	parsed, err := ParseDay(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Schema describes Day as an OpenAPI date string.
func (Day) Schema(r huma.Registry) *huma.Schema {
	return &huma.Schema{Type: huma.TypeString, Format: "date"}
}
