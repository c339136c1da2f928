package model

import (
	"encoding/json"
	"strings"
	"time"
)

// Layouts accepted for API timestamps, most specific first. Date-only values
// are interpreted as UTC midnight.
var timeLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParseTime parses the timestamp formats the API emits.
func ParseTime(v string) (time.Time, error) {
	v = strings.TrimSpace(v)
	var firstErr error
	for _, layout := range timeLayouts {
		t, err := time.Parse(layout, v)
		if err == nil {
			return t, nil
		}
		if firstErr == nil {
			firstErr = err
		}
	}
	return time.Time{}, firstErr
}

// Timestamp is an API time value. Raw keeps the wire string so values that
// fail to parse still round-trip unchanged.
type Timestamp struct {
	time.Time
	Raw string
}

// NewTimestamp wraps t.
func NewTimestamp(t time.Time) Timestamp {
	return Timestamp{Time: t, Raw: FormatTime(t)}
}

// MustTimestamp parses v and panics on failure. Intended for fixtures.
func MustTimestamp(v string) Timestamp {
	t, err := ParseTime(v)
	if err != nil {
		panic(err)
	}
	return Timestamp{Time: t, Raw: v}
}

// Valid reports whether the wire value parsed into a time.
func (t Timestamp) Valid() bool {
	return !t.Time.IsZero()
}

func (t Timestamp) SameDay(then time.Time) bool {
	return t.Local().Day() == then.Local().Day() &&
		t.Local().Month() == then.Local().Month() &&
		t.Local().Year() == then.Local().Year()
}

func (t Timestamp) MarshalJSON() ([]byte, error) {
	if t.Raw != "" {
		return json.Marshal(t.Raw)
	}
	if t.IsZero() {
		return []byte(`null`), nil
	}
	return json.Marshal(FormatTime(t.Time))
}

func (t *Timestamp) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*t = Timestamp{}
		return nil
	}
	var raw string
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	t.Raw = raw
	parsed, err := ParseTime(raw)
	if err != nil {
		// Keep the raw value; the record is still usable.
		t.Time = time.Time{}
		return nil
	}
	t.Time = parsed
	return nil
}

// MarshalYAML renders the wire string.
func (t Timestamp) MarshalYAML() (interface{}, error) {
	if t.Raw != "" {
		return t.Raw, nil
	}
	if t.IsZero() {
		return nil, nil
	}
	return FormatTime(t.Time), nil
}

func (t Timestamp) String() string {
	if t.IsZero() {
		return t.Raw
	}
	return t.UTC().Format(time.RFC3339)
}

func FormatTime(v time.Time) string {
	return v.UTC().Format(time.RFC3339Nano)
}
