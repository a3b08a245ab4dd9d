package core

import (
	"bytes"
	"strings"
	"time"
)

// DateLayout is the wire format for calendar dates.
const DateLayout = "2006-01-02"

// Date is a calendar day. The zero value means "no date" and is how
// unparsable input ends up after decoding.
type Date struct {
	time.Time
}

// ParseDate accepts YYYY-MM-DD or a full RFC 3339 timestamp. Anything else
// yields the zero Date and false.
func ParseDate(s string) (Date, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Date{}, false
	}
	if t, err := time.Parse(DateLayout, s); err == nil {
		return Date{Time: t}, true
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		y, m, d := t.Date()
		return NewDate(y, int(m), d), true
	}
	return Date{}, false
}

func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.Format(DateLayout)
}

func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte(`""`), nil
	}
	return []byte(`"` + d.Format(DateLayout) + `"`), nil
}

// UnmarshalJSON never fails on a bad date string; it leaves the zero Date.
func (d *Date) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*d = Date{}
		return nil
	}
	parsed, _ := ParseDate(strings.Trim(string(b), `"`))
	*d = parsed
	return nil
}

// Midnight returns a copy truncated to midnight UTC.
func (d Date) Midnight() Date {
	if d.IsZero() {
		return d
	}
	y, m, day := d.Date()
	return NewDate(y, int(m), day)
}

// YearMonth formats the date as YYYY-MM.
func (d Date) YearMonth() string {
	return d.Format("2006-01")
}

// DateOf returns the calendar day of t in t's location.
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return NewDate(y, int(m), d)
}
