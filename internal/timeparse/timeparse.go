// Package timeparse converts the date and date-time spellings accepted by
// the API into time values, and formats them back for display.
package timeparse

import (
	"strings"
	"time"

	"github.com/clinicadev/clinic-api/internal/httperr"
)

const (
	DisplayDateLayout     = "02-01-2006"
	FormDateLayout        = "2006-01-02"
	DisplayDateTimeLayout = "02-01-2006 15:04:05"
)

// Tried in order; the first match wins.
var dateLayouts = []string{
	"2-1-2006",
	"2006-1-2",
}

var dateTimeLayouts = []string{
	"2-1-2006 15:04",
	"2-1-2006 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04:05.999999",
	"2006-01-02",
}

// Offset-aware ISO 8601 spellings plus the minute-precision form.
var isoLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04Z07:00",
	"2006-01-02 15:04:05Z07:00",
	"2006-01-02T15:04",
}

// ParseDate returns the calendar date held by value as midnight UTC. It
// accepts time.Time, *time.Time and strings in DD-MM-YYYY or YYYY-MM-DD.
// nil and blank strings yield nil.
func ParseDate(field string, value any) (*time.Time, error) {
	switch v := value.(type) {
	case nil:
		return nil, nil
	case time.Time:
		d := dateOf(v)
		return &d, nil
	case *time.Time:
		if v == nil {
			return nil, nil
		}
		d := dateOf(*v)
		return &d, nil
	case string:
		s := strings.TrimSpace(v)
		if s == "" {
			return nil, nil
		}
		for _, layout := range dateLayouts {
			if t, err := time.Parse(layout, s); err == nil {
				return &t, nil
			}
		}
		return nil, httperr.InvalidFormat(field, v)
	case *string:
		if v == nil {
			return nil, nil
		}
		return ParseDate(field, *v)
	}
	return nil, httperr.InvalidFormat(field, value)
}

// ParseDateTime returns the instant held by value. Strings without an offset
// are read as wall-clock time in loc.
func ParseDateTime(field string, value any, loc *time.Location) (*time.Time, error) {
	if loc == nil {
		loc = time.UTC
	}

	switch v := value.(type) {
	case nil:
		return nil, nil
	case time.Time:
		return &v, nil
	case *time.Time:
		return v, nil
	case string:
		s := strings.TrimSpace(v)
		if s == "" {
			return nil, nil
		}
		for _, layout := range dateTimeLayouts {
			if t, err := time.ParseInLocation(layout, s, loc); err == nil {
				return &t, nil
			}
		}
		for _, layout := range isoLayouts {
			if t, err := time.ParseInLocation(layout, s, loc); err == nil {
				return &t, nil
			}
		}
		return nil, httperr.InvalidFormat(field, v)
	case *string:
		if v == nil {
			return nil, nil
		}
		return ParseDateTime(field, *v, loc)
	}
	return nil, httperr.InvalidFormat(field, value)
}

func dateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func DisplayDate(t *time.Time) *string {
	return format(t, DisplayDateLayout, nil)
}

func FormDate(t *time.Time) *string {
	return format(t, FormDateLayout, nil)
}

// DisplayDateTime renders t in loc, or in its own location when loc is nil.
func DisplayDateTime(t *time.Time, loc *time.Location) *string {
	return format(t, DisplayDateTimeLayout, loc)
}

func format(t *time.Time, layout string, loc *time.Location) *string {
	if t == nil || t.IsZero() {
		return nil
	}
	v := *t
	if loc != nil {
		v = v.In(loc)
	}
	s := v.Format(layout)
	return &s
}
