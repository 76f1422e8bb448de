package entity

import (
	"fmt"
	"strings"
	"time"
)

// Time is time.Time with tolerant JSON decoding. Session files written by the
// previous backend carry naive ISO-8601 timestamps with no offset
// ("2025-01-02T15:04:05.123456"); files written here carry RFC 3339. Both must
// load, or an upgrade would junk every existing collection as corrupt.
type Time struct {
	time.Time
}

func Now() Time {
	return Time{Time: time.Now()}
}

// Naive timestamps carry no zone; they were written with the process-local
// clock, so they are read back the same way.
var naiveLayouts = []string{
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999",
}

func (t Time) MarshalJSON() ([]byte, error) {
	return t.Time.MarshalJSON()
}

func (t *Time) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "" || s == "null" {
		t.Time = time.Time{}
		return nil
	}
	if parsed, err := time.Parse(time.RFC3339Nano, s); err == nil {
		t.Time = parsed
		return nil
	}
	for _, layout := range naiveLayouts {
		if parsed, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			t.Time = parsed
			return nil
		}
	}
	return fmt.Errorf("unsupported timestamp %q", s)
}
