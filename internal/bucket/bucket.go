// Package bucket derives the date-bucket keys that name destination
// subdirectories.
package bucket

import (
	"fmt"
	"time"
)

// Key identifies a destination bucket: four-digit year followed by
// two-digit month, always six ASCII digits.
type Key string

// FromTime maps a timestamp to its bucket key using the calendar year and
// month in local time. Total over all time values.
func FromTime(t time.Time) Key {
	year, month, _ := t.Local().Date()
	return Key(fmt.Sprintf("%04d%02d", year, int(month)))
}

func (k Key) String() string {
	return string(k)
}

// Valid reports whether value is a well-formed bucket key: exactly six
// digits with a month component between 01 and 12.
func Valid(value string) bool {
	if len(value) != 6 {
		return false
	}
	for _, r := range value {
		if r < '0' || r > '9' {
			return false
		}
	}
	month := int(value[4]-'0')*10 + int(value[5]-'0')
	return month >= 1 && month <= 12
}
