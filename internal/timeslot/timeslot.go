// Package timeslot handles the facility's wall-clock time slots. All times
// are HH:MM 24-hour strings and all dates are YYYY-MM-DD; there is no
// timezone handling.
package timeslot

import (
	"fmt"
	"strings"
	"time"
)

// Slot is a half-open [Start, End) interval within one day.
type Slot struct {
	Start string
	End   string
}

// Canonical slots for fixed activities, matched by title keyword.
var fixedSlots = []struct {
	keyword string
	slot    Slot
}{
	{"Ontbijt", Slot{"08:00", "09:00"}},
	{"Medicatie", Slot{"09:15", "09:30"}},
	{"Lunch", Slot{"12:30", "13:30"}},
	{"Avondeten", Slot{"18:00", "19:00"}},
}

// FlexibleSlots are filled in order by schedule generation: morning,
// afternoon, late afternoon.
var FlexibleSlots = []Slot{
	{"10:00", "11:00"},
	{"14:00", "15:00"},
	{"16:00", "17:00"},
}

// FixedSlotForTitle returns the canonical slot for a fixed template by
// title-substring match. Titles matching no keyword get no times.
func FixedSlotForTitle(title string) (Slot, bool) {
	for _, fs := range fixedSlots {
		if strings.Contains(title, fs.keyword) {
			return fs.slot, true
		}
	}
	return Slot{}, false
}

// ParseClock converts an HH:MM string to minutes since midnight.
func ParseClock(s string) (int, error) {
	var h, m int
	if _, err := fmt.Sscanf(s, "%d:%d", &h, &m); err != nil {
		return 0, fmt.Errorf("malformed time %q: %w", s, err)
	}
	if h < 0 || h > 23 || m < 0 || m > 59 {
		return 0, fmt.Errorf("time %q out of range", s)
	}
	return h*60 + m, nil
}

// ValidClock reports whether s is a well-formed HH:MM time.
func ValidClock(s string) bool {
	if len(s) != 5 || s[2] != ':' {
		return false
	}
	_, err := ParseClock(s)
	return err == nil
}

// ValidDate reports whether s is a well-formed YYYY-MM-DD date.
func ValidDate(s string) bool {
	_, err := time.Parse("2006-01-02", s)
	return err == nil
}

// Overlaps reports whether two half-open intervals intersect. Activities
// missing either bound never conflict, so callers pass nil for absent times.
func Overlaps(aStart, aEnd, bStart, bEnd *string) bool {
	if aStart == nil || aEnd == nil || bStart == nil || bEnd == nil {
		return false
	}
	s1, err1 := ParseClock(*aStart)
	e1, err2 := ParseClock(*aEnd)
	s2, err3 := ParseClock(*bStart)
	e2, err4 := ParseClock(*bEnd)
	if err1 != nil || err2 != nil || err3 != nil || err4 != nil {
		return false
	}
	return s1 < e2 && s2 < e1
}
