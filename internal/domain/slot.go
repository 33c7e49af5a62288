package domain

import (
	"fmt"
	"time"
)

// Slot identifies one bookable unit: a calendar date plus one of the six
// canonical starting hours. Date is an ISO-8601 date key ("2006-01-02")
// normalized to the venue timezone, which keeps day- and hour-level
// comparisons free of UTC/local off-by-one errors.
type Slot struct {
	Date string
	Hour int
}

// NewSlot normalizes a point in time to its slot. Minutes and seconds are
// discarded before comparison.
func NewSlot(t time.Time, loc *time.Location) Slot {
	local := t.In(loc)
	return Slot{
		Date: local.Format(DateFormat),
		Hour: local.Hour(),
	}
}

// Time converts the slot back to a concrete time in the venue timezone
func (s Slot) Time(loc *time.Location) (time.Time, error) {
	day, err := time.ParseInLocation(DateFormat, s.Date, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid slot date %q: %w", s.Date, err)
	}
	return day.Add(time.Duration(s.Hour) * time.Hour), nil
}

// IsCanonical returns true if the slot starts at one of the six bookable hours
func (s Slot) IsCanonical() bool {
	for _, h := range CanonicalHours {
		if s.Hour == h {
			return true
		}
	}
	return false
}

func (s Slot) String() string {
	return fmt.Sprintf("%s %02d:00", s.Date, s.Hour)
}

// DateKey normalizes a point in time to its ISO date key in the venue timezone
func DateKey(t time.Time, loc *time.Location) string {
	return t.In(loc).Format(DateFormat)
}
