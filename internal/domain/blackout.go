package domain

// BlackoutCalendar holds admin-set overrides: whole dates blocked for
// booking, or individual slots blocked, independent of reservation state.
// A nil calendar blocks nothing.
type BlackoutCalendar struct {
	Dates map[string]struct{}
	Slots map[Slot]struct{}
}

// NewBlackoutCalendar returns an empty calendar
func NewBlackoutCalendar() *BlackoutCalendar {
	return &BlackoutCalendar{
		Dates: make(map[string]struct{}),
		Slots: make(map[Slot]struct{}),
	}
}

// IsDateBlocked returns true if the whole date is blocked
func (c *BlackoutCalendar) IsDateBlocked(dateKey string) bool {
	if c == nil || c.Dates == nil {
		return false
	}
	_, ok := c.Dates[dateKey]
	return ok
}

// IsSlotBlocked returns true if the specific date+hour slot is blocked
func (c *BlackoutCalendar) IsSlotBlocked(slot Slot) bool {
	if c == nil || c.Slots == nil {
		return false
	}
	_, ok := c.Slots[slot]
	return ok
}
