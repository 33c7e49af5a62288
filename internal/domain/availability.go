package domain

import "time"

// Availability answers whether a date or a specific slot may be selected,
// given the current reservations and the blackout calendar. All checks are
// evaluated against a single reference time and a single timezone, so the
// day-level and hour-level answers can never disagree.
//
// The same engine backs both the advisory pre-submit check and the
// authoritative re-check inside the prepare/reschedule transactions; only the
// reservation snapshot it is built from differs.
type Availability struct {
	now         time.Time
	loc         *time.Location
	horizonDays int
	occupied    map[Slot]struct{}
	blackout    *BlackoutCalendar
}

// NewAvailability builds the engine from a reservation snapshot. Reservations
// that do not hold their slot (canceled, or prepared past the payment window)
// are ignored. A nil blackout calendar blocks nothing; an empty snapshot
// means fully available.
func NewAvailability(
	reservations []*Reservation,
	blackout *BlackoutCalendar,
	now time.Time,
	loc *time.Location,
	horizonDays int,
	preparedTTL time.Duration,
) *Availability {
	occupied := make(map[Slot]struct{}, len(reservations))
	for _, res := range reservations {
		if res.HoldsSlot(now, preparedTTL) {
			occupied[res.Slot] = struct{}{}
		}
	}

	if horizonDays <= 0 {
		horizonDays = DefaultBookingHorizonDays
	}

	return &Availability{
		now:         now,
		loc:         loc,
		horizonDays: horizonDays,
		occupied:    occupied,
		blackout:    blackout,
	}
}

// IsDateDisabled reports whether no slot on the date may be selected:
// the date is today or in the past, beyond the booking horizon, blocked by
// the blackout calendar, or every canonical hour is already taken.
func (a *Availability) IsDateDisabled(dateKey string) bool {
	day, err := time.ParseInLocation(DateFormat, dateKey, a.loc)
	if err != nil {
		return true
	}

	today, err := time.ParseInLocation(DateFormat, DateKey(a.now, a.loc), a.loc)
	if err != nil {
		return true
	}

	// no same-day or retroactive booking
	if !day.After(today) {
		return true
	}
	if day.After(today.AddDate(0, 0, a.horizonDays)) {
		return true
	}
	if a.blackout.IsDateBlocked(dateKey) {
		return true
	}

	for _, hour := range CanonicalHours {
		if _, taken := a.occupied[Slot{Date: dateKey, Hour: hour}]; !taken {
			return false
		}
	}
	return true
}

// IsSlotDisabled reports whether the specific date+hour slot may not be
// selected: it is blocked by the blackout calendar or already taken by a
// reservation that holds it.
func (a *Availability) IsSlotDisabled(slot Slot) bool {
	if a.blackout.IsSlotBlocked(slot) {
		return true
	}
	_, taken := a.occupied[slot]
	return taken
}

// IsSlotSelectable combines the day-level and slot-level checks for the
// authoritative check-and-reserve path
func (a *Availability) IsSlotSelectable(slot Slot) bool {
	if !slot.IsCanonical() {
		return false
	}
	if a.IsDateDisabled(slot.Date) {
		return false
	}
	return !a.IsSlotDisabled(slot)
}
