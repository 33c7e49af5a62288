package domain

import (
	"fmt"
	"time"
)

// BookingPolicy carries the venue-wide booking rules: the timezone every
// date comparison is normalized to, how far ahead a date may be picked, and
// how long a prepared reservation holds its slot while payment is pending.
type BookingPolicy struct {
	Location    *time.Location
	HorizonDays int
	PreparedTTL time.Duration
}

// NewBookingPolicy resolves the configured timezone and applies defaults
func NewBookingPolicy(timezone string, horizonDays, preparedTTLMinutes int) (BookingPolicy, error) {
	if timezone == "" {
		timezone = DefaultTimezone
	}
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return BookingPolicy{}, fmt.Errorf("invalid booking timezone %q: %w", timezone, err)
	}

	if horizonDays <= 0 {
		horizonDays = DefaultBookingHorizonDays
	}

	return BookingPolicy{
		Location:    loc,
		HorizonDays: horizonDays,
		PreparedTTL: PreparedTTL(preparedTTLMinutes),
	}, nil
}
