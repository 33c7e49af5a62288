package domain

import "time"

// CanonicalHours are the six bookable starting hours of a day.
// A slot is exclusive venue-wide: one non-canceled reservation takes the
// whole slot regardless of how many tubs it books.
var CanonicalHours = []int{10, 12, 14, 16, 18, 20}

// Booking policy defaults
const (
	// DefaultBookingHorizonDays is how far ahead a date may be picked
	DefaultBookingHorizonDays = 60

	// DefaultPreparedTTLMinutes is the payment window: a prepared
	// reservation that never confirms stops holding its slot after this
	DefaultPreparedTTLMinutes = 30
)

// Time format constants
const (
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// DefaultTimezone is the venue timezone used to normalize every date and
// slot comparison
const DefaultTimezone = "Europe/Budapest"

// MaxRequirementsLength caps the free-text special requirements field
const MaxRequirementsLength = 500

// PreparedTTL converts the configured payment window to a duration
func PreparedTTL(minutes int) time.Duration {
	if minutes <= 0 {
		minutes = DefaultPreparedTTLMinutes
	}
	return time.Duration(minutes) * time.Minute
}
