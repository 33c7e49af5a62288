package get_available_slots

// Request asks for the bookable calendar starting tomorrow
type Request struct {
	Days int // number of days to return; 0 means the full booking horizon
}

// Response is the calendar grid the UI renders: per-day disabled flags plus
// per-slot availability, derived purely from current data
type Response struct {
	Days []Day
}

// Day is the availability of one calendar date
type Day struct {
	Date     string // ISO date key, venue timezone
	Disabled bool
	Slots    []SlotStatus
}

// SlotStatus is the availability of one canonical hour on a date
type SlotStatus struct {
	Hour     int
	Disabled bool
}
