package manage_blackouts

// BlackoutRequest targets a whole date or, when hour is present, one slot
type BlackoutRequest struct {
	Date string `json:"date"`
	Hour *int   `json:"hour,omitempty"`
}
