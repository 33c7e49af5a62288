package get_available_slots

import (
	usecase "github.com/kamillakovacs/craftbeerspa/internal/usecase/get_available_slots"
)

// SlotResponse is one bookable hour on a date
type SlotResponse struct {
	Hour     int  `json:"hour"`
	Disabled bool `json:"disabled"`
}

// DayResponse is one date of the availability grid
type DayResponse struct {
	Date     string         `json:"date"`
	Disabled bool           `json:"disabled"`
	Slots    []SlotResponse `json:"slots"`
}

// AvailabilityResponse is the full availability grid
type AvailabilityResponse struct {
	Days []DayResponse `json:"days"`
}

// FromUseCaseResponse converts the usecase response to the HTTP model
func FromUseCaseResponse(resp *usecase.Response) *AvailabilityResponse {
	out := &AvailabilityResponse{Days: make([]DayResponse, 0, len(resp.Days))}
	for _, day := range resp.Days {
		slots := make([]SlotResponse, 0, len(day.Slots))
		for _, slot := range day.Slots {
			slots = append(slots, SlotResponse{Hour: slot.Hour, Disabled: slot.Disabled})
		}
		out.Days = append(out.Days, DayResponse{Date: day.Date, Disabled: day.Disabled, Slots: slots})
	}
	return out
}
