package models

import (
	"sort"

	"github.com/kamillakovacs/craftbeerspa/internal/domain"
)

// BlockedSlot is one blocked date+hour pair
type BlockedSlot struct {
	Date string `json:"date"`
	Hour int    `json:"hour"`
}

// CalendarResponse is the outward view of the blackout calendar
type CalendarResponse struct {
	Dates []string      `json:"dates"`
	Slots []BlockedSlot `json:"slots"`
}

// FromDomainCalendar converts the calendar with stable ordering
func FromDomainCalendar(calendar *domain.BlackoutCalendar) *CalendarResponse {
	resp := &CalendarResponse{
		Dates: make([]string, 0, len(calendar.Dates)),
		Slots: make([]BlockedSlot, 0, len(calendar.Slots)),
	}

	for date := range calendar.Dates {
		resp.Dates = append(resp.Dates, date)
	}
	sort.Strings(resp.Dates)

	for slot := range calendar.Slots {
		resp.Slots = append(resp.Slots, BlockedSlot{Date: slot.Date, Hour: slot.Hour})
	}
	sort.Slice(resp.Slots, func(i, j int) bool {
		if resp.Slots[i].Date != resp.Slots[j].Date {
			return resp.Slots[i].Date < resp.Slots[j].Date
		}
		return resp.Slots[i].Hour < resp.Slots[j].Hour
	})

	return resp
}
