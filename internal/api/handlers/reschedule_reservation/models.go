package reschedule_reservation

import (
	usecase "github.com/kamillakovacs/craftbeerspa/internal/usecase/reschedule_reservation"
)

// RescheduleReservationRequest HTTP request model
type RescheduleReservationRequest struct {
	Date string `json:"date"`
	Hour int    `json:"hour"`
}

// ToUseCaseRequest converts the HTTP request to the usecase model
func (r *RescheduleReservationRequest) ToUseCaseRequest(paymentID string) *usecase.Request {
	return &usecase.Request{
		PaymentID: paymentID,
		Date:      r.Date,
		Hour:      r.Hour,
	}
}

// RescheduleReservationResponse HTTP response model
type RescheduleReservationResponse struct {
	PaymentID    string `json:"paymentId"`
	Date         string `json:"date"`
	Hour         int    `json:"hour"`
	PreviousDate string `json:"previousDate"`
	PreviousHour int    `json:"previousHour"`
}
