package cancel_reservation

import (
	usecase "github.com/kamillakovacs/craftbeerspa/internal/usecase/cancel_reservation"
)

// CancelReservationRequest HTTP request model
type CancelReservationRequest struct {
	Reason string `json:"reason"`
}

// ToUseCaseRequest converts the HTTP request to the usecase model
func (r *CancelReservationRequest) ToUseCaseRequest(paymentID string) *usecase.Request {
	reason := r.Reason
	if reason == "" {
		reason = "user"
	}
	return &usecase.Request{
		PaymentID: paymentID,
		Reason:    reason,
	}
}

// CancelReservationResponse HTTP response model
type CancelReservationResponse struct {
	PaymentID string `json:"paymentId"`
	Status    string `json:"status"`
	Canceled  string `json:"canceled"`
}
