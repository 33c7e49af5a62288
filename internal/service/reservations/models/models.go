package models

import (
	"fmt"

	"github.com/kamillakovacs/craftbeerspa/internal/domain"
)

// ReservationResponse is the outward view of one reservation
type ReservationResponse struct {
	PaymentID      string  `json:"paymentId"`
	TransactionID  string  `json:"transactionId"`
	ReceiptID      *int64  `json:"receiptId,omitempty"`
	Date           string  `json:"date"`
	Time           string  `json:"time"`
	NumberOfGuests int     `json:"numberOfGuests"`
	NumberOfTubs   int     `json:"numberOfTubs"`
	Price          float64 `json:"price"`
	FirstName      string  `json:"firstName"`
	LastName       string  `json:"lastName"`
	Email          string  `json:"email"`
	PhoneNumber    string  `json:"phoneNumber"`
	Requirements   *string `json:"requirements,omitempty"`
	PaymentStatus  string  `json:"paymentStatus"`
	Canceled       string  `json:"canceled,omitempty"`
	Uncancelable   bool    `json:"uncancelable"`
	CanCancel      bool    `json:"canCancel"`
	CanReschedule  bool    `json:"canReschedule"`
}

// ReservationListResponse wraps a list of reservations
type ReservationListResponse struct {
	Reservations []*ReservationResponse `json:"reservations"`
	Total        int                    `json:"total"`
}

// FromDomainReservation converts a domain reservation to the outward view
func FromDomainReservation(res *domain.Reservation) *ReservationResponse {
	return &ReservationResponse{
		PaymentID:      res.PaymentID,
		TransactionID:  res.TransactionID,
		ReceiptID:      res.ReservationID,
		Date:           res.Slot.Date,
		Time:           fmt.Sprintf("%02d:00", res.Slot.Hour),
		NumberOfGuests: res.NumberOfGuests,
		NumberOfTubs:   res.NumberOfTubs,
		Price:          res.Price,
		FirstName:      res.Customer.FirstName,
		LastName:       res.Customer.LastName,
		Email:          res.Customer.Email,
		PhoneNumber:    res.Customer.PhoneNumber,
		Requirements:   res.Requirements,
		PaymentStatus:  string(res.PaymentStatus),
		Canceled:       string(res.Canceled),
		Uncancelable:   res.Uncancelable,
		CanCancel:      res.CanBeCancelled(),
		CanReschedule:  res.CanBeRescheduled(),
	}
}

// FromDomainReservationList converts a list of domain reservations
func FromDomainReservationList(list []*domain.Reservation) *ReservationListResponse {
	out := make([]*ReservationResponse, 0, len(list))
	for _, res := range list {
		out = append(out, FromDomainReservation(res))
	}
	return &ReservationListResponse{Reservations: out, Total: len(out)}
}
