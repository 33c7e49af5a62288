package create_reservation

import (
	usecase "github.com/kamillakovacs/craftbeerspa/internal/usecase/create_reservation"
)

// CreateReservationRequest HTTP request model
type CreateReservationRequest struct {
	Date           string  `json:"date"`
	Hour           int     `json:"hour"`
	NumberOfGuests int     `json:"numberOfGuests"`
	NumberOfTubs   int     `json:"numberOfTubs"`
	Price          float64 `json:"price"`
	FirstName      string  `json:"firstName"`
	LastName       string  `json:"lastName"`
	PhoneNumber    string  `json:"phoneNumber"`
	Email          string  `json:"email"`
	Address        string  `json:"address"`
	City           string  `json:"city"`
	CountryCode    string  `json:"countryCode"`
	PostCode       string  `json:"postCode"`
	Locale         string  `json:"locale,omitempty"`
	Requirements   *string `json:"requirements,omitempty"`
}

// ToUseCaseRequest converts the HTTP request to the usecase model
func (r *CreateReservationRequest) ToUseCaseRequest() *usecase.Request {
	return &usecase.Request{
		Date:           r.Date,
		Hour:           r.Hour,
		NumberOfGuests: r.NumberOfGuests,
		NumberOfTubs:   r.NumberOfTubs,
		Price:          r.Price,
		FirstName:      r.FirstName,
		LastName:       r.LastName,
		PhoneNumber:    r.PhoneNumber,
		Email:          r.Email,
		Address:        r.Address,
		City:           r.City,
		CountryCode:    r.CountryCode,
		PostCode:       r.PostCode,
		Locale:         r.Locale,
		Requirements:   r.Requirements,
	}
}

// CreateReservationResponse HTTP response model
type CreateReservationResponse struct {
	PaymentID     string `json:"paymentId"`
	TransactionID string `json:"transactionId"`
	RedirectURL   string `json:"redirectUrl"`
	Status        string `json:"status"`
}
