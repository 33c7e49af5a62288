package create_reservation

// Request is a reservation draft: the picked slot plus the customer details
// captured by the booking form. It has no identity yet.
type Request struct {
	Date           string // ISO date key, venue timezone
	Hour           int
	NumberOfGuests int
	NumberOfTubs   int
	Price          float64

	FirstName   string
	LastName    string
	PhoneNumber string
	Email       string
	Address     string
	City        string
	CountryCode string
	PostCode    string

	Locale       string
	Requirements *string
}

// Response carries the new reservation identity and the gateway redirect
type Response struct {
	PaymentID     string
	TransactionID string
	RedirectURL   string
	Status        string
}
