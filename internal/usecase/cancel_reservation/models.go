package cancel_reservation

// Request identifies the reservation to cancel and who asked for it
type Request struct {
	PaymentID string
	Reason    string // "user", "phone_call" or "admin"
}

// Response reports the resulting reservation state
type Response struct {
	PaymentID string
	Status    string
	Canceled  string
}
