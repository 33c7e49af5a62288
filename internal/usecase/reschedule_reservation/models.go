package reschedule_reservation

// Request identifies the reservation and the slot it should move to
type Request struct {
	PaymentID string
	Date      string // YYYY-MM-DD
	Hour      int
}

// Response reports the move
type Response struct {
	PaymentID    string
	Date         string
	Hour         int
	PreviousDate string
	PreviousHour int
}
