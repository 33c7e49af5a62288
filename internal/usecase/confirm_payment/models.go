package confirm_payment

// Request is the gateway confirmation callback payload
type Request struct {
	PaymentID     string
	TransactionID string // optional; checked against the stored value when present
}

// Response reports the resulting reservation state
type Response struct {
	PaymentID string
	Status    string
}
