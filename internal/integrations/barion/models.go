package barion

// PaymentStatus values reported by the gateway
const (
	StatePrepared  = "Prepared"
	StateSucceeded = "Succeeded"
	StateCanceled  = "Canceled"
	StateExpired   = "Expired"
)

// startPaymentRequest is the payload sent to the payment start endpoint
type startPaymentRequest struct {
	POSKey           string               `json:"POSKey"`
	PaymentType      string               `json:"PaymentType"`
	GuestCheckOut    bool                 `json:"GuestCheckOut"`
	FundingSources   []string             `json:"FundingSources"`
	PaymentRequestID string               `json:"PaymentRequestId"`
	Locale           string               `json:"Locale"`
	Currency         string               `json:"Currency"`
	CallbackURL      string               `json:"CallbackUrl"`
	RedirectURL      string               `json:"RedirectUrl"`
	Transactions     []paymentTransaction `json:"Transactions"`
}

type paymentTransaction struct {
	POSTransactionID string  `json:"POSTransactionId"`
	Payee            string  `json:"Payee"`
	Total            float64 `json:"Total"`
	Comment          string  `json:"Comment"`
}

// startPaymentResponse is the gateway answer to a payment start
type startPaymentResponse struct {
	PaymentID  string   `json:"PaymentId"`
	GatewayURL string   `json:"GatewayUrl"`
	Status     string   `json:"Status"`
	Errors     []apiErr `json:"Errors"`
}

type paymentStateResponse struct {
	PaymentID string   `json:"PaymentId"`
	Status    string   `json:"Status"`
	Errors    []apiErr `json:"Errors"`
}

type apiErr struct {
	ErrorCode   string `json:"ErrorCode"`
	Title       string `json:"Title"`
	Description string `json:"Description"`
}

// PaymentInitiation is the result of handing a draft off to the gateway
type PaymentInitiation struct {
	PaymentID  string
	GatewayURL string
}

// PaymentState is the current gateway-side status of a payment
type PaymentState struct {
	PaymentID string
	Status    string
}
