package barion

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/kamillakovacs/craftbeerspa/internal/domain"
)

// Client talks to the Barion payment gateway
type Client struct {
	baseURL     string
	posKey      string
	callbackURL string
	redirectURL string
	httpClient  *http.Client
	log         Logger
}

// NewClient creates a payment gateway client
func NewClient(baseURL, posKey, callbackURL, redirectURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL:     baseURL,
		posKey:      posKey,
		callbackURL: callbackURL,
		redirectURL: redirectURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// Initiate starts a payment for a reservation draft. The gateway assigns the
// payment id that becomes the reservation's identity.
func (c *Client) Initiate(ctx context.Context, res *domain.Reservation) (*PaymentInitiation, error) {
	payload := startPaymentRequest{
		POSKey:           c.posKey,
		PaymentType:      "Immediate",
		GuestCheckOut:    true,
		FundingSources:   []string{"All"},
		PaymentRequestID: res.TransactionID,
		Locale:           res.Locale,
		Currency:         "HUF",
		CallbackURL:      c.callbackURL,
		RedirectURL:      c.redirectURL,
		Transactions: []paymentTransaction{
			{
				POSTransactionID: res.TransactionID,
				Payee:            "craftbeerspa@gmail.com",
				Total:            res.Price,
				Comment:          fmt.Sprintf("Craft Beer Spa %s", res.Slot),
			},
		},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to marshal request: %v", ErrInternal, err)
	}

	url := fmt.Sprintf("%s/v2/Payment/Start", c.baseURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(raw))
	}

	var started startPaymentResponse
	if err := json.NewDecoder(resp.Body).Decode(&started); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	if len(started.Errors) > 0 {
		c.log.Warn("Barion rejected payment start: code=%s, title=%s",
			started.Errors[0].ErrorCode, started.Errors[0].Title)
		return nil, fmt.Errorf("%w: %s", ErrPaymentRejected, started.Errors[0].Title)
	}
	if started.PaymentID == "" || started.GatewayURL == "" {
		return nil, fmt.Errorf("%w: missing payment id or gateway url", ErrInvalidResponse)
	}

	c.log.Info("Barion payment started: payment_id=%s, transaction_id=%s", started.PaymentID, res.TransactionID)
	return &PaymentInitiation{
		PaymentID:  started.PaymentID,
		GatewayURL: started.GatewayURL,
	}, nil
}

// GetPaymentState fetches the gateway-side status of a payment. Used by the
// confirmation callback to verify the payment actually succeeded.
func (c *Client) GetPaymentState(ctx context.Context, paymentID string) (*PaymentState, error) {
	url := fmt.Sprintf("%s/v2/Payment/GetPaymentState?POSKey=%s&PaymentId=%s", c.baseURL, c.posKey, paymentID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		return nil, ErrPaymentNotFound
	default:
		raw, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(raw))
	}

	var state paymentStateResponse
	if err := json.NewDecoder(resp.Body).Decode(&state); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	if len(state.Errors) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrInvalidResponse, state.Errors[0].Title)
	}

	return &PaymentState{
		PaymentID: state.PaymentID,
		Status:    state.Status,
	}, nil
}
