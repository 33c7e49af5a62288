package billingo

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

// Logger is the logging interface the client depends on
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Client talks to the Billingo invoicing API
type Client struct {
	baseURL       string
	apiKey        string
	blockID       int64
	bankAccountID int64
	httpClient    *http.Client
	log           Logger
}

// NewClient creates a receipt issuer client
func NewClient(baseURL, apiKey string, blockID, bankAccountID int64, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL:       baseURL,
		apiKey:        apiKey,
		blockID:       blockID,
		bankAccountID: bankAccountID,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

type partnerRequest struct {
	Name    string         `json:"name"`
	Address partnerAddress `json:"address"`
	Emails  []string       `json:"emails"`
	Phone   string         `json:"phone"`
	TaxType string         `json:"tax_type"`
}

type partnerAddress struct {
	CountryCode string `json:"country_code"`
	PostCode    string `json:"post_code"`
	City        string `json:"city"`
	Address     string `json:"address"`
}

type partnerResponse struct {
	ID int64 `json:"id"`
}

type documentRequest struct {
	PartnerID       int64          `json:"partner_id"`
	BlockID         int64          `json:"block_id"`
	BankAccountID   int64          `json:"bank_account_id"`
	Type            string         `json:"type"`
	FulfillmentDate string         `json:"fulfillment_date"`
	DueDate         string         `json:"due_date"`
	PaymentMethod   string         `json:"payment_method"`
	Language        string         `json:"language"`
	Currency        string         `json:"currency"`
	Electronic      bool           `json:"electronic"`
	Paid            bool           `json:"paid"`
	Items           []documentItem `json:"items"`
}

type documentItem struct {
	Name          string  `json:"name"`
	UnitPrice     float64 `json:"unit_price"`
	UnitPriceType string  `json:"unit_price_type"`
	Quantity      int     `json:"quantity"`
	Unit          string  `json:"unit"`
	VAT           string  `json:"vat"`
}

type documentResponse struct {
	ID int64 `json:"id"`
}

// FindOrCreatePartner registers the reservation's customer as an invoicing
// partner and returns the partner id
func (c *Client) FindOrCreatePartner(ctx context.Context, customer domain.Customer) (int64, error) {
	payload := partnerRequest{
		Name: customer.FirstName + " " + customer.LastName,
		Address: partnerAddress{
			CountryCode: customer.CountryCode,
			PostCode:    customer.PostCode,
			City:        customer.City,
			Address:     customer.Address,
		},
		Emails:  []string{customer.Email},
		Phone:   customer.PhoneNumber,
		TaxType: "NO_TAX_NUMBER",
	}

	var created partnerResponse
	if err := c.post(ctx, "/partners", payload, &created); err != nil {
		return 0, err
	}
	if created.ID == 0 {
		return 0, fmt.Errorf("%w: missing partner id", ErrInvalidResponse)
	}

	c.log.Info("Billingo partner created: partner_id=%d", created.ID)
	return created.ID, nil
}

// CreateDocument issues a paid invoice document for the reservation
func (c *Client) CreateDocument(ctx context.Context, res *domain.Reservation, partnerID int64) (int64, error) {
	date := res.DateOfPurchase.Format(domain.DateFormat)
	payload := documentRequest{
		PartnerID:       partnerID,
		BlockID:         c.blockID,
		BankAccountID:   c.bankAccountID,
		Type:            "invoice",
		FulfillmentDate: date,
		DueDate:         date,
		PaymentMethod:   "online_bankcard",
		Language:        "hu",
		Currency:        "HUF",
		Electronic:      true,
		Paid:            true,
		Items: []documentItem{
			{
				Name:          fmt.Sprintf("Craft Beer Spa - %d tubs for %d guests", res.NumberOfTubs, res.NumberOfGuests),
				UnitPrice:     res.Price,
				UnitPriceType: "gross",
				Quantity:      1,
				Unit:          "db",
				VAT:           "27%",
			},
		},
	}

	var created documentResponse
	if err := c.post(ctx, "/documents", payload, &created); err != nil {
		return 0, err
	}
	if created.ID == 0 {
		return 0, fmt.Errorf("%w: missing document id", ErrInvalidResponse)
	}

	c.log.Info("Billingo document created: document_id=%d, payment_id=%s", created.ID, res.PaymentID)
	return created.ID, nil
}

// SendDocument emails the issued document to the customer
func (c *Client) SendDocument(ctx context.Context, documentID int64, email string) error {
	payload := map[string][]string{"emails": {email}}
	return c.post(ctx, fmt.Sprintf("/documents/%d/send", documentID), payload, nil)
}

func (c *Client) post(ctx context.Context, path string, payload interface{}, out interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("%w: failed to marshal request: %v", ErrInternal, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-API-KEY", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		raw, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%w: %s status code %d: %s", ErrDocumentFailed, path, resp.StatusCode, string(raw))
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
		}
	}
	return nil
}
