package mailersend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Logger is the logging interface the client depends on
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Email is one templated transactional email
type Email struct {
	ToEmail    string
	ToName     string
	Subject    string
	TemplateID string
	Variables  map[string]string
}

type sendRequest struct {
	From            emailAddress      `json:"from"`
	To              []emailAddress    `json:"to"`
	ReplyTo         emailAddress      `json:"reply_to"`
	Subject         string            `json:"subject"`
	TemplateID      string            `json:"template_id"`
	Personalization []personalization `json:"personalization"`
}

type emailAddress struct {
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
}

type personalization struct {
	Email string            `json:"email"`
	Data  map[string]string `json:"data"`
}

// Client talks to the MailerSend transactional email API
type Client struct {
	baseURL    string
	apiKey     string
	fromEmail  string
	fromName   string
	httpClient *http.Client
	log        Logger
}

// NewClient creates a transactional email client
func NewClient(baseURL, apiKey, fromEmail, fromName string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL:   baseURL,
		apiKey:    apiKey,
		fromEmail: fromEmail,
		fromName:  fromName,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// Send delivers one templated email through the provider
func (c *Client) Send(ctx context.Context, email *Email) error {
	payload := sendRequest{
		From:       emailAddress{Email: c.fromEmail, Name: c.fromName},
		To:         []emailAddress{{Email: email.ToEmail, Name: email.ToName}},
		ReplyTo:    emailAddress{Email: c.fromEmail, Name: c.fromName},
		Subject:    email.Subject,
		TemplateID: email.TemplateID,
		Personalization: []personalization{
			{Email: email.ToEmail, Data: email.Variables},
		},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("%w: failed to marshal request: %v", ErrInternal, err)
	}

	url := fmt.Sprintf("%s/v1/email", c.baseURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusAccepted && resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(resp.Body)
		c.log.Warn("MailerSend rejected email to %s: status=%d", email.ToEmail, resp.StatusCode)
		return fmt.Errorf("%w: status code %d: %s", ErrSendFailed, resp.StatusCode, string(raw))
	}

	c.log.Info("Email sent to %s (template=%s)", email.ToEmail, email.TemplateID)
	return nil
}
