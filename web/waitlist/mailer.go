package waitlist

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Mailer sends the signup confirmation email. Send failures are logged by the
// caller and never surfaced to the visitor; the signup has already succeeded.
type Mailer interface {
	// SendConfirmation sends the waitlist confirmation to the given address.
	//
	// Parameters:
	//   - ctx: context for cancellation
	//   - email: the recipient address
	//
	// Returns:
	//   - error: error if the provider rejected or the request failed
	SendConfirmation(ctx context.Context, email string) error
}

// httpMailer implements Mailer against an HTTP email provider API using
// bearer-token auth.
type httpMailer struct {
	client   *http.Client
	endpoint string
	apiKey   string
	sender   string
}

var _ Mailer = &httpMailer{}

// NewMailer creates a Mailer that posts to the given provider endpoint.
//
// Parameters:
//   - endpoint: the provider's send URL
//   - apiKey: the bearer token for the provider
//   - sender: the From address
//
// Returns:
//   - Mailer: the configured mailer
func NewMailer(endpoint, apiKey, sender string) Mailer {
	return &httpMailer{
		client:   &http.Client{Timeout: 10 * time.Second},
		endpoint: endpoint,
		apiKey:   apiKey,
		sender:   sender,
	}
}

func (m *httpMailer) SendConfirmation(ctx context.Context, email string) error {
	payload, err := json.Marshal(map[string]any{
		"from":    m.sender,
		"to":      []string{email},
		"subject": "You're on the Nexusnext waitlist",
		"html": "<p>Thanks for joining the Nexusnext waitlist.</p>" +
			"<p>We'll let you know the moment early access opens up.</p>",
	})
	if err != nil {
		return fmt.Errorf("encode confirmation email: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.endpoint, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("build confirmation request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+m.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := m.client.Do(req)
	if err != nil {
		return fmt.Errorf("send confirmation email: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("email provider returned %d: %s", resp.StatusCode, body)
	}
	return nil
}

// nopMailer discards confirmations. Used when no provider API key is
// configured.
type nopMailer struct{}

var _ Mailer = nopMailer{}

// NewNopMailer creates a Mailer that silently drops every confirmation.
//
// Returns:
//   - Mailer: the no-op mailer
func NewNopMailer() Mailer {
	return nopMailer{}
}

func (nopMailer) SendConfirmation(ctx context.Context, email string) error {
	return nil
}
