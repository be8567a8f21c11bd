// Package elasticemail delivers notifications through the Elastic Email
// HTTP API (v2).
package elasticemail

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/etnz/stockwatch"
)

// Client sends alert digests as transactional emails. The zero value is not
// usable; use New.
type Client struct {
	apiKey     string
	endpoint   string
	sender     string
	senderName string
	recipients []string
	client     *http.Client
}

// New returns a Client for the notification settings of cfg.
func New(cfg stockwatch.Config) *Client {
	return &Client{
		apiKey:     cfg.EmailAPIKey,
		endpoint:   cfg.EmailEndpoint,
		sender:     cfg.SenderEmail,
		senderName: cfg.SenderName,
		recipients: cfg.Recipients,
		client:     &http.Client{Timeout: 30 * time.Second},
	}
}

var _ stockwatch.Notifier = (*Client)(nil)

// Send posts the message to the /email/send endpoint and decodes the
// {success, error} envelope. It returns an error on transport failure, a
// non-200 status, or an API-reported failure; it never panics.
func (c *Client) Send(msg stockwatch.Message) error {
	form := url.Values{
		"apikey":          {c.apiKey},
		"subject":         {msg.Subject},
		"from":            {c.sender},
		"fromName":        {c.senderName},
		"to":              {strings.Join(c.recipients, ",")},
		"bodyText":        {msg.Text},
		"isTransactional": {"true"},
	}
	if msg.HTML != "" {
		form.Set("bodyHtml", msg.HTML)
	}

	resp, err := c.client.PostForm(c.endpoint+"/email/send", form)
	if err != nil {
		return fmt.Errorf("cannot reach email API: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("cannot read email API response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("email API returned %s: %s", resp.Status, body)
	}

	// {"success": false, "error": "Incorrect apikey"}
	var envelope struct {
		Success bool   `json:"success"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return fmt.Errorf("cannot parse email API response %q: %w", body, err)
	}
	if !envelope.Success {
		return fmt.Errorf("email API error: %s", envelope.Error)
	}
	return nil
}
