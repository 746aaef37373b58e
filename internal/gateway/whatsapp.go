// Package gateway adapts the WhatsApp Cloud API to the two operations the
// core depends on: deliver a text to a phone, and deliver an approved
// template with parameters. The core never depends on transport-specific
// formatting beyond this surface.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"
)

// Sender is the outbound-message contract consumed by the services layer.
// Implementations must be safe for concurrent use and honor the context for
// cancellation and timeouts.
type Sender interface {
	// SendText delivers a free-form text body to a canonical phone number.
	SendText(ctx context.Context, phone, body string) error
	// SendTemplate delivers a pre-approved template, substituting params
	// into the template body in order.
	SendTemplate(ctx context.Context, phone, template string, params []string) error
}

// ErrUnavailable is returned when the Cloud API could not be reached or kept
// answering with server errors through the retry budget.
var ErrUnavailable = errors.New("whatsapp gateway unavailable")

// Client talks to the WhatsApp Cloud API over HTTPS with a bearer token.
// Each call carries the configured timeout and a single retry on transport
// errors or 5xx responses; 4xx responses are not retried (the payload will
// not get better).
type Client struct {
	HTTP    *http.Client
	BaseURL string // e.g. https://graph.facebook.com/v21.0
	Token   string
	PhoneID string
	Lang    string // template language code, must match the approved template
}

// NewClient constructs a Client with the given credentials and per-request
// timeout.
func NewClient(baseURL, token, phoneID string, timeout time.Duration) *Client {
	return &Client{
		HTTP:    &http.Client{Timeout: timeout},
		BaseURL: baseURL,
		Token:   token,
		PhoneID: phoneID,
		Lang:    "en",
	}
}

// Cloud API request/response shapes. Only the fields the core reads/writes.

type textPayload struct {
	MessagingProduct string   `json:"messaging_product"`
	To               string   `json:"to"`
	Type             string   `json:"type"`
	Text             textBody `json:"text"`
}

type textBody struct {
	Body string `json:"body"`
}

type templatePayload struct {
	MessagingProduct string       `json:"messaging_product"`
	To               string       `json:"to"`
	Type             string       `json:"type"`
	Template         templateBody `json:"template"`
}

type templateBody struct {
	Name       string              `json:"name"`
	Language   templateLang        `json:"language"`
	Components []templateComponent `json:"components,omitempty"`
}

type templateLang struct {
	Code string `json:"code"`
}

type templateComponent struct {
	Type       string          `json:"type"`
	Parameters []templateParam `json:"parameters"`
}

type templateParam struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

type apiError struct {
	Error struct {
		Message string `json:"message"`
		Code    int    `json:"code"`
	} `json:"error"`
}

// SendText implements Sender.
func (c *Client) SendText(ctx context.Context, phone, body string) error {
	return c.post(ctx, textPayload{
		MessagingProduct: "whatsapp",
		To:               phone,
		Type:             "text",
		Text:             textBody{Body: body},
	})
}

// SendTemplate implements Sender.
func (c *Client) SendTemplate(ctx context.Context, phone, template string, params []string) error {
	tpl := templateBody{
		Name:     template,
		Language: templateLang{Code: c.Lang},
	}
	if len(params) > 0 {
		ps := make([]templateParam, 0, len(params))
		for _, p := range params {
			ps = append(ps, templateParam{Type: "text", Text: p})
		}
		tpl.Components = []templateComponent{{Type: "body", Parameters: ps}}
	}
	return c.post(ctx, templatePayload{
		MessagingProduct: "whatsapp",
		To:               phone,
		Type:             "template",
		Template:         tpl,
	})
}

// post sends one payload to the messages endpoint with a single retry on
// transport failure or 5xx.
func (c *Client) post(ctx context.Context, payload any) error {
	raw, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	url := fmt.Sprintf("%s/%s/messages", c.BaseURL, c.PhoneID)

	var lastErr error
	for attempt := 0; attempt < 2; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(raw))
		if err != nil {
			return err
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Authorization", "Bearer "+c.Token)

		resp, err := c.HTTP.Do(req)
		if err != nil {
			lastErr = err
			if ctx.Err() != nil {
				break
			}
			continue
		}

		if resp.StatusCode < 300 {
			io.Copy(io.Discard, resp.Body)
			resp.Body.Close()
			return nil
		}

		var ae apiError
		msg := ""
		if b, rerr := io.ReadAll(io.LimitReader(resp.Body, 4096)); rerr == nil {
			if json.Unmarshal(b, &ae) == nil {
				msg = ae.Error.Message
			}
		}
		resp.Body.Close()

		log.Warn().
			Int("status", resp.StatusCode).
			Str("api_error", msg).
			Int("attempt", attempt+1).
			Msg("whatsapp send failed")

		if resp.StatusCode < 500 {
			// Client error: same payload, same answer. Do not retry.
			return fmt.Errorf("whatsapp api %d: %s", resp.StatusCode, msg)
		}
		lastErr = fmt.Errorf("whatsapp api %d: %s", resp.StatusCode, msg)
	}

	return fmt.Errorf("%w: %v", ErrUnavailable, lastErr)
}
