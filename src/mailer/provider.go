package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/google/uuid"
)

type EmailProvider interface {
	SendEmail(ctx context.Context, to, subject, body string) error
}

// httpProvider posts to a transactional-mail HTTP API (endpoint and key
// come from settings). Each send carries an idempotency key so a retried
// request cannot double-deliver.
type httpProvider struct {
	endpoint string
	apiKey   string
	from     string
	client   *http.Client
}

func newHTTPProvider(endpoint, apiKey, from string) *httpProvider {
	return &httpProvider{
		endpoint: endpoint,
		apiKey:   apiKey,
		from:     from,
		client:   http.DefaultClient,
	}
}

type mailRequest struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	Text    string   `json:"text"`
}

func (p *httpProvider) SendEmail(ctx context.Context, to, subject, body string) error {
	b, err := json.Marshal(mailRequest{
		From:    p.from,
		To:      []string{to},
		Subject: subject,
		Text:    body,
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.endpoint, bytes.NewReader(b))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+p.apiKey)
	req.Header.Set("Idempotency-Key", uuid.NewString())

	resp, err := p.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return errors.New("mail send failed: " + resp.Status)
	}
	return nil
}
