package digest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"
)

// Discord asks clients to pace webhook posts.
const postInterval = 500 * time.Millisecond

type Webhook struct {
	client *http.Client
	url    string
}

func NewWebhook(url string, timeout time.Duration) *Webhook {
	return &Webhook{
		client: &http.Client{Timeout: timeout},
		url:    url,
	}
}

type embed struct {
	Title       string `json:"title,omitempty"`
	Description string `json:"description"`
	Color       int    `json:"color"`
}

type webhookPayload struct {
	Embeds []embed `json:"embeds"`
}

// Deliver posts the digest chunk by chunk. The title rides on the
// first chunk only.
func (w *Webhook) Deliver(ctx context.Context, d Digest) error {
	for i, chunk := range d.Chunks {
		e := embed{Description: chunk, Color: 0x5865F2}
		if i == 0 {
			e.Title = d.Title
		}
		if err := w.post(ctx, webhookPayload{Embeds: []embed{e}}); err != nil {
			return fmt.Errorf("chunk %d/%d: %w", i+1, len(d.Chunks), err)
		}
		if i < len(d.Chunks)-1 {
			select {
			case <-time.After(postInterval):
			case <-ctx.Done():
				return ctx.Err()
			}
		}
	}
	slog.Info("digest delivered", "chunks", len(d.Chunks))
	return nil
}

func (w *Webhook) post(ctx context.Context, payload webhookPayload) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := w.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("webhook returned status %d", resp.StatusCode)
	}
	return nil
}
