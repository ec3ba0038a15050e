package notifier

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"time"
)

// maxContentLen is the webhook payload ceiling. The final assembled digest
// is hard-truncated to this many characters before transmission.
const maxContentLen = 1900

// DiscordNotifier posts scan digests to a Discord webhook. Delivery is
// fire-and-forget: the response status is logged, never acted upon.
type DiscordNotifier struct {
	WebhookURL string
	Client     *http.Client
}

// NewDiscordNotifier creates a notifier with optional proxy support.
func NewDiscordNotifier(webhookURL, proxyURL string) *DiscordNotifier {
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	return &DiscordNotifier{
		WebhookURL: webhookURL,
		Client: &http.Client{
			Timeout:   20 * time.Second,
			Transport: transport,
		},
	}
}

// Send posts the text to the webhook, truncated to the payload ceiling.
func (d *DiscordNotifier) Send(text string) error {
	payload := map[string]string{"content": truncate(text, maxContentLen)}
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}
	resp, err := d.Client.Post(d.WebhookURL, "application/json", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("post webhook: %w", err)
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 120))
	log.Printf("[INFO] discord webhook: status %d, body: %s", resp.StatusCode, string(respBody))
	return nil
}

// truncate cuts s to at most limit characters, never splitting a rune.
func truncate(s string, limit int) string {
	r := []rune(s)
	if len(r) <= limit {
		return s
	}
	return string(r[:limit])
}
