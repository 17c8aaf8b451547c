package whatsapp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"MaizeReporter/internal/config"
	"MaizeReporter/internal/ports"
)

// Notifier sends rendered report messages to one WhatsApp recipient via the
// Green API.
type Notifier struct {
	baseURL  string
	instance string
	token    string
	phone    string
	client   *http.Client
}

var _ ports.Notifier = (*Notifier)(nil)

// NewNotifier registers instance credentials and the recipient phone number.
func NewNotifier(cfg config.WhatsAppConfig) *Notifier {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = "https://api.green-api.com"
	}
	return &Notifier{
		baseURL:  baseURL,
		instance: cfg.Instance,
		token:    cfg.Token,
		phone:    cfg.Phone,
		client:   &http.Client{Timeout: 10 * time.Second},
	}
}

// Send posts the message to the configured chat. Single attempt, no delivery
// receipts consumed.
func (n *Notifier) Send(ctx context.Context, message string) error {
	if n.instance == "" || n.token == "" || n.phone == "" || n.client == nil {
		return fmt.Errorf("whatsapp notifier misconfigured")
	}

	endpoint := fmt.Sprintf("%s/waInstance%s/sendMessage/%s", n.baseURL, n.instance, n.token)

	body, err := json.Marshal(map[string]string{
		"chatId":  n.phone + "@c.us",
		"message": message,
	})
	if err != nil {
		return fmt.Errorf("marshal message: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("whatsapp error: %s", resp.Status)
	}

	return nil
}
