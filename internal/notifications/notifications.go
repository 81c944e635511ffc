package notifications

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

const defaultBaseURL = "https://ntfy.sh"

// Notifier pushes messages to an ntfy topic. The zero value and nil are
// disabled.
type Notifier struct {
	client  *http.Client
	baseURL string
	topic   string
}

// Init returns a notifier for topic, or nil when no topic is configured.
func Init(topic string) *Notifier {
	if topic == "" {
		log.Warn().Msg("Ntfy topic not configured - notifications disabled")
		return nil
	}

	log.Info().
		Str("topic", topic).
		Msg("Ntfy notifications initialized")

	return &Notifier{
		client:  &http.Client{Timeout: 10 * time.Second},
		baseURL: defaultBaseURL,
		topic:   topic,
	}
}

// Send posts a notification.
func (n *Notifier) Send(title, message string) error {
	if n == nil || n.topic == "" {
		return fmt.Errorf("notifications not initialized")
	}

	payload := map[string]interface{}{
		"topic":   n.topic,
		"title":   title,
		"message": message,
	}

	jsonData, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal notification: %w", err)
	}

	// ntfy accepts JSON publishes on the root URL
	req, err := http.NewRequest("POST", strings.TrimRight(n.baseURL, "/")+"/", bytes.NewBuffer(jsonData))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send notification: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("ntfy returned non-success status: %d", resp.StatusCode)
	}

	log.Debug().
		Str("title", title).
		Int("status", resp.StatusCode).
		Msg("Notification sent successfully")

	return nil
}
