package alerts

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	json "github.com/goccy/go-json"

	"github.com/OilBro/api-510-inspection-manager/internal/models"
)

// Notifier delivers the batched criticality alert raised at the end of an
// aggregation run.
type Notifier interface {
	NotifyCriticality(ctx context.Context, alert models.CriticalityAlert) error
}

// LogNotifier writes alerts to the structured log.
type LogNotifier struct {
	logger *slog.Logger
}

// NewLogNotifier constructs a log-backed notifier.
func NewLogNotifier(logger *slog.Logger) *LogNotifier {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogNotifier{logger: logger}
}

// NotifyCriticality logs the alert at warn level.
func (n *LogNotifier) NotifyCriticality(_ context.Context, alert models.CriticalityAlert) error {
	n.logger.Warn("criticality alert",
		slog.String("vessel_id", alert.VesselID),
		slog.String("components", strings.Join(alert.Components, ",")),
	)
	return nil
}

// WebhookNotifier posts alerts as JSON to a configured endpoint.
type WebhookNotifier struct {
	url        string
	httpClient *http.Client
}

// NewWebhookNotifier constructs a webhook notifier targeting the given URL.
func NewWebhookNotifier(url string, timeout time.Duration) *WebhookNotifier {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &WebhookNotifier{
		url:        strings.TrimRight(url, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

// NotifyCriticality delivers the alert payload. A non-2xx response is an
// error so the caller can log the failed delivery.
func (n *WebhookNotifier) NotifyCriticality(ctx context.Context, alert models.CriticalityAlert) error {
	if n == nil || n.url == "" {
		return nil
	}

	body, err := json.Marshal(alert)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("alert webhook request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("alert webhook returned status %d", resp.StatusCode)
	}
	return nil
}

// MultiNotifier fans an alert out to several notifiers, returning the first
// delivery error after attempting all of them.
type MultiNotifier struct {
	notifiers []Notifier
}

// NewMultiNotifier combines notifiers, skipping nils.
func NewMultiNotifier(notifiers ...Notifier) *MultiNotifier {
	kept := make([]Notifier, 0, len(notifiers))
	for _, n := range notifiers {
		if n != nil {
			kept = append(kept, n)
		}
	}
	return &MultiNotifier{notifiers: kept}
}

// NotifyCriticality delivers to every notifier.
func (m *MultiNotifier) NotifyCriticality(ctx context.Context, alert models.CriticalityAlert) error {
	var firstErr error
	for _, n := range m.notifiers {
		if err := n.NotifyCriticality(ctx, alert); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
