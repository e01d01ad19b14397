package notify

import (
	"context"
	"time"

	"BizPulse/internal/domain/models"
	xhttp "BizPulse/pkg/http"
	applogger "BizPulse/pkg/logger"
)

// WebhookNotifier posts fired alerts to a configured webhook URL.
// Delivery failures are logged, never propagated to the request path.
type WebhookNotifier struct {
	client *xhttp.Client
	url    string
	l      *applogger.Logger
}

func NewWebhookNotifier(url string, timeout time.Duration, l *applogger.Logger) *WebhookNotifier {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &WebhookNotifier{
		client: xhttp.NewClient(xhttp.WithTimeout(timeout)),
		url:    url,
		l:      l,
	}
}

type webhookPayload struct {
	Source string         `json:"source"`
	SentAt string         `json:"sent_at"`
	Alerts []models.Alert `json:"alerts"`
}

// Notify delivers alerts to the webhook. A nil notifier or empty alert
// set is a no-op.
func (n *WebhookNotifier) Notify(ctx context.Context, alerts []models.Alert) {
	if n == nil || len(alerts) == 0 {
		return
	}

	err := n.client.SendAndParse(ctx, &xhttp.RequestOptions{
		Method: xhttp.MethodPost,
		URL:    n.url,
		Body: webhookPayload{
			Source: "bizpulse",
			SentAt: time.Now().Format(time.RFC3339),
			Alerts: alerts,
		},
	}, nil)
	if err != nil {
		if n.l != nil {
			n.l.Warn("alert webhook delivery failed", applogger.Error(err))
		}
		return
	}
	if n.l != nil {
		n.l.Debug("alert webhook delivered", applogger.Int("alerts", len(alerts)))
	}
}
