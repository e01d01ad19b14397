package notify

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"BizPulse/internal/domain/models"
)

func TestNotifyPostsAlerts(t *testing.T) {
	var received webhookPayload
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	n := NewWebhookNotifier(srv.URL, time.Second, nil)
	n.Notify(context.Background(), []models.Alert{
		{Type: models.AlertSuccess, Severity: models.SeverityMedium, Message: "Revenue increased by 12.0%"},
	})

	assert.Equal(t, "bizpulse", received.Source)
	require.Len(t, received.Alerts, 1)
	assert.Equal(t, "Revenue increased by 12.0%", received.Alerts[0].Message)
}

func TestNotifySkipsEmptyAlerts(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
	}))
	defer srv.Close()

	n := NewWebhookNotifier(srv.URL, time.Second, nil)
	n.Notify(context.Background(), nil)

	assert.Zero(t, calls)
}

func TestNotifyNilNotifierIsNoop(t *testing.T) {
	var n *WebhookNotifier
	n.Notify(context.Background(), []models.Alert{{Message: "x"}})
}
