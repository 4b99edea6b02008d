package metrics

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBusinessMetrics(t *testing.T) {
	provider, err := NewProvider("devsync")
	require.NoError(t, err)

	businessMetrics, err := NewBusinessMetrics(provider.MeterProvider(), "devsync")

	require.NoError(t, err)
	assert.NotNil(t, businessMetrics)
}

func TestBusinessMetrics_RecordOperation(t *testing.T) {
	provider, err := NewProvider("devsync")
	require.NoError(t, err)

	businessMetrics, err := NewBusinessMetrics(provider.MeterProvider(), "devsync")
	require.NoError(t, err)

	// Recording must not panic for any label combination.
	businessMetrics.RecordOperation(context.Background(), "auth", "login", "success")
	businessMetrics.RecordOperation(context.Background(), "auth", "login", "error")
	businessMetrics.RecordOperation(context.Background(), "chat", "message_post", "success")
	businessMetrics.RecordOperation(context.Background(), "settings", "settings_reset", "success")
}

func TestBusinessMetrics_RecordDuration(t *testing.T) {
	provider, err := NewProvider("devsync")
	require.NoError(t, err)

	businessMetrics, err := NewBusinessMetrics(provider.MeterProvider(), "devsync")
	require.NoError(t, err)

	businessMetrics.RecordDuration(context.Background(), "auth", "signup", 150*time.Millisecond, "success")
	businessMetrics.RecordDuration(context.Background(), "chat", "conversation_create", 5*time.Millisecond, "error")
}

func TestNoOpBusinessMetrics(t *testing.T) {
	noop := NewNoOpBusinessMetrics()

	noop.RecordOperation(context.Background(), "auth", "login", "success")
	noop.RecordDuration(context.Background(), "auth", "login", time.Second, "success")
}
