package telemetry_test

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/poolcrm/backend/internal/infrastructure/telemetry"
)

func newTestCRMMetrics(t *testing.T) *telemetry.CRMMetrics {
	t.Helper()
	logger := zaptest.NewLogger(t)

	mp, err := telemetry.NewMeterProvider(context.Background(), telemetry.MetricsConfig{
		Enabled:     false,
		ServiceName: "test-service",
	}, logger)
	require.NoError(t, err)

	cm, err := telemetry.NewCRMMetrics(mp, logger)
	require.NoError(t, err)
	return cm
}

func TestCRMMetrics_RecordCounters(t *testing.T) {
	cm := newTestCRMMetrics(t)
	ctx := context.Background()

	// All record paths go to the no-op meter; this verifies they do not panic
	cm.RecordCustomerCreated(ctx, "website")
	cm.RecordCommunicationLogged(ctx, "call", "outbound")
	cm.RecordEstimateCreated(ctx)
	cm.RecordEstimateSent(ctx, decimal.NewFromFloat(519.47))
	cm.RecordEstimateDecided(ctx, "approved")
	cm.RecordScrapeRun(ctx, "success", 7)
	cm.RecordScrapeRun(ctx, "failure", 0)
}

type stubStatsProvider struct {
	calls atomic.Int32
}

func (p *stubStatsProvider) CountCustomersByStatus(ctx context.Context) (map[string]int64, error) {
	p.calls.Add(1)
	return map[string]int64{"lead": 3, "active": 10}, nil
}

func (p *stubStatsProvider) CountEstimatesByStatus(ctx context.Context) (map[string]int64, error) {
	return map[string]int64{"draft": 2, "sent": 1}, nil
}

func TestCRMMetrics_PeriodicCollection(t *testing.T) {
	cm := newTestCRMMetrics(t)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	provider := &stubStatsProvider{}
	cm.StartPeriodicCollection(ctx, provider, 10*time.Millisecond)

	// Starting again must not spawn a second collector
	cm.StartPeriodicCollection(ctx, provider, 10*time.Millisecond)

	assert.Eventually(t, func() bool {
		return provider.calls.Load() >= 2
	}, time.Second, 5*time.Millisecond)

	cancel()
	settled := provider.calls.Load()
	time.Sleep(30 * time.Millisecond)
	assert.LessOrEqual(t, provider.calls.Load(), settled+1)
}

func TestCRMMetrics_PeriodicCollection_NilProvider(t *testing.T) {
	cm := newTestCRMMetrics(t)

	// Must not panic or start anything
	cm.StartPeriodicCollection(context.Background(), nil, time.Minute)
}
