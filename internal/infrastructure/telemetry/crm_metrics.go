// Package telemetry provides OpenTelemetry integration for metrics collection.
// This file contains CRM-level metrics recorded by the application services.
package telemetry

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// CRMStatsProvider supplies point-in-time counts for the periodic gauges.
// The persistence layer implements this.
type CRMStatsProvider interface {
	// CountCustomersByStatus returns customer counts keyed by status,
	// excluding soft-deleted rows
	CountCustomersByStatus(ctx context.Context) (map[string]int64, error)

	// CountEstimatesByStatus returns estimate counts keyed by status
	CountEstimatesByStatus(ctx context.Context) (map[string]int64, error)
}

// CRMMetrics records business-level counters and gauges for the CRM.
// All Record methods are safe to call when metrics are disabled; they
// write to the no-op global meter.
type CRMMetrics struct {
	logger *zap.Logger

	customerCreated     *Counter
	communicationLogged *Counter
	estimateCreated     *Counter
	estimateSent        *Counter
	estimateDecided     *Counter
	estimateAmount      *FloatGauge
	scrapeRuns          *Counter
	scrapedImages       *Counter

	customersByStatus *Gauge
	estimatesByStatus *Gauge

	collectionStarted bool
}

// NewCRMMetrics creates the CRM metric instruments on the given provider
func NewCRMMetrics(meterProvider *MeterProvider, logger *zap.Logger) (*CRMMetrics, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	meter := meterProvider.Meter("poolcrm.business")

	cm := &CRMMetrics{logger: logger}

	var err error
	cm.customerCreated, err = NewCounter(meter,
		"poolcrm_customer_created_total",
		"Total customers created",
		"{customer}")
	if err != nil {
		return nil, err
	}

	cm.communicationLogged, err = NewCounter(meter,
		"poolcrm_communication_logged_total",
		"Total communications logged",
		"{communication}")
	if err != nil {
		return nil, err
	}

	cm.estimateCreated, err = NewCounter(meter,
		"poolcrm_estimate_created_total",
		"Total estimates created",
		"{estimate}")
	if err != nil {
		return nil, err
	}

	cm.estimateSent, err = NewCounter(meter,
		"poolcrm_estimate_sent_total",
		"Total estimates sent to customers",
		"{estimate}")
	if err != nil {
		return nil, err
	}

	cm.estimateDecided, err = NewCounter(meter,
		"poolcrm_estimate_decided_total",
		"Total estimates approved or declined",
		"{estimate}")
	if err != nil {
		return nil, err
	}

	cm.estimateAmount, err = NewFloatGauge(meter,
		"poolcrm_estimate_amount",
		"Total amount of the most recently sent estimate",
		"USD")
	if err != nil {
		return nil, err
	}

	cm.scrapeRuns, err = NewCounter(meter,
		"poolcrm_scrape_runs_total",
		"Total competitor image scrape runs",
		"{run}")
	if err != nil {
		return nil, err
	}

	cm.scrapedImages, err = NewCounter(meter,
		"poolcrm_scraped_images_total",
		"Total competitor images stored",
		"{image}")
	if err != nil {
		return nil, err
	}

	cm.customersByStatus, err = NewGauge(meter,
		"poolcrm_customers_by_status",
		"Current customer count per status",
		"{customer}")
	if err != nil {
		return nil, err
	}

	cm.estimatesByStatus, err = NewGauge(meter,
		"poolcrm_estimates_by_status",
		"Current estimate count per status",
		"{estimate}")
	if err != nil {
		return nil, err
	}

	return cm, nil
}

// RecordCustomerCreated increments the customer counter
func (cm *CRMMetrics) RecordCustomerCreated(ctx context.Context, source string) {
	cm.customerCreated.Inc(ctx, AttrCustomerSource.String(source))
}

// RecordCommunicationLogged increments the communication counter
func (cm *CRMMetrics) RecordCommunicationLogged(ctx context.Context, commType, direction string) {
	cm.communicationLogged.Inc(ctx,
		AttrCommType.String(commType),
		AttrCommDirection.String(direction),
	)
}

// RecordEstimateCreated increments the estimate counter
func (cm *CRMMetrics) RecordEstimateCreated(ctx context.Context) {
	cm.estimateCreated.Inc(ctx)
}

// RecordEstimateSent records a sent estimate and its total
func (cm *CRMMetrics) RecordEstimateSent(ctx context.Context, total decimal.Decimal) {
	cm.estimateSent.Inc(ctx)
	amount, _ := total.Float64()
	cm.estimateAmount.Record(ctx, amount)
}

// RecordEstimateDecided records an approval or decline
func (cm *CRMMetrics) RecordEstimateDecided(ctx context.Context, status string) {
	cm.estimateDecided.Inc(ctx, AttrEstimateStatus.String(status))
}

// RecordScrapeRun records the outcome of one scrape run and how many
// images it stored
func (cm *CRMMetrics) RecordScrapeRun(ctx context.Context, outcome string, imageCount int) {
	cm.scrapeRuns.Inc(ctx, AttrScrapeOutcome.String(outcome))
	if imageCount > 0 {
		cm.scrapedImages.Add(ctx, int64(imageCount))
	}
}

// StartPeriodicCollection records the by-status gauges on the given
// interval until ctx is cancelled. Calling it twice is a no-op.
func (cm *CRMMetrics) StartPeriodicCollection(ctx context.Context, provider CRMStatsProvider, interval time.Duration) {
	if cm.collectionStarted || provider == nil {
		return
	}
	cm.collectionStarted = true
	if interval <= 0 {
		interval = time.Minute
	}
	go cm.runPeriodicCollection(ctx, provider, interval)
}

func (cm *CRMMetrics) runPeriodicCollection(ctx context.Context, provider CRMStatsProvider, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	cm.collectStatusGauges(ctx, provider)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			cm.collectStatusGauges(ctx, provider)
		}
	}
}

func (cm *CRMMetrics) collectStatusGauges(ctx context.Context, provider CRMStatsProvider) {
	customers, err := provider.CountCustomersByStatus(ctx)
	if err != nil {
		cm.logger.Warn("Failed to collect customer status counts", zap.Error(err))
	} else {
		for status, count := range customers {
			cm.customersByStatus.Record(ctx, count, AttrCustomerStatus.String(status))
		}
	}

	estimates, err := provider.CountEstimatesByStatus(ctx)
	if err != nil {
		cm.logger.Warn("Failed to collect estimate status counts", zap.Error(err))
		return
	}
	for status, count := range estimates {
		cm.estimatesByStatus.Record(ctx, count, AttrEstimateStatus.String(status))
	}
}
