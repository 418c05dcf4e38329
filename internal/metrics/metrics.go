package metrics

import (
	"context"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/push"
	"github.com/zgpcy/cloud-billing-notifier/internal/billing"
	"github.com/zgpcy/cloud-billing-notifier/internal/config"
	"github.com/zgpcy/cloud-billing-notifier/internal/version"
)

// Delivery results
const (
	ResultSuccess = "success"
	ResultFailure = "failure"
)

// Recorder collects the metrics of one notifier run. A short lived function
// cannot be scraped, so the registry is pushed to a Pushgateway when one is
// configured.
type Recorder struct {
	registry *prometheus.Registry
	pusher   *push.Pusher

	totalCost   *prometheus.GaugeVec
	serviceCost *prometheus.GaugeVec
	deliveries  *prometheus.CounterVec
	lastRun     prometheus.Gauge
	runDuration prometheus.Gauge
	runSuccess  prometheus.Gauge
	buildInfo   *prometheus.GaugeVec
}

// New creates a Recorder with its own registry
func New(cfg config.MetricsConfig) *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		totalCost: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "billing_notifier_total_cost_usd",
				Help: "Total amortized cost of the current billing period in USD",
			},
			[]string{"provider"},
		),
		serviceCost: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "billing_notifier_service_cost_usd",
				Help: "Amortized cost of each service for the current billing period in USD",
			},
			[]string{"provider", "service"},
		),
		deliveries: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "billing_notifier_deliveries_total",
				Help: "Notification delivery attempts by channel and result",
			},
			[]string{"channel", "result"},
		),
		lastRun: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "billing_notifier_last_run_timestamp_seconds",
			Help: "Unix timestamp of the last run",
		}),
		runDuration: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "billing_notifier_run_duration_seconds",
			Help: "Duration of the last run in seconds",
		}),
		runSuccess: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "billing_notifier_last_run_success",
			Help: "Whether the last run succeeded (1 = success, 0 = failure)",
		}),
		buildInfo: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "billing_notifier_build_info",
				Help: "Build version information",
			},
			[]string{"version", "git_commit", "build_date", "go_version"},
		),
	}

	r.registry.MustRegister(r.totalCost, r.serviceCost, r.deliveries, r.lastRun, r.runDuration, r.runSuccess, r.buildInfo)

	versionInfo := version.Info()
	r.buildInfo.With(prometheus.Labels{
		"version":    versionInfo["version"],
		"git_commit": versionInfo["git_commit"],
		"build_date": versionInfo["build_date"],
		"go_version": versionInfo["go_version"],
	}).Set(1)

	if cfg.PushgatewayURL != "" {
		r.pusher = push.New(cfg.PushgatewayURL, cfg.Job).Gatherer(r.registry)
	}

	return r
}

// Registry exposes the underlying registry
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

// PushEnabled reports whether a Pushgateway is configured
func (r *Recorder) PushEnabled() bool {
	return r.pusher != nil
}

// ObserveBilling records the queried costs
func (r *Recorder) ObserveBilling(provider string, total billing.TotalBilling, services []billing.ServiceBilling) {
	r.totalCost.WithLabelValues(provider).Set(total.Amount.InexactFloat64())

	// Aggregate in case a provider reports the same service twice
	perService := make(map[string]float64, len(services))
	for _, s := range services {
		perService[s.ServiceName] += s.Amount.InexactFloat64()
	}
	for name, cost := range perService {
		r.serviceCost.WithLabelValues(provider, name).Set(cost)
	}
}

// ObserveDelivery counts one delivery attempt
func (r *Recorder) ObserveDelivery(channel string, err error) {
	result := ResultSuccess
	if err != nil {
		result = ResultFailure
	}
	r.deliveries.WithLabelValues(channel, result).Inc()
}

// ObserveRun records when the run started, how long it took and whether it failed
func (r *Recorder) ObserveRun(started time.Time, duration time.Duration, err error) {
	r.lastRun.Set(float64(started.Unix()))
	r.runDuration.Set(duration.Seconds())
	if err != nil {
		r.runSuccess.Set(0)
	} else {
		r.runSuccess.Set(1)
	}
}

// Push replaces the job's metrics on the Pushgateway. It is a no-op when no
// Pushgateway is configured.
func (r *Recorder) Push(ctx context.Context) error {
	if r.pusher == nil {
		return nil
	}
	if err := r.pusher.PushContext(ctx); err != nil {
		return fmt.Errorf("push metrics: %w", err)
	}
	return nil
}
