package notifier

import (
	"context"
	"fmt"
	"time"

	"github.com/zgpcy/cloud-billing-notifier/internal/billing"
	"github.com/zgpcy/cloud-billing-notifier/internal/channel"
	"github.com/zgpcy/cloud-billing-notifier/internal/clock"
	"github.com/zgpcy/cloud-billing-notifier/internal/logger"
	"github.com/zgpcy/cloud-billing-notifier/internal/metrics"
	"github.com/zgpcy/cloud-billing-notifier/internal/provider"
)

// Notifier runs one billing notification: query, format, deliver
type Notifier struct {
	source    provider.CostSource
	channels  []channel.Sender
	formatter billing.Formatter
	metrics   *metrics.Recorder
	logger    *logger.Logger
	clock     clock.Clock
}

// Option configures a Notifier
type Option func(*Notifier)

// WithClock overrides the time source used to resolve the billing period
func WithClock(c clock.Clock) Option {
	return func(n *Notifier) {
		n.clock = c
	}
}

// WithMetrics records run metrics into r
func WithMetrics(r *metrics.Recorder) Option {
	return func(n *Notifier) {
		n.metrics = r
	}
}

// New creates a Notifier delivering to channels in the given order
func New(source provider.CostSource, channels []channel.Sender, log *logger.Logger, opts ...Option) *Notifier {
	n := &Notifier{
		source:    source,
		channels:  channels,
		formatter: billing.Formatter{Provider: source.Name().Label()},
		logger:    log,
		clock:     clock.RealClock{},
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// Run performs one invocation and returns the message it built.
//
// Channels are tried one after another. The first failing channel aborts the
// run and its error is returned; channels after it are not attempted.
func (n *Notifier) Run(ctx context.Context) (msg billing.Message, err error) {
	started := n.clock.Now()
	defer func() {
		n.finish(ctx, started, err)
	}()

	period := billing.ResolvePeriod(started)
	log := n.logger.WithFields(
		"provider", n.source.Name(),
		"start_date", period.StartDate(),
		"end_date", period.EndDate())
	ctx = logger.NewContext(ctx, log)

	log.Info("Querying billing")

	total, err := n.source.QueryTotal(ctx, period)
	if err != nil {
		log.Error("Failed to query total billing", "error", err)
		return billing.Message{}, fmt.Errorf("query total billing: %w", err)
	}

	services, err := n.source.QueryServices(ctx, period)
	if err != nil {
		log.Error("Failed to query service billings", "error", err)
		return billing.Message{}, fmt.Errorf("query service billings: %w", err)
	}

	if n.metrics != nil {
		n.metrics.ObserveBilling(string(n.source.Name()), total, services)
	}

	msg = n.formatter.Format(total, services)
	log.Info("Billing message created",
		"title", msg.Title,
		"total", billing.FormatAmount(total.Amount),
		"service_count", len(services))

	if len(n.channels) == 0 {
		log.Warn("No destination to post message. Please set EMAIL_TOPIC_ARN, SLACK_SECRET_NAME or LINE_SECRET_NAME.")
		return msg, nil
	}

	for _, ch := range n.channels {
		err := ch.Send(ctx, msg)
		if n.metrics != nil {
			n.metrics.ObserveDelivery(ch.Name(), err)
		}
		if err != nil {
			log.Error("Failed to send notification", "channel", ch.Name(), "error", err)
			return msg, fmt.Errorf("channel %s: %w", ch.Name(), err)
		}
		log.Info("Notification sent", "channel", ch.Name())
	}

	return msg, nil
}

// finish records run metrics and pushes them; push failures only warn so
// they never mask the run's own result
func (n *Notifier) finish(ctx context.Context, started time.Time, runErr error) {
	if n.metrics == nil {
		return
	}

	n.metrics.ObserveRun(started, n.clock.Now().Sub(started), runErr)

	if err := n.metrics.Push(ctx); err != nil {
		n.logger.Warn("Failed to push metrics", "error", err)
	}
}
