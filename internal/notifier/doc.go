// Package notifier wires a cost source, the message formatter and the
// configured channels into a single run.
//
// A run resolves the billing period from the clock, queries the total and the
// per-service costs, formats the message and sends it to each channel in
// order. There is no retry: the first error is logged with its context and
// returned to the caller, which reports the invocation as failed.
//
// Example usage:
//
//	n := notifier.New(source, channel.Build(cfg, snsClient, store), log,
//		notifier.WithMetrics(metrics.New(cfg.Metrics)))
//	if _, err := n.Run(ctx); err != nil {
//		return err
//	}
package notifier
