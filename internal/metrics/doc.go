// Package metrics records Prometheus metrics for a notifier run.
//
// The notifier runs once per schedule and exits, so there is nothing to
// scrape. Recorder keeps its own registry and, when a Pushgateway URL is
// configured, pushes it at the end of the run.
//
// Exposed metrics:
//   - billing_notifier_total_cost_usd{provider}
//   - billing_notifier_service_cost_usd{provider,service}
//   - billing_notifier_deliveries_total{channel,result}
//   - billing_notifier_last_run_timestamp_seconds
//   - billing_notifier_run_duration_seconds
//   - billing_notifier_last_run_success
//   - billing_notifier_build_info{version,git_commit,build_date,go_version}
package metrics
