// Package billing holds the billing value records and the two pure pieces of
// logic the notifier is built around: resolving the query period for a given
// day and turning cost results into a notification message.
//
// The query period is half-open: Start is inclusive and End is exclusive, the
// convention used by the cost APIs. On the first day of a month the current
// month would be empty, so the period is widened to the whole previous month:
//
//	billing.ResolvePeriod(2024-07-15) // [2024-07-01, 2024-07-15)
//	billing.ResolvePeriod(2024-07-01) // [2024-06-01, 2024-07-01)
//
// Amounts are decimal.Decimal values and are rounded half away from zero to
// two places when rendered, so "0.005" is shown as "0.01".
//
// Example usage:
//
//	period := billing.ResolvePeriod(time.Now())
//	total, _ := source.QueryTotal(ctx, period)
//	services, _ := source.QueryServices(ctx, period)
//	msg := billing.FormatMessage(total, services)
//	fmt.Println(msg.Title)
package billing
