// Package provider defines the cost source abstraction.
//
// The notifier only needs two answers from a cloud: the total cost for a
// billing period and the per-service breakdown. Each cloud package implements
// CostSource and converts its API responses into billing records:
//
//	type CostSource interface {
//		Name() ProviderType
//		QueryTotal(ctx context.Context, period billing.Period) (billing.TotalBilling, error)
//		QueryServices(ctx context.Context, period billing.Period) ([]billing.ServiceBilling, error)
//	}
//
// Implementations parse amounts at this boundary; an amount the API returns in
// a form that cannot be parsed is reported as an error of the query.
package provider
