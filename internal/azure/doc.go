// Package azure provides the Azure Cost Management cost source.
//
// Client queries the amortized cost of one subscription in USD (the CostUSD
// column), once for the total and once grouped by the ServiceName dimension.
// Azure time periods are inclusive, so the exclusive end of the billing
// period is moved back one day before querying.
//
// Authentication uses azidentity.DefaultAzureCredential, so the usual
// AZURE_CLIENT_ID / AZURE_TENANT_ID / AZURE_CLIENT_SECRET variables, workload
// identity or a managed identity all work.
//
// Example usage:
//
//	client, err := azure.NewClient(cfg, logger)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	services, err := client.QueryServices(ctx, billing.ResolvePeriod(time.Now()))
package azure
