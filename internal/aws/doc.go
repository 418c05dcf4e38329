// Package aws provides the AWS Cost Explorer cost source.
//
// Client issues GetCostAndUsage requests with MONTHLY granularity for the
// AmortizedCost metric: once without grouping for the total and once grouped
// by the SERVICE dimension for the breakdown. Cost Explorer is a global
// service served from us-east-1, so the client overrides the SDK region.
//
// Example usage:
//
//	awsCfg, err := awsconfig.LoadDefaultConfig(ctx)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	client := aws.NewClient(awsCfg, cfg, logger)
//	total, err := client.QueryTotal(ctx, billing.ResolvePeriod(time.Now()))
package aws
