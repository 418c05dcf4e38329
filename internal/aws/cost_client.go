package aws

import (
	"context"
	"errors"
	"fmt"
	"time"

	awssdk "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/costexplorer"
	"github.com/aws/aws-sdk-go-v2/service/costexplorer/types"
	"github.com/shopspring/decimal"
	"github.com/zgpcy/cloud-billing-notifier/internal/billing"
	"github.com/zgpcy/cloud-billing-notifier/internal/config"
	"github.com/zgpcy/cloud-billing-notifier/internal/logger"
	"github.com/zgpcy/cloud-billing-notifier/internal/provider"
)

// CostMetric is the Cost Explorer metric reported by the notifier
const CostMetric = "AmortizedCost"

// ErrNoResults is returned when Cost Explorer answers without a result for the period
var ErrNoResults = errors.New("cost explorer returned no results")

// CostExplorerAPI is the subset of the Cost Explorer client used here
type CostExplorerAPI interface {
	GetCostAndUsage(ctx context.Context, params *costexplorer.GetCostAndUsageInput, optFns ...func(*costexplorer.Options)) (*costexplorer.GetCostAndUsageOutput, error)
}

// Client queries AWS Cost Explorer and implements provider.CostSource
type Client struct {
	api     CostExplorerAPI
	timeout time.Duration
	logger  *logger.Logger
}

// Verify that Client implements provider.CostSource
var _ provider.CostSource = (*Client)(nil)

// NewClient creates a Cost Explorer client from an SDK configuration. The
// client is pinned to the configured Cost Explorer region regardless of the
// region the function runs in.
func NewClient(awsCfg awssdk.Config, cfg *config.Config, log *logger.Logger) *Client {
	api := costexplorer.NewFromConfig(awsCfg, func(o *costexplorer.Options) {
		o.Region = cfg.AWS.CostExplorerRegion
	})
	return newClient(api, time.Duration(cfg.APITimeout)*time.Second, log)
}

func newClient(api CostExplorerAPI, timeout time.Duration, log *logger.Logger) *Client {
	return &Client{
		api:     api,
		timeout: timeout,
		logger:  log,
	}
}

// Name returns the provider type
func (c *Client) Name() provider.ProviderType {
	return provider.ProviderAWS
}

// QueryTotal returns the total amortized cost of the account for the period
func (c *Client) QueryTotal(ctx context.Context, period billing.Period) (billing.TotalBilling, error) {
	out, err := c.getCostAndUsage(ctx, c.input(period, nil))
	if err != nil {
		return billing.TotalBilling{}, err
	}

	if len(out.ResultsByTime) == 0 {
		return billing.TotalBilling{}, fmt.Errorf("total for %s to %s: %w", period.StartDate(), period.EndDate(), ErrNoResults)
	}
	result := out.ResultsByTime[0]

	start, end, err := parseInterval(result.TimePeriod, period)
	if err != nil {
		return billing.TotalBilling{}, err
	}

	amount, err := parseMetric(result.Total)
	if err != nil {
		return billing.TotalBilling{}, fmt.Errorf("total for %s to %s: %w", period.StartDate(), period.EndDate(), err)
	}

	logger.FromContext(ctx, c.logger).Debug("Total cost queried",
		"start_date", start.Format(billing.DateLayout),
		"end_date", end.Format(billing.DateLayout),
		"amount", amount.String(),
		"estimated", result.Estimated)

	return billing.TotalBilling{Start: start, End: end, Amount: amount}, nil
}

// QueryServices returns the amortized cost of each service for the period.
// Groups keep the order Cost Explorer returns them in, across result pages.
func (c *Client) QueryServices(ctx context.Context, period billing.Period) ([]billing.ServiceBilling, error) {
	groupBy := []types.GroupDefinition{{
		Type: types.GroupDefinitionTypeDimension,
		Key:  awssdk.String("SERVICE"),
	}}

	var (
		services []billing.ServiceBilling
		token    *string
		pages    int
	)

	for {
		input := c.input(period, groupBy)
		input.NextPageToken = token

		out, err := c.getCostAndUsage(ctx, input)
		if err != nil {
			return nil, err
		}
		pages++

		if len(out.ResultsByTime) == 0 {
			if pages == 1 {
				return nil, fmt.Errorf("services for %s to %s: %w", period.StartDate(), period.EndDate(), ErrNoResults)
			}
			break
		}

		for _, group := range out.ResultsByTime[0].Groups {
			if len(group.Keys) == 0 {
				continue
			}
			amount, err := parseMetric(group.Metrics)
			if err != nil {
				return nil, fmt.Errorf("service %q: %w", group.Keys[0], err)
			}
			services = append(services, billing.ServiceBilling{
				ServiceName: group.Keys[0],
				Amount:      amount,
			})
		}

		token = out.NextPageToken
		if token == nil || *token == "" {
			break
		}
	}

	logger.FromContext(ctx, c.logger).Debug("Service costs queried",
		"start_date", period.StartDate(),
		"end_date", period.EndDate(),
		"service_count", len(services),
		"pages", pages)

	return services, nil
}

func (c *Client) input(period billing.Period, groupBy []types.GroupDefinition) *costexplorer.GetCostAndUsageInput {
	return &costexplorer.GetCostAndUsageInput{
		TimePeriod: &types.DateInterval{
			Start: awssdk.String(period.StartDate()),
			End:   awssdk.String(period.EndDate()),
		},
		Granularity: types.GranularityMonthly,
		Metrics:     []string{CostMetric},
		GroupBy:     groupBy,
	}
}

// getCostAndUsage performs a single API call bounded by the configured timeout
func (c *Client) getCostAndUsage(ctx context.Context, input *costexplorer.GetCostAndUsageInput) (*costexplorer.GetCostAndUsageOutput, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	logger.FromContext(ctx, c.logger).Debug("Querying AWS Cost Explorer",
		"start_date", awssdk.ToString(input.TimePeriod.Start),
		"end_date", awssdk.ToString(input.TimePeriod.End),
		"grouped", len(input.GroupBy) > 0)

	out, err := c.api.GetCostAndUsage(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("cost query failed for date range %s to %s: %w",
			awssdk.ToString(input.TimePeriod.Start), awssdk.ToString(input.TimePeriod.End), err)
	}
	return out, nil
}

// parseInterval reads the period Cost Explorer reports, falling back to the
// requested one when the response leaves it out
func parseInterval(interval *types.DateInterval, requested billing.Period) (time.Time, time.Time, error) {
	if interval == nil {
		return requested.Start, requested.End, nil
	}

	start, err := billing.ParseDate(awssdk.ToString(interval.Start))
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid result start date: %w", err)
	}
	end, err := billing.ParseDate(awssdk.ToString(interval.End))
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid result end date: %w", err)
	}
	return start, end, nil
}

// parseMetric extracts the amortized cost amount from a metric map
func parseMetric(metrics map[string]types.MetricValue) (decimal.Decimal, error) {
	value, ok := metrics[CostMetric]
	if !ok || value.Amount == nil {
		return decimal.Decimal{}, fmt.Errorf("metric %s missing from response", CostMetric)
	}

	amount, err := decimal.NewFromString(*value.Amount)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("invalid %s amount %q: %w", CostMetric, *value.Amount, err)
	}
	return amount, nil
}
