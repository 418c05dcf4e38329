package azure

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Azure/azure-sdk-for-go/sdk/azidentity"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/costmanagement/armcostmanagement"
	"github.com/shopspring/decimal"
	"github.com/zgpcy/cloud-billing-notifier/internal/billing"
	"github.com/zgpcy/cloud-billing-notifier/internal/config"
	"github.com/zgpcy/cloud-billing-notifier/internal/logger"
	"github.com/zgpcy/cloud-billing-notifier/internal/provider"
)

// Result column names
const (
	costColumn        = "CostUSD"
	costAggregation   = "totalCostUSD"
	serviceColumn     = "ServiceName"
	meterCategoryName = "MeterCategory"
)

// UsageQuerier is the subset of the Cost Management query client used here
type UsageQuerier interface {
	Usage(ctx context.Context, scope string, parameters armcostmanagement.QueryDefinition, options *armcostmanagement.QueryClientUsageOptions) (armcostmanagement.QueryClientUsageResponse, error)
}

// Client wraps the Azure Cost Management client and implements provider.CostSource
type Client struct {
	client  UsageQuerier
	scope   string
	timeout time.Duration
	logger  *logger.Logger
}

// Verify that Client implements provider.CostSource
var _ provider.CostSource = (*Client)(nil)

// NewClient creates a new Azure Cost Management client for the configured subscription
func NewClient(cfg *config.Config, log *logger.Logger) (*Client, error) {
	cred, err := azidentity.NewDefaultAzureCredential(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create Azure credential: %w", err)
	}

	client, err := armcostmanagement.NewQueryClient(cred, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create cost management client: %w", err)
	}

	return newClient(client, cfg.Azure.SubscriptionID, time.Duration(cfg.APITimeout)*time.Second, log), nil
}

func newClient(querier UsageQuerier, subscriptionID string, timeout time.Duration, log *logger.Logger) *Client {
	return &Client{
		client:  querier,
		scope:   fmt.Sprintf("/subscriptions/%s", subscriptionID),
		timeout: timeout,
		logger:  log,
	}
}

// Name returns the provider type
func (c *Client) Name() provider.ProviderType {
	return provider.ProviderAzure
}

// QueryTotal returns the total amortized cost of the subscription in USD.
// A result without rows means nothing was charged.
func (c *Client) QueryTotal(ctx context.Context, period billing.Period) (billing.TotalBilling, error) {
	result, err := c.query(ctx, period, nil)
	if err != nil {
		return billing.TotalBilling{}, err
	}

	total := decimal.Zero
	if result.Properties != nil {
		columnMap := buildColumnMap(result.Properties.Columns)
		costIdx, ok := costIndex(columnMap)
		if !ok && len(result.Properties.Rows) > 0 {
			return billing.TotalBilling{}, fmt.Errorf("cost column %s missing from response", costColumn)
		}
		for _, row := range result.Properties.Rows {
			if len(row) <= costIdx {
				continue
			}
			cost, err := parseCost(row[costIdx])
			if err != nil {
				return billing.TotalBilling{}, err
			}
			total = total.Add(cost)
		}
	}

	return billing.TotalBilling{Start: period.Start, End: period.End, Amount: total}, nil
}

// QueryServices returns the amortized cost per service in the order the rows arrive
func (c *Client) QueryServices(ctx context.Context, period billing.Period) ([]billing.ServiceBilling, error) {
	groupType := armcostmanagement.QueryColumnTypeDimension
	grouping := []*armcostmanagement.QueryGrouping{{
		Type: &groupType,
		Name: stringPtr(serviceColumn),
	}}

	result, err := c.query(ctx, period, grouping)
	if err != nil {
		return nil, err
	}
	return parseServices(result)
}

// query performs the actual API call bounded by the configured timeout
func (c *Client) query(ctx context.Context, period billing.Period, grouping []*armcostmanagement.QueryGrouping) (armcostmanagement.QueryResult, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	// Azure bounds are inclusive, the billing period end is not
	from := period.Start
	to := period.End.AddDate(0, 0, -1)

	logger.FromContext(ctx, c.logger).Debug("Querying Azure Cost Management API",
		"scope", c.scope,
		"start_date", from.Format(billing.DateLayout),
		"end_date", to.Format(billing.DateLayout),
		"grouped", len(grouping) > 0)

	queryType := armcostmanagement.ExportTypeAmortizedCost
	timeframe := armcostmanagement.TimeframeTypeCustom

	queryDef := armcostmanagement.QueryDefinition{
		Type:      &queryType,
		Timeframe: &timeframe,
		TimePeriod: &armcostmanagement.QueryTimePeriod{
			From: &from,
			To:   &to,
		},
		Dataset: &armcostmanagement.QueryDataset{
			Aggregation: map[string]*armcostmanagement.QueryAggregation{
				costAggregation: {
					Name:     stringPtr(costColumn),
					Function: functionPtr(armcostmanagement.FunctionTypeSum),
				},
			},
			Grouping: grouping,
		},
	}

	resp, err := c.client.Usage(ctx, c.scope, queryDef, nil)
	if err != nil {
		return armcostmanagement.QueryResult{}, fmt.Errorf("cost query failed for date range %s to %s: %w",
			from.Format(billing.DateLayout), to.Format(billing.DateLayout), err)
	}
	return resp.QueryResult, nil
}

// buildColumnMap creates a map of column names to their indices
func buildColumnMap(columns []*armcostmanagement.QueryColumn) map[string]int {
	columnMap := make(map[string]int)
	for i, col := range columns {
		if col != nil && col.Name != nil {
			columnMap[*col.Name] = i
		}
	}
	return columnMap
}

// costIndex finds the aggregated cost column, which Azure names either after
// the source column or after the aggregation
func costIndex(columnMap map[string]int) (int, bool) {
	if idx, ok := columnMap[costColumn]; ok {
		return idx, true
	}
	idx, ok := columnMap[costAggregation]
	return idx, ok
}

// getStringFromRow extracts a string value from a row by column name
func getStringFromRow(row []interface{}, columnMap map[string]int, columnName string) string {
	if idx, ok := columnMap[columnName]; ok && len(row) > idx && row[idx] != nil {
		return strings.TrimSpace(fmt.Sprintf("%v", row[idx]))
	}
	return ""
}

// extractService extracts service name with fallback to MeterCategory
func extractService(row []interface{}, columnMap map[string]int) string {
	if service := getStringFromRow(row, columnMap, serviceColumn); service != "" {
		return service
	}
	if meterCat := getStringFromRow(row, columnMap, meterCategoryName); meterCat != "" {
		return meterCat
	}
	return "Unknown"
}

// parseCost converts a cost cell to a decimal
func parseCost(value interface{}) (decimal.Decimal, error) {
	switch v := value.(type) {
	case float64:
		return decimal.NewFromFloat(v), nil
	case float32:
		return decimal.NewFromFloat32(v), nil
	case int:
		return decimal.NewFromInt(int64(v)), nil
	case int64:
		return decimal.NewFromInt(v), nil
	case string:
		d, err := decimal.NewFromString(v)
		if err != nil {
			return decimal.Decimal{}, fmt.Errorf("invalid cost %q: %w", v, err)
		}
		return d, nil
	case nil:
		return decimal.Zero, nil
	default:
		return decimal.Decimal{}, fmt.Errorf("unsupported cost value %v (%T)", v, v)
	}
}

// parseServices converts a grouped Azure API response to service billings
func parseServices(result armcostmanagement.QueryResult) ([]billing.ServiceBilling, error) {
	var services []billing.ServiceBilling

	if result.Properties == nil || result.Properties.Rows == nil {
		return services, nil
	}

	columnMap := buildColumnMap(result.Properties.Columns)
	costIdx, ok := costIndex(columnMap)
	if !ok {
		return nil, fmt.Errorf("cost column %s missing from response", costColumn)
	}

	for _, row := range result.Properties.Rows {
		if len(row) <= costIdx {
			continue
		}
		cost, err := parseCost(row[costIdx])
		if err != nil {
			return nil, err
		}
		services = append(services, billing.ServiceBilling{
			ServiceName: extractService(row, columnMap),
			Amount:      cost,
		})
	}

	return services, nil
}

// Helper functions
func stringPtr(s string) *string {
	return &s
}

func functionPtr(f armcostmanagement.FunctionType) *armcostmanagement.FunctionType {
	return &f
}
