package provider

import (
	"context"

	"github.com/zgpcy/cloud-billing-notifier/internal/billing"
)

// ProviderType represents a cloud provider
type ProviderType string

// Supported cloud providers
const (
	ProviderAWS   ProviderType = "aws"
	ProviderAzure ProviderType = "azure"
)

// Label returns the name shown in notification titles
func (p ProviderType) Label() string {
	switch p {
	case ProviderAWS:
		return "AWS"
	case ProviderAzure:
		return "Azure"
	default:
		return string(p)
	}
}

// CostSource is the interface that all cloud cost providers must implement.
// Both queries cover the same half-open period and report amortized USD costs.
type CostSource interface {
	// Name returns the provider name (aws, azure)
	Name() ProviderType

	// QueryTotal returns the total cost for the period
	QueryTotal(ctx context.Context, period billing.Period) (billing.TotalBilling, error)

	// QueryServices returns the cost of each service for the period, in the
	// order the provider reports them
	QueryServices(ctx context.Context, period billing.Period) ([]billing.ServiceBilling, error)
}
