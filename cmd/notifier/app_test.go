package main

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	awssdk "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-lambda-go/lambdacontext"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zgpcy/cloud-billing-notifier/internal/aws"
	"github.com/zgpcy/cloud-billing-notifier/internal/billing"
	"github.com/zgpcy/cloud-billing-notifier/internal/config"
	"github.com/zgpcy/cloud-billing-notifier/internal/logger"
	"github.com/zgpcy/cloud-billing-notifier/internal/provider"
	"github.com/zgpcy/cloud-billing-notifier/internal/secrets"
)

// failingSource rejects every query
type failingSource struct{}

func (failingSource) Name() provider.ProviderType { return provider.ProviderAWS }

func (failingSource) QueryTotal(context.Context, billing.Period) (billing.TotalBilling, error) {
	return billing.TotalBilling{}, errors.New("AccessDeniedException")
}

func (failingSource) QueryServices(context.Context, billing.Period) ([]billing.ServiceBilling, error) {
	return nil, errors.New("AccessDeniedException")
}

func countLevel(out, level string) int {
	return strings.Count(out, `"level":"`+level+`"`)
}

func TestInvocationID(t *testing.T) {
	ctx := lambdacontext.NewContext(context.Background(), &lambdacontext.LambdaContext{AwsRequestID: "req-123"})
	assert.Equal(t, "req-123", invocationID(ctx))

	local := invocationID(context.Background())
	assert.Len(t, local, 36, "expected a UUID outside Lambda")
}

func TestNewSecretStore(t *testing.T) {
	cfg := &config.Config{APITimeout: 5, Secrets: config.SecretsConfig{
		Source:            config.SecretsSourceExtension,
		ExtensionEndpoint: config.DefaultExtensionEndpoint,
	}}
	assert.IsType(t, &secrets.ExtensionStore{}, newSecretStore(awssdk.Config{Region: "us-east-1"}, cfg))

	cfg.Secrets.Source = config.SecretsSourceAPI
	assert.IsType(t, &secrets.ManagerStore{}, newSecretStore(awssdk.Config{Region: "us-east-1"}, cfg))
}

func TestNewCostSource_AWS(t *testing.T) {
	cfg := &config.Config{
		Provider:   config.ProviderAWS,
		APITimeout: int((30 * time.Second).Seconds()),
		AWS:        config.AWSConfig{CostExplorerRegion: "us-east-1"},
	}

	source, err := newCostSource(awssdk.Config{Region: "ap-northeast-1"}, cfg, logger.Discard())
	assert.NoError(t, err)
	assert.IsType(t, &aws.Client{}, source)
}

func TestInLambda(t *testing.T) {
	t.Setenv("AWS_LAMBDA_RUNTIME_API", "")
	assert.False(t, inLambda())

	t.Setenv("AWS_LAMBDA_RUNTIME_API", "127.0.0.1:9001")
	assert.True(t, inLambda())
}

func TestRun_LogsFailureOnce(t *testing.T) {
	var buf bytes.Buffer
	a := &app{
		cfg:    &config.Config{Provider: config.ProviderAWS},
		logger: logger.NewWithOptions("info", "json", &buf),
		source: failingSource{},
	}

	err := a.run(context.Background(), "run-1", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "AccessDeniedException")
	assert.Equal(t, 1, countLevel(buf.String(), "ERROR"), "log output: %s", buf.String())
	assert.Contains(t, buf.String(), `"run_id":"run-1"`)
}

func TestLogConfiguration(t *testing.T) {
	tests := []struct {
		name     string
		channels config.ChannelsConfig
		wantWarn int
	}{
		{"no channels", config.ChannelsConfig{}, 1},
		{"email configured", config.ChannelsConfig{EmailTopicARN: "arn:aws:sns:us-east-1:1:t"}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			a := &app{
				cfg:    &config.Config{Provider: config.ProviderAWS, APITimeout: 30, Channels: tt.channels},
				logger: logger.NewWithOptions("info", "json", &buf),
			}

			a.logConfiguration()

			assert.Contains(t, buf.String(), "Configuration loaded successfully")
			assert.Equal(t, tt.wantWarn, countLevel(buf.String(), "WARN"))
		})
	}
}
