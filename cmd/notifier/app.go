package main

import (
	"context"
	"fmt"
	"time"

	awssdk "github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/zgpcy/cloud-billing-notifier/internal/aws"
	"github.com/zgpcy/cloud-billing-notifier/internal/azure"
	"github.com/zgpcy/cloud-billing-notifier/internal/channel"
	"github.com/zgpcy/cloud-billing-notifier/internal/config"
	"github.com/zgpcy/cloud-billing-notifier/internal/logger"
	"github.com/zgpcy/cloud-billing-notifier/internal/metrics"
	"github.com/zgpcy/cloud-billing-notifier/internal/notifier"
	"github.com/zgpcy/cloud-billing-notifier/internal/provider"
	"github.com/zgpcy/cloud-billing-notifier/internal/secrets"
)

// app holds the clients built once per process and reused across invocations
type app struct {
	cfg      *config.Config
	logger   *logger.Logger
	source   provider.CostSource
	channels []channel.Sender
}

func newApp(ctx context.Context, cfg *config.Config, log *logger.Logger) (*app, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS configuration: %w", err)
	}

	source, err := newCostSource(awsCfg, cfg, log)
	if err != nil {
		return nil, err
	}

	return &app{
		cfg:      cfg,
		logger:   log,
		source:   source,
		channels: channel.Build(cfg, sns.NewFromConfig(awsCfg), newSecretStore(awsCfg, cfg)),
	}, nil
}

func newCostSource(awsCfg awssdk.Config, cfg *config.Config, log *logger.Logger) (provider.CostSource, error) {
	switch cfg.Provider {
	case config.ProviderAzure:
		client, err := azure.NewClient(cfg, log)
		if err != nil {
			return nil, fmt.Errorf("failed to create Azure client: %w", err)
		}
		return client, nil
	default:
		return aws.NewClient(awsCfg, cfg, log), nil
	}
}

func newSecretStore(awsCfg awssdk.Config, cfg *config.Config) secrets.Store {
	timeout := time.Duration(cfg.APITimeout) * time.Second
	if cfg.Secrets.Source == config.SecretsSourceAPI {
		return secrets.NewManagerStoreFromConfig(awsCfg, timeout)
	}
	return secrets.NewExtensionStore(cfg.Secrets.ExtensionEndpoint, timeout)
}

// run performs one notification with a fresh metrics registry
func (a *app) run(ctx context.Context, runID, eventID string) error {
	log := a.logger.WithFields("run_id", runID)
	if eventID != "" {
		log = log.WithFields("event_id", eventID)
	}

	n := notifier.New(a.source, a.channels, log, notifier.WithMetrics(metrics.New(a.cfg.Metrics)))
	if _, err := n.Run(ctx); err != nil {
		return err
	}

	log.Info("Billing notification completed")
	return nil
}

// logConfiguration reports the effective setup once per process
func (a *app) logConfiguration() {
	a.logger.Info("Configuration loaded successfully",
		"provider", a.cfg.Provider,
		"channels", channel.Names(a.channels),
		"secrets_source", a.cfg.Secrets.Source,
		"metrics_push", a.cfg.Metrics.PushgatewayURL != "",
		"api_timeout_seconds", a.cfg.APITimeout)

	if !a.cfg.HasChannels() {
		a.logger.Warn("No notification channel configured, billing messages will only be logged")
	}
}
