package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	"github.com/aws/aws-lambda-go/lambdacontext"
	"github.com/google/uuid"
	"github.com/zgpcy/cloud-billing-notifier/internal/config"
	"github.com/zgpcy/cloud-billing-notifier/internal/logger"
	"github.com/zgpcy/cloud-billing-notifier/internal/version"
)

var configPath = flag.String("config", "", "Path to an optional configuration file")

func main() {
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger := logger.NewWithOptions(cfg.LogLevel, cfg.LogFormat, os.Stdout)
	logger.Info("Billing notifier starting", version.LogFields()...)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	a, err := newApp(ctx, cfg, logger)
	if err != nil {
		logger.Error("Failed to initialize", "error", err)
		os.Exit(1)
	}

	a.logConfiguration()

	if inLambda() {
		lambda.StartWithOptions(func(ctx context.Context, event events.CloudWatchEvent) error {
			return a.run(ctx, invocationID(ctx), event.ID)
		}, lambda.WithEnableSIGTERM(cancel))
		return
	}

	if err := a.run(ctx, uuid.NewString(), ""); err != nil {
		os.Exit(1)
	}
}

// inLambda reports whether the process was started by the Lambda runtime
func inLambda() bool {
	return os.Getenv("AWS_LAMBDA_RUNTIME_API") != ""
}

// invocationID prefers the Lambda request ID so logs line up with CloudWatch
func invocationID(ctx context.Context) string {
	if lc, ok := lambdacontext.FromContext(ctx); ok && lc.AwsRequestID != "" {
		return lc.AwsRequestID
	}
	return uuid.NewString()
}
