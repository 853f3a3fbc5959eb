// The worker daemon consumes queued render jobs, submits them to the render
// provider and tracks them to completion. It runs as a long-lived process
// rather than a Lambda because a single render can take many minutes.
package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/joho/godotenv"

	"github.com/clipforge/render-broker/pkg/dispatcher"
	"github.com/clipforge/render-broker/pkg/provider"
	"github.com/clipforge/render-broker/pkg/relocator"
	dydbstore "github.com/clipforge/render-broker/pkg/storage/dynamodb"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	cfg, err := config.LoadDefaultConfig(context.TODO())
	if err != nil {
		log.Fatalf("unable to load SDK config, %v", err)
	}

	store := dydbstore.New(
		dynamodb.NewFromConfig(cfg),
		mustGetenv("DYNAMODB_ACCOUNTS_TABLE_NAME"),
		mustGetenv("DYNAMODB_LEDGER_TABLE_NAME"),
		mustGetenv("DYNAMODB_JOBS_TABLE_NAME"),
		mustGetenv("DYNAMODB_API_KEYS_TABLE_NAME"),
	)

	prov := provider.NewShotstackClient(
		mustGetenv("RENDER_PROVIDER_URL"),
		mustGetenv("RENDER_PROVIDER_API_KEY"),
	)

	rel := relocator.NewS3Relocator(
		s3.NewFromConfig(cfg),
		mustGetenv("S3_ASSET_BUCKET"),
		os.Getenv("S3_PUBLIC_BASE_URL"),
	)
	settler := dispatcher.NewSettler(store, rel, logger)

	dispatcherCfg := dispatcher.DefaultConfig()
	if v := os.Getenv("JOB_TIMEOUT"); v != "" {
		if timeout, err := time.ParseDuration(v); err == nil {
			dispatcherCfg.JobTimeout = timeout
		}
	}

	d := dispatcher.NewDispatcher(
		store,
		prov,
		settler,
		sqs.NewFromConfig(cfg),
		mustGetenv("SQS_QUEUE_URL"),
		dispatcherCfg,
		logger,
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := d.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		log.Fatalf("dispatcher exited: %v", err)
	}
}

func mustGetenv(key string) string {
	v := os.Getenv(key)
	if v == "" {
		log.Fatalf("%s environment variable not set", key)
	}
	return v
}
