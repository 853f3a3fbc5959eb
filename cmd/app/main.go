package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/clipforge/render-broker/pkg/api"
	"github.com/clipforge/render-broker/pkg/auth"
	"github.com/clipforge/render-broker/pkg/dispatcher"
	"github.com/clipforge/render-broker/pkg/handlers"
	"github.com/clipforge/render-broker/pkg/middleware"
	"github.com/clipforge/render-broker/pkg/ratelimit"
	"github.com/clipforge/render-broker/pkg/relocator"
	"github.com/clipforge/render-broker/pkg/scheduler"
	dydbstore "github.com/clipforge/render-broker/pkg/storage/dynamodb"
)

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	// AWS Session
	cfg, err := config.LoadDefaultConfig(context.TODO())
	if err != nil {
		log.Fatalf("unable to load SDK config, %v", err)
	}

	dbClient := dynamodb.NewFromConfig(cfg)
	accountsTable := os.Getenv("DYNAMODB_ACCOUNTS_TABLE_NAME")
	ledgerTable := os.Getenv("DYNAMODB_LEDGER_TABLE_NAME")
	jobsTable := os.Getenv("DYNAMODB_JOBS_TABLE_NAME")
	apiKeysTable := os.Getenv("DYNAMODB_API_KEYS_TABLE_NAME")

	if accountsTable == "" || ledgerTable == "" || jobsTable == "" || apiKeysTable == "" {
		log.Fatal("One or more DynamoDB table name environment variables are not set")
	}

	store := dydbstore.New(dbClient, accountsTable, ledgerTable, jobsTable, apiKeysTable)

	// SQS Client and Scheduler
	sqsClient := sqs.NewFromConfig(cfg)
	sqsQueueURL := os.Getenv("SQS_QUEUE_URL")
	if sqsQueueURL == "" {
		log.Fatal("SQS_QUEUE_URL environment variable not set")
	}
	sqsScheduler := scheduler.NewSQSScheduler(sqsClient, sqsQueueURL)

	// Redis-backed rate limiter
	redisClient := redis.NewClient(&redis.Options{Addr: getEnv("REDIS_ADDR", "localhost:6379")})
	limiter := ratelimit.NewRedisLimiter(
		redisClient,
		getDurationEnv("RATE_LIMIT_WINDOW", time.Minute),
		getInt64Env("RATE_LIMIT_MAX_REQUESTS", 60),
		logger,
	)

	// S3-backed relocator, needed by the webhook settlement path
	s3Client := s3.NewFromConfig(cfg)
	assetBucket := os.Getenv("S3_ASSET_BUCKET")
	if assetBucket == "" {
		log.Fatal("S3_ASSET_BUCKET environment variable not set")
	}
	rel := relocator.NewS3Relocator(s3Client, assetBucket, os.Getenv("S3_PUBLIC_BASE_URL"))
	settler := dispatcher.NewSettler(store, rel, logger)

	// Credential resolver
	resolver := auth.NewTokenResolver(store, store, []byte(os.Getenv("JWT_SECRET")), logger)

	// Create our handler
	handler := handlers.NewApiHandler(store, sqsScheduler, limiter, settler, os.Getenv("CREDIT_SERVICE_TOKEN"), logger)

	// Create a new Chi router
	router := chi.NewRouter()
	router.Use(middleware.NewStructuredLogger(logger))
	router.Use(middleware.Authenticate(resolver, logger))
	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	// Use the generated function to mount our handler on the router
	api.HandlerFromMux(handler, router)

	port := os.Getenv("HTTP_PORT")
	if port == "" {
		port = "8080" // Default port if not specified
	}

	logger.Info("starting server", "port", port)

	// Start the server
	if err := http.ListenAndServe(":"+port, router); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getInt64Env(key string, fallback int64) int64 {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.ParseInt(v, 10, 64); err == nil {
			return parsed
		}
	}
	return fallback
}

func getDurationEnv(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			return parsed
		}
	}
	return fallback
}
