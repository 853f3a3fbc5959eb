// The reconciler sweeps for jobs the normal pipeline lost: queued jobs
// whose queue message vanished, and processing jobs whose worker died. Both
// are re-enqueued; the dispatcher's claim and re-adoption logic sorts out
// what each one needs.
package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/joho/godotenv"

	"github.com/clipforge/render-broker/pkg/models"
	"github.com/clipforge/render-broker/pkg/scheduler"
	"github.com/clipforge/render-broker/pkg/storage"
	dydbstore "github.com/clipforge/render-broker/pkg/storage/dynamodb"
)

var store storage.Storage
var sqsScheduler scheduler.Scheduler

const (
	stuckQueuedThreshold     = 10 * time.Minute
	stuckProcessingThreshold = 45 * time.Minute
)

func init() {
	// Load environment variables for local testing.
	godotenv.Load()

	cfg, err := config.LoadDefaultConfig(context.TODO())
	if err != nil {
		log.Fatalf("unable to load SDK config, %v", err)
	}

	sqsQueueURL := os.Getenv("SQS_QUEUE_URL")
	if sqsQueueURL == "" {
		log.Fatal("SQS_QUEUE_URL environment variable not set")
	}
	sqsScheduler = scheduler.NewSQSScheduler(sqs.NewFromConfig(cfg), sqsQueueURL)

	store = dydbstore.New(
		dynamodb.NewFromConfig(cfg),
		os.Getenv("DYNAMODB_ACCOUNTS_TABLE_NAME"),
		os.Getenv("DYNAMODB_LEDGER_TABLE_NAME"),
		os.Getenv("DYNAMODB_JOBS_TABLE_NAME"),
		os.Getenv("DYNAMODB_API_KEYS_TABLE_NAME"),
	)
}

// HandleRequest is triggered by an EventBridge Schedule.
func HandleRequest(ctx context.Context) error {
	log.Println("Starting reconciliation sweep for stuck jobs...")

	total := 0
	for _, sweep := range []struct {
		status models.JobStatus
		maxAge time.Duration
	}{
		{models.JobQueued, stuckQueuedThreshold},
		{models.JobProcessing, stuckProcessingThreshold},
	} {
		stuck, err := store.GetStuckJobs(ctx, sweep.status, sweep.maxAge)
		if err != nil {
			log.Printf("ERROR: failed to get stuck %s jobs: %v", sweep.status, err)
			return err
		}

		for _, job := range stuck {
			if err := sqsScheduler.ScheduleJob(ctx, job.ID, 0); err != nil {
				log.Printf("ERROR: failed to re-enqueue job %s: %v", job.ID, err)
				// Continue to the next job, don't let one failure stop the whole batch.
				continue
			}
			log.Printf("Re-enqueued stuck %s job %s", sweep.status, job.ID)
			total++
		}
	}

	log.Printf("Reconciliation sweep finished, re-enqueued %d jobs", total)
	return nil
}

func main() {
	lambda.Start(HandleRequest)
}
