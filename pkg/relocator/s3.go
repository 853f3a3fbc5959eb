package relocator

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// S3API captures the subset of the S3 client used by the relocator.
type S3API interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3Relocator streams assets from their source URL into an S3 bucket.
type S3Relocator struct {
	Client S3API
	Bucket string
	// PublicBaseURL is prepended to object keys when building durable URLs.
	// Empty means the default virtual-hosted S3 URL.
	PublicBaseURL string
	HTTPClient    *http.Client
}

// NewS3Relocator creates an S3Relocator with a download timeout suited to
// multi-hundred-megabyte renders.
func NewS3Relocator(client S3API, bucket, publicBaseURL string) *S3Relocator {
	return &S3Relocator{
		Client:        client,
		Bucket:        bucket,
		PublicBaseURL: publicBaseURL,
		HTTPClient:    &http.Client{Timeout: 10 * time.Minute},
	}
}

var _ Relocator = (*S3Relocator)(nil)

// Relocate downloads the asset and streams it into the bucket under destKey.
func (r *S3Relocator) Relocate(ctx context.Context, sourceURL, destKey string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, sourceURL, nil)
	if err != nil {
		return "", fmt.Errorf("%w: bad source url %s: %v", ErrTransfer, sourceURL, err)
	}

	resp, err := r.HTTPClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: fetching %s: %v", ErrTransfer, sourceURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: source returned status %d", ErrTransfer, resp.StatusCode)
	}

	input := &s3.PutObjectInput{
		Bucket: aws.String(r.Bucket),
		Key:    aws.String(destKey),
		Body:   resp.Body,
	}
	if ct := resp.Header.Get("Content-Type"); ct != "" {
		input.ContentType = aws.String(ct)
	}
	if resp.ContentLength > 0 {
		input.ContentLength = aws.Int64(resp.ContentLength)
	}

	if _, err := r.Client.PutObject(ctx, input); err != nil {
		return "", fmt.Errorf("%w: uploading %s: %v", ErrTransfer, destKey, err)
	}

	return r.durableURL(destKey), nil
}

func (r *S3Relocator) durableURL(key string) string {
	if r.PublicBaseURL != "" {
		return r.PublicBaseURL + "/" + key
	}
	return fmt.Sprintf("https://%s.s3.amazonaws.com/%s", r.Bucket, key)
}
