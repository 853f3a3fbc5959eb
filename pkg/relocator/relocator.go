// Package relocator copies finished renders off provider storage, where they
// expire, into durable object storage owned by the broker.
package relocator

import (
	"context"
	"errors"
)

// ErrTransfer marks a failed asset copy. The source may be gone or the
// destination unreachable; callers decide whether to retry.
var ErrTransfer = errors.New("asset transfer failed")

// Relocator copies an asset from a source URL into durable storage and
// returns the durable URL.
type Relocator interface {
	Relocate(ctx context.Context, sourceURL, destKey string) (string, error)
}
