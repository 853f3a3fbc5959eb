package storage

import "errors"

// ErrInsufficientTokens is returned when an account balance does not cover a
// debit. This is an expected outcome, not a storage fault.
var ErrInsufficientTokens = errors.New("insufficient tokens")

// ErrAccountNotFound is returned when the account row does not exist.
var ErrAccountNotFound = errors.New("account not found")

// ErrJobNotFound is returned when a render job does not exist.
var ErrJobNotFound = errors.New("render job not found")

// ErrJobNotClaimable is returned when a claim loses the queued -> processing
// race, e.g. because another worker already holds the job.
var ErrJobNotClaimable = errors.New("job not in a claimable state")

// ErrJobNotCancellable is returned when a job can no longer be cancelled
// because provider processing has begun or it is already terminal.
var ErrJobNotCancellable = errors.New("job not in a cancellable state")

// ErrStaleTransition is returned when a lifecycle transition finds the job
// in an unexpected state, typically because a duplicate notification
// already applied it.
var ErrStaleTransition = errors.New("stale job state transition")

// ErrKeyNotFound is returned when an API key lookup misses.
var ErrKeyNotFound = errors.New("api key not found")

// ErrKeyLimitExceeded is returned when an account already holds the maximum
// number of active API keys.
var ErrKeyLimitExceeded = errors.New("active api key limit exceeded")

// ErrDuplicateKeyName is returned when an API key name is already used
// within the account.
var ErrDuplicateKeyName = errors.New("api key name already in use")
