package upload

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/student-spending/spendboard/internal/backend"
	"github.com/student-spending/spendboard/internal/transaction"
)

//go:generate mockgen -source=uploader.go -destination=client_mock.go -package=upload

var (
	ErrEmptyBatch = errors.New("there are no valid transactions to upload")
	ErrInFlight   = errors.New("an upload is already in progress")
)

// Client submits a batch to the remote bulk-upload endpoint.
type Client interface {
	UploadTransactions(ctx context.Context, txs []transaction.Transaction) (*backend.UploadResult, error)
}

// State is the phase of the current upload attempt.
type State int

const (
	StateIdle State = iota
	StateSubmitting
	StateSucceeded
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateSubmitting:
		return "submitting"
	case StateSucceeded:
		return "succeeded"
	case StateFailed:
		return "failed"
	}

	return "unknown"
}

// Uploader runs one upload attempt at a time. It is safe for concurrent use.
type Uploader struct {
	client Client

	mu     sync.Mutex
	state  State
	result *backend.UploadResult
	err    error
}

func NewUploader(client Client) *Uploader {
	return &Uploader{client: client}
}

// Submit sends the whole batch in one call and blocks until the remote service answers.
// An empty batch returns ErrEmptyBatch without a network call, and a second Submit
// while one is outstanding returns ErrInFlight.
func (u *Uploader) Submit(ctx context.Context, txs []transaction.Transaction) (*backend.UploadResult, error) {
	if len(txs) == 0 {
		return nil, ErrEmptyBatch
	}

	u.mu.Lock()
	if u.state == StateSubmitting {
		u.mu.Unlock()
		return nil, ErrInFlight
	}

	u.state = StateSubmitting
	u.result = nil
	u.err = nil
	u.mu.Unlock()

	result, err := u.client.UploadTransactions(ctx, txs)

	u.mu.Lock()
	defer u.mu.Unlock()

	if err != nil {
		slog.Error("failed to upload transactions", "count", len(txs), "error", err)

		u.state = StateFailed
		u.err = err

		return nil, err
	}

	slog.Info("uploaded transactions", "count", len(txs), "accepted", result.Accepted, "rejected", result.Rejected)

	u.state = StateSucceeded
	u.result = result

	return result, nil
}

// Reset returns a finished attempt to idle. It has no effect while submitting.
func (u *Uploader) Reset() {
	u.mu.Lock()
	defer u.mu.Unlock()

	if u.state == StateSubmitting {
		return
	}

	u.state = StateIdle
	u.result = nil
	u.err = nil
}

func (u *Uploader) State() State {
	u.mu.Lock()
	defer u.mu.Unlock()

	return u.state
}

// Result is the outcome of the last successful attempt, or nil.
func (u *Uploader) Result() *backend.UploadResult {
	u.mu.Lock()
	defer u.mu.Unlock()

	return u.result
}

// Err is the error of the last failed attempt, or nil.
func (u *Uploader) Err() error {
	u.mu.Lock()
	defer u.mu.Unlock()

	return u.err
}
