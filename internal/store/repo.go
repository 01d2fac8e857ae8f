package store

import (
	"context"
	"time"
)

// QueryOpts configures submission queries with filtering and pagination.
type QueryOpts struct {
	Limit int       // max results (0 = unlimited)
	From  time.Time // timestamp >= From
	To    time.Time // timestamp <= To
}

// Submission is one prediction attempt, successful or not.
type Submission struct {
	ID           int64
	SubmissionID string
	Timestamp    time.Time
	Answers      map[string]string
	Prediction   string
	Success      bool
	ErrorMessage string
	LatencyMs    int64
}

// SubmissionRepo records and reads the local submission history.
type SubmissionRepo interface {
	// Append stores a submission. A zero Timestamp is replaced with now and
	// an empty SubmissionID with a fresh UUID.
	Append(ctx context.Context, sub *Submission) error

	// List returns submissions newest first.
	List(ctx context.Context, opts QueryOpts) ([]Submission, error)

	// Count returns the number of stored submissions.
	Count(ctx context.Context) (int, error)

	// Clear deletes every submission.
	Clear(ctx context.Context) error

	// Prune deletes all but the N most recent submissions.
	Prune(ctx context.Context, keep int) error
}
