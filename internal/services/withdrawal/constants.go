package withdrawal

import "time"

// MaxConcurrentJobs caps how many scheduled withdrawals a batch run
// executes in parallel.
const MaxConcurrentJobs = 10

// DefaultItemTimeout bounds the execution time of a single batch item.
// A timeout is reported as a normal error outcome, not a crash.
const DefaultItemTimeout = 30 * time.Second

// Item result statuses. Skipped marks an item another run settled
// between the due-list read and the row lock; no work was performed.
const (
	StatusSuccess = "success"
	StatusError   = "error"
	StatusSkipped = "skipped"
)

// Withdrawal kinds used as metric labels
const (
	KindImmediate = "immediate"
	KindScheduled = "scheduled"
)
