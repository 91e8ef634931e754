// Package scheduler triggers the scheduled-withdrawal batch processor
// on a fixed interval. Invocation is at-least-once; the processor's
// eligibility predicate (done/error flags plus row locks) guards
// against duplicate execution.
package scheduler

import (
	"context"
	"log"
	"time"

	"pixvault/internal/services/withdrawal"
)

// DefaultInterval matches the once-per-minute trigger cadence.
const DefaultInterval = time.Minute

// Runner is the batch entry point the scheduler drives.
type Runner interface {
	Run(ctx context.Context) (*withdrawal.BatchResult, error)
}

type Scheduler struct {
	runner   Runner
	interval time.Duration
}

func New(runner Runner, interval time.Duration) *Scheduler {
	if runner == nil {
		panic("runner is required")
	}
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Scheduler{runner: runner, interval: interval}
}

// Start launches the trigger loop in a goroutine. It stops when ctx is
// cancelled.
func (s *Scheduler) Start(ctx context.Context) {
	go func() {
		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		log.Printf("withdrawal scheduler started, interval %s", s.interval)
		for {
			select {
			case <-ctx.Done():
				log.Println("withdrawal scheduler stopped")
				return
			case <-ticker.C:
				s.runOnce(ctx)
			}
		}
	}()
}

func (s *Scheduler) runOnce(ctx context.Context) {
	result, err := s.runner.Run(ctx)
	if err != nil {
		log.Printf("scheduled withdrawal batch failed: %v", err)
		return
	}
	if result.Total > 0 {
		log.Printf("scheduled withdrawal batch: total=%d processed=%d errors=%d",
			result.Total, result.Processed, result.Errors)
	}
}
