// Package payment holds the charge abstraction. The simulator stands in for
// a real payment provider; production swaps in a client with the same shape.
package payment

import (
	"context"
	"time"
)

type Processor interface {
	Charge(ctx context.Context, amount float64, currency string) error
}

type Simulator struct {
	latency time.Duration
}

func NewSimulator(latency time.Duration) *Simulator {
	return &Simulator{latency: latency}
}

// Charge waits for the configured latency and succeeds. Cancelling the
// context aborts the attempt.
func (s *Simulator) Charge(ctx context.Context, amount float64, currency string) error {
	timer := time.NewTimer(s.latency)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

var _ Processor = (*Simulator)(nil)
