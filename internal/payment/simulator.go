// Package payment provides the simulated payment step that gates checkout.
// No money moves: the simulator waits a fixed delay and hands back a
// receipt, standing in for a card processor.
package payment

import (
	"context"
	"fmt"
	"time"
)

// Receipt is the result of a simulated payment.
type Receipt struct {
	Reference string    `json:"reference"`
	Amount    float64   `json:"amount"`
	PaidAt    time.Time `json:"paidAt"`
}

// Simulator charges nothing and always succeeds after a fixed delay.
type Simulator struct {
	delay time.Duration
}

// NewSimulator creates a simulator with the given processing delay.
func NewSimulator(delay time.Duration) *Simulator {
	return &Simulator{delay: delay}
}

// Process waits out the configured delay and returns a receipt. The wait is
// cut short only if the context is cancelled, in which case no receipt is
// issued.
func (s *Simulator) Process(ctx context.Context, amount float64) (Receipt, error) {
	timer := time.NewTimer(s.delay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return Receipt{}, ctx.Err()
	case <-timer.C:
	}

	now := time.Now().UTC()
	return Receipt{
		Reference: fmt.Sprintf("PAY-%d", now.UnixNano()),
		Amount:    amount,
		PaidAt:    now,
	}, nil
}
