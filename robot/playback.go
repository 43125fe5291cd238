package robot

import (
	"context"
	"iter"
	"time"
)

// Playback yields the recorded steps in order.
func (r Run) Playback() iter.Seq[Step] {
	return func(yield func(Step) bool) {
		for _, s := range r.Steps {
			if !yield(s) {
				return
			}
		}
	}
}

// Play hands every step to onStep, waiting delay before each one.
// A non-positive delay replays without pausing. Play stops early when ctx is done
// or onStep fails.
func Play(ctx context.Context, run Run, delay time.Duration, onStep func(Step) error) error {
	if delay <= 0 {
		for step := range run.Playback() {
			if err := ctx.Err(); err != nil {
				return err
			}
			if err := onStep(step); err != nil {
				return err
			}
		}
		return nil
	}

	ticker := time.NewTicker(delay)
	defer ticker.Stop()

	for step := range run.Playback() {
		if err := ctx.Err(); err != nil {
			return err
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
		if err := onStep(step); err != nil {
			return err
		}
	}
	return nil
}
