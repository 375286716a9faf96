package demo

import (
	"context"
	"io"
	"time"
)

// Play redraws frames on w, holding each for its delay. It stops early when
// ctx is done.
func Play(ctx context.Context, w io.Writer, frames []Frame) error {
	for _, f := range frames {
		if _, err := io.WriteString(w, clearScreen+f.Content); err != nil {
			return err
		}
		if f.Delay <= 0 {
			continue
		}
		timer := time.NewTimer(f.Delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}
	return nil
}
