package timing

import (
	"context"
	"fmt"
	"time"

	"github.com/adrianmusante/pipeline-tools/internal/logging"
)

// Start logs "Started <msg>" and returns a function that logs
// "Finished <msg> in N.NNN seconds" when called.
//
// The returned func is meant for the success path only: callers invoke it
// after their work completes, so a failed scope emits no finish line. A
// caller that wants the elapsed time even on failure can defer it instead.
func Start(ctx context.Context, msg string) func() {
	log := logging.FromContext(ctx)
	log.Info("Started " + msg)
	tic := time.Now()
	return func() {
		log.Info(fmt.Sprintf("Finished %s in %.3f seconds", msg, time.Since(tic).Seconds()))
	}
}

// Track runs fn and logs how long it took.
//
// When fn returns an error the finish line is skipped and the error is
// returned unchanged.
func Track(ctx context.Context, msg string, fn func() error) error {
	done := Start(ctx, msg)
	if err := fn(); err != nil {
		return err
	}
	done()
	return nil
}
