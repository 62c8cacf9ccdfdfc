// Package shutdown stops long-running components when the process is signalled.
package shutdown

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"time"

	"github.com/honeycarbs/talentry/pkg/logging"
)

type Stoppable interface {
	Shutdown(ctx context.Context) error
}

// StopFunc adapts a function to Stoppable
type StopFunc func(ctx context.Context) error

func (f StopFunc) Shutdown(ctx context.Context) error {
	return f(ctx)
}

// Graceful blocks until one of signals arrives or ctx is done, then stops
// targets in order within timeout
func Graceful(ctx context.Context, signals []os.Signal, timeout time.Duration, log *logging.Logger, targets ...Stoppable) {
	sigCtx, stop := signal.NotifyContext(ctx, signals...)
	defer stop()

	<-sigCtx.Done()
	log.Info("shutdown signal received")

	if err := Stop(context.Background(), timeout, targets...); err != nil {
		log.Warn("graceful shutdown completed with error", "err", err)
	} else {
		log.Info("graceful shutdown completed successfully")
	}
}

// Stop shuts every target down under one deadline, joining their errors
func Stop(ctx context.Context, timeout time.Duration, targets ...Stoppable) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	var errs []error
	for _, t := range targets {
		if t == nil {
			continue
		}
		if err := t.Shutdown(ctx); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
