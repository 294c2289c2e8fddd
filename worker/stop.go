package worker

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"
)

// cancel on SIGINT, SIGTERM
// one time only; revert to default signal handling
func stopping(ctx context.Context, cancel context.CancelFunc, log logrus.FieldLogger) {
	stopChan := make(chan os.Signal, 1)
	signal.Notify(stopChan, os.Interrupt, syscall.SIGTERM)

	// only once
	defer signal.Stop(stopChan)

	select {
	case sig := <-stopChan:
		log.Warnf("stopping on %v", sig)
		cancel()
	case <-ctx.Done():
	}
}
