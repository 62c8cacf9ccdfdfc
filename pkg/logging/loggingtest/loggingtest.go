// Package loggingtest provides loggers for tests.
package loggingtest

import (
	"go.uber.org/zap/zaptest"

	"github.com/honeycarbs/talentry/pkg/logging"
)

// New returns a Logger that writes through t.Log at debug level
func New(t zaptest.TestingT) *logging.Logger {
	return logging.FromCore(zaptest.NewLogger(t).Core())
}
