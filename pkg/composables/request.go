package composables

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/amadeus-works/koechel/pkg/constants"
)

// UseLogger returns the request-scoped logger, falling back to the standard
// logger when the middleware did not run (tests, background jobs).
func UseLogger(ctx context.Context) *logrus.Entry {
	if logger, ok := ctx.Value(constants.LoggerKey).(*logrus.Entry); ok {
		return logger
	}
	return logrus.NewEntry(logrus.StandardLogger())
}

func WithLogger(ctx context.Context, logger *logrus.Entry) context.Context {
	return context.WithValue(ctx, constants.LoggerKey, logger)
}
