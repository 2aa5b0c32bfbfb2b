package commands

import (
	"context"
	"time"

	"github.com/goliatone/go-cms-editor/internal/logging"
	"github.com/goliatone/go-cms-editor/pkg/interfaces"
)

// DefaultCommandTimeout bounds one record or thumbnail command, including
// the remote round trip.
const DefaultCommandTimeout = 30 * time.Second

// EnsureContext returns ctx, or context.Background when a dispatcher hands
// the handler a nil context.
func EnsureContext(ctx context.Context) context.Context {
	if ctx == nil {
		return context.Background()
	}
	return ctx
}

// WithCommandTimeout bounds ctx by timeout. Zero or negative disables the
// bound so imports of large markdown batches can opt out.
func WithCommandTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, timeout)
}

// EnsureLogger returns logger, or a no-op logger when the container runs
// with Features.Logger off.
func EnsureLogger(logger interfaces.Logger) interfaces.Logger {
	if logger == nil {
		return logging.NoOp()
	}
	return logger
}
