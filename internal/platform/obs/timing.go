package obs

import (
	"context"
	"septic-route-service/internal/platform/logger"
	"time"
)

type ctxKey string

const RequestIDKey ctxKey = "req_id"

// WithRequestID stores the request id used to correlate timing lines.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, RequestIDKey, id)
}

// RequestID returns the request id stored in ctx, if any.
func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(RequestIDKey).(string)
	return id
}

// Time logs how long an operation took once the returned func is called.
// Usage: defer obs.Time(ctx, "op")(&err)
func Time(ctx context.Context, name string) func(errp *error) {
	start := time.Now()

	return func(errp *error) {
		dur := time.Since(start)
		l := logger.From(ctx)

		if errp != nil && *errp != nil {
			l.Warn("op", "req_id", RequestID(ctx), "op", name, "dur_ms", dur.Milliseconds(), "err", *errp)
			return
		}
		l.Debug("op", "req_id", RequestID(ctx), "op", name, "dur_ms", dur.Milliseconds())
	}
}
