package log

import (
	"context"
	"log/slog"

	"github.com/cockroachdb/errors"
)

// stacktraceHandler decorates records that carry an error attribute with the
// stacktrace recorded by cockroachdb/errors at wrap time.
type stacktraceHandler struct {
	next slog.Handler
}

// WithStacktraces wraps a slog handler so that records logged with ErrAttr
// gain a "stacktrace" attribute when the error carries one.
func WithStacktraces(next slog.Handler) slog.Handler {
	return &stacktraceHandler{next: next}
}

func (h *stacktraceHandler) Enabled(ctx context.Context, l slog.Level) bool {
	return h.next.Enabled(ctx, l)
}

func (h *stacktraceHandler) Handle(ctx context.Context, r slog.Record) error {
	var trace string
	r.Attrs(func(attr slog.Attr) bool {
		if attr.Key != ErrAttrKey {
			return true
		}
		if err, ok := attr.Value.Any().(error); ok {
			trace = stacktraceOf(err)
		}
		return false
	})
	if trace != "" {
		r.AddAttrs(slog.String(StacktraceAttrKey, trace))
	}
	return h.next.Handle(ctx, r)
}

func (h *stacktraceHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &stacktraceHandler{next: h.next.WithAttrs(attrs)}
}

func (h *stacktraceHandler) WithGroup(g string) slog.Handler {
	return &stacktraceHandler{next: h.next.WithGroup(g)}
}

// stacktraceOf pulls the first safe detail out of a cockroachdb error, which
// is the stacktrace captured at the innermost WithStack or New call.
func stacktraceOf(err error) string {
	details := errors.GetSafeDetails(err).SafeDetails
	if len(details) == 0 {
		return ""
	}
	return details[0]
}
