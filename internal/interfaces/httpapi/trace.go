package httpapi

import (
	"context"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

const handlerSpanPrefix = "httpapi.Handler."

var (
	tracer   = otel.Tracer("league-standings/internal/interfaces/httpapi")
	noopSpan = trace.SpanFromContext(context.Background())

	untracedPaths = map[string]struct{}{
		"/healthz": {},
		"/health":  {},
		"/livez":   {},
		"/readyz":  {},
		"/metrics": {},
	}
)

// startSpan opens a child span for handler methods. Middleware and helpers,
// and requests that otelhttp filtered out, get a no-op span.
func startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	if !isHandlerSpan(name) || !trace.SpanFromContext(ctx).SpanContext().IsValid() {
		return ctx, noopSpan
	}
	return tracer.Start(ctx, name)
}

func isHandlerSpan(name string) bool {
	return strings.HasPrefix(name, handlerSpanPrefix)
}

func shouldTraceRequest(path string) bool {
	_, skip := untracedPaths[strings.ToLower(strings.TrimSpace(path))]
	return !skip
}
