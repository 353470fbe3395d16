package tracing

import (
	"context"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

var noopSpan = noop.Span{}

// Tracer starts child spans for one package. Spans are only created inside a
// traced request and only for names carrying the configured prefix, so
// helpers called from filtered routes such as /healthz never open root spans.
type Tracer struct {
	tracer trace.Tracer
	prefix string
}

// New returns a Tracer backed by the global provider.
func New(scope, spanPrefix string) *Tracer {
	return newWithProvider(otel.GetTracerProvider(), scope, spanPrefix)
}

func newWithProvider(provider trace.TracerProvider, scope, spanPrefix string) *Tracer {
	return &Tracer{tracer: provider.Tracer(scope), prefix: spanPrefix}
}

func (t *Tracer) Start(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	if !t.Traces(name) || !trace.SpanContextFromContext(ctx).IsValid() {
		return ctx, noopSpan
	}
	return t.tracer.Start(ctx, name, trace.WithAttributes(attrs...))
}

// Traces reports whether a span called name would be recorded under a parent.
func (t *Tracer) Traces(name string) bool {
	name = strings.TrimSpace(name)
	return name != "" && strings.HasPrefix(name, t.prefix)
}
