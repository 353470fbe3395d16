package httpapi

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/riskibarqy/wrestling-roster/internal/platform/tracing"
)

var apiTracer = tracing.New("wrestling-roster/internal/interfaces/httpapi", "httpapi.Handler.")

func startSpan(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	return apiTracer.Start(ctx, name, attrs...)
}
