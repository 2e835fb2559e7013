package telemetry

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// TracerName names the tracer used for application service spans
const TracerName = "ecommerce-backend"

// StartServiceSpan opens an internal span called "<service>.<method>"
// (product.adjust_stock, user.login). The caller must End it.
func StartServiceSpan(ctx context.Context, service, method string, kv ...any) (context.Context, trace.Span) {
	return otel.Tracer(TracerName).Start(ctx, service+"."+method,
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(pairs(kv)...),
	)
}

// SetAttributes adds key/value pairs to span. Pairs whose key is not a
// string are skipped, as is an odd trailing key.
func SetAttributes(span trace.Span, kv ...any) {
	if span != nil {
		span.SetAttributes(pairs(kv)...)
	}
}

// RecordError records err on span and marks the span failed.
func RecordError(span trace.Span, err error) {
	if span == nil || err == nil {
		return
	}
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}

func pairs(kv []any) []attribute.KeyValue {
	out := make([]attribute.KeyValue, 0, len(kv)/2)
	for i := 1; i < len(kv); i += 2 {
		if key, ok := kv[i-1].(string); ok {
			out = append(out, attr(attribute.Key(key), kv[i]))
		}
	}
	return out
}

func attr(k attribute.Key, v any) attribute.KeyValue {
	switch x := v.(type) {
	case string:
		return k.String(x)
	case bool:
		return k.Bool(x)
	case int:
		return k.Int(x)
	case int64:
		return k.Int64(x)
	case float64:
		return k.Float64(x)
	case []string:
		return k.StringSlice(x)
	case fmt.Stringer:
		return k.String(x.String())
	}
	return k.String(fmt.Sprint(v))
}
