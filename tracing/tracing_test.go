package tracing

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func TestStartSpan(t *testing.T) {
	exporter := tracetest.NewInMemoryExporter()
	require.NoError(t, InitWithExporter("memfit", "0.0.1", exporter))

	ctx, parent := StartSpan(context.Background(), "trials")
	_, child := StartSpan(ctx, "trial")
	child.WithAttributes(TrialAttributes(3, 42)).WithInt("memfit.requests", 7).WithFloat("memfit.success", 0.5)
	EndSpan(child, errors.New("boom"))
	EndSpan(parent, nil)

	spans := exporter.GetSpans()
	require.Len(t, spans, 2)
	assert.Equal(t, "trial", spans[0].Name)
	assert.Equal(t, "trials", spans[1].Name)
	assert.Equal(t, spans[1].SpanContext.SpanID(), spans[0].Parent.SpanID())

	attrs := map[string]string{}
	for _, kv := range spans[0].Attributes {
		attrs[string(kv.Key)] = kv.Value.Emit()
	}
	assert.Equal(t, "3", attrs["memfit.trial.index"])
	assert.Equal(t, "42", attrs["memfit.trial.seed"])
	assert.Equal(t, "7", attrs["memfit.requests"])
	assert.Equal(t, "boom", spans[0].Status.Description)

	sp, ok := SpanFromContext(ctx)
	assert.True(t, ok)
	assert.NotNil(t, sp)
	_, ok = SpanFromContext(context.Background())
	assert.False(t, ok)
}

func TestNilSpan(t *testing.T) {
	var sp *Span
	assert.Nil(t, sp.WithAttributes(map[string]string{"k": "v"}))
	assert.Nil(t, sp.WithInt("k", 1))
	sp.SetStatus(nil)
	EndSpan(nil, nil)
}
