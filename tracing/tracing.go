package tracing

import (
	"context"
	"io"
	"os"
	"strconv"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
)

const instrumentationName = "github.com/viant/memfit"

// Init configures OpenTelemetry with the stdout exporter writing to
// outputFile, or to os.Stdout when outputFile is empty.  The first successful
// initialisation wins.
func Init(serviceName, serviceVersion, outputFile string) error {
	var w io.Writer = os.Stdout
	if outputFile != "" {
		f, err := os.Create(outputFile)
		if err != nil {
			return err
		}
		w = f
	}
	return InitWithWriter(serviceName, serviceVersion, w)
}

// InitWithWriter configures the stdout exporter on an arbitrary writer.
func InitWithWriter(serviceName, serviceVersion string, w io.Writer) error {
	exporter, err := stdouttrace.New(stdouttrace.WithWriter(w))
	if err != nil {
		return err
	}
	return installProvider(serviceName, serviceVersion, exporter)
}

// InitWithExporter configures OpenTelemetry using the supplied SpanExporter.
func InitWithExporter(serviceName, serviceVersion string, exporter sdktrace.SpanExporter) error {
	return installProvider(serviceName, serviceVersion, exporter)
}

var (
	providerOnce sync.Once
	providerErr  error
)

func installProvider(serviceName, serviceVersion string, exporter sdktrace.SpanExporter) error {
	if exporter == nil {
		return nil
	}
	providerOnce.Do(func() {
		res, err := resource.New(context.Background(),
			resource.WithAttributes(
				attribute.String("service.name", serviceName),
				attribute.String("service.version", serviceVersion),
			),
		)
		if err != nil {
			providerErr = err
			return
		}
		tp := sdktrace.NewTracerProvider(
			sdktrace.WithSpanProcessor(sdktrace.NewSimpleSpanProcessor(exporter)),
			sdktrace.WithResource(res),
		)
		otel.SetTracerProvider(tp)
	})
	return providerErr
}

// Span wraps an OpenTelemetry span.
type Span struct {
	span trace.Span
}

// WithAttributes attaches string attributes to the span.
func (s *Span) WithAttributes(attrs map[string]string) *Span {
	if s == nil || len(attrs) == 0 {
		return s
	}
	otelAttrs := make([]attribute.KeyValue, 0, len(attrs))
	for k, v := range attrs {
		otelAttrs = append(otelAttrs, attribute.String(k, v))
	}
	s.span.SetAttributes(otelAttrs...)
	return s
}

// WithInt attaches a numeric attribute.
func (s *Span) WithInt(key string, value int) *Span {
	if s == nil {
		return s
	}
	s.span.SetAttributes(attribute.Int(key, value))
	return s
}

// WithFloat attaches a floating point attribute.
func (s *Span) WithFloat(key string, value float64) *Span {
	if s == nil {
		return s
	}
	s.span.SetAttributes(attribute.Float64(key, value))
	return s
}

// SetStatus records err on the span, or an OK status when err is nil.
func (s *Span) SetStatus(err error) {
	if s == nil {
		return
	}
	if err != nil {
		s.span.RecordError(err)
		s.span.SetStatus(codes.Error, err.Error())
		return
	}
	s.span.SetStatus(codes.Ok, "")
}

// StartSpan starts an internal child span of whatever span ctx carries.
func StartSpan(ctx context.Context, name string) (context.Context, *Span) {
	tracer := otel.Tracer(instrumentationName)
	parent := trace.SpanFromContext(ctx)
	ctx, span := tracer.Start(ctx, name, trace.WithSpanKind(trace.SpanKindInternal))
	if sc := parent.SpanContext(); sc.IsValid() {
		span.SetAttributes(
			attribute.String("parent.trace_id", sc.TraceID().String()),
			attribute.String("parent.span_id", sc.SpanID().String()),
		)
	}
	return ctx, &Span{span: span}
}

// EndSpan records the status derived from err and ends the span.
func EndSpan(sp *Span, err error) {
	if sp == nil {
		return
	}
	sp.SetStatus(err)
	sp.span.End()
}

// SpanFromContext returns the span carried by ctx.
func SpanFromContext(ctx context.Context) (*Span, bool) {
	sp := trace.SpanFromContext(ctx)
	if !sp.SpanContext().IsValid() {
		return nil, false
	}
	return &Span{span: sp}, true
}

// TrialAttributes returns the attributes recorded on a trial span.
func TrialAttributes(index int, seed int64) map[string]string {
	return map[string]string{
		"memfit.trial.index": strconv.Itoa(index),
		"memfit.trial.seed":  strconv.FormatInt(seed, 10),
	}
}
