package memfit

import (
	"github.com/go-kit/log"
	"github.com/prometheus/client_golang/prometheus"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"github.com/viant/memfit/model"
	"github.com/viant/memfit/service/dao"
	"github.com/viant/memfit/tracing"
)

// Option configures the memfit service
type Option func(s *Service)

// WithConfig sets the configuration; nil keeps the defaults
func WithConfig(config *Config) Option {
	return func(s *Service) {
		if config != nil {
			s.config = config
		}
	}
}

// WithLogger sets the logger
func WithLogger(logger log.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithRegisterer registers trial metrics with reg
func WithRegisterer(reg prometheus.Registerer) Option {
	return func(s *Service) {
		s.registerer = reg
	}
}

// WithReportStore sets where finished trial reports are archived
func WithReportStore(store dao.Service[string, model.Report]) Option {
	return func(s *Service) {
		s.reports = store
	}
}

// WithSeed pins the seed used by Generate, Scenario and Simulate.
func WithSeed(seed int64) Option {
	return func(s *Service) {
		s.seed = seed
	}
}

// WithTracing configures OpenTelemetry tracing with the stdout exporter
// writing to outputFile, or to stdout when outputFile is empty.  The first
// successful initialisation wins.
func WithTracing(serviceName, serviceVersion, outputFile string) Option {
	return func(s *Service) {
		_ = tracing.Init(serviceName, serviceVersion, outputFile)
	}
}

// WithTracingExporter configures OpenTelemetry tracing with a custom SpanExporter.
func WithTracingExporter(serviceName, serviceVersion string, exporter sdktrace.SpanExporter) Option {
	return func(s *Service) {
		_ = tracing.InitWithExporter(serviceName, serviceVersion, exporter)
	}
}
