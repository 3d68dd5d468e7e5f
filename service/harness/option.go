package harness

import (
	"github.com/go-kit/log"

	"github.com/viant/memfit/metrics"
)

// Option configures the harness
type Option func(*Service)

// WithLogger sets the logger
func WithLogger(logger log.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithMetrics sets the collectors trial outcomes are recorded into
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}
