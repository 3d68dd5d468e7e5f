package fitter

// Option configures the fitting service
type Option func(*Service)

// WithSharing sets whether several requests may share one free region
func WithSharing(allow bool) Option {
	return func(s *Service) {
		s.config.AllowSharing = allow
	}
}

// WithConfig sets the configuration for the service
func WithConfig(config Config) Option {
	return func(s *Service) {
		s.config = config
	}
}
