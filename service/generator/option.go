package generator

// Option configures the generator
type Option func(*Service)

// WithSeed seeds the random source so draws are reproducible
func WithSeed(seed int64) Option {
	return func(s *Service) {
		s.seed = seed
	}
}
