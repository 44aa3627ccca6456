package repository

// Option applies a configuration option to the MemoryStore.
type Option func(*MemoryStore)

// WithMaxRows caps the number of rows the store accepts. Zero or negative
// means unbounded.
func WithMaxRows(n int) Option {
	return func(s *MemoryStore) {
		s.maxRows = n
	}
}

// WithIDGenerator overrides how row IDs are minted.
func WithIDGenerator(gen func() string) Option {
	return func(s *MemoryStore) {
		if gen != nil {
			s.newID = gen
		}
	}
}
