package repository

// WithMaxOpenConns bounds the SQLite connection pool.
func WithMaxOpenConns(n int) Option {
	return func(s *SQLiteStore) {
		if n > 0 {
			s.db.SetMaxOpenConns(n)
		}
	}
}
