package store

import (
	"pbl/internal/platform/logger"
)

// Option mutates Store during Open
type Option func(*Store) error

// WithLogger sets the logger used by the backends
func WithLogger(log logger.Logger) Option {
	return func(s *Store) error {
		s.Log = log
		return nil
	}
}

// WithPG installs an already opened sql seam. Open leaves it in place only
// when PG is disabled in the config, which is how tests hand in fakes
func WithPG(q TxRunner) Option {
	return func(s *Store) error {
		s.PG = q
		return nil
	}
}

// WithCH installs an already opened clickhouse seam, see WithPG
func WithCH(c Clickhouse) Option {
	return func(s *Store) error {
		s.CH = c
		return nil
	}
}
