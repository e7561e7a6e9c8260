package domain

import "context"

// Database defines lifecycle operations for the local store.
// The implementation owns its migration files and strategy.
type Database interface {
	Migrate(ctx context.Context) error
	Close() error
}
