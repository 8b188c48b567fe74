package store

import (
	"context"

	"github.com/pkg/errors"
)

const (
	BackendMemory   = "memory"
	BackendPostgres = "postgres"
)

// Open builds the store for backend. dbURL is only read for postgres,
// which is migrated and seeded before it is returned.
func Open(ctx context.Context, backend, dbURL string) (Store, error) {
	switch backend {
	case "", BackendMemory:
		return NewSeededMemoryStore(), nil
	case BackendPostgres:
		pg, err := NewPostgresStore(ctx, dbURL)
		if err != nil {
			return nil, err
		}
		if err := pg.Migrate(ctx, SeedTweets(), SeedUsers()); err != nil {
			pg.Close()
			return nil, err
		}
		return pg, nil
	default:
		return nil, errors.Wrapf(ErrUnknownBackend, "%q", backend)
	}
}

var (
	_ Store = (*MemoryStore)(nil)
	_ Store = (*PostgresStore)(nil)
)
