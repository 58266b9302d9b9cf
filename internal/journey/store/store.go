// Package store persists journey records against their journey id. The
// service treats it as a plain get/put key-value resource: no transaction
// spans the read-modify-write of a step, so concurrent tabs racing the same
// journey are last-write-wins.
package store

import (
	"context"

	"addressfinder/internal/journey"
)

// Store is the journey keystore. Get returns sentinel.ErrNotFound (wrapped)
// for a missing or expired record; infrastructure failures surface as
// sentinel.ErrUnavailable.
type Store interface {
	Get(ctx context.Context, id journey.ID) (*journey.Record, error)
	Put(ctx context.Context, id journey.ID, record *journey.Record) error
}
