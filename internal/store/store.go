package store

//go:generate go run go.uber.org/mock/mockgen -source=./store.go -destination=./mocks/store_mock.go -package=mocks

import (
	"context"
)

// Entity is implemented by every record kept in a Cache. Implementations are
// value types; WithEntityID and Deactivated return modified copies so cached
// snapshots are never mutated in place.
type Entity[T any] interface {
	EntityID() int64
	WithEntityID(id int64) T
	Deactivated() T
	Active() bool
}

// Gateway persists entities of one table. The cache commits every mutation
// through the gateway before the in-memory collection is touched.
type Gateway[T Entity[T]] interface {
	LoadAll(ctx context.Context) ([]T, error)
	Insert(ctx context.Context, entity T) (int64, error)
	Update(ctx context.Context, entity T) error
}
