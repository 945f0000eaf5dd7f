package store

import (
	"context"
	"fmt"
	"sync"

	"minihotel/infras/otel"
	"minihotel/shared/failure"

	"github.com/rs/zerolog/log"
)

const otelScopeName = "collection"

// Option tunes the behavior of one cached collection.
type Option[T Entity[T]] func(*Cache[T])

// WithUniqueKey registers a natural key that must be unique among active
// records. The conflict message is returned verbatim on violation.
func WithUniqueKey[T Entity[T]](key func(T) string, conflictMessage string) Option[T] {
	return func(c *Cache[T]) {
		c.uniqueKey = key
		c.conflictMessage = conflictMessage
	}
}

// WithWriteGuard registers a check evaluated inside the write lock, after
// the unique-key check and before the store commit. The candidate's own
// record is excluded from existing, so updates never conflict with
// themselves.
func WithWriteGuard[T Entity[T]](guard func(candidate T, existing []T) error) Option[T] {
	return func(c *Cache[T]) {
		c.guard = guard
	}
}

// WithInactiveLookup makes GetByID resolve soft-deleted records too. Booking
// records stay addressable after cancellation; customers and rooms do not.
func WithInactiveLookup[T Entity[T]]() Option[T] {
	return func(c *Cache[T]) {
		c.inactiveLookup = true
	}
}

// WithReadOnly rejects every mutation with an unsupported-operation failure.
func WithReadOnly[T Entity[T]]() Option[T] {
	return func(c *Cache[T]) {
		c.readOnly = true
	}
}

// Cache is the in-memory mirror of one table. All reads are served from
// memory; every mutation is committed through the gateway first and installed
// in memory only after the durable write succeeds, so memory never holds a
// record the database rejected.
//
// A single write lock serializes mutations end to end, including the gateway
// round trip. Reads only take the read lock and never block on the store.
type Cache[T Entity[T]] struct {
	gateway Gateway[T]
	otel    otel.Otel
	entity  string

	ready   chan struct{}
	loadErr error

	mu    sync.RWMutex
	byID  map[int64]T
	order []int64

	uniqueKey       func(T) string
	conflictMessage string
	guard           func(candidate T, existing []T) error
	inactiveLookup  bool
	readOnly        bool
}

// NewCache builds the collection and starts loading it in the background.
// Every operation blocks on the ready gate, so callers constructed before the
// load finishes observe the loaded collection, never an empty one.
func NewCache[T Entity[T]](entityName string, gateway Gateway[T], otl otel.Otel, options ...Option[T]) *Cache[T] {
	cache := &Cache[T]{
		gateway: gateway,
		otel:    otl,
		entity:  entityName,
		ready:   make(chan struct{}),
		byID:    map[int64]T{},
	}

	for _, option := range options {
		option(cache)
	}

	go cache.load()

	return cache
}

func (c *Cache[T]) load() {
	defer close(c.ready)

	entities, err := c.gateway.LoadAll(context.Background())
	if err != nil {
		c.loadErr = err
		log.Error().Err(err).Str("entity", c.entity).Msg("Failed to load collection")

		return
	}

	c.mu.Lock()
	for _, entity := range entities {
		c.byID[entity.EntityID()] = entity
		c.order = append(c.order, entity.EntityID())
	}
	c.mu.Unlock()

	log.Info().Str("entity", c.entity).Int("count", len(entities)).Msg("Collection loaded")
}

// await blocks until the initial load has finished. A failed load poisons the
// collection: every operation keeps returning the recorded error instead of
// serving an empty data set.
func (c *Cache[T]) await(ctx context.Context) error {
	select {
	case <-c.ready:
	case <-ctx.Done():
		return failure.InternalError(ctx.Err())
	}

	if c.loadErr != nil {
		return failure.InternalError(fmt.Errorf("collection %s unavailable: %w", c.entity, c.loadErr))
	}

	return nil
}

// GetAll returns the active records in identifier order.
func (c *Cache[T]) GetAll(ctx context.Context) (entities []T, err error) {
	ctx, scope := c.otel.NewScope(ctx, otelScopeName, fmt.Sprintf("%s.%s.GetAll", otelScopeName, c.entity))
	defer scope.End()
	defer scope.TraceIfError(err)

	if err = c.await(ctx); err != nil {
		return nil, err
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	entities = make([]T, 0, len(c.order))
	for _, id := range c.order {
		if entity := c.byID[id]; entity.Active() {
			entities = append(entities, entity)
		}
	}

	return entities, nil
}

// GetByID resolves one record. Soft-deleted records resolve only when the
// collection was built with WithInactiveLookup.
func (c *Cache[T]) GetByID(ctx context.Context, id int64) (entity T, err error) {
	ctx, scope := c.otel.NewScope(ctx, otelScopeName, fmt.Sprintf("%s.%s.GetByID", otelScopeName, c.entity))
	defer scope.End()
	defer scope.TraceIfError(err)

	if err = c.await(ctx); err != nil {
		return entity, err
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.lookup(id)
}

func (c *Cache[T]) lookup(id int64) (T, error) {
	entity, ok := c.byID[id]
	if !ok || (!entity.Active() && !c.inactiveLookup) {
		var zero T

		return zero, failure.NotFound(c.entity)
	}

	return entity, nil
}

// GetByKey resolves one active record by its registered natural key.
func (c *Cache[T]) GetByKey(ctx context.Context, key string) (entity T, err error) {
	ctx, scope := c.otel.NewScope(ctx, otelScopeName, fmt.Sprintf("%s.%s.GetByKey", otelScopeName, c.entity))
	defer scope.End()
	defer scope.TraceIfError(err)

	if err = c.await(ctx); err != nil {
		return entity, err
	}

	if c.uniqueKey == nil {
		var zero T

		return zero, failure.NotFound(c.entity)
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	for _, candidate := range c.byID {
		if candidate.Active() && c.uniqueKey(candidate) == key {
			return candidate, nil
		}
	}

	var zero T

	return zero, failure.NotFound(c.entity)
}

// Search returns every record matching the predicate, active or not, in
// identifier order. Callers filter on Active when they only want live rows.
func (c *Cache[T]) Search(ctx context.Context, match func(T) bool) (entities []T, err error) {
	ctx, scope := c.otel.NewScope(ctx, otelScopeName, fmt.Sprintf("%s.%s.Search", otelScopeName, c.entity))
	defer scope.End()
	defer scope.TraceIfError(err)

	if err = c.await(ctx); err != nil {
		return nil, err
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	entities = []T{}
	for _, id := range c.order {
		if entity := c.byID[id]; match(entity) {
			entities = append(entities, entity)
		}
	}

	return entities, nil
}

// Exists reports whether an active record with the identifier is present.
func (c *Cache[T]) Exists(ctx context.Context, id int64) (bool, error) {
	if err := c.await(ctx); err != nil {
		return false, err
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	entity, ok := c.byID[id]

	return ok && entity.Active(), nil
}

// Add commits a new record to the store and installs it in memory with the
// assigned identifier. Uniqueness is checked inside the write lock so two
// concurrent adds cannot both pass.
func (c *Cache[T]) Add(ctx context.Context, entity T) (created T, err error) {
	ctx, scope := c.otel.NewScope(ctx, otelScopeName, fmt.Sprintf("%s.%s.Add", otelScopeName, c.entity))
	defer scope.End()
	defer scope.TraceIfError(err)

	if err = c.await(ctx); err != nil {
		return created, err
	}

	if c.readOnly {
		return created, failure.Unsupported("creating a " + c.entity)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if err = c.checkWrite(entity, 0); err != nil {
		return created, err
	}

	id, err := c.gateway.Insert(ctx, entity)
	if err != nil {
		return created, err
	}

	created = entity.WithEntityID(id)
	c.byID[id] = created
	c.order = append(c.order, id)

	return created, nil
}

// Update commits a changed record to the store and replaces the in-memory
// copy on success. The identifier must resolve to an existing record.
func (c *Cache[T]) Update(ctx context.Context, entity T) (updated T, err error) {
	ctx, scope := c.otel.NewScope(ctx, otelScopeName, fmt.Sprintf("%s.%s.Update", otelScopeName, c.entity))
	defer scope.End()
	defer scope.TraceIfError(err)

	if err = c.await(ctx); err != nil {
		return updated, err
	}

	if c.readOnly {
		return updated, failure.Unsupported("updating a " + c.entity)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, err = c.lookup(entity.EntityID()); err != nil {
		return updated, err
	}

	if err = c.checkWrite(entity, entity.EntityID()); err != nil {
		return updated, err
	}

	if err = c.gateway.Update(ctx, entity); err != nil {
		return updated, err
	}

	c.byID[entity.EntityID()] = entity

	return entity, nil
}

// Delete soft-deletes a record: the status flip is committed to the store,
// then the deactivated copy replaces the in-memory one. The record stays in
// the collection so historical references keep resolving where allowed.
func (c *Cache[T]) Delete(ctx context.Context, id int64) (err error) {
	ctx, scope := c.otel.NewScope(ctx, otelScopeName, fmt.Sprintf("%s.%s.Delete", otelScopeName, c.entity))
	defer scope.End()
	defer scope.TraceIfError(err)

	if err = c.await(ctx); err != nil {
		return err
	}

	if c.readOnly {
		return failure.Unsupported("deleting a " + c.entity)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	entity, ok := c.byID[id]
	if !ok || !entity.Active() {
		return failure.NotFound(c.entity)
	}

	deactivated := entity.Deactivated()

	if err = c.gateway.Update(ctx, deactivated); err != nil {
		return err
	}

	c.byID[id] = deactivated

	return nil
}

// checkWrite runs the pre-commit checks under the write lock: the natural
// key among active records, then the registered guard. Soft-deleted records
// release their key, and a record never conflicts with itself.
func (c *Cache[T]) checkWrite(entity T, selfID int64) error {
	if c.uniqueKey != nil {
		key := c.uniqueKey(entity)

		for id, candidate := range c.byID {
			if id == selfID || !candidate.Active() {
				continue
			}

			if c.uniqueKey(candidate) == key {
				return failure.Conflict(c.conflictMessage)
			}
		}
	}

	if c.guard != nil {
		existing := make([]T, 0, len(c.order))
		for _, id := range c.order {
			if id == selfID {
				continue
			}

			existing = append(existing, c.byID[id])
		}

		return c.guard(entity, existing)
	}

	return nil
}
