package store_test

import (
	"context"
	"net/http"
	"testing"

	otelMocks "minihotel/infras/otel/mocks"
	"minihotel/internal/store"
	"minihotel/internal/store/mocks"
	"minihotel/shared/failure"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

type testRecord struct {
	ID     int64  `db:"id"`
	Code   string `db:"code"`
	Status int    `db:"status"`
}

func (r testRecord) EntityID() int64 {
	return r.ID
}

func (r testRecord) WithEntityID(id int64) testRecord {
	r.ID = id

	return r
}

func (r testRecord) Deactivated() testRecord {
	r.Status = 2

	return r
}

func (r testRecord) Active() bool {
	return r.Status == 1
}

func recordKey(r testRecord) string {
	return r.Code
}

func newTestCache(t *testing.T, seed []testRecord, options ...store.Option[testRecord]) (*store.Cache[testRecord], *mocks.MockGateway[testRecord]) {
	t.Helper()

	ctrl := gomock.NewController(t)
	gateway := mocks.NewMockGateway[testRecord](ctrl)
	gateway.EXPECT().LoadAll(gomock.Any()).Return(seed, nil)

	return store.NewCache("record", gateway, otelMocks.NewOtel(), options...), gateway
}

func TestCacheGetAll(t *testing.T) {
	seed := []testRecord{
		{ID: 1, Code: "A", Status: 1},
		{ID: 2, Code: "B", Status: 2},
		{ID: 3, Code: "C", Status: 1},
	}
	cache, _ := newTestCache(t, seed)

	all, err := cache.GetAll(context.Background())

	assert.NoError(t, err)
	assert.Equal(t, []testRecord{seed[0], seed[2]}, all)
}

func TestCacheFailedLoadPoisonsEveryOperation(t *testing.T) {
	ctrl := gomock.NewController(t)
	gateway := mocks.NewMockGateway[testRecord](ctrl)
	gateway.EXPECT().LoadAll(gomock.Any()).Return(nil, errors.New("connection refused"))

	cache := store.NewCache("record", gateway, otelMocks.NewOtel())
	ctx := context.Background()

	_, err := cache.GetAll(ctx)
	assert.Equal(t, http.StatusInternalServerError, failure.GetCode(err))

	_, err = cache.GetByID(ctx, 1)
	assert.Equal(t, http.StatusInternalServerError, failure.GetCode(err))

	_, err = cache.Add(ctx, testRecord{Code: "A", Status: 1})
	assert.Equal(t, http.StatusInternalServerError, failure.GetCode(err))
}

func TestCacheGetByID(t *testing.T) {
	seed := []testRecord{
		{ID: 1, Code: "A", Status: 1},
		{ID: 2, Code: "B", Status: 2},
	}

	t.Run("active record resolves", func(t *testing.T) {
		cache, _ := newTestCache(t, seed)

		got, err := cache.GetByID(context.Background(), 1)

		assert.NoError(t, err)
		assert.Equal(t, seed[0], got)
	})

	t.Run("soft-deleted record is hidden by default", func(t *testing.T) {
		cache, _ := newTestCache(t, seed)

		_, err := cache.GetByID(context.Background(), 2)

		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})

	t.Run("soft-deleted record resolves with inactive lookup", func(t *testing.T) {
		cache, _ := newTestCache(t, seed, store.WithInactiveLookup[testRecord]())

		got, err := cache.GetByID(context.Background(), 2)

		assert.NoError(t, err)
		assert.Equal(t, seed[1], got)
	})

	t.Run("unknown identifier", func(t *testing.T) {
		cache, _ := newTestCache(t, seed)

		_, err := cache.GetByID(context.Background(), 99)

		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})
}

func TestCacheAdd(t *testing.T) {
	t.Run("commits to the store then installs", func(t *testing.T) {
		cache, gateway := newTestCache(t, nil, store.WithUniqueKey(recordKey, "code already in use"))

		record := testRecord{Code: "A", Status: 1}
		gateway.EXPECT().Insert(gomock.Any(), record).Return(int64(7), nil)

		created, err := cache.Add(context.Background(), record)

		assert.NoError(t, err)
		assert.Equal(t, int64(7), created.EntityID())

		got, err := cache.GetByID(context.Background(), 7)
		assert.NoError(t, err)
		assert.Equal(t, created, got)
	})

	t.Run("duplicate key never reaches the store", func(t *testing.T) {
		seed := []testRecord{{ID: 1, Code: "A", Status: 1}}
		cache, _ := newTestCache(t, seed, store.WithUniqueKey(recordKey, "code already in use"))

		_, err := cache.Add(context.Background(), testRecord{Code: "A", Status: 1})

		assert.Equal(t, http.StatusConflict, failure.GetCode(err))
		assert.EqualError(t, err, "code already in use")
	})

	t.Run("soft-deleted record releases its key", func(t *testing.T) {
		seed := []testRecord{{ID: 1, Code: "A", Status: 2}}
		cache, gateway := newTestCache(t, seed, store.WithUniqueKey(recordKey, "code already in use"))

		record := testRecord{Code: "A", Status: 1}
		gateway.EXPECT().Insert(gomock.Any(), record).Return(int64(2), nil)

		_, err := cache.Add(context.Background(), record)

		assert.NoError(t, err)
	})

	t.Run("store failure leaves memory untouched", func(t *testing.T) {
		cache, gateway := newTestCache(t, nil)

		record := testRecord{Code: "A", Status: 1}
		gateway.EXPECT().Insert(gomock.Any(), record).Return(int64(0), failure.InternalError(errors.New("write failed")))

		_, err := cache.Add(context.Background(), record)
		assert.Error(t, err)

		all, err := cache.GetAll(context.Background())
		assert.NoError(t, err)
		assert.Empty(t, all)
	})
}

func TestCacheUpdate(t *testing.T) {
	seed := []testRecord{
		{ID: 1, Code: "A", Status: 1},
		{ID: 2, Code: "B", Status: 1},
	}

	t.Run("commits to the store then replaces", func(t *testing.T) {
		cache, gateway := newTestCache(t, seed, store.WithUniqueKey(recordKey, "code already in use"))

		changed := testRecord{ID: 1, Code: "A2", Status: 1}
		gateway.EXPECT().Update(gomock.Any(), changed).Return(nil)

		updated, err := cache.Update(context.Background(), changed)

		assert.NoError(t, err)
		assert.Equal(t, changed, updated)

		got, err := cache.GetByID(context.Background(), 1)
		assert.NoError(t, err)
		assert.Equal(t, changed, got)
	})

	t.Run("keeping own key is not a conflict", func(t *testing.T) {
		cache, gateway := newTestCache(t, seed, store.WithUniqueKey(recordKey, "code already in use"))

		changed := testRecord{ID: 1, Code: "A", Status: 1}
		gateway.EXPECT().Update(gomock.Any(), changed).Return(nil)

		_, err := cache.Update(context.Background(), changed)

		assert.NoError(t, err)
	})

	t.Run("taking another active key is a conflict", func(t *testing.T) {
		cache, _ := newTestCache(t, seed, store.WithUniqueKey(recordKey, "code already in use"))

		_, err := cache.Update(context.Background(), testRecord{ID: 1, Code: "B", Status: 1})

		assert.Equal(t, http.StatusConflict, failure.GetCode(err))
	})

	t.Run("unknown identifier never reaches the store", func(t *testing.T) {
		cache, _ := newTestCache(t, seed)

		_, err := cache.Update(context.Background(), testRecord{ID: 99, Code: "Z", Status: 1})

		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})

	t.Run("store failure leaves memory untouched", func(t *testing.T) {
		cache, gateway := newTestCache(t, seed)

		changed := testRecord{ID: 1, Code: "A2", Status: 1}
		gateway.EXPECT().Update(gomock.Any(), changed).Return(failure.InternalError(errors.New("write failed")))

		_, err := cache.Update(context.Background(), changed)
		assert.Error(t, err)

		got, err := cache.GetByID(context.Background(), 1)
		assert.NoError(t, err)
		assert.Equal(t, seed[0], got)
	})
}

func TestCacheDelete(t *testing.T) {
	seed := []testRecord{{ID: 1, Code: "A", Status: 1}}

	t.Run("soft delete keeps the record addressable for inactive lookup", func(t *testing.T) {
		cache, gateway := newTestCache(t, seed, store.WithInactiveLookup[testRecord]())

		deactivated := seed[0].Deactivated()
		gateway.EXPECT().Update(gomock.Any(), deactivated).Return(nil)

		err := cache.Delete(context.Background(), 1)
		assert.NoError(t, err)

		got, err := cache.GetByID(context.Background(), 1)
		assert.NoError(t, err)
		assert.False(t, got.Active())

		all, err := cache.GetAll(context.Background())
		assert.NoError(t, err)
		assert.Empty(t, all)
	})

	t.Run("deleting twice is not found", func(t *testing.T) {
		cache, gateway := newTestCache(t, seed)

		gateway.EXPECT().Update(gomock.Any(), seed[0].Deactivated()).Return(nil)

		assert.NoError(t, cache.Delete(context.Background(), 1))

		err := cache.Delete(context.Background(), 1)
		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})
}

func TestCacheReadOnly(t *testing.T) {
	seed := []testRecord{{ID: 1, Code: "A", Status: 1}}
	cache, _ := newTestCache(t, seed, store.WithReadOnly[testRecord]())
	ctx := context.Background()

	_, err := cache.Add(ctx, testRecord{Code: "B", Status: 1})
	assert.Equal(t, http.StatusMethodNotAllowed, failure.GetCode(err))

	_, err = cache.Update(ctx, testRecord{ID: 1, Code: "A", Status: 1})
	assert.Equal(t, http.StatusMethodNotAllowed, failure.GetCode(err))

	err = cache.Delete(ctx, 1)
	assert.Equal(t, http.StatusMethodNotAllowed, failure.GetCode(err))

	all, err := cache.GetAll(ctx)
	assert.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestCacheGetByKey(t *testing.T) {
	seed := []testRecord{
		{ID: 1, Code: "A", Status: 1},
		{ID: 2, Code: "B", Status: 2},
	}
	cache, _ := newTestCache(t, seed, store.WithUniqueKey(recordKey, "code already in use"))

	got, err := cache.GetByKey(context.Background(), "A")
	assert.NoError(t, err)
	assert.Equal(t, int64(1), got.EntityID())

	_, err = cache.GetByKey(context.Background(), "B")
	assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
}
