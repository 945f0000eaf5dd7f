package repository

import (
	"minihotel/infras/otel"
	"minihotel/infras/postgres"
	"minihotel/internal/domains/booking/model"
	"minihotel/internal/store"
	"minihotel/shared/failure"
)

// New builds the booking collection. Cancelled bookings stay resolvable by
// identifier because receipts and history reference them, and the write
// guard rejects any booking whose stay overlaps a live booking of the same
// room before the durable write happens.
func New(db *postgres.Connection, otl otel.Otel) *store.Cache[model.Booking] {
	gateway := store.NewGateway[model.Booking](model.EntityName, model.TableName, model.FieldID, db, otl)

	return store.NewCache(model.EntityName, gateway, otl,
		store.WithInactiveLookup[model.Booking](),
		store.WithWriteGuard(overlapGuard),
	)
}

// overlapGuard enforces room availability inside the collection's write
// lock. Cancelled bookings do not block, and adjacent stays sharing a
// checkout day are allowed.
func overlapGuard(candidate model.Booking, existing []model.Booking) error {
	if !candidate.Active() {
		return nil
	}

	for _, booking := range existing {
		if !booking.Active() || booking.RoomID != candidate.RoomID {
			continue
		}

		if booking.Overlaps(candidate.CheckIn, candidate.CheckOut) {
			return failure.Conflict("room is not available for the selected dates")
		}
	}

	return nil
}
