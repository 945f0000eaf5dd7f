package repository

import (
	"minihotel/infras/otel"
	"minihotel/infras/postgres"
	"minihotel/internal/domains/roomtype/model"
	"minihotel/internal/store"
)

// New builds the room type collection. Mutations are rejected because the
// table is reference data owned by migrations.
func New(db *postgres.Connection, otl otel.Otel) *store.Cache[model.RoomType] {
	gateway := store.NewGateway[model.RoomType](model.EntityName, model.TableName, model.FieldID, db, otl)

	return store.NewCache(model.EntityName, gateway, otl, store.WithReadOnly[model.RoomType]())
}
