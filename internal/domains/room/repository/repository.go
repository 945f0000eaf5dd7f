package repository

import (
	"minihotel/infras/otel"
	"minihotel/infras/postgres"
	"minihotel/internal/domains/room/model"
	"minihotel/internal/store"
)

// New builds the room collection keyed by room number.
func New(db *postgres.Connection, otl otel.Otel) *store.Cache[model.Room] {
	gateway := store.NewGateway[model.Room](model.EntityName, model.TableName, model.FieldID, db, otl)

	return store.NewCache(model.EntityName, gateway, otl,
		store.WithUniqueKey(model.NumberKey, "room number already in use"),
	)
}
