package repository

import (
	"minihotel/infras/otel"
	"minihotel/infras/postgres"
	"minihotel/internal/domains/customer/model"
	"minihotel/internal/store"
)

// New builds the customer collection with the case-insensitive email key.
func New(db *postgres.Connection, otl otel.Otel) *store.Cache[model.Customer] {
	gateway := store.NewGateway[model.Customer](model.EntityName, model.TableName, model.FieldID, db, otl)

	return store.NewCache(model.EntityName, gateway, otl,
		store.WithUniqueKey(model.EmailKey, "customer email already in use"),
	)
}
