package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"reflect"
	"slices"
	"strings"

	"minihotel/infras/otel"
	"minihotel/infras/postgres"
	"minihotel/shared/constant"
	"minihotel/shared/failure"
	"minihotel/shared/logger"

	"github.com/lib/pq"
)

type sqlGateway[T Entity[T]] struct {
	db            *postgres.Connection
	otel          otel.Otel
	entity        string
	table         string
	primaryColumn string
	columns       []string
	insertColumns []string
}

// NewGateway builds a Gateway over one table. Column lists are derived from
// the db tags of T; the primary column is excluded from inserts because the
// database assigns identifiers.
func NewGateway[T Entity[T]](entityName, tableName, primaryColumn string, dbConnection *postgres.Connection, otl otel.Otel) Gateway[T] {
	var zero T

	columns := getColumns(reflect.TypeOf(zero))
	insertColumns := slices.DeleteFunc(slices.Clone(columns), func(col string) bool {
		return col == primaryColumn
	})

	return &sqlGateway[T]{
		db:            dbConnection,
		otel:          otl,
		entity:        entityName,
		table:         tableName,
		primaryColumn: primaryColumn,
		columns:       columns,
		insertColumns: insertColumns,
	}
}

// LoadAll reads every row regardless of status. Status filtering is the
// cache's concern so soft-deleted records stay addressable after startup.
func (gw *sqlGateway[T]) LoadAll(ctx context.Context) (entities []T, err error) {
	ctx, scope := gw.otel.NewScope(ctx, constant.OtelStoreScopeName, fmt.Sprintf("%s.%s.LoadAll", constant.OtelStoreScopeName, gw.entity))
	defer scope.End()
	defer scope.TraceIfError(err)

	query := fmt.Sprintf("SELECT %s FROM %s ORDER BY %s", strings.Join(gw.columns, ", "), gw.table, gw.primaryColumn)
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	err = gw.db.Read.SelectContext(ctx, &entities, query)
	if err != nil {
		logger.ErrorWithStack(err)

		return nil, fmt.Errorf("failed to load data (%s): %w", gw.entity, err)
	}

	return entities, nil
}

// Insert writes a new row and returns the database-assigned identifier.
func (gw *sqlGateway[T]) Insert(ctx context.Context, entity T) (id int64, err error) {
	ctx, scope := gw.otel.NewScope(ctx, constant.OtelStoreScopeName, fmt.Sprintf("%s.%s.Insert", constant.OtelStoreScopeName, gw.entity))
	defer scope.End()
	defer scope.TraceIfError(err)

	placeholders := []string{}
	for _, col := range gw.insertColumns {
		placeholders = append(placeholders, ":"+col)
	}

	query := fmt.Sprintf(
		"INSERT INTO %s (%s) VALUES (%s) RETURNING %s",
		gw.table,
		strings.Join(gw.insertColumns, ", "),
		strings.Join(placeholders, ", "),
		gw.primaryColumn,
	)
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	prepare, err := gw.db.Write.PrepareNamedContext(ctx, query)
	if err != nil {
		logger.ErrorWithStack(err)

		return 0, fmt.Errorf("failed to prepare statement (%s): %w", gw.entity, err)
	}
	defer prepare.Close()

	err = prepare.GetContext(ctx, &id, entity)
	if err != nil {
		logger.ErrorWithStack(err)

		return 0, gw.wrapWriteError(err)
	}

	return id, nil
}

// Update rewrites every column of the row addressed by the primary column.
func (gw *sqlGateway[T]) Update(ctx context.Context, entity T) (err error) {
	ctx, scope := gw.otel.NewScope(ctx, constant.OtelStoreScopeName, fmt.Sprintf("%s.%s.Update", constant.OtelStoreScopeName, gw.entity))
	defer scope.End()
	defer scope.TraceIfError(err)

	assignments := []string{}
	for _, col := range gw.insertColumns {
		assignments = append(assignments, fmt.Sprintf("%s = :%s", col, col))
	}

	query := fmt.Sprintf(
		"UPDATE %s SET %s WHERE %s = :%s",
		gw.table,
		strings.Join(assignments, ", "),
		gw.primaryColumn,
		gw.primaryColumn,
	)
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	result, err := gw.db.Write.NamedExecContext(ctx, query, entity)
	if err != nil {
		logger.ErrorWithStack(err)

		return gw.wrapWriteError(err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		logger.ErrorWithStack(err)

		return fmt.Errorf("failed to update data (%s): %w", gw.entity, err)
	}

	if affected == 0 {
		return failure.NotFound(gw.entity)
	}

	return nil
}

// wrapWriteError translates constraint violations into the conflict failure
// so callers never see driver error codes.
func (gw *sqlGateway[T]) wrapWriteError(err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch string(pqErr.Code) {
		case constant.PqErrorCodeUniqueViolation:
			return failure.Conflict(gw.entity + " already exists")
		case constant.PqErrorCodeFkViolation:
			return failure.NotFound(gw.entity + " reference")
		}
	}

	if errors.Is(err, sql.ErrNoRows) {
		return failure.NotFound(gw.entity)
	}

	return fmt.Errorf("failed to write data (%s): %w", gw.entity, err)
}

func getColumns(reflectType reflect.Type) (columns []string) {
	for i := range reflectType.NumField() {
		field := reflectType.Field(i)

		if field.Anonymous && field.Type.Kind() == reflect.Struct {
			columns = append(columns, getColumns(field.Type)...)

			continue
		}

		dbTag := field.Tag.Get("db")
		if dbTag == "" || dbTag == "-" {
			continue
		}

		columns = append(columns, dbTag)
	}

	return columns
}
