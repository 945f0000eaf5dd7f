package service

import (
	"context"

	"minihotel/infras/otel"
	"minihotel/internal/domains/roomtype/model"
	"minihotel/internal/store"
	"minihotel/shared/constant"
)

type RoomType interface {
	GetAll(ctx context.Context) ([]model.RoomType, error)
	Get(ctx context.Context, id int64) (model.RoomType, error)
}

type serviceImpl struct {
	types *store.Cache[model.RoomType]
	otel  otel.Otel
}

func New(types *store.Cache[model.RoomType], otl otel.Otel) RoomType {
	return &serviceImpl{
		types: types,
		otel:  otl,
	}
}

func (s *serviceImpl) GetAll(ctx context.Context) (types []model.RoomType, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAllRoomTypes")
	defer scope.End()
	defer scope.TraceIfError(err)

	return s.types.GetAll(ctx)
}

func (s *serviceImpl) Get(ctx context.Context, id int64) (roomType model.RoomType, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetRoomType")
	defer scope.End()
	defer scope.TraceIfError(err)

	return s.types.GetByID(ctx, id)
}
