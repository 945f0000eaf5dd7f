package service

import (
	"context"
	"net/http"
	"strings"

	"minihotel/infras/otel"
	"minihotel/internal/domains/room/model"
	"minihotel/internal/domains/room/model/dto"
	roomtypeModel "minihotel/internal/domains/roomtype/model"
	"minihotel/internal/store"
	"minihotel/shared/constant"
	"minihotel/shared/failure"
)

type Room interface {
	Create(ctx context.Context, req dto.CreateRoomRequest) (dto.RoomResponse, error)
	GetAll(ctx context.Context) (dto.GetRoomsResponse, error)
	Get(ctx context.Context, id int64) (dto.RoomResponse, error)
	Search(ctx context.Context, keyword string) (dto.GetRoomsResponse, error)
	Update(ctx context.Context, id int64, req dto.UpdateRoomRequest) (dto.RoomResponse, error)
	Delete(ctx context.Context, id int64) error
}

type serviceImpl struct {
	rooms *store.Cache[model.Room]
	types *store.Cache[roomtypeModel.RoomType]
	otel  otel.Otel
}

func New(rooms *store.Cache[model.Room], types *store.Cache[roomtypeModel.RoomType], otl otel.Otel) Room {
	return &serviceImpl{
		rooms: rooms,
		types: types,
		otel:  otl,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateRoomRequest) (res dto.RoomResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".CreateRoom")
	defer scope.End()
	defer scope.TraceIfError(err)

	roomType, err := s.types.GetByID(ctx, req.RoomTypeID)
	if err != nil {
		return res, err
	}

	created, err := s.rooms.Add(ctx, req.ToModel())
	if err != nil {
		return res, err
	}

	res.FromModel(created, roomType)

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context) (res dto.GetRoomsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAllRooms")
	defer scope.End()
	defer scope.TraceIfError(err)

	rooms, err := s.rooms.GetAll(ctx)
	if err != nil {
		return res, err
	}

	typeByID, err := s.typeIndex(ctx)
	if err != nil {
		return res, err
	}

	res.FromModels(rooms, typeByID)

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id int64) (res dto.RoomResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetRoom")
	defer scope.End()
	defer scope.TraceIfError(err)

	room, err := s.rooms.GetByID(ctx, id)
	if err != nil {
		return res, err
	}

	roomType, err := s.types.GetByID(ctx, room.RoomTypeID)
	if err != nil && !failure.Is(err, http.StatusNotFound) {
		return res, err
	}

	res.FromModel(room, roomType)

	return res, nil
}

// Search matches the keyword against room number and description among
// active rooms only.
func (s *serviceImpl) Search(ctx context.Context, keyword string) (res dto.GetRoomsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".SearchRooms")
	defer scope.End()
	defer scope.TraceIfError(err)

	needle := strings.ToLower(keyword)

	rooms, err := s.rooms.Search(ctx, func(room model.Room) bool {
		if !room.Active() {
			return false
		}

		return strings.Contains(strings.ToLower(room.Number), needle) ||
			strings.Contains(strings.ToLower(room.Description), needle)
	})
	if err != nil {
		return res, err
	}

	typeByID, err := s.typeIndex(ctx)
	if err != nil {
		return res, err
	}

	res.FromModels(rooms, typeByID)

	return res, nil
}

func (s *serviceImpl) Update(ctx context.Context, id int64, req dto.UpdateRoomRequest) (res dto.RoomResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".UpdateRoom")
	defer scope.End()
	defer scope.TraceIfError(err)

	current, err := s.rooms.GetByID(ctx, id)
	if err != nil {
		return res, err
	}

	roomType, err := s.types.GetByID(ctx, req.RoomTypeID)
	if err != nil {
		return res, err
	}

	updated, err := s.rooms.Update(ctx, req.ApplyTo(current))
	if err != nil {
		return res, err
	}

	res.FromModel(updated, roomType)

	return res, nil
}

func (s *serviceImpl) Delete(ctx context.Context, id int64) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".DeleteRoom")
	defer scope.End()
	defer scope.TraceIfError(err)

	return s.rooms.Delete(ctx, id)
}

func (s *serviceImpl) typeIndex(ctx context.Context) (map[int64]roomtypeModel.RoomType, error) {
	types, err := s.types.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	typeByID := make(map[int64]roomtypeModel.RoomType, len(types))
	for _, roomType := range types {
		typeByID[roomType.ID] = roomType
	}

	return typeByID, nil
}
