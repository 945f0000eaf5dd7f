package service_test

import (
	"context"
	"net/http"
	"testing"

	otelMocks "minihotel/infras/otel/mocks"
	"minihotel/internal/domains/room/model"
	"minihotel/internal/domains/room/model/dto"
	"minihotel/internal/domains/room/service"
	roomtypeModel "minihotel/internal/domains/roomtype/model"
	"minihotel/internal/store"
	"minihotel/internal/store/mocks"
	"minihotel/shared/failure"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newService(t *testing.T, seed []model.Room) (service.Room, *mocks.MockGateway[model.Room]) {
	t.Helper()

	ctrl := gomock.NewController(t)

	typeGateway := mocks.NewMockGateway[roomtypeModel.RoomType](ctrl)
	typeGateway.EXPECT().LoadAll(gomock.Any()).Return([]roomtypeModel.RoomType{
		{ID: 1, Name: "Single"},
		{ID: 2, Name: "Double"},
	}, nil)

	roomGateway := mocks.NewMockGateway[model.Room](ctrl)
	roomGateway.EXPECT().LoadAll(gomock.Any()).Return(seed, nil)

	otl := otelMocks.NewOtel()
	types := store.NewCache(roomtypeModel.EntityName, typeGateway, otl, store.WithReadOnly[roomtypeModel.RoomType]())
	rooms := store.NewCache(model.EntityName, roomGateway, otl,
		store.WithUniqueKey(model.NumberKey, "room number already in use"))

	return service.New(rooms, types, otl), roomGateway
}

func createRequest() dto.CreateRoomRequest {
	return dto.CreateRoomRequest{
		Number:      "101",
		Description: "Street view",
		MaxCapacity: 2,
		PricePerDay: 100,
		RoomTypeID:  1,
	}
}

func TestCreateRoom(t *testing.T) {
	t.Run("resolves the room type and stores the room", func(t *testing.T) {
		svc, gateway := newService(t, nil)

		req := createRequest()
		gateway.EXPECT().Insert(gomock.Any(), req.ToModel()).Return(int64(1), nil)

		res, err := svc.Create(context.Background(), createRequest())

		require.NoError(t, err)
		assert.Equal(t, int64(1), res.ID)
		assert.Equal(t, "Single", res.RoomTypeName)
	})

	t.Run("unknown room type never reaches the store", func(t *testing.T) {
		svc, _ := newService(t, nil)

		req := createRequest()
		req.RoomTypeID = 9

		_, err := svc.Create(context.Background(), req)

		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
		assert.EqualError(t, err, "room type not found")
	})

	t.Run("active number is unique regardless of case", func(t *testing.T) {
		seed := []model.Room{{ID: 1, Number: "A101", RoomTypeID: 1, Status: model.StatusActive}}
		svc, _ := newService(t, seed)

		req := createRequest()
		req.Number = "a101"

		_, err := svc.Create(context.Background(), req)

		assert.Equal(t, http.StatusConflict, failure.GetCode(err))
		assert.EqualError(t, err, "room number already in use")
	})

	t.Run("deleted room releases its number", func(t *testing.T) {
		seed := []model.Room{{ID: 1, Number: "101", RoomTypeID: 1, Status: model.StatusDeleted}}
		svc, gateway := newService(t, seed)

		gateway.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(int64(2), nil)

		_, err := svc.Create(context.Background(), createRequest())

		assert.NoError(t, err)
	})
}

func TestUpdateRoom(t *testing.T) {
	seed := []model.Room{
		{ID: 1, Number: "101", MaxCapacity: 2, PricePerDay: 100, RoomTypeID: 1, Status: model.StatusActive},
		{ID: 2, Number: "102", MaxCapacity: 2, PricePerDay: 100, RoomTypeID: 1, Status: model.StatusActive},
	}

	t.Run("keeping own number is not a conflict", func(t *testing.T) {
		svc, gateway := newService(t, seed)

		gateway.EXPECT().Update(gomock.Any(), gomock.Any()).Return(nil)

		res, err := svc.Update(context.Background(), 1, dto.UpdateRoomRequest{
			Number:      "101",
			MaxCapacity: 3,
			PricePerDay: 120,
			RoomTypeID:  2,
		})

		assert.NoError(t, err)
		assert.Equal(t, 3, res.MaxCapacity)
		assert.Equal(t, "Double", res.RoomTypeName)
	})

	t.Run("taking another active number is a conflict", func(t *testing.T) {
		svc, _ := newService(t, seed)

		_, err := svc.Update(context.Background(), 1, dto.UpdateRoomRequest{
			Number:      "102",
			MaxCapacity: 2,
			PricePerDay: 100,
			RoomTypeID:  1,
		})

		assert.Equal(t, http.StatusConflict, failure.GetCode(err))
	})
}

func TestDeleteRoom(t *testing.T) {
	seed := []model.Room{{ID: 1, Number: "101", RoomTypeID: 1, Status: model.StatusActive}}
	svc, gateway := newService(t, seed)

	gateway.EXPECT().Update(gomock.Any(), seed[0].Deactivated()).Return(nil)

	require.NoError(t, svc.Delete(context.Background(), 1))

	_, err := svc.Get(context.Background(), 1)
	assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
}

func TestSearchRooms(t *testing.T) {
	seed := []model.Room{
		{ID: 1, Number: "101", Description: "Garden view", RoomTypeID: 1, Status: model.StatusActive},
		{ID: 2, Number: "201", Description: "Street view", RoomTypeID: 1, Status: model.StatusActive},
		{ID: 3, Number: "102", Description: "Garden view", RoomTypeID: 1, Status: model.StatusDeleted},
	}
	svc, _ := newService(t, seed)

	res, err := svc.Search(context.Background(), "garden")

	assert.NoError(t, err)
	assert.Equal(t, 1, res.TotalData)
	assert.Equal(t, "101", res.Rooms[0].Number)
}
