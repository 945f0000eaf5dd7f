package service_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"minihotel/config"
	"minihotel/infras/kafka"
	otelMocks "minihotel/infras/otel/mocks"
	bookingModel "minihotel/internal/domains/booking/model"
	"minihotel/internal/domains/booking/model/dto"
	"minihotel/internal/domains/booking/service"
	customerModel "minihotel/internal/domains/customer/model"
	roomModel "minihotel/internal/domains/room/model"
	"minihotel/internal/store"
	"minihotel/internal/store/mocks"
	"minihotel/shared/constant"
	"minihotel/shared/failure"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type noopPublisher struct{}

func (noopPublisher) SendMessages(context.Context, string, ...kafka.Message) error {
	return nil
}

// day returns the calendar date offset days from today, as both the wire
// string and the parsed time the collections hold.
func day(t *testing.T, offset int) (string, time.Time) {
	t.Helper()

	value := time.Now().AddDate(0, 0, offset).Format(constant.DateFormat)

	parsed, err := time.Parse(constant.DateFormat, value)
	require.NoError(t, err)

	return value, parsed
}

type fixture struct {
	service        service.Booking
	bookingGateway *mocks.MockGateway[bookingModel.Booking]
}

func newFixture(t *testing.T, bookings []bookingModel.Booking) fixture {
	t.Helper()

	ctrl := gomock.NewController(t)
	otl := otelMocks.NewOtel()

	customerGateway := mocks.NewMockGateway[customerModel.Customer](ctrl)
	customerGateway.EXPECT().LoadAll(gomock.Any()).Return([]customerModel.Customer{
		{ID: 1, FullName: "Alice Smith", Email: "alice@example.com", Status: customerModel.StatusActive},
		{ID: 2, FullName: "Bob Jones", Email: "bob@example.com", Status: customerModel.StatusDeleted},
	}, nil)

	roomGateway := mocks.NewMockGateway[roomModel.Room](ctrl)
	roomGateway.EXPECT().LoadAll(gomock.Any()).Return([]roomModel.Room{
		{ID: 1, Number: "101", MaxCapacity: 2, PricePerDay: 100, RoomTypeID: 1, Status: roomModel.StatusActive},
		{ID: 2, Number: "102", MaxCapacity: 2, PricePerDay: 80, RoomTypeID: 1, Status: roomModel.StatusActive},
	}, nil)

	bookingGateway := mocks.NewMockGateway[bookingModel.Booking](ctrl)
	bookingGateway.EXPECT().LoadAll(gomock.Any()).Return(bookings, nil)

	customers := store.NewCache("customer", customerGateway, otl,
		store.WithUniqueKey(customerModel.EmailKey, "customer email already in use"))
	rooms := store.NewCache("room", roomGateway, otl,
		store.WithUniqueKey(roomModel.NumberKey, "room number already in use"))
	bookingCache := store.NewCache("booking", bookingGateway, otl,
		store.WithInactiveLookup[bookingModel.Booking](),
		store.WithWriteGuard(func(candidate bookingModel.Booking, existing []bookingModel.Booking) error {
			if !candidate.Active() {
				return nil
			}
			for _, booking := range existing {
				if booking.Active() && booking.RoomID == candidate.RoomID && booking.Overlaps(candidate.CheckIn, candidate.CheckOut) {
					return failure.Conflict("room is not available for the selected dates")
				}
			}
			return nil
		}),
	)

	return fixture{
		service:        service.New(bookingCache, customers, rooms, &config.Config{}, noopPublisher{}, otl),
		bookingGateway: bookingGateway,
	}
}

func seedBooking(t *testing.T, id, roomID int64, fromOffset, toOffset int, status bookingModel.Status) bookingModel.Booking {
	t.Helper()

	_, checkIn := day(t, fromOffset)
	_, checkOut := day(t, toOffset)

	return bookingModel.Booking{
		ID:         id,
		CustomerID: 1,
		RoomID:     roomID,
		CheckIn:    checkIn,
		CheckOut:   checkOut,
		TotalPrice: float64(toOffset-fromOffset) * 100,
		Status:     status,
		CreatedAt:  time.Now(),
	}
}

func TestCreateBooking(t *testing.T) {
	t.Run("overlapping stay on the same room is rejected before the store", func(t *testing.T) {
		fix := newFixture(t, []bookingModel.Booking{seedBooking(t, 1, 1, 10, 13, bookingModel.StatusBooked)})

		in, _ := day(t, 12)
		out, _ := day(t, 14)

		_, err := fix.service.Create(context.Background(), dto.CreateBookingRequest{
			CustomerID: 1, RoomID: 1, CheckIn: in, CheckOut: out,
		})

		assert.Equal(t, http.StatusConflict, failure.GetCode(err))
	})

	t.Run("stay starting on another stay's checkout day is accepted", func(t *testing.T) {
		fix := newFixture(t, []bookingModel.Booking{seedBooking(t, 1, 1, 10, 13, bookingModel.StatusBooked)})

		in, _ := day(t, 13)
		out, _ := day(t, 15)

		fix.bookingGateway.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(int64(2), nil)

		res, err := fix.service.Create(context.Background(), dto.CreateBookingRequest{
			CustomerID: 1, RoomID: 1, CheckIn: in, CheckOut: out,
		})

		assert.NoError(t, err)
		assert.Equal(t, int64(2), res.ID)
	})

	t.Run("same dates on another room are accepted", func(t *testing.T) {
		fix := newFixture(t, []bookingModel.Booking{seedBooking(t, 1, 1, 10, 13, bookingModel.StatusBooked)})

		in, _ := day(t, 10)
		out, _ := day(t, 13)

		fix.bookingGateway.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(int64(2), nil)

		_, err := fix.service.Create(context.Background(), dto.CreateBookingRequest{
			CustomerID: 1, RoomID: 2, CheckIn: in, CheckOut: out,
		})

		assert.NoError(t, err)
	})

	t.Run("cancelled stay does not block the interval", func(t *testing.T) {
		fix := newFixture(t, []bookingModel.Booking{seedBooking(t, 1, 1, 10, 13, bookingModel.StatusCancelled)})

		in, _ := day(t, 10)
		out, _ := day(t, 13)

		fix.bookingGateway.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(int64(2), nil)

		_, err := fix.service.Create(context.Background(), dto.CreateBookingRequest{
			CustomerID: 1, RoomID: 1, CheckIn: in, CheckOut: out,
		})

		assert.NoError(t, err)
	})

	t.Run("past check-in fails validation before any lookup", func(t *testing.T) {
		fix := newFixture(t, nil)

		in, _ := day(t, -1)
		out, _ := day(t, 2)

		// The customer does not exist either; validation must win.
		_, err := fix.service.Create(context.Background(), dto.CreateBookingRequest{
			CustomerID: 99, RoomID: 1, CheckIn: in, CheckOut: out,
		})

		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
		assert.EqualError(t, err, "CheckIn must not be in the past")
	})

	t.Run("checkout not after check-in fails validation", func(t *testing.T) {
		fix := newFixture(t, nil)

		in, _ := day(t, 10)

		_, err := fix.service.Create(context.Background(), dto.CreateBookingRequest{
			CustomerID: 1, RoomID: 1, CheckIn: in, CheckOut: in,
		})

		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
		assert.EqualError(t, err, "CheckOut must be after CheckIn")
	})

	t.Run("unknown customer is not found", func(t *testing.T) {
		fix := newFixture(t, nil)

		in, _ := day(t, 10)
		out, _ := day(t, 12)

		_, err := fix.service.Create(context.Background(), dto.CreateBookingRequest{
			CustomerID: 99, RoomID: 1, CheckIn: in, CheckOut: out,
		})

		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
		assert.EqualError(t, err, "customer not found")
	})

	t.Run("soft-deleted customer is not found", func(t *testing.T) {
		fix := newFixture(t, nil)

		in, _ := day(t, 10)
		out, _ := day(t, 12)

		_, err := fix.service.Create(context.Background(), dto.CreateBookingRequest{
			CustomerID: 2, RoomID: 1, CheckIn: in, CheckOut: out,
		})

		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})

	t.Run("unknown room is not found", func(t *testing.T) {
		fix := newFixture(t, nil)

		in, _ := day(t, 10)
		out, _ := day(t, 12)

		_, err := fix.service.Create(context.Background(), dto.CreateBookingRequest{
			CustomerID: 1, RoomID: 99, CheckIn: in, CheckOut: out,
		})

		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
		assert.EqualError(t, err, "room not found")
	})

	t.Run("total price is nights times the room rate", func(t *testing.T) {
		fix := newFixture(t, nil)

		in, _ := day(t, 10)
		out, _ := day(t, 13)

		fix.bookingGateway.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(int64(1), nil)

		res, err := fix.service.Create(context.Background(), dto.CreateBookingRequest{
			CustomerID: 1, RoomID: 1, CheckIn: in, CheckOut: out,
		})

		assert.NoError(t, err)
		assert.Equal(t, 3, res.Nights)
		assert.Equal(t, float64(300), res.TotalPrice)
		assert.Equal(t, "Alice Smith", res.CustomerName)
		assert.Equal(t, "101", res.RoomNumber)
	})
}

func TestUpdateBooking(t *testing.T) {
	t.Run("a booking never conflicts with itself", func(t *testing.T) {
		fix := newFixture(t, []bookingModel.Booking{seedBooking(t, 1, 1, 10, 13, bookingModel.StatusBooked)})

		in, _ := day(t, 11)
		out, _ := day(t, 14)

		fix.bookingGateway.EXPECT().Update(gomock.Any(), gomock.Any()).Return(nil)

		res, err := fix.service.Update(context.Background(), 1, dto.UpdateBookingRequest{
			CustomerID: 1, RoomID: 1, CheckIn: in, CheckOut: out,
		})

		assert.NoError(t, err)
		assert.Equal(t, 3, res.Nights)
	})

	t.Run("moving onto another booking's stay is rejected", func(t *testing.T) {
		fix := newFixture(t, []bookingModel.Booking{
			seedBooking(t, 1, 1, 10, 13, bookingModel.StatusBooked),
			seedBooking(t, 2, 1, 15, 18, bookingModel.StatusBooked),
		})

		in, _ := day(t, 16)
		out, _ := day(t, 19)

		_, err := fix.service.Update(context.Background(), 1, dto.UpdateBookingRequest{
			CustomerID: 1, RoomID: 1, CheckIn: in, CheckOut: out,
		})

		assert.Equal(t, http.StatusConflict, failure.GetCode(err))
	})

	t.Run("cancelled booking can not be changed", func(t *testing.T) {
		fix := newFixture(t, []bookingModel.Booking{seedBooking(t, 1, 1, 10, 13, bookingModel.StatusCancelled)})

		in, _ := day(t, 11)
		out, _ := day(t, 12)

		_, err := fix.service.Update(context.Background(), 1, dto.UpdateBookingRequest{
			CustomerID: 1, RoomID: 1, CheckIn: in, CheckOut: out,
		})

		assert.Equal(t, http.StatusConflict, failure.GetCode(err))
	})

	t.Run("unknown booking is not found", func(t *testing.T) {
		fix := newFixture(t, nil)

		in, _ := day(t, 10)
		out, _ := day(t, 12)

		_, err := fix.service.Update(context.Background(), 9, dto.UpdateBookingRequest{
			CustomerID: 1, RoomID: 1, CheckIn: in, CheckOut: out,
		})

		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})
}

func TestCancelBooking(t *testing.T) {
	t.Run("cancelling frees the interval for a new stay", func(t *testing.T) {
		seed := seedBooking(t, 1, 1, 10, 13, bookingModel.StatusBooked)
		fix := newFixture(t, []bookingModel.Booking{seed})

		fix.bookingGateway.EXPECT().Update(gomock.Any(), seed.Deactivated()).Return(nil)

		require.NoError(t, fix.service.Cancel(context.Background(), 1))

		in, _ := day(t, 10)
		out, _ := day(t, 13)

		fix.bookingGateway.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(int64(2), nil)

		_, err := fix.service.Create(context.Background(), dto.CreateBookingRequest{
			CustomerID: 1, RoomID: 1, CheckIn: in, CheckOut: out,
		})

		assert.NoError(t, err)
	})

	t.Run("cancelled booking still resolves by identifier", func(t *testing.T) {
		seed := seedBooking(t, 1, 1, 10, 13, bookingModel.StatusBooked)
		fix := newFixture(t, []bookingModel.Booking{seed})

		fix.bookingGateway.EXPECT().Update(gomock.Any(), seed.Deactivated()).Return(nil)

		require.NoError(t, fix.service.Cancel(context.Background(), 1))

		res, err := fix.service.Get(context.Background(), 1)

		assert.NoError(t, err)
		assert.Equal(t, int(bookingModel.StatusCancelled), res.Status)
	})

	t.Run("cancelling twice is not found", func(t *testing.T) {
		seed := seedBooking(t, 1, 1, 10, 13, bookingModel.StatusBooked)
		fix := newFixture(t, []bookingModel.Booking{seed})

		fix.bookingGateway.EXPECT().Update(gomock.Any(), seed.Deactivated()).Return(nil)

		require.NoError(t, fix.service.Cancel(context.Background(), 1))

		err := fix.service.Cancel(context.Background(), 1)
		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})
}

func TestAvailableRooms(t *testing.T) {
	t.Run("blocked room is excluded, free room remains", func(t *testing.T) {
		fix := newFixture(t, []bookingModel.Booking{seedBooking(t, 1, 1, 10, 13, bookingModel.StatusBooked)})

		in, _ := day(t, 11)
		out, _ := day(t, 12)

		res, err := fix.service.AvailableRooms(context.Background(), dto.AvailabilityRequest{CheckIn: in, CheckOut: out})

		assert.NoError(t, err)
		assert.Len(t, res.Rooms, 1)
		assert.Equal(t, "102", res.Rooms[0].Number)
	})

	t.Run("adjacent stay leaves the room available", func(t *testing.T) {
		fix := newFixture(t, []bookingModel.Booking{seedBooking(t, 1, 1, 10, 13, bookingModel.StatusBooked)})

		in, _ := day(t, 13)
		out, _ := day(t, 15)

		res, err := fix.service.AvailableRooms(context.Background(), dto.AvailabilityRequest{CheckIn: in, CheckOut: out})

		assert.NoError(t, err)
		assert.Len(t, res.Rooms, 2)
	})

	t.Run("cancelled stay leaves the room available", func(t *testing.T) {
		fix := newFixture(t, []bookingModel.Booking{seedBooking(t, 1, 1, 10, 13, bookingModel.StatusCancelled)})

		in, _ := day(t, 11)
		out, _ := day(t, 12)

		res, err := fix.service.AvailableRooms(context.Background(), dto.AvailabilityRequest{CheckIn: in, CheckOut: out})

		assert.NoError(t, err)
		assert.Len(t, res.Rooms, 2)
	})
}

func TestBookingsByCustomer(t *testing.T) {
	t.Run("history includes cancelled stays", func(t *testing.T) {
		fix := newFixture(t, []bookingModel.Booking{
			seedBooking(t, 1, 1, 10, 13, bookingModel.StatusBooked),
			seedBooking(t, 2, 2, 20, 22, bookingModel.StatusCancelled),
		})

		res, err := fix.service.ByCustomer(context.Background(), 1)

		assert.NoError(t, err)
		assert.Equal(t, 2, res.TotalData)
	})

	t.Run("unknown customer is not found", func(t *testing.T) {
		fix := newFixture(t, nil)

		_, err := fix.service.ByCustomer(context.Background(), 99)

		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})
}

func TestBookingsByDateRange(t *testing.T) {
	fix := newFixture(t, []bookingModel.Booking{
		seedBooking(t, 1, 1, 10, 13, bookingModel.StatusBooked),
		seedBooking(t, 2, 2, 20, 22, bookingModel.StatusBooked),
		seedBooking(t, 3, 2, 11, 12, bookingModel.StatusCancelled),
	})

	in, _ := day(t, 9)
	out, _ := day(t, 14)

	res, err := fix.service.ByDateRange(context.Background(), dto.AvailabilityRequest{CheckIn: in, CheckOut: out})

	assert.NoError(t, err)
	assert.Equal(t, 1, res.TotalData)
	assert.Equal(t, int64(1), res.Bookings[0].ID)
}
