package service

import (
	"context"
	"time"

	"minihotel/config"
	"minihotel/infras/kafka"
	"minihotel/infras/otel"
	"minihotel/internal/domains/booking/model"
	"minihotel/internal/domains/booking/model/dto"
	customerModel "minihotel/internal/domains/customer/model"
	roomModel "minihotel/internal/domains/room/model"
	roomDto "minihotel/internal/domains/room/model/dto"
	"minihotel/internal/store"
	"minihotel/shared/constant"
	"minihotel/shared/failure"
	"minihotel/shared/timezone"
)

type Booking interface {
	Create(ctx context.Context, req dto.CreateBookingRequest) (dto.BookingResponse, error)
	GetAll(ctx context.Context) (dto.GetBookingsResponse, error)
	Get(ctx context.Context, id int64) (dto.BookingResponse, error)
	ByCustomer(ctx context.Context, customerID int64) (dto.GetBookingsResponse, error)
	ByDateRange(ctx context.Context, req dto.AvailabilityRequest) (dto.GetBookingsResponse, error)
	AvailableRooms(ctx context.Context, req dto.AvailabilityRequest) (roomDto.GetRoomsResponse, error)
	Update(ctx context.Context, id int64, req dto.UpdateBookingRequest) (dto.BookingResponse, error)
	Cancel(ctx context.Context, id int64) error
}

type serviceImpl struct {
	bookings  *store.Cache[model.Booking]
	customers *store.Cache[customerModel.Customer]
	rooms     *store.Cache[roomModel.Room]
	cfg       *config.Config
	kafka     kafka.Client
	otel      otel.Otel
}

func New(
	bookings *store.Cache[model.Booking],
	customers *store.Cache[customerModel.Customer],
	rooms *store.Cache[roomModel.Room],
	cfg *config.Config,
	kafkaClient kafka.Client,
	otl otel.Otel,
) Booking {
	return &serviceImpl{
		bookings:  bookings,
		customers: customers,
		rooms:     rooms,
		cfg:       cfg,
		kafka:     kafkaClient,
		otel:      otl,
	}
}

// Create validates the stay, resolves customer and room, then commits the
// booking. The room's availability is enforced by the collection's write
// guard, so a conflicting stay never reaches the store.
func (s *serviceImpl) Create(ctx context.Context, req dto.CreateBookingRequest) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".CreateBooking")
	defer scope.End()
	defer scope.TraceIfError(err)

	checkIn, checkOut, err := s.validateStay(req.Stay())
	if err != nil {
		return res, err
	}

	customer, err := s.customers.GetByID(ctx, req.CustomerID)
	if err != nil {
		return res, err
	}

	room, err := s.rooms.GetByID(ctx, req.RoomID)
	if err != nil {
		return res, err
	}

	booking := model.Booking{
		CustomerID: req.CustomerID,
		RoomID:     req.RoomID,
		CheckIn:    checkIn,
		CheckOut:   checkOut,
		Note:       req.Note,
		Status:     model.StatusBooked,
		CreatedAt:  timezone.Now(),
	}
	booking.TotalPrice = float64(booking.Nights()) * room.PricePerDay

	created, err := s.bookings.Add(ctx, booking)
	if err != nil {
		return res, err
	}

	s.publish(ctx, eventBookingCreated, created)

	res.FromModel(created, customer.FullName, room.Number)

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context) (res dto.GetBookingsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAllBookings")
	defer scope.End()
	defer scope.TraceIfError(err)

	bookings, err := s.bookings.Search(ctx, func(model.Booking) bool { return true })
	if err != nil {
		return res, err
	}

	return s.hydrate(ctx, bookings)
}

func (s *serviceImpl) Get(ctx context.Context, id int64) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetBooking")
	defer scope.End()
	defer scope.TraceIfError(err)

	booking, err := s.bookings.GetByID(ctx, id)
	if err != nil {
		return res, err
	}

	hydrated, err := s.hydrate(ctx, []model.Booking{booking})
	if err != nil {
		return res, err
	}

	return hydrated.Bookings[0], nil
}

// ByCustomer lists the booking history of one customer, cancelled stays
// included. The customer must resolve to an active record.
func (s *serviceImpl) ByCustomer(ctx context.Context, customerID int64) (res dto.GetBookingsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetBookingsByCustomer")
	defer scope.End()
	defer scope.TraceIfError(err)

	if _, err = s.customers.GetByID(ctx, customerID); err != nil {
		return res, err
	}

	bookings, err := s.bookings.Search(ctx, func(booking model.Booking) bool {
		return booking.CustomerID == customerID
	})
	if err != nil {
		return res, err
	}

	return s.hydrate(ctx, bookings)
}

// ByDateRange reports the live bookings whose stay intersects the period.
func (s *serviceImpl) ByDateRange(ctx context.Context, req dto.AvailabilityRequest) (res dto.GetBookingsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetBookingsByDateRange")
	defer scope.End()
	defer scope.TraceIfError(err)

	from, to, err := req.Stay()
	if err != nil {
		return res, err
	}

	bookings, err := s.bookings.Search(ctx, func(booking model.Booking) bool {
		return booking.Active() && booking.Overlaps(from, to)
	})
	if err != nil {
		return res, err
	}

	return s.hydrate(ctx, bookings)
}

// Update rewrites an existing booking after running the same validation
// pipeline as Create. The booking's own stay never blocks itself.
func (s *serviceImpl) Update(ctx context.Context, id int64, req dto.UpdateBookingRequest) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".UpdateBooking")
	defer scope.End()
	defer scope.TraceIfError(err)

	checkIn, checkOut, err := s.validateStay(req.Stay())
	if err != nil {
		return res, err
	}

	current, err := s.bookings.GetByID(ctx, id)
	if err != nil {
		return res, err
	}

	if !current.Active() {
		return res, failure.Conflict("cancelled booking can not be changed")
	}

	customer, err := s.customers.GetByID(ctx, req.CustomerID)
	if err != nil {
		return res, err
	}

	room, err := s.rooms.GetByID(ctx, req.RoomID)
	if err != nil {
		return res, err
	}

	current.CustomerID = req.CustomerID
	current.RoomID = req.RoomID
	current.CheckIn = checkIn
	current.CheckOut = checkOut
	current.Note = req.Note
	current.TotalPrice = float64(current.Nights()) * room.PricePerDay

	updated, err := s.bookings.Update(ctx, current)
	if err != nil {
		return res, err
	}

	s.publish(ctx, eventBookingUpdated, updated)

	res.FromModel(updated, customer.FullName, room.Number)

	return res, nil
}

// Cancel soft-deletes the booking, freeing its interval for new stays. The
// record remains readable by identifier.
func (s *serviceImpl) Cancel(ctx context.Context, id int64) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".CancelBooking")
	defer scope.End()
	defer scope.TraceIfError(err)

	if err = s.bookings.Delete(ctx, id); err != nil {
		return err
	}

	cancelled, err := s.bookings.GetByID(ctx, id)
	if err == nil {
		s.publish(ctx, eventBookingCancelled, cancelled)
	}

	return nil
}

// validateStay rejects past check-ins. Today's date is fine; the comparison
// uses calendar dates in the application timezone.
func (s *serviceImpl) validateStay(checkIn, checkOut time.Time, err error) (time.Time, time.Time, error) {
	if err != nil {
		return checkIn, checkOut, err
	}

	today, err := time.Parse(constant.DateFormat, timezone.Now().Format(constant.DateFormat))
	if err != nil {
		return checkIn, checkOut, failure.InternalError(err)
	}

	if checkIn.Before(today) {
		return checkIn, checkOut, failure.Validation("CheckIn must not be in the past")
	}

	return checkIn, checkOut, nil
}

// hydrate joins bookings with customer names and room numbers from the
// sibling collections. Soft-deleted customers and rooms still contribute
// their names so history stays readable.
func (s *serviceImpl) hydrate(ctx context.Context, bookings []model.Booking) (res dto.GetBookingsResponse, err error) {
	customers, err := s.customers.Search(ctx, func(customerModel.Customer) bool { return true })
	if err != nil {
		return res, err
	}

	rooms, err := s.rooms.Search(ctx, func(roomModel.Room) bool { return true })
	if err != nil {
		return res, err
	}

	nameByID := make(map[int64]string, len(customers))
	for _, customer := range customers {
		nameByID[customer.ID] = customer.FullName
	}

	numberByID := make(map[int64]string, len(rooms))
	for _, room := range rooms {
		numberByID[room.ID] = room.Number
	}

	res.TotalData = len(bookings)
	res.Bookings = make([]dto.BookingResponse, len(bookings))

	for i, booking := range bookings {
		res.Bookings[i].FromModel(booking, nameByID[booking.CustomerID], numberByID[booking.RoomID])
	}

	return res, nil
}
