package service

import (
	"context"

	"minihotel/internal/domains/booking/model"
	"minihotel/internal/domains/booking/model/dto"
	roomModel "minihotel/internal/domains/room/model"
	roomDto "minihotel/internal/domains/room/model/dto"
	"minihotel/shared/constant"
)

// AvailableRooms lists the active rooms with no live booking intersecting
// the requested stay. The result is advisory: the authoritative check runs
// inside the booking collection's write lock when the booking is committed.
func (s *serviceImpl) AvailableRooms(ctx context.Context, req dto.AvailabilityRequest) (res roomDto.GetRoomsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".AvailableRooms")
	defer scope.End()
	defer scope.TraceIfError(err)

	checkIn, checkOut, err := s.validateStay(req.Stay())
	if err != nil {
		return res, err
	}

	blocking, err := s.bookings.Search(ctx, func(booking model.Booking) bool {
		return booking.Active() && booking.Overlaps(checkIn, checkOut)
	})
	if err != nil {
		return res, err
	}

	blocked := make(map[int64]bool, len(blocking))
	for _, booking := range blocking {
		blocked[booking.RoomID] = true
	}

	rooms, err := s.rooms.Search(ctx, func(room roomModel.Room) bool {
		return room.Active() && !blocked[room.ID]
	})
	if err != nil {
		return res, err
	}

	res.FromModels(rooms, nil)

	return res, nil
}
