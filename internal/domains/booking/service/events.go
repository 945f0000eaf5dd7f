package service

import (
	"context"
	"strconv"

	"minihotel/infras/kafka"
	"minihotel/internal/domains/booking/model"
	"minihotel/shared/constant"

	"github.com/rs/zerolog/log"
)

const (
	eventBookingCreated   = "booking.created"
	eventBookingUpdated   = "booking.updated"
	eventBookingCancelled = "booking.cancelled"
)

// BookingEvent is the lifecycle message published for downstream consumers
// such as housekeeping and billing.
type BookingEvent struct {
	Event      string  `json:"event"`
	BookingID  int64   `json:"booking_id"`
	CustomerID int64   `json:"customer_id"`
	RoomID     int64   `json:"room_id"`
	CheckIn    string  `json:"check_in"`
	CheckOut   string  `json:"check_out"`
	TotalPrice float64 `json:"total_price"`
	Status     int     `json:"status"`
}

// publish emits the event after the durable write has succeeded. Delivery is
// best effort; a broker failure is logged and never rolls back the booking.
func (s *serviceImpl) publish(ctx context.Context, event string, booking model.Booking) {
	go func() {
		c := context.WithoutCancel(ctx)

		message := kafka.Message{
			Key: strconv.FormatInt(booking.ID, 10),
			Value: BookingEvent{
				Event:      event,
				BookingID:  booking.ID,
				CustomerID: booking.CustomerID,
				RoomID:     booking.RoomID,
				CheckIn:    booking.CheckIn.Format(constant.DateFormat),
				CheckOut:   booking.CheckOut.Format(constant.DateFormat),
				TotalPrice: booking.TotalPrice,
				Status:     int(booking.Status),
			},
		}

		if err := s.kafka.SendMessages(c, s.cfg.Kafka.BookingTopic, message); err != nil {
			log.Error().Err(err).Str("event", event).Int64("bookingID", booking.ID).Msg("Failed to publish booking event")
		}
	}()
}
