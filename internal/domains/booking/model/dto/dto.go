package dto

import (
	"time"

	"minihotel/internal/domains/booking/model"
	"minihotel/shared/constant"
	"minihotel/shared/failure"
)

type CreateBookingRequest struct {
	CustomerID int64  `json:"customer_id" validate:"required,gt=0"`
	RoomID     int64  `json:"room_id"     validate:"required,gt=0"`
	CheckIn    string `json:"check_in"    validate:"required,datetime=2006-01-02"`
	CheckOut   string `json:"check_out"   validate:"required,datetime=2006-01-02"`
	Note       string `json:"note"        validate:"omitempty,max=220"`
}

func (c *CreateBookingRequest) Stay() (checkIn, checkOut time.Time, err error) {
	return parseStay(c.CheckIn, c.CheckOut)
}

type UpdateBookingRequest struct {
	CustomerID int64  `json:"customer_id" validate:"required,gt=0"`
	RoomID     int64  `json:"room_id"     validate:"required,gt=0"`
	CheckIn    string `json:"check_in"    validate:"required,datetime=2006-01-02"`
	CheckOut   string `json:"check_out"   validate:"required,datetime=2006-01-02"`
	Note       string `json:"note"        validate:"omitempty,max=220"`
}

func (u *UpdateBookingRequest) Stay() (checkIn, checkOut time.Time, err error) {
	return parseStay(u.CheckIn, u.CheckOut)
}

type AvailabilityRequest struct {
	CheckIn  string `json:"check_in"  validate:"required,datetime=2006-01-02"`
	CheckOut string `json:"check_out" validate:"required,datetime=2006-01-02"`
}

func (a *AvailabilityRequest) Stay() (checkIn, checkOut time.Time, err error) {
	return parseStay(a.CheckIn, a.CheckOut)
}

// parseStay decodes the stay interval. The checkout date must fall strictly
// after the check-in date; a zero-night stay is rejected here, before any
// collection access.
func parseStay(checkInValue, checkOutValue string) (checkIn, checkOut time.Time, err error) {
	checkIn, err = time.Parse(constant.DateFormat, checkInValue)
	if err != nil {
		return checkIn, checkOut, failure.Validation("CheckIn must use the format 2006-01-02")
	}

	checkOut, err = time.Parse(constant.DateFormat, checkOutValue)
	if err != nil {
		return checkIn, checkOut, failure.Validation("CheckOut must use the format 2006-01-02")
	}

	if !checkOut.After(checkIn) {
		return checkIn, checkOut, failure.Validation("CheckOut must be after CheckIn")
	}

	return checkIn, checkOut, nil
}

type BookingResponse struct {
	ID           int64   `json:"id"`
	CustomerID   int64   `json:"customer_id"`
	CustomerName string  `json:"customer_name,omitempty"`
	RoomID       int64   `json:"room_id"`
	RoomNumber   string  `json:"room_number,omitempty"`
	CheckIn      string  `json:"check_in"`
	CheckOut     string  `json:"check_out"`
	Nights       int     `json:"nights"`
	TotalPrice   float64 `json:"total_price"`
	Note         string  `json:"note,omitempty"`
	Status       int     `json:"status"`
	CreatedAt    string  `json:"created_at"`
}

func (r *BookingResponse) FromModel(booking model.Booking, customerName, roomNumber string) {
	r.ID = booking.ID
	r.CustomerID = booking.CustomerID
	r.CustomerName = customerName
	r.RoomID = booking.RoomID
	r.RoomNumber = roomNumber
	r.CheckIn = booking.CheckIn.Format(constant.DateFormat)
	r.CheckOut = booking.CheckOut.Format(constant.DateFormat)
	r.Nights = booking.Nights()
	r.TotalPrice = booking.TotalPrice
	r.Note = booking.Note
	r.Status = int(booking.Status)
	r.CreatedAt = booking.CreatedAt.Format(constant.DateTimeFormat)
}

type GetBookingsResponse struct {
	Bookings  []BookingResponse `json:"bookings"`
	TotalData int               `json:"total_data"`
}
