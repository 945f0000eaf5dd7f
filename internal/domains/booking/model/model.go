package model

import "time"

const (
	TableName  = "bookings"
	EntityName = "booking"

	FieldID = "id"
)

type Status int

const (
	StatusCancelled Status = 0
	StatusBooked    Status = 1
)

// Booking reserves a room for the half-open interval [CheckIn, CheckOut).
// The checkout day is free for the next guest's check-in.
type Booking struct {
	ID         int64     `db:"id"`
	CustomerID int64     `db:"customer_id"`
	RoomID     int64     `db:"room_id"`
	CheckIn    time.Time `db:"check_in"`
	CheckOut   time.Time `db:"check_out"`
	TotalPrice float64   `db:"total_price"`
	Note       string    `db:"note"`
	Status     Status    `db:"status"`
	CreatedAt  time.Time `db:"created_at"`
}

func (b Booking) EntityID() int64 {
	return b.ID
}

func (b Booking) WithEntityID(id int64) Booking {
	b.ID = id

	return b
}

func (b Booking) Deactivated() Booking {
	b.Status = StatusCancelled

	return b
}

func (b Booking) Active() bool {
	return b.Status == StatusBooked
}

// Overlaps reports whether [checkIn, checkOut) intersects this booking's
// interval. Intervals sharing only an endpoint do not overlap.
func (b Booking) Overlaps(checkIn, checkOut time.Time) bool {
	return b.CheckIn.Before(checkOut) && checkIn.Before(b.CheckOut)
}

// Nights is the number of chargeable nights of the stay.
func (b Booking) Nights() int {
	return int(b.CheckOut.Sub(b.CheckIn).Hours() / 24)
}
