package model

import "strings"

const (
	TableName  = "rooms"
	EntityName = "room"

	FieldID = "id"
)

type Status int

const (
	StatusActive  Status = 1
	StatusDeleted Status = 2
)

type Room struct {
	ID          int64   `db:"id"`
	Number      string  `db:"number"`
	Description string  `db:"description"`
	MaxCapacity int     `db:"max_capacity"`
	PricePerDay float64 `db:"price_per_day"`
	RoomTypeID  int64   `db:"room_type_id"`
	Status      Status  `db:"status"`
}

func (r Room) EntityID() int64 {
	return r.ID
}

func (r Room) WithEntityID(id int64) Room {
	r.ID = id

	return r
}

func (r Room) Deactivated() Room {
	r.Status = StatusDeleted

	return r
}

func (r Room) Active() bool {
	return r.Status == StatusActive
}

// NumberKey is the natural key of the collection. Numbers compare
// case-insensitively; a deleted room releases its number.
func NumberKey(r Room) string {
	return strings.ToLower(r.Number)
}
