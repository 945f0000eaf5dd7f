package dto

import (
	"minihotel/internal/domains/room/model"
	roomtypeModel "minihotel/internal/domains/roomtype/model"
)

type CreateRoomRequest struct {
	Number      string  `json:"number"        validate:"required,max=50"`
	Description string  `json:"description"   validate:"omitempty,max=220"`
	MaxCapacity int     `json:"max_capacity"  validate:"required,gt=0"`
	PricePerDay float64 `json:"price_per_day" validate:"required,gt=0"`
	RoomTypeID  int64   `json:"room_type_id"  validate:"required,gt=0"`
}

func (c *CreateRoomRequest) ToModel() model.Room {
	return model.Room{
		Number:      c.Number,
		Description: c.Description,
		MaxCapacity: c.MaxCapacity,
		PricePerDay: c.PricePerDay,
		RoomTypeID:  c.RoomTypeID,
		Status:      model.StatusActive,
	}
}

type UpdateRoomRequest struct {
	Number      string  `json:"number"        validate:"required,max=50"`
	Description string  `json:"description"   validate:"omitempty,max=220"`
	MaxCapacity int     `json:"max_capacity"  validate:"required,gt=0"`
	PricePerDay float64 `json:"price_per_day" validate:"required,gt=0"`
	RoomTypeID  int64   `json:"room_type_id"  validate:"required,gt=0"`
}

func (u *UpdateRoomRequest) ApplyTo(room model.Room) model.Room {
	room.Number = u.Number
	room.Description = u.Description
	room.MaxCapacity = u.MaxCapacity
	room.PricePerDay = u.PricePerDay
	room.RoomTypeID = u.RoomTypeID

	return room
}

type RoomResponse struct {
	ID           int64   `json:"id"`
	Number       string  `json:"number"`
	Description  string  `json:"description"`
	MaxCapacity  int     `json:"max_capacity"`
	PricePerDay  float64 `json:"price_per_day"`
	RoomTypeID   int64   `json:"room_type_id"`
	RoomTypeName string  `json:"room_type_name,omitempty"`
}

func (r *RoomResponse) FromModel(room model.Room, roomType roomtypeModel.RoomType) {
	r.ID = room.ID
	r.Number = room.Number
	r.Description = room.Description
	r.MaxCapacity = room.MaxCapacity
	r.PricePerDay = room.PricePerDay
	r.RoomTypeID = room.RoomTypeID
	r.RoomTypeName = roomType.Name
}

type GetRoomsResponse struct {
	Rooms     []RoomResponse `json:"rooms"`
	TotalData int            `json:"total_data"`
}

func (r *GetRoomsResponse) FromModels(rooms []model.Room, typeByID map[int64]roomtypeModel.RoomType) {
	r.TotalData = len(rooms)

	r.Rooms = make([]RoomResponse, len(rooms))
	for i, room := range rooms {
		r.Rooms[i].FromModel(room, typeByID[room.RoomTypeID])
	}
}
