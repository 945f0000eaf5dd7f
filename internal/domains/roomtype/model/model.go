package model

const (
	TableName  = "room_types"
	EntityName = "room type"

	FieldID = "id"
)

// RoomType is reference data seeded by migrations. The collection is
// read-only at runtime; rooms point at a type by identifier.
type RoomType struct {
	ID          int64  `db:"id"          json:"id"`
	Name        string `db:"name"        json:"name"`
	Description string `db:"description" json:"description"`
	Note        string `db:"type_note"   json:"type_note"`
}

func (t RoomType) EntityID() int64 {
	return t.ID
}

func (t RoomType) WithEntityID(id int64) RoomType {
	t.ID = id

	return t
}

// Deactivated is required by the collection contract. Room types carry no
// status column, so the copy is returned unchanged.
func (t RoomType) Deactivated() RoomType {
	return t
}

func (t RoomType) Active() bool {
	return true
}
