package model

import (
	"strings"
	"time"
)

const (
	TableName  = "customers"
	EntityName = "customer"

	FieldID = "id"
)

type Status int

const (
	StatusActive  Status = 1
	StatusDeleted Status = 2
)

// Customer is a hotel guest account. The password column holds a bcrypt hash
// and never leaves the service layer.
type Customer struct {
	ID        int64      `db:"id"`
	FullName  string     `db:"full_name"`
	Telephone string     `db:"telephone"`
	Email     string     `db:"email"`
	Birthday  *time.Time `db:"birthday"`
	Password  string     `db:"password"`
	Status    Status     `db:"status"`
}

func (c Customer) EntityID() int64 {
	return c.ID
}

func (c Customer) WithEntityID(id int64) Customer {
	c.ID = id

	return c
}

func (c Customer) Deactivated() Customer {
	c.Status = StatusDeleted

	return c
}

func (c Customer) Active() bool {
	return c.Status == StatusActive
}

// EmailKey is the natural key of the collection. Addresses compare
// case-insensitively, and a deleted customer releases the address for reuse.
func EmailKey(c Customer) string {
	return strings.ToLower(c.Email)
}
