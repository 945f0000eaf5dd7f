package shared

import (
	"context"
	"strconv"

	"minihotel/shared/constant"
	"minihotel/shared/failure"
)

// ParseID decodes a path identifier. Anything that is not a positive integer
// is a validation failure, not a lookup miss.
func ParseID(value string) (int64, error) {
	id, err := strconv.ParseInt(value, 10, 64)
	if err != nil || id <= 0 {
		return 0, failure.Validation("identifier must be a positive integer")
	}

	return id, nil
}

// Identity is the authenticated caller, taken from the token claims the auth
// middleware stores in the request context.
type Identity struct {
	UserID string
	Email  string
	Role   string
}

func IdentityFromContext(ctx context.Context) Identity {
	identity := Identity{}
	identity.UserID, _ = ctx.Value(constant.ContextKeyUserID).(string)
	identity.Email, _ = ctx.Value(constant.ContextKeyUserEmail).(string)
	identity.Role, _ = ctx.Value(constant.ContextKeyUserRole).(string)

	return identity
}

// IsAdmin reports whether the caller holds the back-office role.
func (i Identity) IsAdmin() bool {
	return i.Role == constant.RoleAdmin
}

// CustomerID is the caller's customer identifier, or zero for the admin
// account and for unauthenticated contexts.
func (i Identity) CustomerID() int64 {
	id, err := strconv.ParseInt(i.UserID, 10, 64)
	if err != nil {
		return 0
	}

	return id
}
