package auth

import (
	"context"

	"github.com/google/uuid"
)

// Back-office roles. Editors manage content and settings; admins additionally
// manage meetings, callbacks and the audit log.
const (
	RoleAdmin  = "admin"
	RoleEditor = "editor"
)

// Authentication methods recorded on an Identity.
const (
	MethodSession = "session"
	MethodDev     = "dev"
)

// IsValidRole reports whether role is a known back-office role.
func IsValidRole(role string) bool {
	return role == RoleAdmin || role == RoleEditor
}

// Identity is the authenticated caller of an admin request.
type Identity struct {
	UserID uuid.UUID
	Email  string
	Name   string
	Role   string
	Method string
}

type ctxKey string

const identityKey ctxKey = "auth_identity"

// NewContext stores the identity in the context.
func NewContext(ctx context.Context, id *Identity) context.Context {
	return context.WithValue(ctx, identityKey, id)
}

// FromContext returns the identity stored in ctx, or nil.
func FromContext(ctx context.Context) *Identity {
	v, _ := ctx.Value(identityKey).(*Identity)
	return v
}
