package viewer

import (
	"errors"

	"github.com/google/uuid"
)

// Role is the closed set of viewer roles. Every permission site switches over
// this set exhaustively, so adding a role forces each site to be revisited.
type Role string

const (
	RoleEmployee  Role = "employee"
	RoleManager   Role = "manager"
	RoleHRManager Role = "hr_manager"
	RoleAdmin     Role = "admin"
)

func NewRole(r string) (Role, error) {
	role := Role(r)
	if !role.IsValid() {
		return "", errors.New("invalid role")
	}
	return role, nil
}

func (r Role) IsValid() bool {
	switch r {
	case RoleEmployee, RoleManager, RoleHRManager, RoleAdmin:
		return true
	}
	return false
}

// Viewer identifies who is asking. It is carried in the request context and
// is the sole input to every permission decision in the engine.
type Viewer struct {
	ID    uuid.UUID
	Role  Role
	OrgID uuid.UUID
}

func (v Viewer) IsZero() bool {
	return v.ID == uuid.Nil
}

// Owns reports whether the viewer is the person a record belongs to.
func (v Viewer) Owns(personID uuid.UUID) bool {
	return v.ID != uuid.Nil && v.ID == personID
}
