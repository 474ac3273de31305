package valueobjects

import "fmt"

// Role is the acting user's capability class. It is fixed for the lifetime of
// a table instance and constrains both status transitions and which ticket
// fields may be written.
type Role string

const (
	RoleAdmin      Role = "admin"
	RoleUser       Role = "user"
	RoleTechnician Role = "technician"
)

var validRoles = map[Role]bool{
	RoleAdmin:      true,
	RoleUser:       true,
	RoleTechnician: true,
}

// roleWritableFields declares, per role, the ticket fields the server accepts
// on update. Everything else (comments, display names, computed search fields)
// is read-only and must be stripped from outgoing patches.
var roleWritableFields = map[Role]map[string]bool{
	RoleAdmin: {
		"title":          true,
		"description":    true,
		"priority":       true,
		"section":        true,
		"facility":       true,
		"status":         true,
		"pending_reason": true,
		"assigned_to":    true,
	},
	RoleTechnician: {
		"status":         true,
		"pending_reason": true,
	},
	RoleUser: {
		"title":       true,
		"description": true,
		"priority":    true,
		"section":     true,
		"facility":    true,
	},
}

func (r Role) String() string {
	return string(r)
}

func (r Role) IsValid() bool {
	return validRoles[r]
}

func (r Role) IsAdmin() bool {
	return r == RoleAdmin
}

func (r Role) IsUser() bool {
	return r == RoleUser
}

func (r Role) IsTechnician() bool {
	return r == RoleTechnician
}

// CanWrite reports whether the role may write the named ticket field.
func (r Role) CanWrite(field string) bool {
	return roleWritableFields[r][field]
}

// WritableFields returns a copy of the role's writable-field set.
func (r Role) WritableFields() map[string]bool {
	out := make(map[string]bool, len(roleWritableFields[r]))
	for f := range roleWritableFields[r] {
		out[f] = true
	}
	return out
}

func NewRole(s string) (Role, error) {
	r := Role(s)
	if !r.IsValid() {
		return "", fmt.Errorf("invalid role: %s", s)
	}
	return r, nil
}
