package ticket

import (
	vo "maintdesk/internal/domain/ticket/valueobjects"
)

// Patch carries the writable ticket fields of a partial update. Only fields
// the server accepts on write are representable here; comments, resolved
// display names, and computed search fields have no slot by construction.
// A nil field means "leave unchanged".
type Patch struct {
	Title         *string          `json:"title,omitempty"`
	Description   *string          `json:"description,omitempty"`
	Priority      *vo.Priority     `json:"priority,omitempty"`
	Section       *uint            `json:"section,omitempty"`
	Facility      *uint            `json:"facility,omitempty"`
	Status        *vo.TicketStatus `json:"status,omitempty"`
	PendingReason *string          `json:"pending_reason,omitempty"`
	AssignedTo    *uint            `json:"assigned_to,omitempty"`
}

// IsEmpty reports whether no field is set.
func (p Patch) IsEmpty() bool {
	return len(p.FieldNames()) == 0
}

// FieldNames lists the wire names of the fields the patch sets.
func (p Patch) FieldNames() []string {
	var names []string
	if p.Title != nil {
		names = append(names, "title")
	}
	if p.Description != nil {
		names = append(names, "description")
	}
	if p.Priority != nil {
		names = append(names, "priority")
	}
	if p.Section != nil {
		names = append(names, "section")
	}
	if p.Facility != nil {
		names = append(names, "facility")
	}
	if p.Status != nil {
		names = append(names, "status")
	}
	if p.PendingReason != nil {
		names = append(names, "pending_reason")
	}
	if p.AssignedTo != nil {
		names = append(names, "assigned_to")
	}
	return names
}

// Sanitize returns a copy holding only the fields the role may write. The
// pending reason always travels with a status change to pending, since the
// transition guard needs it.
func (p Patch) Sanitize(role vo.Role) Patch {
	out := Patch{}
	if p.Title != nil && role.CanWrite("title") {
		out.Title = p.Title
	}
	if p.Description != nil && role.CanWrite("description") {
		out.Description = p.Description
	}
	if p.Priority != nil && role.CanWrite("priority") {
		out.Priority = p.Priority
	}
	if p.Section != nil && role.CanWrite("section") {
		out.Section = p.Section
	}
	if p.Facility != nil && role.CanWrite("facility") {
		out.Facility = p.Facility
	}
	if p.Status != nil && role.CanWrite("status") {
		out.Status = p.Status
	}
	if p.PendingReason != nil && role.CanWrite("pending_reason") {
		out.PendingReason = p.PendingReason
	}
	if p.AssignedTo != nil && role.CanWrite("assigned_to") {
		out.AssignedTo = p.AssignedTo
	}
	return out
}

// Reason returns the pending reason accompanying the patch, empty when unset.
func (p Patch) Reason() string {
	if p.PendingReason == nil {
		return ""
	}
	return *p.PendingReason
}
