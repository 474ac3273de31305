package valueobjects

import (
	"fmt"

	apperrors "maintdesk/internal/shared/errors"
)

type TicketStatus string

const (
	StatusOpen       TicketStatus = "open"
	StatusAssigned   TicketStatus = "assigned"
	StatusInProgress TicketStatus = "in_progress"
	StatusPending    TicketStatus = "pending"
	StatusResolved   TicketStatus = "resolved"
	StatusClosed     TicketStatus = "closed"
)

var validTicketStatuses = map[TicketStatus]bool{
	StatusOpen:       true,
	StatusAssigned:   true,
	StatusInProgress: true,
	StatusPending:    true,
	StatusResolved:   true,
	StatusClosed:     true,
}

// statusTransitions is the role-gated transition table. A role absent from the
// outer map (end users) has no legal transitions. StatusClosed is terminal for
// every role.
var statusTransitions = map[Role]map[TicketStatus][]TicketStatus{
	RoleAdmin: {
		StatusOpen:       {StatusInProgress, StatusPending, StatusClosed},
		StatusAssigned:   {StatusInProgress},
		StatusInProgress: {StatusResolved, StatusPending},
		StatusPending:    {StatusInProgress},
		StatusResolved:   {StatusClosed, StatusOpen},
	},
	RoleTechnician: {
		StatusAssigned:   {StatusInProgress},
		StatusInProgress: {StatusPending, StatusResolved},
		StatusPending:    {StatusInProgress},
	},
}

func (ts TicketStatus) String() string {
	return string(ts)
}

func (ts TicketStatus) IsValid() bool {
	return validTicketStatuses[ts]
}

func (ts TicketStatus) IsOpen() bool {
	return ts == StatusOpen
}

func (ts TicketStatus) IsAssigned() bool {
	return ts == StatusAssigned
}

func (ts TicketStatus) IsInProgress() bool {
	return ts == StatusInProgress
}

func (ts TicketStatus) IsPending() bool {
	return ts == StatusPending
}

func (ts TicketStatus) IsResolved() bool {
	return ts == StatusResolved
}

func (ts TicketStatus) IsClosed() bool {
	return ts == StatusClosed
}

// IsActive reports whether the status counts toward the overdue calculation.
func (ts TicketStatus) IsActive() bool {
	return ts == StatusOpen || ts == StatusAssigned || ts == StatusInProgress
}

func NewTicketStatus(s string) (TicketStatus, error) {
	ts := TicketStatus(s)
	if !ts.IsValid() {
		return "", fmt.Errorf("invalid ticket status: %s", s)
	}
	return ts, nil
}

// NextStates returns the set of statuses the given role may move a ticket to
// from the current status. The result is a copy; callers may mutate it.
func NextStates(current TicketStatus, role Role) []TicketStatus {
	targets := statusTransitions[role][current]
	out := make([]TicketStatus, len(targets))
	copy(out, targets)
	return out
}

// CanTransition reports whether the role may move a ticket from current to
// target. Moving into pending additionally requires a non-empty reason; with
// an empty reason the transition is disallowed for every role and source
// status.
func CanTransition(current, target TicketStatus, role Role, reason string) bool {
	if target == StatusPending && reason == "" {
		return false
	}
	for _, allowed := range statusTransitions[role][current] {
		if allowed == target {
			return true
		}
	}
	return false
}

// ValidateTransition returns an invalid-transition error when the requested
// target is outside the role's allowed set. It never clamps to the current
// status.
func ValidateTransition(current, target TicketStatus, role Role, reason string) error {
	if !target.IsValid() {
		return apperrors.NewInvalidTransitionError(fmt.Sprintf("invalid target status: %s", target))
	}
	if target == StatusPending && reason == "" {
		return apperrors.NewInvalidTransitionError("a reason is required to move a ticket to pending")
	}
	if !CanTransition(current, target, role, reason) {
		return apperrors.NewInvalidTransitionError(
			fmt.Sprintf("%s may not move a ticket from %s to %s", role, current, target))
	}
	return nil
}
