package ticket

import (
	"fmt"
	"time"

	vo "maintdesk/internal/domain/ticket/valueobjects"
)

// OverdueThreshold is how long an active ticket may stay open before it counts
// as overdue. The same constant backs the repository filter, the stats
// aggregation, and row projections; there is deliberately only one definition.
const OverdueThreshold = 7 * 24 * time.Hour

type Ticket struct {
	id            uint
	number        string
	title         string
	description   string
	priority      vo.Priority
	sectionID     uint
	facilityID    uint
	raisedByID    uint
	assignedToID  *uint
	status        vo.TicketStatus
	pendingReason string
	createdAt     time.Time
	updatedAt     time.Time
	comments      []*Comment
}

func NewTicket(
	title string,
	description string,
	priority vo.Priority,
	sectionID uint,
	facilityID uint,
	raisedByID uint,
) (*Ticket, error) {
	if len(title) == 0 {
		return nil, fmt.Errorf("title is required")
	}
	if len(title) > 200 {
		return nil, fmt.Errorf("title exceeds maximum length of 200 characters")
	}
	if len(description) == 0 {
		return nil, fmt.Errorf("description is required")
	}
	if len(description) > 5000 {
		return nil, fmt.Errorf("description exceeds maximum length of 5000 characters")
	}
	if !priority.IsValid() {
		return nil, fmt.Errorf("invalid priority")
	}
	if sectionID == 0 {
		return nil, fmt.Errorf("section ID is required")
	}
	if facilityID == 0 {
		return nil, fmt.Errorf("facility ID is required")
	}
	if raisedByID == 0 {
		return nil, fmt.Errorf("raised by user ID is required")
	}

	now := time.Now()
	return &Ticket{
		title:       title,
		description: description,
		priority:    priority,
		sectionID:   sectionID,
		facilityID:  facilityID,
		raisedByID:  raisedByID,
		status:      vo.StatusOpen,
		createdAt:   now,
		updatedAt:   now,
		comments:    []*Comment{},
	}, nil
}

func ReconstructTicket(
	id uint,
	number string,
	title string,
	description string,
	priority vo.Priority,
	sectionID uint,
	facilityID uint,
	raisedByID uint,
	assignedToID *uint,
	status vo.TicketStatus,
	pendingReason string,
	createdAt, updatedAt time.Time,
) (*Ticket, error) {
	if id == 0 {
		return nil, fmt.Errorf("ticket ID cannot be zero")
	}
	if len(number) == 0 {
		return nil, fmt.Errorf("ticket number is required")
	}
	if len(title) == 0 {
		return nil, fmt.Errorf("title is required")
	}
	if !priority.IsValid() {
		return nil, fmt.Errorf("invalid priority")
	}
	if !status.IsValid() {
		return nil, fmt.Errorf("invalid status")
	}
	if status.IsPending() && pendingReason == "" {
		return nil, fmt.Errorf("pending ticket requires a pending reason")
	}

	return &Ticket{
		id:            id,
		number:        number,
		title:         title,
		description:   description,
		priority:      priority,
		sectionID:     sectionID,
		facilityID:    facilityID,
		raisedByID:    raisedByID,
		assignedToID:  assignedToID,
		status:        status,
		pendingReason: pendingReason,
		createdAt:     createdAt,
		updatedAt:     updatedAt,
		comments:      []*Comment{},
	}, nil
}

func (t *Ticket) ID() uint {
	return t.id
}

func (t *Ticket) Number() string {
	return t.number
}

func (t *Ticket) Title() string {
	return t.title
}

func (t *Ticket) Description() string {
	return t.description
}

func (t *Ticket) Priority() vo.Priority {
	return t.priority
}

func (t *Ticket) SectionID() uint {
	return t.sectionID
}

func (t *Ticket) FacilityID() uint {
	return t.facilityID
}

func (t *Ticket) RaisedByID() uint {
	return t.raisedByID
}

func (t *Ticket) AssignedToID() *uint {
	return t.assignedToID
}

func (t *Ticket) Status() vo.TicketStatus {
	return t.status
}

// PendingReason is non-empty only while the ticket is pending.
func (t *Ticket) PendingReason() string {
	return t.pendingReason
}

func (t *Ticket) CreatedAt() time.Time {
	return t.createdAt
}

func (t *Ticket) UpdatedAt() time.Time {
	return t.updatedAt
}

func (t *Ticket) Comments() []*Comment {
	commentsCopy := make([]*Comment, len(t.comments))
	copy(commentsCopy, t.comments)
	return commentsCopy
}

func (t *Ticket) SetID(id uint) error {
	if t.id != 0 {
		return fmt.Errorf("ticket ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("ticket ID cannot be zero")
	}
	t.id = id
	return nil
}

func (t *Ticket) SetNumber(number string) error {
	if len(t.number) > 0 {
		return fmt.Errorf("ticket number is already set")
	}
	if len(number) == 0 {
		return fmt.Errorf("ticket number cannot be empty")
	}
	t.number = number
	return nil
}

// ChangeStatus moves the ticket through the role-gated lifecycle. Entering
// pending records the reason; leaving pending clears it.
func (t *Ticket) ChangeStatus(newStatus vo.TicketStatus, role vo.Role, reason string) error {
	if t.status == newStatus {
		return nil
	}

	if err := vo.ValidateTransition(t.status, newStatus, role, reason); err != nil {
		return err
	}

	t.status = newStatus
	if newStatus.IsPending() {
		t.pendingReason = reason
	} else {
		t.pendingReason = ""
	}
	t.updatedAt = time.Now()

	return nil
}

// AssignTo sets the technician working the ticket. An open ticket moves to
// assigned as a side effect.
func (t *Ticket) AssignTo(technicianID uint) error {
	if technicianID == 0 {
		return fmt.Errorf("technician ID cannot be zero")
	}

	t.assignedToID = &technicianID
	if t.status.IsOpen() {
		t.status = vo.StatusAssigned
	}
	t.updatedAt = time.Now()

	return nil
}

// Unassign removes the technician. An assigned ticket falls back to open.
func (t *Ticket) Unassign() {
	t.assignedToID = nil
	if t.status.IsAssigned() {
		t.status = vo.StatusOpen
	}
	t.updatedAt = time.Now()
}

// ApplyDetails updates the descriptive fields a patch carries. Status and
// assignment changes go through ChangeStatus and AssignTo instead.
func (t *Ticket) ApplyDetails(patch Patch) error {
	if patch.Title != nil {
		if len(*patch.Title) == 0 || len(*patch.Title) > 200 {
			return fmt.Errorf("invalid title")
		}
		t.title = *patch.Title
	}
	if patch.Description != nil {
		if len(*patch.Description) == 0 || len(*patch.Description) > 5000 {
			return fmt.Errorf("invalid description")
		}
		t.description = *patch.Description
	}
	if patch.Priority != nil {
		if !patch.Priority.IsValid() {
			return fmt.Errorf("invalid priority")
		}
		t.priority = *patch.Priority
	}
	if patch.Section != nil {
		if *patch.Section == 0 {
			return fmt.Errorf("section ID cannot be zero")
		}
		t.sectionID = *patch.Section
	}
	if patch.Facility != nil {
		if *patch.Facility == 0 {
			return fmt.Errorf("facility ID cannot be zero")
		}
		t.facilityID = *patch.Facility
	}
	t.updatedAt = time.Now()
	return nil
}

func (t *Ticket) AddComment(comment *Comment) error {
	if comment == nil {
		return fmt.Errorf("comment cannot be nil")
	}
	if comment.TicketID() != t.id {
		return fmt.Errorf("comment ticket ID mismatch")
	}

	t.comments = append(t.comments, comment)
	t.updatedAt = time.Now()

	return nil
}

// IsOverdue reports whether the ticket is active and older than the threshold.
func (t *Ticket) IsOverdue(now time.Time) bool {
	return IsOverdue(t.status, t.createdAt, now)
}

// IsOverdue is the single overdue predicate: an active-status ticket open
// longer than OverdueThreshold.
func IsOverdue(status vo.TicketStatus, createdAt, now time.Time) bool {
	if !status.IsActive() {
		return false
	}
	return now.Sub(createdAt) > OverdueThreshold
}

func (t *Ticket) Validate() error {
	if len(t.title) == 0 {
		return fmt.Errorf("title is required")
	}
	if len(t.description) == 0 {
		return fmt.Errorf("description is required")
	}
	if !t.priority.IsValid() {
		return fmt.Errorf("invalid priority")
	}
	if !t.status.IsValid() {
		return fmt.Errorf("invalid status")
	}
	if t.status.IsPending() && t.pendingReason == "" {
		return fmt.Errorf("pending ticket requires a pending reason")
	}
	if t.raisedByID == 0 {
		return fmt.Errorf("raised by user ID is required")
	}
	return nil
}
