// Package dto defines the wire representation of tickets shared by the HTTP
// handlers, the SDK client, and the dashboard controllers.
package dto

import (
	"time"

	"maintdesk/internal/domain/ticket"
)

type TicketDTO struct {
	ID            uint         `json:"id"`
	Number        string       `json:"ticket_no"`
	Title         string       `json:"title"`
	Description   string       `json:"description"`
	Priority      string       `json:"priority"`
	Section       uint         `json:"section"`
	Facility      uint         `json:"facility"`
	RaisedBy      uint         `json:"raised_by"`
	AssignedTo    *uint        `json:"assigned_to"`
	Status        string       `json:"status"`
	PendingReason string       `json:"pending_reason,omitempty"`
	CreatedAt     time.Time    `json:"created_at"`
	UpdatedAt     time.Time    `json:"updated_at"`
	Comments      []CommentDTO `json:"comments"`
}

type CommentDTO struct {
	ID        uint      `json:"id"`
	Author    uint      `json:"author"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
}

// TicketPage is one page of a list fetch together with the server-side total.
type TicketPage struct {
	Results []TicketDTO `json:"results"`
	Count   int64       `json:"count"`
}

// StatusCounts aggregates per-status and overdue ticket counts for dashboard
// badges. Overdue uses the same predicate as the list filter.
type StatusCounts struct {
	ByStatus map[string]int64 `json:"by_status"`
	Overdue  int64            `json:"overdue"`
	Total    int64            `json:"total"`
}

func ToTicketDTO(t *ticket.Ticket) *TicketDTO {
	if t == nil {
		return nil
	}

	comments := make([]CommentDTO, 0, len(t.Comments()))
	for _, c := range t.Comments() {
		comments = append(comments, ToCommentDTO(c))
	}

	return &TicketDTO{
		ID:            t.ID(),
		Number:        t.Number(),
		Title:         t.Title(),
		Description:   t.Description(),
		Priority:      t.Priority().String(),
		Section:       t.SectionID(),
		Facility:      t.FacilityID(),
		RaisedBy:      t.RaisedByID(),
		AssignedTo:    t.AssignedToID(),
		Status:        t.Status().String(),
		PendingReason: t.PendingReason(),
		CreatedAt:     t.CreatedAt(),
		UpdatedAt:     t.UpdatedAt(),
		Comments:      comments,
	}
}

func ToCommentDTO(c *ticket.Comment) CommentDTO {
	return CommentDTO{
		ID:        c.ID(),
		Author:    c.AuthorID(),
		Text:      c.Text(),
		CreatedAt: c.CreatedAt(),
	}
}
