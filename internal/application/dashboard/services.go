// Package dashboard implements the ticket table/lifecycle controllers behind
// the role-specific dashboards: query composition, shared reference-data
// caching, table state, and optimistic ticket updates. Everything here talks
// to the backing store through narrow service interfaces; both the SDK client
// and in-process implementations satisfy them.
package dashboard

import (
	"context"

	"maintdesk/internal/application/ticket/dto"
	"maintdesk/internal/domain/reference"
	"maintdesk/internal/domain/ticket"
)

// TicketService is the ticket read/write surface the dashboards consume.
type TicketService interface {
	ListTickets(ctx context.Context, query ticket.ListQuery) (*dto.TicketPage, error)
	UpdateTicket(ctx context.Context, id uint, patch ticket.Patch) (*dto.TicketDTO, error)
	AddComment(ctx context.Context, ticketID uint, text string) (*dto.CommentDTO, error)
}

// ReferenceService fetches the lookup lists. Called once per kind per session
// through the ReferenceCache.
type ReferenceService interface {
	ListSections(ctx context.Context) ([]reference.Section, error)
	ListFacilities(ctx context.Context) ([]reference.Facility, error)
	ListTechnicians(ctx context.Context) ([]reference.Technician, error)
	ListUsers(ctx context.Context) ([]reference.User, error)
}

// ReportParams selects the rows of a requested export.
type ReportParams struct {
	Query  ticket.ListQuery
	Format string
}

// ReportService triggers report generation. Fire-and-forget collaborator;
// the actual rendering lives outside this subsystem.
type ReportService interface {
	Generate(ctx context.Context, params ReportParams) error
}

// NopReportService discards report requests.
type NopReportService struct{}

func (NopReportService) Generate(ctx context.Context, params ReportParams) error {
	return nil
}

// Notifier surfaces outcomes to the user. Every failure path produces either
// a notification or an error return; nothing is swallowed.
type Notifier interface {
	Success(msg string)
	Error(msg string)
}

// NopNotifier drops notifications. Used where a view layer is absent.
type NopNotifier struct{}

func (NopNotifier) Success(msg string) {}
func (NopNotifier) Error(msg string)   {}
