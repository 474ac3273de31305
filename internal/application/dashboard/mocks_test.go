package dashboard

import (
	"context"
	"sync"

	"maintdesk/internal/application/ticket/dto"
	"maintdesk/internal/domain/reference"
	"maintdesk/internal/domain/ticket"
	"maintdesk/internal/shared/logger"
)

type mockTicketService struct {
	ListTicketsFunc  func(ctx context.Context, query ticket.ListQuery) (*dto.TicketPage, error)
	UpdateTicketFunc func(ctx context.Context, id uint, patch ticket.Patch) (*dto.TicketDTO, error)
	AddCommentFunc   func(ctx context.Context, ticketID uint, text string) (*dto.CommentDTO, error)
}

func (m *mockTicketService) ListTickets(ctx context.Context, query ticket.ListQuery) (*dto.TicketPage, error) {
	if m.ListTicketsFunc != nil {
		return m.ListTicketsFunc(ctx, query)
	}
	return &dto.TicketPage{}, nil
}

func (m *mockTicketService) UpdateTicket(ctx context.Context, id uint, patch ticket.Patch) (*dto.TicketDTO, error) {
	if m.UpdateTicketFunc != nil {
		return m.UpdateTicketFunc(ctx, id, patch)
	}
	return &dto.TicketDTO{ID: id}, nil
}

func (m *mockTicketService) AddComment(ctx context.Context, ticketID uint, text string) (*dto.CommentDTO, error) {
	if m.AddCommentFunc != nil {
		return m.AddCommentFunc(ctx, ticketID, text)
	}
	return &dto.CommentDTO{}, nil
}

type mockReferenceService struct {
	ListSectionsFunc    func(ctx context.Context) ([]reference.Section, error)
	ListFacilitiesFunc  func(ctx context.Context) ([]reference.Facility, error)
	ListTechniciansFunc func(ctx context.Context) ([]reference.Technician, error)
	ListUsersFunc       func(ctx context.Context) ([]reference.User, error)
}

func (m *mockReferenceService) ListSections(ctx context.Context) ([]reference.Section, error) {
	if m.ListSectionsFunc != nil {
		return m.ListSectionsFunc(ctx)
	}
	return nil, nil
}

func (m *mockReferenceService) ListFacilities(ctx context.Context) ([]reference.Facility, error) {
	if m.ListFacilitiesFunc != nil {
		return m.ListFacilitiesFunc(ctx)
	}
	return nil, nil
}

func (m *mockReferenceService) ListTechnicians(ctx context.Context) ([]reference.Technician, error) {
	if m.ListTechniciansFunc != nil {
		return m.ListTechniciansFunc(ctx)
	}
	return nil, nil
}

func (m *mockReferenceService) ListUsers(ctx context.Context) ([]reference.User, error) {
	if m.ListUsersFunc != nil {
		return m.ListUsersFunc(ctx)
	}
	return nil, nil
}

// recordingNotifier captures notifications for assertions.
type recordingNotifier struct {
	mu        sync.Mutex
	successes []string
	errors    []string
}

func (n *recordingNotifier) Success(msg string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.successes = append(n.successes, msg)
}

func (n *recordingNotifier) Error(msg string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.errors = append(n.errors, msg)
}

func (n *recordingNotifier) Successes() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]string(nil), n.successes...)
}

func (n *recordingNotifier) Errors() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]string(nil), n.errors...)
}

// recordingRefresher counts refresh calls.
type recordingRefresher struct {
	mu    sync.Mutex
	calls int
}

func (r *recordingRefresher) Refresh() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls++
	return nil
}

func (r *recordingRefresher) Calls() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.calls
}

type mockLogger struct{}

func (m *mockLogger) Debug(msg string, args ...any)                 {}
func (m *mockLogger) Info(msg string, args ...any)                  {}
func (m *mockLogger) Warn(msg string, args ...any)                  {}
func (m *mockLogger) Error(msg string, args ...any)                 {}
func (m *mockLogger) With(args ...any) logger.Interface             { return m }
func (m *mockLogger) Named(name string) logger.Interface            { return m }
func (m *mockLogger) Debugw(msg string, keysAndValues ...interface{}) {}
func (m *mockLogger) Infow(msg string, keysAndValues ...interface{})  {}
func (m *mockLogger) Warnw(msg string, keysAndValues ...interface{})  {}
func (m *mockLogger) Errorw(msg string, keysAndValues ...interface{}) {}
