package usecases

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"maintdesk/internal/domain/ticket"
	vo "maintdesk/internal/domain/ticket/valueobjects"
	"maintdesk/internal/shared/errors"
)

func storedTicket(t *testing.T, status vo.TicketStatus, reason string, assignedTo *uint) *ticket.Ticket {
	t.Helper()
	tk, err := ticket.ReconstructTicket(
		5, "MT-20260801-0003", "Broken pump", "The workshop pump leaks",
		vo.PriorityHigh, 2, 3, 4, assignedTo, status, reason,
		time.Date(2026, 8, 1, 9, 0, 0, 0, time.UTC),
		time.Date(2026, 8, 1, 9, 0, 0, 0, time.UTC),
	)
	require.NoError(t, err)
	return tk
}

func strPtr(s string) *string { return &s }

func statusPtr(s vo.TicketStatus) *vo.TicketStatus { return &s }

func TestUpdateTicketUseCase_AdminStatusChange(t *testing.T) {
	var updated *ticket.Ticket
	repo := &mockTicketRepository{
		GetByIDFunc: func(ctx context.Context, id uint) (*ticket.Ticket, error) {
			return storedTicket(t, vo.StatusInProgress, "", nil), nil
		},
		UpdateFunc: func(ctx context.Context, tk *ticket.Ticket) error {
			updated = tk
			return nil
		},
	}

	uc := NewUpdateTicketUseCase(repo, &mockLogger{})
	result, err := uc.Execute(context.Background(), UpdateTicketCommand{
		TicketID:  5,
		Patch:     ticket.Patch{Status: statusPtr(vo.StatusResolved)},
		Role:      vo.RoleAdmin,
		UpdatedBy: 1,
	})

	require.NoError(t, err)
	assert.Equal(t, "resolved", result.Status)
	require.NotNil(t, updated)
	assert.Equal(t, vo.StatusResolved, updated.Status())
}

func TestUpdateTicketUseCase_PendingReasonEnforced(t *testing.T) {
	repo := &mockTicketRepository{
		GetByIDFunc: func(ctx context.Context, id uint) (*ticket.Ticket, error) {
			return storedTicket(t, vo.StatusInProgress, "", nil), nil
		},
	}

	uc := NewUpdateTicketUseCase(repo, &mockLogger{})
	_, err := uc.Execute(context.Background(), UpdateTicketCommand{
		TicketID:  5,
		Patch:     ticket.Patch{Status: statusPtr(vo.StatusPending)},
		Role:      vo.RoleAdmin,
		UpdatedBy: 1,
	})

	require.Error(t, err)
	assert.True(t, errors.IsInvalidTransition(err))
}

func TestUpdateTicketUseCase_PendingWithReason(t *testing.T) {
	var updated *ticket.Ticket
	repo := &mockTicketRepository{
		GetByIDFunc: func(ctx context.Context, id uint) (*ticket.Ticket, error) {
			return storedTicket(t, vo.StatusInProgress, "", nil), nil
		},
		UpdateFunc: func(ctx context.Context, tk *ticket.Ticket) error {
			updated = tk
			return nil
		},
	}

	uc := NewUpdateTicketUseCase(repo, &mockLogger{})
	result, err := uc.Execute(context.Background(), UpdateTicketCommand{
		TicketID: 5,
		Patch: ticket.Patch{
			Status:        statusPtr(vo.StatusPending),
			PendingReason: strPtr("waiting for parts"),
		},
		Role:      vo.RoleAdmin,
		UpdatedBy: 1,
	})

	require.NoError(t, err)
	assert.Equal(t, "pending", result.Status)
	assert.Equal(t, "waiting for parts", result.PendingReason)
	assert.Equal(t, "waiting for parts", updated.PendingReason())
}

func TestUpdateTicketUseCase_NonWritableFieldRejected(t *testing.T) {
	repo := &mockTicketRepository{
		GetByIDFunc: func(ctx context.Context, id uint) (*ticket.Ticket, error) {
			assigned := uint(7)
			return storedTicket(t, vo.StatusInProgress, "", &assigned), nil
		},
	}

	uc := NewUpdateTicketUseCase(repo, &mockLogger{})
	_, err := uc.Execute(context.Background(), UpdateTicketCommand{
		TicketID:  5,
		Patch:     ticket.Patch{Title: strPtr("renamed"), Status: statusPtr(vo.StatusResolved)},
		Role:      vo.RoleTechnician,
		UpdatedBy: 7,
	})

	require.Error(t, err)
	appErr := errors.GetAppError(err)
	require.NotNil(t, appErr)
	assert.Equal(t, errors.ErrorTypeForbidden, appErr.Type)
}

func TestUpdateTicketUseCase_Authorization(t *testing.T) {
	assigned := uint(7)

	tests := []struct {
		name      string
		role      vo.Role
		updatedBy uint
		patch     ticket.Patch
		wantErr   bool
	}{
		{"assigned technician may update", vo.RoleTechnician, 7, ticket.Patch{Status: statusPtr(vo.StatusResolved)}, false},
		{"other technician may not", vo.RoleTechnician, 8, ticket.Patch{Status: statusPtr(vo.StatusResolved)}, true},
		{"raiser may update own ticket", vo.RoleUser, 4, ticket.Patch{Title: strPtr("clearer title")}, false},
		{"other user may not", vo.RoleUser, 99, ticket.Patch{Title: strPtr("clearer title")}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &mockTicketRepository{
				GetByIDFunc: func(ctx context.Context, id uint) (*ticket.Ticket, error) {
					return storedTicket(t, vo.StatusInProgress, "", &assigned), nil
				},
			}

			uc := NewUpdateTicketUseCase(repo, &mockLogger{})
			_, err := uc.Execute(context.Background(), UpdateTicketCommand{
				TicketID:  5,
				Patch:     tt.patch,
				Role:      tt.role,
				UpdatedBy: tt.updatedBy,
			})

			if tt.wantErr {
				require.Error(t, err)
				appErr := errors.GetAppError(err)
				require.NotNil(t, appErr)
				assert.Equal(t, errors.ErrorTypeForbidden, appErr.Type)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestUpdateTicketUseCase_EmptyPatch(t *testing.T) {
	uc := NewUpdateTicketUseCase(&mockTicketRepository{}, &mockLogger{})
	_, err := uc.Execute(context.Background(), UpdateTicketCommand{
		TicketID:  5,
		Patch:     ticket.Patch{},
		Role:      vo.RoleAdmin,
		UpdatedBy: 1,
	})

	require.Error(t, err)
	assert.True(t, errors.IsValidationError(err))
}

func TestUpdateTicketUseCase_NotFound(t *testing.T) {
	repo := &mockTicketRepository{
		GetByIDFunc: func(ctx context.Context, id uint) (*ticket.Ticket, error) {
			return nil, errors.NewNotFoundError("ticket not found")
		},
	}

	uc := NewUpdateTicketUseCase(repo, &mockLogger{})
	_, err := uc.Execute(context.Background(), UpdateTicketCommand{
		TicketID:  404,
		Patch:     ticket.Patch{Title: strPtr("anything")},
		Role:      vo.RoleAdmin,
		UpdatedBy: 1,
	})

	require.Error(t, err)
	assert.True(t, errors.IsNotFoundError(err))
}
