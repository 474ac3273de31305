package dashboard

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"maintdesk/internal/application/ticket/dto"
	"maintdesk/internal/domain/ticket"
	vo "maintdesk/internal/domain/ticket/valueobjects"
	"maintdesk/internal/shared/errors"
)

func strPtr(s string) *string { return &s }

func statusPtr(s vo.TicketStatus) *vo.TicketStatus { return &s }

func TestOptimisticUpdater_InvalidTransitionNeverReachesNetwork(t *testing.T) {
	tests := []struct {
		name    string
		role    vo.Role
		current string
		patch   ticket.Patch
	}{
		{
			name:    "technician may not close",
			role:    vo.RoleTechnician,
			current: "in_progress",
			patch:   ticket.Patch{Status: statusPtr(vo.StatusClosed)},
		},
		{
			name:    "end user may not transition at all",
			role:    vo.RoleUser,
			current: "open",
			patch:   ticket.Patch{Status: statusPtr(vo.StatusInProgress)},
		},
		{
			name:    "pending without a reason",
			role:    vo.RoleAdmin,
			current: "in_progress",
			patch:   ticket.Patch{Status: statusPtr(vo.StatusPending)},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			networkCalled := false
			svc := &mockTicketService{
				UpdateTicketFunc: func(ctx context.Context, id uint, patch ticket.Patch) (*dto.TicketDTO, error) {
					networkCalled = true
					return nil, nil
				},
			}
			notifier := &recordingNotifier{}
			u := NewOptimisticUpdater(svc, tt.role, notifier, nil, &mockLogger{})

			_, err := u.Update(context.Background(), dto.TicketDTO{ID: 5, Status: tt.current}, tt.patch)

			require.Error(t, err)
			assert.True(t, errors.IsInvalidTransition(err))
			assert.False(t, networkCalled, "rejection must happen before the network call")
			assert.Len(t, notifier.Errors(), 1)
		})
	}
}

func TestOptimisticUpdater_ResubmittedStatusIsNoOp(t *testing.T) {
	// The entity treats target == current as a no-op, so a dialog resubmitting
	// an unchanged status must not be rejected locally either.
	networkCalled := false
	svc := &mockTicketService{
		UpdateTicketFunc: func(ctx context.Context, id uint, patch ticket.Patch) (*dto.TicketDTO, error) {
			networkCalled = true
			return &dto.TicketDTO{ID: id, Number: "MT-5", Status: "in_progress"}, nil
		},
	}
	notifier := &recordingNotifier{}
	u := NewOptimisticUpdater(svc, vo.RoleAdmin, notifier, nil, &mockLogger{})

	updated, err := u.Update(context.Background(),
		dto.TicketDTO{ID: 5, Number: "MT-5", Status: "in_progress"},
		ticket.Patch{Status: statusPtr(vo.StatusInProgress)})

	require.NoError(t, err)
	assert.True(t, networkCalled)
	assert.Equal(t, "in_progress", updated.Status)
	assert.Empty(t, notifier.Errors())
}

func TestOptimisticUpdater_SanitizeStripsNonWritableFields(t *testing.T) {
	var sent ticket.Patch
	svc := &mockTicketService{
		UpdateTicketFunc: func(ctx context.Context, id uint, patch ticket.Patch) (*dto.TicketDTO, error) {
			sent = patch
			return &dto.TicketDTO{ID: id, Number: "MT-1", Status: patch.Status.String()}, nil
		},
	}
	u := NewOptimisticUpdater(svc, vo.RoleTechnician, &recordingNotifier{}, nil, &mockLogger{})

	section := uint(4)
	patch := ticket.Patch{
		Status:        statusPtr(vo.StatusResolved),
		Title:         strPtr("renamed by technician"),
		Section:       &section,
		PendingReason: nil,
	}

	_, err := u.Update(context.Background(), dto.TicketDTO{ID: 5, Status: "in_progress"}, patch)
	require.NoError(t, err)

	require.NotNil(t, sent.Status)
	assert.Equal(t, vo.StatusResolved, *sent.Status)
	assert.Nil(t, sent.Title, "technicians may not write the title")
	assert.Nil(t, sent.Section, "technicians may not write the section")
}

func TestOptimisticUpdater_NothingWritableIsRejected(t *testing.T) {
	networkCalled := false
	svc := &mockTicketService{
		UpdateTicketFunc: func(ctx context.Context, id uint, patch ticket.Patch) (*dto.TicketDTO, error) {
			networkCalled = true
			return nil, nil
		},
	}
	notifier := &recordingNotifier{}
	u := NewOptimisticUpdater(svc, vo.RoleUser, notifier, nil, &mockLogger{})

	// A user patching only the assignment ends up with an empty sanitized patch.
	assignee := uint(9)
	_, err := u.Update(context.Background(), dto.TicketDTO{ID: 5, Status: "open"}, ticket.Patch{AssignedTo: &assignee})

	require.Error(t, err)
	assert.True(t, errors.IsValidationError(err))
	assert.False(t, networkCalled)
}

func TestOptimisticUpdater_SuccessNotifiesAndRefreshes(t *testing.T) {
	svc := &mockTicketService{
		UpdateTicketFunc: func(ctx context.Context, id uint, patch ticket.Patch) (*dto.TicketDTO, error) {
			return &dto.TicketDTO{ID: id, Number: "MT-7", Status: "resolved"}, nil
		},
	}
	notifier := &recordingNotifier{}
	table := &recordingRefresher{}
	u := NewOptimisticUpdater(svc, vo.RoleAdmin, notifier, table, &mockLogger{})

	updated, err := u.Update(context.Background(),
		dto.TicketDTO{ID: 7, Number: "MT-7", Status: "in_progress"},
		ticket.Patch{Status: statusPtr(vo.StatusResolved)})

	require.NoError(t, err)
	assert.Equal(t, "resolved", updated.Status)
	assert.Len(t, notifier.Successes(), 1)
	assert.Equal(t, 1, table.Calls(), "success must trigger a reconciling refetch")
}

func TestOptimisticUpdater_RemoteFailureLeavesStateAlone(t *testing.T) {
	svc := &mockTicketService{
		UpdateTicketFunc: func(ctx context.Context, id uint, patch ticket.Patch) (*dto.TicketDTO, error) {
			return nil, errors.NewNetworkError("write failed")
		},
	}
	notifier := &recordingNotifier{}
	table := &recordingRefresher{}
	u := NewOptimisticUpdater(svc, vo.RoleAdmin, notifier, table, &mockLogger{})

	_, err := u.Update(context.Background(),
		dto.TicketDTO{ID: 7, Status: "in_progress"},
		ticket.Patch{Status: statusPtr(vo.StatusResolved)})

	require.Error(t, err)
	assert.True(t, errors.IsNetworkError(err))
	assert.Len(t, notifier.Errors(), 1)
	assert.Zero(t, table.Calls(), "a failed write must not trigger a refetch")
}

func TestOptimisticUpdater_AddComment(t *testing.T) {
	svc := &mockTicketService{
		AddCommentFunc: func(ctx context.Context, ticketID uint, text string) (*dto.CommentDTO, error) {
			return &dto.CommentDTO{ID: 1, Text: text}, nil
		},
	}
	table := &recordingRefresher{}
	u := NewOptimisticUpdater(svc, vo.RoleUser, &recordingNotifier{}, table, &mockLogger{})

	comment, err := u.AddComment(context.Background(), 5, "checked the valve")
	require.NoError(t, err)
	assert.Equal(t, "checked the valve", comment.Text)
	assert.Equal(t, 1, table.Calls())

	_, err = u.AddComment(context.Background(), 5, "")
	require.Error(t, err)
	assert.True(t, errors.IsValidationError(err))
}

func TestTableController_UpdateRollsBackOnFailure(t *testing.T) {
	svc := &mockTicketService{
		ListTicketsFunc: func(ctx context.Context, q ticket.ListQuery) (*dto.TicketPage, error) {
			return serverPage(dto.TicketDTO{ID: 5, Title: "Old title", Status: "open"}), nil
		},
		UpdateTicketFunc: func(ctx context.Context, id uint, patch ticket.Patch) (*dto.TicketDTO, error) {
			return nil, errors.NewNetworkError("write failed")
		},
	}
	c := NewTableController(adminConfig(ServerPaginated), svc, nil, nil, &mockLogger{})
	defer c.Close()

	require.NoError(t, c.Load())
	selected := c.Rows()[0].Ticket
	c.SelectRow(&selected)

	err := c.Update(context.Background(), ticket.Patch{Title: strPtr("New title")})
	require.Error(t, err)

	rows := c.Rows()
	require.Len(t, rows, 1)
	assert.Equal(t, "Old title", rows[0].Ticket.Title, "failed update must roll the optimistic apply back")
}

func TestTableController_UpdateAppliesOptimisticallyAndReconciles(t *testing.T) {
	listCalls := 0
	svc := &mockTicketService{
		ListTicketsFunc: func(ctx context.Context, q ticket.ListQuery) (*dto.TicketPage, error) {
			listCalls++
			title := "Old title"
			if listCalls > 1 {
				title = "Server title"
			}
			return serverPage(dto.TicketDTO{ID: 5, Title: title, Status: "open"}), nil
		},
		UpdateTicketFunc: func(ctx context.Context, id uint, patch ticket.Patch) (*dto.TicketDTO, error) {
			return &dto.TicketDTO{ID: id, Title: *patch.Title, Status: "open"}, nil
		},
	}
	c := NewTableController(adminConfig(ServerPaginated), svc, nil, nil, &mockLogger{})
	defer c.Close()

	require.NoError(t, c.Load())
	selected := c.Rows()[0].Ticket
	c.SelectRow(&selected)

	require.NoError(t, c.Update(context.Background(), ticket.Patch{Title: strPtr("New title")}))

	// Displayed state is the server's answer from the reconciling refetch,
	// not the optimistic patch.
	rows := c.Rows()
	require.Len(t, rows, 1)
	assert.Equal(t, "Server title", rows[0].Ticket.Title)
	assert.Equal(t, 2, listCalls)
}
