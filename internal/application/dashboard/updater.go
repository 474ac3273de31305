package dashboard

import (
	"context"
	"fmt"

	"maintdesk/internal/application/ticket/dto"
	"maintdesk/internal/domain/ticket"
	vo "maintdesk/internal/domain/ticket/valueobjects"
	apperrors "maintdesk/internal/shared/errors"
	"maintdesk/internal/shared/logger"
)

// Refresher is the slice of a table the updater needs for reconciliation.
type Refresher interface {
	Refresh() error
}

// OptimisticUpdater performs the write half of a ticket edit: local
// validation, patch sanitization, the remote write, and reconciliation by
// refetching the owning table. The displayed state is always reconciled
// against the server's authoritative response, never assumed from the
// optimistic patch alone.
type OptimisticUpdater struct {
	svc      TicketService
	role     vo.Role
	notifier Notifier
	table    Refresher
	logger   logger.Interface
}

func NewOptimisticUpdater(
	svc TicketService,
	role vo.Role,
	notifier Notifier,
	table Refresher,
	log logger.Interface,
) *OptimisticUpdater {
	if notifier == nil {
		notifier = NopNotifier{}
	}
	return &OptimisticUpdater{
		svc:      svc,
		role:     role,
		notifier: notifier,
		table:    table,
		logger:   log,
	}
}

// Update validates and transmits a ticket patch.
//
// A status change is checked against the role-gated transition table before
// any network call; an invalid transition or a pending change without a
// reason is rejected locally. Resubmitting the current status passes through
// unchecked, the same no-op the entity applies. The outgoing patch carries
// only fields the role may write, so server-derived data can never corrupt
// server state.
func (u *OptimisticUpdater) Update(ctx context.Context, current dto.TicketDTO, patch ticket.Patch) (*dto.TicketDTO, error) {
	if patch.Status != nil && *patch.Status != vo.TicketStatus(current.Status) {
		currentStatus := vo.TicketStatus(current.Status)
		if err := vo.ValidateTransition(currentStatus, *patch.Status, u.role, patch.Reason()); err != nil {
			u.logger.Warnw("rejected ticket status change",
				"ticket_id", current.ID,
				"from", current.Status,
				"to", patch.Status.String(),
				"role", u.role,
				"error", err)
			u.notifier.Error(err.Error())
			return nil, err
		}
	}

	sanitized := patch.Sanitize(u.role)
	if sanitized.IsEmpty() {
		err := apperrors.NewValidationError(
			fmt.Sprintf("no fields writable by %s in update", u.role))
		u.notifier.Error(err.Error())
		return nil, err
	}

	updated, err := u.svc.UpdateTicket(ctx, current.ID, sanitized)
	if err != nil {
		// Local state stays untouched; the editor keeps the user's input and
		// the operation is retryable as-is.
		u.logger.Errorw("ticket update failed", "ticket_id", current.ID, "error", err)
		u.notifier.Error(fmt.Sprintf("failed to update ticket %s", current.Number))
		return nil, err
	}

	u.notifier.Success(fmt.Sprintf("ticket %s updated", updated.Number))

	if u.table != nil {
		if err := u.table.Refresh(); err != nil {
			u.logger.Errorw("refetch after update failed", "ticket_id", current.ID, "error", err)
		}
	}

	return updated, nil
}

// AddComment appends a comment and refetches the owning table.
func (u *OptimisticUpdater) AddComment(ctx context.Context, ticketID uint, text string) (*dto.CommentDTO, error) {
	if text == "" {
		err := apperrors.NewValidationError("comment text cannot be empty")
		u.notifier.Error(err.Error())
		return nil, err
	}

	comment, err := u.svc.AddComment(ctx, ticketID, text)
	if err != nil {
		u.logger.Errorw("add comment failed", "ticket_id", ticketID, "error", err)
		u.notifier.Error("failed to add comment")
		return nil, err
	}

	if u.table != nil {
		if err := u.table.Refresh(); err != nil {
			u.logger.Errorw("refetch after comment failed", "ticket_id", ticketID, "error", err)
		}
	}

	return comment, nil
}
