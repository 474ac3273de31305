package usecases

import (
	"context"
	"fmt"

	"maintdesk/internal/application/ticket/dto"
	"maintdesk/internal/domain/ticket"
	vo "maintdesk/internal/domain/ticket/valueobjects"
	"maintdesk/internal/shared/errors"
	"maintdesk/internal/shared/logger"
)

type UpdateTicketCommand struct {
	TicketID  uint
	Patch     ticket.Patch
	Role      vo.Role
	UpdatedBy uint
}

type UpdateTicketUseCase struct {
	ticketRepo ticket.TicketRepository
	logger     logger.Interface
}

func NewUpdateTicketUseCase(
	ticketRepo ticket.TicketRepository,
	logger logger.Interface,
) *UpdateTicketUseCase {
	return &UpdateTicketUseCase{
		ticketRepo: ticketRepo,
		logger:     logger,
	}
}

func (uc *UpdateTicketUseCase) Execute(ctx context.Context, cmd UpdateTicketCommand) (*dto.TicketDTO, error) {
	uc.logger.Infow("executing update ticket use case",
		"ticket_id", cmd.TicketID,
		"role", cmd.Role,
		"updated_by", cmd.UpdatedBy,
		"fields", cmd.Patch.FieldNames())

	if err := uc.validateCommand(cmd); err != nil {
		uc.logger.Warnw("invalid update ticket command", "error", err)
		return nil, err
	}

	t, err := uc.ticketRepo.GetByID(ctx, cmd.TicketID)
	if err != nil {
		uc.logger.Errorw("failed to get ticket", "ticket_id", cmd.TicketID, "error", err)
		return nil, errors.NewNotFoundError(fmt.Sprintf("ticket %d not found", cmd.TicketID))
	}

	if !uc.canUserUpdate(t, cmd.Role, cmd.UpdatedBy) {
		return nil, errors.NewForbiddenError("not authorized to update this ticket")
	}

	if err := uc.applyPatch(t, cmd.Patch, cmd.Role); err != nil {
		uc.logger.Warnw("rejected ticket patch", "ticket_id", cmd.TicketID, "error", err)
		return nil, err
	}

	if err := uc.ticketRepo.Update(ctx, t); err != nil {
		uc.logger.Errorw("failed to update ticket", "ticket_id", cmd.TicketID, "error", err)
		return nil, errors.NewInternalError("failed to update ticket")
	}

	uc.logger.Infow("ticket updated", "ticket_id", t.ID(), "status", t.Status())

	return dto.ToTicketDTO(t), nil
}

func (uc *UpdateTicketUseCase) validateCommand(cmd UpdateTicketCommand) error {
	if cmd.TicketID == 0 {
		return errors.NewValidationError("ticket ID is required")
	}
	if !cmd.Role.IsValid() {
		return errors.NewValidationError("invalid role")
	}
	if cmd.UpdatedBy == 0 {
		return errors.NewValidationError("updated by user ID is required")
	}
	if cmd.Patch.IsEmpty() {
		return errors.NewValidationError("update contains no fields")
	}

	// A patch naming a field outside the role's writable set is rejected
	// outright rather than silently trimmed; a well-behaved client sanitizes
	// before transmitting.
	for _, field := range cmd.Patch.FieldNames() {
		if !cmd.Role.CanWrite(field) {
			return errors.NewForbiddenError(
				fmt.Sprintf("%s may not write field %q", cmd.Role, field))
		}
	}

	if cmd.Patch.Title != nil && len(*cmd.Patch.Title) == 0 {
		return errors.NewValidationError("title cannot be empty")
	}
	if cmd.Patch.Title != nil && len(*cmd.Patch.Title) > 200 {
		return errors.NewValidationError("title exceeds maximum length of 200 characters")
	}
	if cmd.Patch.Description != nil && len(*cmd.Patch.Description) == 0 {
		return errors.NewValidationError("description cannot be empty")
	}
	if cmd.Patch.Priority != nil && !cmd.Patch.Priority.IsValid() {
		return errors.NewValidationError("invalid priority")
	}

	return nil
}

func (uc *UpdateTicketUseCase) canUserUpdate(t *ticket.Ticket, role vo.Role, userID uint) bool {
	switch role {
	case vo.RoleAdmin:
		return true
	case vo.RoleTechnician:
		return t.AssignedToID() != nil && *t.AssignedToID() == userID
	case vo.RoleUser:
		return t.RaisedByID() == userID
	}
	return false
}

func (uc *UpdateTicketUseCase) applyPatch(t *ticket.Ticket, patch ticket.Patch, role vo.Role) error {
	// Status first: the transition guard may reject the whole update before
	// anything else is touched.
	if patch.Status != nil {
		if err := t.ChangeStatus(*patch.Status, role, patch.Reason()); err != nil {
			return err
		}
	}

	if patch.AssignedTo != nil {
		if err := t.AssignTo(*patch.AssignedTo); err != nil {
			return errors.NewValidationError(err.Error())
		}
	}

	return t.ApplyDetails(patch)
}
