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

type GetTicketQuery struct {
	TicketID uint
	Role     vo.Role
	UserID   uint
}

type GetTicketUseCase struct {
	ticketRepo ticket.TicketRepository
	logger     logger.Interface
}

func NewGetTicketUseCase(
	ticketRepo ticket.TicketRepository,
	logger logger.Interface,
) *GetTicketUseCase {
	return &GetTicketUseCase{
		ticketRepo: ticketRepo,
		logger:     logger,
	}
}

func (uc *GetTicketUseCase) Execute(ctx context.Context, query GetTicketQuery) (*dto.TicketDTO, error) {
	if query.TicketID == 0 {
		return nil, errors.NewValidationError("ticket ID is required")
	}

	t, err := uc.ticketRepo.GetByID(ctx, query.TicketID)
	if err != nil {
		return nil, errors.NewNotFoundError(fmt.Sprintf("ticket %d not found", query.TicketID))
	}

	if !uc.canView(t, query.Role, query.UserID) {
		return nil, errors.NewForbiddenError("not authorized to view this ticket")
	}

	return dto.ToTicketDTO(t), nil
}

func (uc *GetTicketUseCase) canView(t *ticket.Ticket, role vo.Role, userID uint) bool {
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
