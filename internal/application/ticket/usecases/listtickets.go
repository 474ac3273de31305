package usecases

import (
	"context"

	"maintdesk/internal/application/ticket/dto"
	"maintdesk/internal/domain/ticket"
	vo "maintdesk/internal/domain/ticket/valueobjects"
	"maintdesk/internal/shared/errors"
	"maintdesk/internal/shared/logger"
)

type ListTicketsQuery struct {
	Query  ticket.ListQuery
	Role   vo.Role
	UserID uint
}

type ListTicketsUseCase struct {
	ticketRepo ticket.TicketRepository
	logger     logger.Interface
}

func NewListTicketsUseCase(
	ticketRepo ticket.TicketRepository,
	logger logger.Interface,
) *ListTicketsUseCase {
	return &ListTicketsUseCase{
		ticketRepo: ticketRepo,
		logger:     logger,
	}
}

func (uc *ListTicketsUseCase) Execute(ctx context.Context, query ListTicketsQuery) (*dto.TicketPage, error) {
	uc.logger.Debugw("listing tickets",
		"role", query.Role,
		"user_id", query.UserID,
		"page", query.Query.Page,
		"page_size", query.Query.PageSize)

	if !query.Role.IsValid() {
		return nil, errors.NewValidationError("invalid role")
	}

	q := query.Query
	if q.PageSize <= 0 {
		q.PageSize = 10
	}
	if q.PageSize > 1000 {
		q.PageSize = 1000
	}
	if q.Page < 0 {
		q.Page = 0
	}

	// Role scoping is enforced again here, not only in the dashboard
	// composer: end users see their own tickets, technicians the ones
	// assigned to them, regardless of what the caller put in the query.
	switch query.Role {
	case vo.RoleUser:
		uid := query.UserID
		q.RaisedBy = &uid
	case vo.RoleTechnician:
		uid := query.UserID
		q.AssignedTo = &uid
	}

	tickets, totalCount, err := uc.ticketRepo.List(ctx, q)
	if err != nil {
		uc.logger.Errorw("failed to list tickets", "error", err)
		return nil, errors.NewInternalError("failed to list tickets")
	}

	results := make([]dto.TicketDTO, 0, len(tickets))
	for _, t := range tickets {
		results = append(results, *dto.ToTicketDTO(t))
	}

	return &dto.TicketPage{
		Results: results,
		Count:   totalCount,
	}, nil
}
