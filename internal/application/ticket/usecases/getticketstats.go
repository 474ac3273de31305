package usecases

import (
	"context"
	"time"

	"maintdesk/internal/application/ticket/dto"
	"maintdesk/internal/domain/ticket"
	"maintdesk/internal/shared/errors"
	"maintdesk/internal/shared/logger"
)

type GetTicketStatsQuery struct{}

type GetTicketStatsUseCase struct {
	ticketRepo ticket.TicketRepository
	logger     logger.Interface
	now        func() time.Time
}

func NewGetTicketStatsUseCase(
	ticketRepo ticket.TicketRepository,
	logger logger.Interface,
) *GetTicketStatsUseCase {
	return &GetTicketStatsUseCase{
		ticketRepo: ticketRepo,
		logger:     logger,
		now:        time.Now,
	}
}

// Execute aggregates per-status and overdue counts. The overdue count uses
// the repository's translation of ticket.IsOverdue, so the figure matches
// what the is_overdue list filter returns.
func (uc *GetTicketStatsUseCase) Execute(ctx context.Context, query GetTicketStatsQuery) (*dto.StatusCounts, error) {
	byStatus, err := uc.ticketRepo.CountByStatus(ctx)
	if err != nil {
		uc.logger.Errorw("failed to count tickets by status", "error", err)
		return nil, errors.NewInternalError("failed to compute ticket stats")
	}

	overdue, err := uc.ticketRepo.CountOverdue(ctx, uc.now())
	if err != nil {
		uc.logger.Errorw("failed to count overdue tickets", "error", err)
		return nil, errors.NewInternalError("failed to compute ticket stats")
	}

	counts := &dto.StatusCounts{
		ByStatus: make(map[string]int64, len(byStatus)),
		Overdue:  overdue,
	}
	for status, n := range byStatus {
		counts.ByStatus[status.String()] = n
		counts.Total += n
	}

	return counts, nil
}
