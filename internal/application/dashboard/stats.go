package dashboard

import (
	"time"

	"maintdesk/internal/application/ticket/dto"
	"maintdesk/internal/domain/ticket"
	vo "maintdesk/internal/domain/ticket/valueobjects"
)

// CountTickets computes the badge counts a dashboard shows next to its
// filters. The overdue figure uses ticket.IsOverdue, the same predicate the
// server-side filter translates to SQL; client and server can therefore not
// drift apart.
func CountTickets(tickets []dto.TicketDTO, now time.Time) dto.StatusCounts {
	counts := dto.StatusCounts{
		ByStatus: make(map[string]int64),
		Total:    int64(len(tickets)),
	}
	for _, t := range tickets {
		counts.ByStatus[t.Status]++
		if ticket.IsOverdue(vo.TicketStatus(t.Status), t.CreatedAt, now) {
			counts.Overdue++
		}
	}
	return counts
}
