package dashboard

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"maintdesk/internal/application/ticket/dto"
)

func TestCountTickets(t *testing.T) {
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)

	tickets := []dto.TicketDTO{
		{ID: 1, Status: "open", CreatedAt: now.Add(-8 * 24 * time.Hour)},
		{ID: 2, Status: "open", CreatedAt: now.Add(-time.Hour)},
		{ID: 3, Status: "in_progress", CreatedAt: now.Add(-10 * 24 * time.Hour)},
		{ID: 4, Status: "closed", CreatedAt: now.Add(-60 * 24 * time.Hour)},
		{ID: 5, Status: "pending", CreatedAt: now.Add(-20 * 24 * time.Hour)},
	}

	counts := CountTickets(tickets, now)

	assert.Equal(t, int64(5), counts.Total)
	assert.Equal(t, int64(2), counts.ByStatus["open"])
	assert.Equal(t, int64(1), counts.ByStatus["in_progress"])
	assert.Equal(t, int64(1), counts.ByStatus["closed"])
	assert.Equal(t, int64(1), counts.ByStatus["pending"])

	// Closed and pending tickets never count as overdue, however old.
	assert.Equal(t, int64(2), counts.Overdue)
}

func TestCountTickets_Empty(t *testing.T) {
	counts := CountTickets(nil, time.Now())

	assert.Zero(t, counts.Total)
	assert.Zero(t, counts.Overdue)
	assert.Empty(t, counts.ByStatus)
}
