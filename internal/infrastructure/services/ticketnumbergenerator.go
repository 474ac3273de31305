package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	"gorm.io/gorm"
)

// TicketNumberGenerator issues day-scoped sequential ticket numbers of the
// form MT-20260901-0001. The first number of each day is recovered from the
// tickets table; subsequent ones come from the in-memory counter.
type TicketNumberGenerator struct {
	db    *gorm.DB
	mu    sync.Mutex
	cache map[string]int
	now   func() time.Time
}

func NewTicketNumberGenerator(db *gorm.DB) *TicketNumberGenerator {
	return &TicketNumberGenerator{
		db:    db,
		cache: make(map[string]int),
		now:   time.Now,
	}
}

func (g *TicketNumberGenerator) Next(ctx context.Context) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	dateStr := g.now().Format("20060102")

	seq, err := g.nextSequence(ctx, dateStr)
	if err != nil {
		return "", err
	}

	return fmt.Sprintf("MT-%s-%04d", dateStr, seq), nil
}

func (g *TicketNumberGenerator) nextSequence(ctx context.Context, dateStr string) (int, error) {
	if seq, ok := g.cache[dateStr]; ok {
		g.cache[dateStr] = seq + 1
		return seq + 1, nil
	}

	var maxNumber sql.NullString
	pattern := fmt.Sprintf("MT-%s-%%", dateStr)

	err := g.db.WithContext(ctx).
		Table("tickets").
		Select("MAX(number)").
		Where("number LIKE ?", pattern).
		Scan(&maxNumber).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, fmt.Errorf("failed to get max ticket number: %w", err)
	}

	seq := 1
	if maxNumber.Valid && maxNumber.String != "" {
		fmt.Sscanf(maxNumber.String, "MT-"+dateStr+"-%d", &seq)
		seq++
	}

	g.cache[dateStr] = seq
	return seq, nil
}
