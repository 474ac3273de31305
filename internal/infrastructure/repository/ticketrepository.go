package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"maintdesk/internal/domain/ticket"
	vo "maintdesk/internal/domain/ticket/valueobjects"
	"maintdesk/internal/infrastructure/persistence/mappers"
	"maintdesk/internal/infrastructure/persistence/models"
	apperrors "maintdesk/internal/shared/errors"
)

// ticketOrderColumns maps the descriptor's sort vocabulary to columns. Only
// mapped names ever reach the ORDER BY clause, which also keeps injection out.
// Keep the keys in sync with ticket.OrderField.
var ticketOrderColumns = map[string]string{
	"id":          "id",
	"ticket_no":   "number",
	"title":       "title",
	"status":      "status",
	"priority":    "priority",
	"section":     "section_id",
	"facility":    "facility_id",
	"raised_by":   "raised_by_id",
	"assigned_to": "assigned_to_id",
	"created_at":  "created_at",
	"updated_at":  "updated_at",
}

// activeStatusValues are the statuses counted toward the overdue filter. Keep
// in sync with TicketStatus.IsActive.
var activeStatusValues = []string{
	vo.StatusOpen.String(),
	vo.StatusAssigned.String(),
	vo.StatusInProgress.String(),
}

type TicketRepository struct {
	db     *gorm.DB
	mapper mappers.TicketMapper
	now    func() time.Time
}

func NewTicketRepository(db *gorm.DB) *TicketRepository {
	return &TicketRepository{
		db:     db,
		mapper: mappers.NewTicketMapper(),
		now:    time.Now,
	}
}

func (r *TicketRepository) Save(ctx context.Context, t *ticket.Ticket) error {
	model := r.mapper.ToModel(t)

	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return fmt.Errorf("failed to save ticket: %w", err)
	}

	if err := t.SetID(model.ID); err != nil {
		return err
	}

	return nil
}

func (r *TicketRepository) Update(ctx context.Context, t *ticket.Ticket) error {
	model := r.mapper.ToModel(t)

	result := r.db.WithContext(ctx).
		Model(&models.TicketModel{}).
		Where("id = ?", model.ID).
		Select("*").
		Omit("id", "number", "created_at").
		Updates(model)

	if result.Error != nil {
		return fmt.Errorf("failed to update ticket: %w", result.Error)
	}

	// Note: RowsAffected may be 0 when updated values are identical to existing values.

	return nil
}

func (r *TicketRepository) GetByID(ctx context.Context, ticketID uint) (*ticket.Ticket, error) {
	var model models.TicketModel

	if err := r.db.WithContext(ctx).First(&model, ticketID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFoundError("ticket not found")
		}
		return nil, fmt.Errorf("failed to find ticket: %w", err)
	}

	t, err := r.mapper.ToDomain(&model)
	if err != nil {
		return nil, err
	}

	if err := r.loadComments(ctx, t, model.ID); err != nil {
		return nil, err
	}

	return t, nil
}

func (r *TicketRepository) GetByNumber(ctx context.Context, number string) (*ticket.Ticket, error) {
	var model models.TicketModel

	if err := r.db.WithContext(ctx).
		Where("number = ?", number).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFoundError("ticket not found")
		}
		return nil, fmt.Errorf("failed to find ticket: %w", err)
	}

	t, err := r.mapper.ToDomain(&model)
	if err != nil {
		return nil, err
	}

	if err := r.loadComments(ctx, t, model.ID); err != nil {
		return nil, err
	}

	return t, nil
}

func (r *TicketRepository) List(
	ctx context.Context,
	query ticket.ListQuery,
) ([]*ticket.Ticket, int64, error) {
	q := r.db.WithContext(ctx).Model(&models.TicketModel{})

	if query.Status != nil {
		q = q.Where("status = ?", query.Status.String())
	}
	if query.Section != nil {
		q = q.Where("section_id = ?", *query.Section)
	}
	if query.AssignedTo != nil {
		q = q.Where("assigned_to_id = ?", *query.AssignedTo)
	}
	if query.RaisedBy != nil {
		q = q.Where("raised_by_id = ?", *query.RaisedBy)
	}
	if query.AssignedToIsNull != nil {
		if *query.AssignedToIsNull {
			q = q.Where("assigned_to_id IS NULL")
		} else {
			q = q.Where("assigned_to_id IS NOT NULL")
		}
	}
	if query.IsOverdue != nil {
		cutoff := r.now().Add(-ticket.OverdueThreshold).UnixMilli()
		if *query.IsOverdue {
			q = q.Where("status IN ? AND created_at < ?", activeStatusValues, cutoff)
		} else {
			q = q.Where("(status NOT IN ? OR created_at >= ?)", activeStatusValues, cutoff)
		}
	}
	if query.Search != "" {
		term := "%" + strings.ToLower(query.Search) + "%"
		q = q.Where(
			"(LOWER(number) LIKE ? OR LOWER(title) LIKE ? OR LOWER(description) LIKE ?)",
			term, term, term,
		)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count tickets: %w", err)
	}

	q = q.Order(orderByClause(query.Ordering))

	if query.PageSize > 0 {
		offset := query.Page * query.PageSize
		q = q.Limit(query.PageSize).Offset(offset)
	}

	var ticketModels []models.TicketModel
	if err := q.Find(&ticketModels).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list tickets: %w", err)
	}

	tickets := make([]*ticket.Ticket, len(ticketModels))
	for i, model := range ticketModels {
		t, err := r.mapper.ToDomain(&model)
		if err != nil {
			return nil, 0, err
		}
		tickets[i] = t
	}

	return tickets, total, nil
}

func (r *TicketRepository) CountByStatus(ctx context.Context) (map[vo.TicketStatus]int64, error) {
	type statusCount struct {
		Status string
		Count  int64
	}

	var rows []statusCount
	if err := r.db.WithContext(ctx).
		Model(&models.TicketModel{}).
		Select("status, COUNT(*) as count").
		Group("status").
		Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to count tickets by status: %w", err)
	}

	counts := make(map[vo.TicketStatus]int64, len(rows))
	for _, row := range rows {
		status, err := vo.NewTicketStatus(row.Status)
		if err != nil {
			return nil, err
		}
		counts[status] = row.Count
	}

	return counts, nil
}

func (r *TicketRepository) CountOverdue(ctx context.Context, now time.Time) (int64, error) {
	cutoff := now.Add(-ticket.OverdueThreshold).UnixMilli()

	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.TicketModel{}).
		Where("status IN ? AND created_at < ?", activeStatusValues, cutoff).
		Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count overdue tickets: %w", err)
	}

	return count, nil
}

// orderByClause translates an ordering parameter ("-ticket_no") into a SQL
// ORDER BY clause, falling back to created_at DESC for anything outside the
// sort vocabulary.
func orderByClause(ordering string) string {
	field, desc, ok := ticket.OrderField(ordering)
	if !ok {
		return "created_at DESC"
	}
	column := ticketOrderColumns[field]
	if desc {
		return column + " DESC"
	}
	return column + " ASC"
}

// loadComments queries comments for a ticket and adds them to the domain entity.
func (r *TicketRepository) loadComments(ctx context.Context, t *ticket.Ticket, ticketID uint) error {
	var commentModels []models.CommentModel
	if err := r.db.WithContext(ctx).
		Where("ticket_id = ?", ticketID).
		Order("created_at ASC").
		Find(&commentModels).Error; err != nil {
		return fmt.Errorf("failed to load comments: %w", err)
	}

	for _, cm := range commentModels {
		comment, err := r.mapper.CommentToDomain(&cm)
		if err != nil {
			return err
		}
		if err := t.AddComment(comment); err != nil {
			return err
		}
	}

	return nil
}
