package dashboard

import (
	"strconv"
	"strings"

	"maintdesk/internal/domain/ticket"
	vo "maintdesk/internal/domain/ticket/valueobjects"
)

// Filter sentinels the view layer uses for "no selection". They normalize to
// an absent descriptor field and are never sent to the server literally.
const (
	FilterAll   = "all"
	FilterUnset = "unset"
)

// TableQuery is the scattered filter state of one ticket table, gathered into
// a single value. It is rebuilt on every state change and composed into a
// ticket.ListQuery in one step; partial application does not exist.
type TableQuery struct {
	// Page is zero-based. Any filter or page-size change resets it to 0.
	Page     int
	PageSize int

	SortField     string
	SortDirection string // "asc" or "desc"

	StatusFilter     string
	SectionFilter    string
	TechnicianFilter string
	UserFilter       string
	UnassignedOnly   bool
	OverdueOnly      bool
	SearchTerm       string
}

// Compose turns the table state into the server-bound descriptor. It is pure
// and deterministic: identical inputs always yield an identical ListQuery.
//
// Role scoping: user tables are pinned to raised_by = currentUserID,
// technician tables to assigned_to = currentUserID, regardless of
// caller-supplied filter values. Admin tables pass every filter through.
func Compose(q TableQuery, scope vo.Role, currentUserID uint) ticket.ListQuery {
	out := ticket.ListQuery{
		Page:     q.Page,
		PageSize: q.PageSize,
		Ordering: composeOrdering(q.SortField, q.SortDirection),
		Search:   q.SearchTerm,
	}

	if s := normalizeFilter(q.StatusFilter); s != "" {
		if status, err := vo.NewTicketStatus(s); err == nil {
			out.Status = &status
		}
	}
	out.Section = parseIDFilter(q.SectionFilter)
	out.AssignedTo = parseIDFilter(q.TechnicianFilter)
	out.RaisedBy = parseIDFilter(q.UserFilter)

	switch scope {
	case vo.RoleUser:
		uid := currentUserID
		out.RaisedBy = &uid
	case vo.RoleTechnician:
		uid := currentUserID
		out.AssignedTo = &uid
	}

	if q.UnassignedOnly {
		yes := true
		out.AssignedToIsNull = &yes
	}
	if q.OverdueOnly {
		yes := true
		out.IsOverdue = &yes
	}

	return out
}

func composeOrdering(field, direction string) string {
	if field == "" {
		field = "created_at"
		if direction == "" {
			direction = "desc"
		}
	}
	if strings.EqualFold(direction, "desc") {
		return "-" + field
	}
	return field
}

// normalizeFilter maps the view-layer sentinels to "absent".
func normalizeFilter(value string) string {
	switch value {
	case "", FilterAll, FilterUnset:
		return ""
	}
	return value
}

func parseIDFilter(value string) *uint {
	s := normalizeFilter(value)
	if s == "" {
		return nil
	}
	n, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return nil
	}
	id := uint(n)
	return &id
}
