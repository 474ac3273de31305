package ticket

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	vo "maintdesk/internal/domain/ticket/valueobjects"
)

// orderableFields is the canonical sort vocabulary of a list descriptor. Both
// pagination disciplines accept exactly these names: the repository maps them
// to columns, the client-side sorter compares the matching DTO fields.
var orderableFields = map[string]bool{
	"id":          true,
	"ticket_no":   true,
	"title":       true,
	"status":      true,
	"priority":    true,
	"section":     true,
	"facility":    true,
	"raised_by":   true,
	"assigned_to": true,
	"created_at":  true,
	"updated_at":  true,
}

// ListQuery is the server-bound descriptor for a ticket list fetch. It is the
// single wire contract shared by the repository, the HTTP handlers, and the
// SDK client: composing it is the job of the dashboard query composer, and
// identical queries always encode to identical parameter strings.
type ListQuery struct {
	// Page is zero-based.
	Page     int
	PageSize int
	// Ordering is a column name, optionally prefixed with '-' for descending,
	// e.g. "-created_at".
	Ordering string

	Status           *vo.TicketStatus
	Section          *uint
	AssignedTo       *uint
	RaisedBy         *uint
	AssignedToIsNull *bool
	IsOverdue        *bool
	Search           string
}

// Values encodes the query as URL parameters. Absent filters produce no
// parameter at all. url.Values.Encode sorts keys, so equal queries yield
// byte-identical strings.
func (q ListQuery) Values() url.Values {
	v := url.Values{}
	v.Set("page", strconv.Itoa(q.Page))
	v.Set("page_size", strconv.Itoa(q.PageSize))
	if q.Ordering != "" {
		v.Set("ordering", q.Ordering)
	}
	if q.Status != nil {
		v.Set("status", q.Status.String())
	}
	if q.Section != nil {
		v.Set("section", strconv.FormatUint(uint64(*q.Section), 10))
	}
	if q.AssignedTo != nil {
		v.Set("assigned_to", strconv.FormatUint(uint64(*q.AssignedTo), 10))
	}
	if q.RaisedBy != nil {
		v.Set("raised_by", strconv.FormatUint(uint64(*q.RaisedBy), 10))
	}
	if q.AssignedToIsNull != nil {
		v.Set("assigned_to__isnull", strconv.FormatBool(*q.AssignedToIsNull))
	}
	if q.IsOverdue != nil {
		v.Set("is_overdue", strconv.FormatBool(*q.IsOverdue))
	}
	if q.Search != "" {
		v.Set("search", q.Search)
	}
	return v
}

// Encode returns the canonical query-string form.
func (q ListQuery) Encode() string {
	return q.Values().Encode()
}

// OrderField splits an ordering parameter ("-ticket_no") into its field name
// and direction, reporting whether the field is part of the sort vocabulary.
func OrderField(ordering string) (field string, desc bool, ok bool) {
	field = ordering
	if strings.HasPrefix(ordering, "-") {
		field = ordering[1:]
		desc = true
	}
	field = strings.ToLower(field)
	return field, desc, orderableFields[field]
}

// ParseListQuery rebuilds a ListQuery from URL parameters. It is the inverse
// of Values for every query Values can produce.
func ParseListQuery(v url.Values) (ListQuery, error) {
	q := ListQuery{}

	var err error
	if q.Page, err = parseIntParam(v, "page", 0); err != nil {
		return ListQuery{}, err
	}
	if q.PageSize, err = parseIntParam(v, "page_size", 10); err != nil {
		return ListQuery{}, err
	}
	q.Ordering = v.Get("ordering")
	q.Search = v.Get("search")

	if s := v.Get("status"); s != "" {
		status, err := vo.NewTicketStatus(s)
		if err != nil {
			return ListQuery{}, err
		}
		q.Status = &status
	}
	if q.Section, err = parseUintParam(v, "section"); err != nil {
		return ListQuery{}, err
	}
	if q.AssignedTo, err = parseUintParam(v, "assigned_to"); err != nil {
		return ListQuery{}, err
	}
	if q.RaisedBy, err = parseUintParam(v, "raised_by"); err != nil {
		return ListQuery{}, err
	}
	if q.AssignedToIsNull, err = parseBoolParam(v, "assigned_to__isnull"); err != nil {
		return ListQuery{}, err
	}
	if q.IsOverdue, err = parseBoolParam(v, "is_overdue"); err != nil {
		return ListQuery{}, err
	}

	return q, nil
}

func parseIntParam(v url.Values, key string, def int) (int, error) {
	s := v.Get(key)
	if s == "" {
		return def, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("invalid %s: %q", key, s)
	}
	return n, nil
}

func parseUintParam(v url.Values, key string) (*uint, error) {
	s := v.Get(key)
	if s == "" {
		return nil, nil
	}
	n, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return nil, fmt.Errorf("invalid %s: %q", key, s)
	}
	u := uint(n)
	return &u, nil
}

func parseBoolParam(v url.Values, key string) (*bool, error) {
	s := v.Get(key)
	if s == "" {
		return nil, nil
	}
	b, err := strconv.ParseBool(s)
	if err != nil {
		return nil, fmt.Errorf("invalid %s: %q", key, s)
	}
	return &b, nil
}
