package ticket

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	vo "maintdesk/internal/domain/ticket/valueobjects"
)

func TestListQuery_EncodeOmitsAbsentFilters(t *testing.T) {
	q := ListQuery{Page: 0, PageSize: 10}

	assert.Equal(t, "page=0&page_size=10", q.Encode())
}

func TestListQuery_EncodeIsDeterministic(t *testing.T) {
	status := vo.StatusPending
	section := uint(3)
	unassigned := true

	q := ListQuery{
		Page:             2,
		PageSize:         25,
		Ordering:         "-created_at",
		Status:           &status,
		Section:          &section,
		AssignedToIsNull: &unassigned,
		Search:           "pump",
	}

	first := q.Encode()
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, q.Encode())
	}
	assert.Equal(t,
		"assigned_to__isnull=true&ordering=-created_at&page=2&page_size=25&search=pump&section=3&status=pending",
		first)
}

func TestParseListQuery_RoundTrip(t *testing.T) {
	status := vo.StatusOpen
	section := uint(3)
	assignedTo := uint(9)
	raisedBy := uint(4)
	unassigned := false
	overdue := true

	tests := []struct {
		name  string
		query ListQuery
	}{
		{"defaults only", ListQuery{Page: 0, PageSize: 10}},
		{"ordering and search", ListQuery{Page: 1, PageSize: 50, Ordering: "title", Search: "leak"}},
		{
			"all filters",
			ListQuery{
				Page: 3, PageSize: 25, Ordering: "-updated_at",
				Status: &status, Section: &section, AssignedTo: &assignedTo,
				RaisedBy: &raisedBy, AssignedToIsNull: &unassigned, IsOverdue: &overdue,
				Search: "pump",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			parsed, err := ParseListQuery(tt.query.Values())
			require.NoError(t, err)
			assert.Equal(t, tt.query, parsed)
		})
	}
}

func TestOrderField(t *testing.T) {
	tests := []struct {
		ordering  string
		wantField string
		wantDesc  bool
		wantOK    bool
	}{
		{"ticket_no", "ticket_no", false, true},
		{"-ticket_no", "ticket_no", true, true},
		{"-Created_At", "created_at", true, true},
		{"section", "section", false, true},
		// Column names and arbitrary strings are outside the vocabulary.
		{"number", "number", false, false},
		{"section_id", "section_id", false, false},
		{"ticket_no; DROP TABLE tickets", "ticket_no; drop table tickets", false, false},
		{"", "", false, false},
	}

	for _, tt := range tests {
		field, desc, ok := OrderField(tt.ordering)
		assert.Equal(t, tt.wantField, field, "ordering %q", tt.ordering)
		assert.Equal(t, tt.wantDesc, desc, "ordering %q", tt.ordering)
		assert.Equal(t, tt.wantOK, ok, "ordering %q", tt.ordering)
	}
}

func TestParseListQuery_Defaults(t *testing.T) {
	q, err := ParseListQuery(url.Values{})
	require.NoError(t, err)

	assert.Equal(t, 0, q.Page)
	assert.Equal(t, 10, q.PageSize)
	assert.Nil(t, q.Status)
	assert.Nil(t, q.Section)
	assert.Nil(t, q.AssignedToIsNull)
}

func TestParseListQuery_InvalidValues(t *testing.T) {
	tests := []struct {
		name   string
		params url.Values
	}{
		{"negative page", url.Values{"page": {"-1"}}},
		{"non-numeric page", url.Values{"page": {"two"}}},
		{"bad status", url.Values{"status": {"archived"}}},
		{"bad section", url.Values{"section": {"abc"}}},
		{"bad bool", url.Values{"is_overdue": {"maybe"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseListQuery(tt.params)
			assert.Error(t, err)
		})
	}
}
