package dashboard

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	vo "maintdesk/internal/domain/ticket/valueobjects"
)

func TestCompose_Deterministic(t *testing.T) {
	q := TableQuery{
		Page:          2,
		PageSize:      25,
		SortField:     "title",
		SortDirection: "asc",
		StatusFilter:  "pending",
		SectionFilter: "3",
		SearchTerm:    "pump",
	}

	first := Compose(q, vo.RoleAdmin, 7)
	second := Compose(q, vo.RoleAdmin, 7)

	assert.True(t, reflect.DeepEqual(first, second))
	assert.Equal(t, first.Encode(), second.Encode())
}

func TestCompose_AdminPassthrough(t *testing.T) {
	q := TableQuery{
		Page:             2,
		PageSize:         10,
		StatusFilter:     "pending",
		SectionFilter:    "4",
		TechnicianFilter: "9",
		UserFilter:       "12",
	}

	out := Compose(q, vo.RoleAdmin, 1)

	require.NotNil(t, out.Status)
	assert.Equal(t, vo.StatusPending, *out.Status)
	require.NotNil(t, out.Section)
	assert.Equal(t, uint(4), *out.Section)
	require.NotNil(t, out.AssignedTo)
	assert.Equal(t, uint(9), *out.AssignedTo)
	require.NotNil(t, out.RaisedBy)
	assert.Equal(t, uint(12), *out.RaisedBy)
	assert.Equal(t, 2, out.Page)
	assert.Equal(t,
		"assigned_to=9&ordering=-created_at&page=2&page_size=10&raised_by=12&section=4&status=pending",
		out.Encode())
}

func TestCompose_UserScopePinsRaisedBy(t *testing.T) {
	q := TableQuery{PageSize: 10, UserFilter: "999"}

	out := Compose(q, vo.RoleUser, 42)

	require.NotNil(t, out.RaisedBy)
	assert.Equal(t, uint(42), *out.RaisedBy, "user scope must override any caller-supplied raiser filter")
}

func TestCompose_TechnicianScopePinsAssignedTo(t *testing.T) {
	q := TableQuery{PageSize: 10, TechnicianFilter: "999"}

	out := Compose(q, vo.RoleTechnician, 17)

	require.NotNil(t, out.AssignedTo)
	assert.Equal(t, uint(17), *out.AssignedTo)
	assert.Nil(t, out.RaisedBy)
}

func TestCompose_SentinelsNormalizeToAbsent(t *testing.T) {
	tests := []struct {
		name  string
		query TableQuery
	}{
		{"all sentinels", TableQuery{PageSize: 10, StatusFilter: FilterAll, SectionFilter: FilterAll, TechnicianFilter: FilterUnset, UserFilter: FilterUnset}},
		{"empty strings", TableQuery{PageSize: 10}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := Compose(tt.query, vo.RoleAdmin, 1)

			assert.Nil(t, out.Status)
			assert.Nil(t, out.Section)
			assert.Nil(t, out.AssignedTo)
			assert.Nil(t, out.RaisedBy)
			assert.Nil(t, out.AssignedToIsNull)
			assert.Nil(t, out.IsOverdue)
		})
	}
}

func TestCompose_BooleanFiltersOnlyWhenSet(t *testing.T) {
	out := Compose(TableQuery{PageSize: 10, UnassignedOnly: true, OverdueOnly: true}, vo.RoleAdmin, 1)

	require.NotNil(t, out.AssignedToIsNull)
	assert.True(t, *out.AssignedToIsNull)
	require.NotNil(t, out.IsOverdue)
	assert.True(t, *out.IsOverdue)
}

func TestComposeOrdering(t *testing.T) {
	tests := []struct {
		name      string
		field     string
		direction string
		want      string
	}{
		{"default", "", "", "-created_at"},
		{"explicit asc", "title", "asc", "title"},
		{"explicit desc", "title", "desc", "-title"},
		{"case-insensitive desc", "status", "DESC", "-status"},
		{"unknown direction treated as asc", "priority", "sideways", "priority"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, composeOrdering(tt.field, tt.direction))
		})
	}
}

func TestCompose_AdminPendingPageTwoScenario(t *testing.T) {
	// An admin on page 2 with a pending filter: both survive composition
	// together, and the encoded form is identical every time.
	q := TableQuery{
		Page:         2,
		PageSize:     10,
		StatusFilter: "pending",
	}

	out := Compose(q, vo.RoleAdmin, 5)

	assert.Equal(t, 2, out.Page)
	require.NotNil(t, out.Status)
	assert.Equal(t, vo.StatusPending, *out.Status)
	assert.Equal(t, out.Encode(), Compose(q, vo.RoleAdmin, 5).Encode())
}
