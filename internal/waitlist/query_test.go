package waitlist

import (
	"testing"

	"github.com/jekabolt/grbpwr-waitlist/internal/entity"
	gerr "github.com/jekabolt/grbpwr-waitlist/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSchema(t *testing.T) *Schema {
	t.Helper()
	s, err := NewSchema([]entity.FieldDescriptor{
		{Name: "company", Type: entity.FieldTypeString, Required: true},
		{Name: "seats", Type: entity.FieldTypeNumber},
		{Name: "vip", Type: entity.FieldTypeBoolean},
		{Name: "startsAt", Type: entity.FieldTypeDate},
		{Name: "tags", Type: entity.FieldTypeStringArray},
	})
	require.NoError(t, err)
	return s
}

func TestQueryBuilder_Defaults(t *testing.T) {
	qb := NewQueryBuilder(testSchema(t), 10, 100)

	s, err := qb.Build(SearchParams{})
	require.NoError(t, err)
	assert.Equal(t, 1, s.Page)
	assert.Equal(t, 10, s.Limit)
	assert.Equal(t, entity.WaitlistQuery{
		SortBy: entity.SortByRequestedAt,
		Order:  entity.Descending,
		Limit:  10,
		Offset: 0,
	}, s.Query)
}

func TestQueryBuilder_Pagination(t *testing.T) {
	qb := NewQueryBuilder(testSchema(t), 10, 100)

	tests := []struct {
		page, limit           int
		wantLimit, wantOffset int
	}{
		{page: 1, limit: 10, wantLimit: 10, wantOffset: 0},
		{page: 2, limit: 10, wantLimit: 10, wantOffset: 10},
		{page: 3, limit: 25, wantLimit: 25, wantOffset: 50},
		{page: 2, limit: 500, wantLimit: 100, wantOffset: 100},
		{page: 0, limit: 0, wantLimit: 10, wantOffset: 0},
	}
	for _, tt := range tests {
		s, err := qb.Build(SearchParams{Page: tt.page, Limit: tt.limit})
		require.NoError(t, err)
		assert.Equal(t, tt.wantLimit, s.Query.Limit)
		assert.Equal(t, tt.wantOffset, s.Query.Offset)
	}
}

func TestQueryBuilder_Filters(t *testing.T) {
	qb := NewQueryBuilder(testSchema(t), 10, 100)

	s, err := qb.Build(SearchParams{
		Status:        "pending",
		Email:         " User@Test.com ",
		SortBy:        "email",
		SortDirection: "ASC",
		Fields: map[string]string{
			"company":  "acme",
			"seats":    "3",
			"vip":      "true",
			"startsAt": "2026-05-01T10:00:00+02:00",
			"tags":     "a, b",
		},
	})
	require.NoError(t, err)

	assert.Equal(t, entity.SortFactor("email"), s.Query.SortBy)
	assert.Equal(t, entity.Ascending, s.Query.Order)
	assert.Equal(t, []entity.WaitlistFilter{
		{Field: "status", Operator: entity.OperatorEq, Value: entity.WaitlistStatusPending},
		{Field: "email", Operator: entity.OperatorEq, Value: "user@test.com"},
		{Field: "company", Operator: entity.OperatorEq, Value: "acme"},
		{Field: "seats", Operator: entity.OperatorEq, Value: float64(3)},
		{Field: "startsAt", Operator: entity.OperatorEq, Value: "2026-05-01T08:00:00Z"},
		{Field: "tags", Operator: entity.OperatorEq, Value: []string{"a", "b"}},
		{Field: "vip", Operator: entity.OperatorEq, Value: true},
	}, s.Query.Filters)
}

func TestQueryBuilder_SortPassedThrough(t *testing.T) {
	qb := NewQueryBuilder(testSchema(t), 10, 100)

	s, err := qb.Build(SearchParams{SortBy: "somethingTheStoreDecides"})
	require.NoError(t, err)
	assert.Equal(t, entity.SortFactor("somethingTheStoreDecides"), s.Query.SortBy)
}

func TestQueryBuilder_Invalid(t *testing.T) {
	qb := NewQueryBuilder(testSchema(t), 10, 100)

	tests := []struct {
		name   string
		params SearchParams
		field  string
	}{
		{"status", SearchParams{Status: "accepted"}, "status"},
		{"direction", SearchParams{SortDirection: "up"}, "sortDirection"},
		{"page", SearchParams{Page: -1}, "page"},
		{"limit", SearchParams{Limit: -5}, "limit"},
		{"undeclared field", SearchParams{Fields: map[string]string{"nope": "x"}}, "nope"},
		{"number", SearchParams{Fields: map[string]string{"seats": "many"}}, "seats"},
		{"boolean", SearchParams{Fields: map[string]string{"vip": "maybe"}}, "vip"},
		{"date", SearchParams{Fields: map[string]string{"startsAt": "yesterday"}}, "startsAt"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := qb.Build(tt.params)
			require.ErrorIs(t, err, gerr.ValidationFailed)
			ge, ok := gerr.As(err)
			require.True(t, ok)
			require.Len(t, ge.Details, 1)
			assert.Equal(t, tt.field, ge.Details[0].Field)
		})
	}
}
