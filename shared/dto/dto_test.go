package dto_test

import (
	"mentorbook/shared/constant"
	"mentorbook/shared/dto"
	"mentorbook/shared/model"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMetadata_FromModel(t *testing.T) {
	at := time.Date(2024, 1, 1, 9, 5, 0, 0, time.UTC)

	metadata := dto.Metadata{}
	metadata.FromModel(model.Metadata{CreatedAt: at, ModifiedAt: at.Add(time.Hour), CreatedBy: "u1", ModifiedBy: "u2"})

	assert.Equal(t, at.Format(constant.DateFormat), metadata.CreatedAt)
	assert.Equal(t, at.Add(time.Hour).Format(constant.DateFormat), metadata.ModifiedAt)
	assert.Equal(t, "u1", metadata.CreatedBy)
	assert.Equal(t, "u2", metadata.ModifiedBy)
}

func TestQueryParams_FromRequest(t *testing.T) {
	tests := []struct {
		name           string
		query          string
		defaultRequest bool
		expected       dto.QueryParams
	}{
		{
			name:           "all parameters",
			query:          "page=2&limit=20&sort_by=booking_date&sort_dir=asc",
			defaultRequest: true,
			expected:       dto.QueryParams{Page: 2, Limit: 20, SortBy: "booking_date", SortDir: dto.SortDirAsc},
		},
		{
			name:           "defaults fill page and limit",
			query:          "sort_by=status",
			defaultRequest: true,
			expected:       dto.QueryParams{Page: constant.DefaultValuePage, Limit: constant.DefaultValueLimit, SortBy: "status"},
		},
		{
			name:           "limit is capped",
			query:          "limit=5000&sort_dir=desc",
			defaultRequest: true,
			expected:       dto.QueryParams{Page: constant.DefaultValuePage, Limit: dto.MaxLimit, SortDir: dto.SortDirDesc},
		},
		{
			name:     "invalid values are ignored",
			query:    "page=-1&limit=abc&sort_dir=sideways",
			expected: dto.QueryParams{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/v1/bookings/mine?"+tt.query, nil)

			got := dto.QueryParams{}
			got.FromRequest(req, tt.defaultRequest)

			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestQueryParams_Sortable(t *testing.T) {
	tests := []struct {
		name     string
		params   dto.QueryParams
		table    string
		expected dto.QueryParams
	}{
		{
			name:     "allowed column is qualified",
			params:   dto.QueryParams{SortBy: "booking_date", SortDir: dto.SortDirAsc},
			table:    "bookings",
			expected: dto.QueryParams{SortBy: "bookings.booking_date", SortDir: dto.SortDirAsc},
		},
		{
			name:     "unknown column falls back",
			params:   dto.QueryParams{SortBy: "1; DROP TABLE bookings"},
			table:    "bookings",
			expected: dto.QueryParams{SortBy: "bookings.created_at", SortDir: dto.SortDirDesc},
		},
		{
			name:     "no table",
			params:   dto.QueryParams{Page: 3, SortBy: "status"},
			expected: dto.QueryParams{Page: 3, SortBy: "status", SortDir: dto.SortDirDesc},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.params.Sortable(tt.table, "booking_date", "status"))
		})
	}
}

func TestFilter_GetWhereClause(t *testing.T) {
	tests := []struct {
		name          string
		filter        dto.Filter
		expectedWhere string
		expectedArgs  map[string]any
	}{
		{
			name:          "eq with table",
			filter:        dto.Filter{Field: "status", Value: "pending", Operator: dto.FilterOperatorEq, Table: "bookings"},
			expectedWhere: "bookings.status = :status",
			expectedArgs:  map[string]any{"status": "pending"},
		},
		{
			name:          "custom arg name",
			filter:        dto.Filter{ArgName: "from", Field: "booking_date", Value: "2024-01-01", Operator: dto.FilterOperatorGreaterEq},
			expectedWhere: "booking_date >= :from",
			expectedArgs:  map[string]any{"from": "2024-01-01"},
		},
		{
			name:          "in over a slice",
			filter:        dto.Filter{Field: "status", Value: []string{"pending", "scheduled"}, Operator: dto.FilterOperatorIn},
			expectedWhere: "status IN (:status_0, :status_1)",
			expectedArgs:  map[string]any{"status_0": "pending", "status_1": "scheduled"},
		},
		{
			name:          "like lowers both sides",
			filter:        dto.Filter{Field: "name", Value: "ada", Operator: dto.FilterOperatorLike},
			expectedWhere: "LOWER(name) LIKE LOWER(:name)",
			expectedArgs:  map[string]any{"name": "%ada%"},
		},
		{
			name:          "is null",
			filter:        dto.Filter{Field: "enabled", Operator: dto.FilterIsNull},
			expectedWhere: "enabled IS NULL",
			expectedArgs:  map[string]any{},
		},
		{
			name:          "in over a scalar is dropped",
			filter:        dto.Filter{Field: "status", Value: "pending", Operator: dto.FilterOperatorIn},
			expectedWhere: "",
			expectedArgs:  map[string]any{},
		},
		{
			name:          "unknown operator",
			filter:        dto.Filter{Field: "status", Operator: "between"},
			expectedWhere: "",
			expectedArgs:  map[string]any{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			where, args := tt.filter.GetWhereClause()

			assert.Equal(t, tt.expectedWhere, where)
			assert.Equal(t, tt.expectedArgs, args)
		})
	}
}

func TestFilterGroup_GetWhereClause(t *testing.T) {
	mine := dto.FilterGroup{
		Operator: dto.FilterGroupOperatorAnd,
		Filters: []any{
			dto.FilterGroup{
				Operator: dto.FilterGroupOperatorOr,
				Filters: []any{
					dto.Filter{Field: "requester_id", Value: "u1", Operator: dto.FilterOperatorEq},
					dto.Filter{Field: "target_id", Value: "u1", Operator: dto.FilterOperatorEq},
				},
			},
			dto.Filter{Field: "status", Value: "scheduled", Operator: dto.FilterOperatorEq},
			dto.Filter{Field: "topic", Operator: "between"},
			"ignored",
		},
	}

	where, args := mine.GetWhereClause()

	assert.Equal(t, "((requester_id = :requester_id OR target_id = :target_id) AND status = :status)", where)
	assert.Equal(t, map[string]any{"requester_id": "u1", "target_id": "u1", "status": "scheduled"}, args)

	empty := dto.FilterGroup{Operator: dto.FilterGroupOperatorAnd}

	where, args = empty.GetWhereClause()

	assert.Empty(t, where)
	assert.Empty(t, args)
}
