package dto_test

import (
	"net/http/httptest"
	"net/url"
	"nest/shared/constant"
	"nest/shared/dto"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestQueryParams_FromRequest(t *testing.T) {
	tests := []struct {
		name           string
		queryParams    map[string]string
		defaultRequest bool
		expected       dto.QueryParams
	}{
		{
			name:        "all valid parameters",
			queryParams: map[string]string{"page": "2", "limit": "20", "sort_by": "name", "sort_dir": "asc"},
			expected:    dto.QueryParams{Page: 2, Limit: 20, SortBy: "name", SortDir: "ASC"},
		},
		{
			name:           "defaults with no parameters",
			queryParams:    map[string]string{},
			defaultRequest: true,
			expected:       dto.QueryParams{Page: constant.DefaultValuePage, Limit: constant.DefaultValueLimit},
		},
		{
			name:        "no defaults with no parameters",
			queryParams: map[string]string{},
			expected:    dto.QueryParams{},
		},
		{
			name:           "invalid page falls back",
			queryParams:    map[string]string{"page": "invalid"},
			defaultRequest: true,
			expected:       dto.QueryParams{Page: constant.DefaultValuePage, Limit: constant.DefaultValueLimit},
		},
		{
			name:           "negative limit falls back",
			queryParams:    map[string]string{"limit": "-10"},
			defaultRequest: true,
			expected:       dto.QueryParams{Page: constant.DefaultValuePage, Limit: constant.DefaultValueLimit},
		},
		{
			name:           "limit is capped",
			queryParams:    map[string]string{"limit": "5000"},
			defaultRequest: true,
			expected:       dto.QueryParams{Page: constant.DefaultValuePage, Limit: 100},
		},
		{
			name:        "unknown sort direction ignored",
			queryParams: map[string]string{"sort_dir": "sideways"},
			expected:    dto.QueryParams{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			query := url.Values{}
			for key, value := range tt.queryParams {
				query.Set(key, value)
			}

			req := httptest.NewRequest("GET", "/v1/properties?"+query.Encode(), nil)

			params := dto.QueryParams{}
			params.FromRequest(req, tt.defaultRequest)

			assert.Equal(t, tt.expected, params)
		})
	}
}

func TestQueryParams_Sortable(t *testing.T) {
	params := dto.QueryParams{SortBy: "price; DROP TABLE properties"}
	params.Sortable("price", "name")

	assert.Equal(t, constant.DefaultValueSortBy, params.SortBy)
	assert.Equal(t, constant.DefaultValueSortDir, params.SortDir)

	params = dto.QueryParams{SortBy: "price", SortDir: dto.SortDirAsc}
	params.Sortable("price", "name")

	assert.Equal(t, "price", params.SortBy)
	assert.Equal(t, dto.SortDirAsc, params.SortDir)
}

func TestFilter_GetWhereClause(t *testing.T) {
	tests := []struct {
		name   string
		filter dto.Filter
		where  string
		args   map[string]any
	}{
		{
			name:   "eq with table",
			filter: dto.Filter{Field: "id", Value: 1, Operator: dto.FilterOperatorEq, Table: "properties"},
			where:  "properties.id = :id",
			args:   map[string]any{"id": 1},
		},
		{
			name:   "like",
			filter: dto.Filter{Field: "name", Value: "loft", Operator: dto.FilterOperatorLike},
			where:  "LOWER(name) LIKE LOWER(:name)",
			args:   map[string]any{"name": "%loft%"},
		},
		{
			name:   "in slice",
			filter: dto.Filter{Field: "status", Value: []string{"pending", "confirmed"}, Operator: dto.FilterOperatorIn},
			where:  "status IN (:status_0, :status_1)",
			args:   map[string]any{"status_0": "pending", "status_1": "confirmed"},
		},
		{
			name:   "in empty slice",
			filter: dto.Filter{Field: "status", Value: []string{}, Operator: dto.FilterOperatorIn},
			where:  "FALSE",
			args:   map[string]any{},
		},
		{
			name:   "less with arg name",
			filter: dto.Filter{ArgName: "day_end", Field: "date", Value: 5, Operator: dto.FilterOperatorLess},
			where:  "date < :day_end",
			args:   map[string]any{"day_end": 5},
		},
		{
			name:   "greater eq",
			filter: dto.Filter{ArgName: "min_price", Field: "price", Value: 100, Operator: dto.FilterOperatorGreaterEq},
			where:  "price >= :min_price",
			args:   map[string]any{"min_price": 100},
		},
		{
			name:   "is null",
			filter: dto.Filter{Field: "notes", Operator: dto.FilterIsNull},
			where:  "notes IS NULL",
			args:   map[string]any{},
		},
		{
			name:   "unknown operator",
			filter: dto.Filter{Field: "notes", Operator: "between"},
			where:  "",
			args:   map[string]any{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			where, args := tt.filter.GetWhereClause()

			assert.Equal(t, tt.where, where)
			assert.Equal(t, tt.args, args)
		})
	}
}

func TestFilterGroup_GetWhereClause(t *testing.T) {
	group := dto.And(
		dto.Filter{Field: "property_id", Value: 3, Operator: dto.FilterOperatorEq},
		dto.Or(
			dto.Filter{Field: "is_blocked", Value: true, Operator: dto.FilterOperatorEq},
			dto.Filter{Field: "is_booked", Value: true, Operator: dto.FilterOperatorEq},
		),
		dto.Filter{Field: "ignored", Operator: "unknown"},
	)

	where, args := group.GetWhereClause()

	assert.Equal(t, "(property_id = :property_id AND (is_blocked = :is_blocked OR is_booked = :is_booked))", where)
	assert.Equal(t, map[string]any{"property_id": 3, "is_blocked": true, "is_booked": true}, args)

	empty := dto.FilterGroup{}
	where, args = empty.GetWhereClause()

	assert.Empty(t, where)
	assert.Empty(t, args)
}
