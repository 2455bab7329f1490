package dto_test

import (
	"net/http"
	"net/http/httptest"
	"nest/internal/domains/property/model"
	"nest/internal/domains/property/model/dto"
	gDto "nest/shared/dto"
	"nest/shared/failure"
	"nest/shared/validator"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validProperty = `{
	"name": "Harbor Loft",
	"address": "12 Pier Road",
	"price": 250000,
	"bedrooms": 2,
	"bathrooms": 1,
	"sqft": 900,
	"imageUrl": "https://cdn.example.com/loft.jpg"
}`

func TestInsertProperty_Validate(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr string
	}{
		{name: "valid payload", body: validProperty},
		{
			name:    "fractional price",
			body:    strings.Replace(validProperty, `"price": 250000`, `"price": 12.5`, 1),
			wantErr: "price must be of type int",
		},
		{
			name:    "string price",
			body:    strings.Replace(validProperty, `"price": 250000`, `"price": "100"`, 1),
			wantErr: "price must be of type int",
		},
		{
			name:    "missing price",
			body:    strings.Replace(validProperty, `"price": 250000,`, ``, 1),
			wantErr: "price is required",
		},
		{
			name:    "negative sqft",
			body:    strings.Replace(validProperty, `"sqft": 900`, `"sqft": -1`, 1),
			wantErr: "sqft must be greater than or equal to 0",
		},
		{
			name:    "empty name",
			body:    strings.Replace(validProperty, `"Harbor Loft"`, `""`, 1),
			wantErr: "name is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var req dto.InsertProperty

			err := validator.Validate(strings.NewReader(tt.body), &req)

			if tt.wantErr == "" {
				require.NoError(t, err)
				assert.Equal(t, 250000, *req.Price)

				return
			}

			require.Error(t, err)
			assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestInsertProperty_ToModel(t *testing.T) {
	price, beds, baths, sqft := 100, 3, 2, 1200
	desc := "corner unit"

	req := dto.InsertProperty{
		Name:        "Oak House",
		Address:     "1 Oak St",
		Price:       &price,
		Bedrooms:    &beds,
		Bathrooms:   &baths,
		Sqft:        &sqft,
		ImageURL:    "https://cdn.example.com/oak.jpg",
		Description: &desc,
	}

	assert.Equal(t, model.Property{
		Name:        "Oak House",
		Address:     "1 Oak St",
		Price:       100,
		Bedrooms:    3,
		Bathrooms:   2,
		Sqft:        1200,
		ImageURL:    "https://cdn.example.com/oak.jpg",
		Description: &desc,
	}, req.ToModel())
}

func TestUpdateProperty_IsEmpty(t *testing.T) {
	assert.True(t, (&dto.UpdateProperty{}).IsEmpty())

	price := 5
	assert.False(t, (&dto.UpdateProperty{Price: &price}).IsEmpty())
}

func TestGetPropertiesResponse_FromModels(t *testing.T) {
	var res dto.GetPropertiesResponse

	res.FromModels([]model.Property{{ID: 1, Name: "A"}, {ID: 2, Name: "B"}}, 21, 10)

	assert.Equal(t, 21, res.TotalData)
	assert.Equal(t, 3, res.TotalPage)
	require.Len(t, res.Properties, 2)
	assert.Equal(t, "B", res.Properties[1].Name)
}

func TestPropertyFilter(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/v1/properties?min_price=100&max_price=900&bedrooms=2&name=loft", nil)

	var filter dto.PropertyFilter
	filter.FromRequest(req)

	require.NotNil(t, filter.MinPrice)
	assert.Equal(t, 100, *filter.MinPrice)
	assert.Equal(t, "loft", filter.Name)

	group := filter.ToFilterGroup()
	where, args := group.GetWhereClause()

	assert.Equal(t, "(properties.price >= :min_price AND properties.price <= :max_price AND properties.bedrooms = :bedrooms AND LOWER(properties.name) LIKE LOWER(:name))", where)
	assert.Equal(t, map[string]any{"min_price": 100, "max_price": 900, "bedrooms": 2, "name": "%loft%"}, args)
}

func TestPropertyFilter_Empty(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/v1/properties?min_price=abc", nil)

	var filter dto.PropertyFilter
	filter.FromRequest(req)

	group := filter.ToFilterGroup()
	where, _ := group.GetWhereClause()

	assert.Empty(t, where)
	assert.Equal(t, gDto.FilterGroupOperatorAnd, group.Operator)
}
