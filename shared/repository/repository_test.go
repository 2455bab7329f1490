package repository

import (
	"context"
	"errors"
	"fmt"
	"nest/infras/otel/mocks"
	"nest/shared/dto"
	"testing"
	"time"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
)

type row struct {
	ID        int       `db:"id"         generated:"true"`
	Name      string    `db:"name"`
	Price     int       `db:"price"`
	CreatedAt time.Time `db:"created_at" generated:"true"`
	Ignored   string
}

type joinedRow struct {
	row
	PropertyName string `db:"property_name" table:"properties" column:"name"`
}

func (joinedRow) GetJoinQuery() string {
	return "LEFT JOIN properties ON properties.id = listings.property_id"
}

func TestGetColumns(t *testing.T) {
	repo := NewRepository[row]("listing", "listings", "id", nil, mocks.NewOtel())

	assert.Equal(t, []string{"name", "price"}, repo.InsertColumns)
	assert.Equal(t, "INSERT INTO listings (name, price) VALUES (:name, :price)", repo.insertQuery())
	assert.Equal(t, "listings.id, listings.name, listings.price, listings.created_at", repo.getSelectQuery(context.Background()))
	assert.Equal(t, "listings.name", repo.getSelectQuery(context.Background(), "name"))
}

func TestGetColumnsWithJoin(t *testing.T) {
	repo := NewRepository[joinedRow]("listing", "listings", "id", nil, mocks.NewOtel())

	assert.Equal(t, []string{"name", "price"}, repo.InsertColumns)
	assert.Equal(t, "LEFT JOIN properties ON properties.id = listings.property_id", repo.join)
	assert.Contains(t, repo.getSelectQuery(context.Background()), "properties.name AS property_name")
}

func TestBuildWhereClause(t *testing.T) {
	repo := NewRepository[row]("listing", "listings", "id", nil, mocks.NewOtel())

	where, args := repo.BuildWhereClause(context.Background(), dto.FilterGroup{})
	assert.Empty(t, where)
	assert.Empty(t, args)

	where, args = repo.BuildWhereClause(context.Background(), dto.And(
		dto.Filter{Field: "price", ArgName: "min_price", Value: 10, Operator: dto.FilterOperatorGreaterEq},
	))
	assert.Equal(t, " WHERE (price >= :min_price) ", where)
	assert.Equal(t, map[string]any{"min_price": 10}, args)
}

func TestGuardsWithoutFilter(t *testing.T) {
	repo := NewRepository[row]("listing", "listings", "id", nil, mocks.NewOtel())
	ctx := context.Background()

	_, err := repo.delete(ctx, nil, dto.FilterGroup{})
	assert.ErrorIs(t, err, errRequiredFilter)

	_, err = repo.update(ctx, nil, map[string]any{"name": "x"}, dto.FilterGroup{})
	assert.ErrorIs(t, err, errRequiredFilter)

	_, err = repo.update(ctx, nil, map[string]any{}, dto.And(dto.Filter{Field: "id", Value: 1, Operator: dto.FilterOperatorEq}))
	assert.ErrorIs(t, err, errEmptyUpdate)
}

func TestIsUniqueViolation(t *testing.T) {
	assert.True(t, IsUniqueViolation(fmt.Errorf("insert: %w", &pq.Error{Code: "23505"})))
	assert.False(t, IsUniqueViolation(&pq.Error{Code: "23503"}))
	assert.False(t, IsUniqueViolation(errors.New("boom")))
}
