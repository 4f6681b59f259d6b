package shared_test

import (
	"context"
	"errors"
	"mentorbook/shared"
	"mentorbook/shared/cache/mocks"
	"mentorbook/shared/constant"
	"mentorbook/shared/dto"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestConvertStringToBool(t *testing.T) {
	yes, no := true, false

	tests := []struct {
		input    string
		expected *bool
	}{
		{input: "", expected: nil},
		{input: "true", expected: &yes},
		{input: "1", expected: &yes},
		{input: "false", expected: &no},
		{input: "maybe", expected: nil},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, shared.ConvertStringToBool(tt.input))
		})
	}
}

func TestConvertStringToInt(t *testing.T) {
	value, err := shared.ConvertStringToInt(" 55 ")
	require.NoError(t, err)
	assert.Equal(t, 55, value)

	_, err = shared.ConvertStringToInt("fifty five")
	assert.ErrorContains(t, err, "failed to convert string to int")
}

func TestCalculateTotalPage(t *testing.T) {
	tests := []struct {
		name     string
		total    int
		limit    int
		expected int
	}{
		{name: "no rows", total: 0, limit: 10, expected: 1},
		{name: "exact pages", total: 20, limit: 10, expected: 2},
		{name: "partial page", total: 21, limit: 10, expected: 3},
		{name: "no limit", total: 21, limit: 0, expected: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, shared.CalculateTotalPage(tt.total, tt.limit))
		})
	}
}

func TestTransformFields(t *testing.T) {
	type update struct {
		FullName *string `db:"full_name"`
		Level    string  `db:"level"`
		Coins    *int    `db:"coins"`
		Note     string
	}

	name := "Ada Lovelace"
	zero := 0

	got := shared.TransformFields(update{FullName: &name, Coins: &zero, Note: "untagged"}, "u1")

	assert.Equal(t, &name, got["full_name"])
	assert.Equal(t, &zero, got["coins"])
	assert.NotContains(t, got, "level")
	assert.NotContains(t, got, "Note")
	assert.Equal(t, "u1", got[constant.FieldModifiedBy])
	assert.IsType(t, time.Time{}, got[constant.FieldModifiedAt])
	assert.Len(t, got, 4)
}

func TestFilterByID(t *testing.T) {
	filter := shared.FilterByID("b1", "id", "bookings")
	where, args := filter.GetWhereClause()

	assert.Equal(t, "(bookings.id = :id)", where)
	assert.Equal(t, map[string]any{"id": "b1"}, args)
}

func TestBuildCacheKey(t *testing.T) {
	assert.Equal(t, "booking:lock:u2:2024-01-01:09:05", shared.BuildCacheKey("booking:lock", "u2", "2024-01-01", "09:05"))
	assert.Equal(t, "persona:gets", shared.BuildCacheKey("persona:gets"))
}

func TestBuildCacheKeyWithQuery(t *testing.T) {
	params := dto.QueryParams{Page: 1, Limit: 10}
	filter := dto.FilterGroup{
		Operator: dto.FilterGroupOperatorAnd,
		Filters: []any{
			dto.Filter{Field: "active", Operator: dto.FilterOperatorEq, Value: true, Table: "personas"},
			dto.Filter{Field: "name", Operator: dto.FilterOperatorLike, Value: "ada", Table: "personas"},
		},
	}

	first := shared.BuildCacheKeyWithQuery("persona:gets", params, filter)

	assert.Equal(t, first, shared.BuildCacheKeyWithQuery("persona:gets", params, filter))
	assert.Contains(t, first, "active=true&name=%ada%")

	params.Page = 2
	assert.NotEqual(t, first, shared.BuildCacheKeyWithQuery("persona:gets", params, filter))
}

func TestInvalidateCaches(t *testing.T) {
	ctrl := gomock.NewController(t)
	redisCache := mocks.NewMockRedisCache(ctrl)

	redisCache.EXPECT().Clear(gomock.Any(), "persona:gets:*").Return(nil)
	shared.InvalidateCaches(context.Background(), redisCache, "persona:gets")

	redisCache.EXPECT().Clear(gomock.Any(), "persona:get:*").Return(errors.New("redis down"))
	shared.InvalidateCaches(context.Background(), redisCache, "persona:get")
}
