package shared

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"math"
	"nest/shared/cache"
	"nest/shared/constant"
	"nest/shared/dto"
	"nest/shared/failure"
	"reflect"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"
)

const (
	cacheKeySeparator = ":"
	cacheQueryHashLen = 16
)

func ConvertStringToBool(value string) *bool {
	if value == "" {
		return nil
	}

	boolValue, err := strconv.ParseBool(value)
	if err != nil {
		log.Error().Err(err).Msg("failed to convert string to bool")

		return nil
	}

	return &boolValue
}

func ConvertStringToInt(value string) *int {
	if value == "" {
		return nil
	}

	intValue, err := strconv.Atoi(value)
	if err != nil {
		log.Error().Err(err).Str("value", value).Msg("failed to convert string to int")

		return nil
	}

	return &intValue
}

// ParseID parses a positive integer path id.
func ParseID(value string) (int, error) {
	id, err := strconv.Atoi(value)
	if err != nil || id <= 0 {
		return 0, failure.InvalidIDParam
	}

	return id, nil
}

func CalculateTotalPage(total, limit int) (res int) {
	if total == 0 || limit <= 0 {
		res = 1
	} else {
		res = int(math.Ceil(float64(total) / float64(limit)))
	}

	return res
}

// TransformFields converts the non-zero fields of a struct, or the value a
// pointer refers to, into a column to value map keyed by the db tag.
func TransformFields(data any) map[string]any {
	val := reflect.ValueOf(data)
	if val.Kind() == reflect.Pointer {
		val = val.Elem()
	}

	typ := val.Type()
	updatedFields := make(map[string]any)

	for index := range val.NumField() {
		field := val.Field(index)
		if field.IsZero() {
			continue
		}

		fieldName := typ.Field(index).Tag.Get("db")
		if fieldName == "" || fieldName == "-" {
			continue
		}

		if field.Kind() == reflect.Pointer {
			field = field.Elem()
		}

		updatedFields[fieldName] = field.Interface()
	}

	return updatedFields
}

func FilterByID(id any, fieldID, table string) dto.FilterGroup {
	return dto.And(
		dto.Filter{
			Field:    fieldID,
			Value:    id,
			Operator: dto.FilterOperatorEq,
			Table:    table,
		},
	)
}

// BuildCacheKey joins prefix and parts with ':'.
func BuildCacheKey(prefix string, parts ...any) string {
	segments := make([]string, 0, len(parts)+1)
	segments = append(segments, prefix)

	for _, part := range parts {
		segments = append(segments, fmt.Sprint(part))
	}

	return strings.Join(segments, cacheKeySeparator)
}

// BuildCacheKeyWithQuery derives a key for a list query. The filter is
// hashed so keys stay short and stable regardless of filter size.
func BuildCacheKeyWithQuery(prefix string, params dto.QueryParams, filter any) string {
	raw, err := json.Marshal(filter)
	if err != nil {
		log.Error().Err(err).Str("prefix", prefix).Msg("failed to marshal cache filter")
	}

	sum := sha256.Sum256(raw)

	return BuildCacheKey(
		prefix,
		params.Page,
		params.Limit,
		params.SortBy,
		params.SortDir,
		hex.EncodeToString(sum[:])[:cacheQueryHashLen],
	)
}

// InvalidateCaches drops every key under the given prefixes. Errors are
// logged, not returned; callers run it off the request path.
func InvalidateCaches(ctx context.Context, redisCache cache.RedisCache, prefixes ...string) {
	for _, prefix := range prefixes {
		if err := redisCache.Clear(ctx, prefix+constant.Asterix); err != nil {
			log.Error().Err(err).Str("prefix", prefix).Msg("failed to invalidate cache")
		}
	}
}
