package dto_test

import (
	"net/http"
	"net/http/httptest"
	"nest/internal/domains/timeslot/model/dto"
	"nest/shared/validator"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInsertTimeSlot(t *testing.T) {
	t.Run("defaults flags to false", func(t *testing.T) {
		var req dto.InsertTimeSlot

		body := `{"propertyId": 4, "date": "2024-06-01T10:00:00Z", "time": "10:00"}`
		require.NoError(t, validator.Validate(strings.NewReader(body), &req))

		slot, err := req.ToModel()
		require.NoError(t, err)

		assert.Equal(t, 4, slot.PropertyID)
		assert.True(t, slot.Date.Equal(time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)))
		assert.False(t, slot.IsBlocked)
		assert.False(t, slot.IsBooked)
		assert.True(t, slot.Available())
	})

	t.Run("keeps explicit flags", func(t *testing.T) {
		var req dto.InsertTimeSlot

		body := `{"propertyId": 4, "date": "2024-06-01", "time": "10:00", "isBlocked": true}`
		require.NoError(t, validator.Validate(strings.NewReader(body), &req))

		slot, err := req.ToModel()
		require.NoError(t, err)
		assert.True(t, slot.IsBlocked)
		assert.False(t, slot.Available())
	})

	t.Run("any instant of a day is the same day", func(t *testing.T) {
		var slots []time.Time

		for _, date := range []string{"2024-06-01", "2024-06-01T10:00:00Z", "2024-06-01T23:59:59Z"} {
			req := dto.InsertTimeSlot{Date: date, Time: "10:00"}

			slot, err := req.ToModel()
			require.NoError(t, err)

			slots = append(slots, slot.Date)
		}

		assert.True(t, slots[0].Equal(slots[1]))
		assert.True(t, slots[0].Equal(slots[2]))
	})

	tests := []struct {
		name    string
		body    string
		wantErr string
	}{
		{name: "bad date", body: `{"propertyId": 4, "date": "June 1st", "time": "10:00"}`, wantErr: "date must be a valid date"},
		{name: "long time", body: `{"propertyId": 4, "date": "2024-06-01", "time": "10:00:00 AM"}`, wantErr: "time must be at most 10 characters"},
		{name: "missing property", body: `{"date": "2024-06-01", "time": "10:00"}`, wantErr: "propertyId is required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var req dto.InsertTimeSlot

			err := validator.Validate(strings.NewReader(tt.body), &req)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestTimeSlotFilter(t *testing.T) {
	t.Run("available slots on a day", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/v1/time-slots?property_id=2&date=2024-06-01&available=true", nil)

		var filter dto.TimeSlotFilter
		require.NoError(t, filter.FromRequest(req))

		group := filter.ToFilterGroup()
		where, args := group.GetWhereClause()

		assert.Equal(t, "(time_slots.property_id = :property_id AND "+
			"(time_slots.date >= :day_start AND time_slots.date < :day_end) AND "+
			"time_slots.is_blocked = :available_blocked AND time_slots.is_booked = :available_booked)", where)
		assert.Equal(t, 2, args["property_id"])

		start, ok := args["day_start"].(time.Time)
		require.True(t, ok)

		end, ok := args["day_end"].(time.Time)
		require.True(t, ok)
		assert.Equal(t, 24*time.Hour, end.Sub(start))
	})

	t.Run("unavailable slots", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/v1/time-slots?available=false", nil)

		var filter dto.TimeSlotFilter
		require.NoError(t, filter.FromRequest(req))

		group := filter.ToFilterGroup()
		where, _ := group.GetWhereClause()

		assert.Equal(t, "((time_slots.is_blocked = :unavailable_blocked OR time_slots.is_booked = :unavailable_booked))", where)
	})

	t.Run("invalid date", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/v1/time-slots?date=tomorrow", nil)

		var filter dto.TimeSlotFilter
		assert.Error(t, filter.FromRequest(req))
	})
}

func TestSlotAt(t *testing.T) {
	group := dto.SlotAt(9, time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC), "10:00")
	where, args := group.GetWhereClause()

	assert.Contains(t, where, "time_slots.time = :time")
	assert.Equal(t, 9, args["property_id"])
	assert.Equal(t, "10:00", args["time"])
}
