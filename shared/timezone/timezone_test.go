package timezone_test

import (
	"nest/shared/timezone"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimezoneInit(t *testing.T) {
	assert.False(t, timezone.Now().IsZero())
	assert.NotNil(t, timezone.GetLocation())
}

func TestTimezoneFormat(t *testing.T) {
	testTime := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	assert.NotEmpty(t, timezone.Format(testTime, "2006-01-02 15:04:05 MST"))

	parsed, err := timezone.Parse(timezone.LayoutDate, "2024-01-01")
	require.NoError(t, err)
	assert.False(t, parsed.IsZero())
}

func TestParseDate(t *testing.T) {
	loc := timezone.GetLocation()

	tests := []struct {
		name    string
		value   string
		want    time.Time
		wantErr bool
	}{
		{
			name:  "rfc3339 utc",
			value: "2024-06-01T10:00:00Z",
			want:  time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC),
		},
		{
			name:  "rfc3339 with offset",
			value: "2024-06-01T17:00:00+07:00",
			want:  time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC),
		},
		{
			name:  "rfc3339 nano",
			value: "2024-06-01T10:00:00.123Z",
			want:  time.Date(2024, 6, 1, 10, 0, 0, 123000000, time.UTC),
		},
		{
			name:  "local date time",
			value: "2024-06-01T10:00:00",
			want:  time.Date(2024, 6, 1, 10, 0, 0, 0, loc),
		},
		{
			name:  "bare date",
			value: "2024-06-01",
			want:  time.Date(2024, 6, 1, 0, 0, 0, 0, loc),
		},
		{name: "empty", value: "", wantErr: true},
		{name: "garbage", value: "next tuesday", wantErr: true},
		{name: "impossible date", value: "2024-02-30", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := timezone.ParseDate(tt.value)
			if tt.wantErr {
				assert.ErrorIs(t, err, timezone.ErrInvalidDate)

				return
			}

			require.NoError(t, err)
			assert.True(t, tt.want.Equal(got), "want %s got %s", tt.want, got)
		})
	}
}

func TestDayRange(t *testing.T) {
	loc := timezone.GetLocation()
	start, end := timezone.DayRange(time.Date(2024, 6, 1, 15, 30, 0, 0, loc))

	assert.True(t, time.Date(2024, 6, 1, 0, 0, 0, 0, loc).Equal(start))
	assert.True(t, time.Date(2024, 6, 2, 0, 0, 0, 0, loc).Equal(end))
}
