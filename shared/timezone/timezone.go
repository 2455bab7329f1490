package timezone

import (
	"errors"
	"nest/config"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

const (
	LayoutDate          = "2006-01-02"
	LayoutLocalDateTime = "2006-01-02T15:04:05"
	hoursPerDay         = 24
)

var ErrInvalidDate = errors.New("invalid date")

var (
	appLocation *time.Location
	once        sync.Once
)

func location() *time.Location {
	once.Do(func() {
		name := config.Get().App.Timezone
		if name == "" {
			log.Warn().Msg("No timezone configured, using UTC as default")

			appLocation = time.UTC

			return
		}

		loc, err := time.LoadLocation(name)
		if err != nil {
			log.Error().
				Err(err).
				Str("timezone", name).
				Msg("Failed to load timezone, falling back to UTC. Please use standard timezone names like 'Asia/Jakarta', 'UTC', 'America/New_York'")

			appLocation = time.UTC

			return
		}

		appLocation = loc
		log.Info().Str("timezone", name).Msg("Application timezone initialized")
	})

	return appLocation
}

// Now returns the current time in the application timezone.
func Now() time.Time {
	return time.Now().In(location())
}

func ToAppTime(t time.Time) time.Time {
	return t.In(location())
}

func GetLocation() *time.Location {
	return location()
}

// Parse parses a time string in the application timezone.
func Parse(layout, value string) (time.Time, error) {
	return time.ParseInLocation(layout, value, location()) //nolint:wrapcheck
}

func Format(t time.Time, layout string) string {
	return ToAppTime(t).Format(layout)
}

// ParseDate coerces a client supplied date string into an instant. Strings
// carrying an offset keep it; bare dates and local date-times are read in
// the application timezone.
func ParseDate(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, ErrInvalidDate
	}

	for _, layout := range []string{time.RFC3339Nano, time.RFC3339} {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}

	for _, layout := range []string{LayoutLocalDateTime, LayoutDate} {
		if t, err := Parse(layout, value); err == nil {
			return t, nil
		}
	}

	return time.Time{}, ErrInvalidDate
}

// DayRange returns the half-open interval [start, end) of the calendar day
// containing t, in the application timezone.
func DayRange(t time.Time) (start, end time.Time) {
	local := ToAppTime(t)
	start = time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, location())
	end = start.AddDate(0, 0, 1)

	if end.Sub(start) <= 0 {
		end = start.Add(hoursPerDay * time.Hour)
	}

	return start, end
}
