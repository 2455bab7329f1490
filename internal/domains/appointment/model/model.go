package model

import (
	"nest/shared/timezone"
	"slices"
	"strings"
	"time"
)

const (
	TableName  = "appointments"
	EntityName = "appointment"

	CachePrefix = "appointment"

	FieldID              = "id"
	FieldPropertyID      = "property_id"
	FieldRenterName      = "renter_name"
	FieldRenterEmail     = "renter_email"
	FieldRenterPhone     = "renter_phone"
	FieldAppointmentDate = "appointment_date"
	FieldAppointmentTime = "appointment_time"
	FieldStatus          = "status"
	FieldNotes           = "notes"
	FieldCreatedAt       = "created_at"
)

const (
	StatusPending   = "pending"
	StatusConfirmed = "confirmed"
	StatusCancelled = "cancelled"
	StatusCompleted = "completed"
	StatusExpired   = "expired"
)

// ActiveStatuses hold a time slot.
var ActiveStatuses = []string{StatusPending, StatusConfirmed, StatusCompleted}

var SortableFields = []string{FieldID, FieldPropertyID, FieldAppointmentDate, FieldStatus, FieldCreatedAt}

type Appointment struct {
	ID              int       `db:"id"               generated:"true"`
	PropertyID      int       `db:"property_id"`
	RenterName      string    `db:"renter_name"`
	RenterEmail     string    `db:"renter_email"`
	RenterPhone     string    `db:"renter_phone"`
	AppointmentDate time.Time `db:"appointment_date"`
	AppointmentTime string    `db:"appointment_time"`
	Status          string    `db:"status"`
	Notes           *string   `db:"notes"`
	CreatedAt       time.Time `db:"created_at"       generated:"true"`
}

func IsActive(status string) bool {
	return slices.Contains(ActiveStatuses, status)
}

var clockLayouts = []string{"15:04", "15:04:05", "3:04PM", "3:04 PM", "3PM", "3 PM"}

// StartsAt is AppointmentTime on the app-timezone day of AppointmentDate.
// A time that does not parse counts as the end of that day.
func (a Appointment) StartsAt() time.Time {
	start, end := timezone.DayRange(a.AppointmentDate)
	clock := strings.ToUpper(strings.TrimSpace(a.AppointmentTime))

	for _, layout := range clockLayouts {
		t, err := time.Parse(layout, clock)
		if err == nil {
			return time.Date(start.Year(), start.Month(), start.Day(), t.Hour(), t.Minute(), t.Second(), 0, start.Location())
		}
	}

	return end
}
