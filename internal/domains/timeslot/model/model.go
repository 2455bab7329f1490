package model

import "time"

const (
	TableName  = "time_slots"
	EntityName = "time_slot"

	// CachePrefix namespaces every cached time slot read.
	CachePrefix = "timeslot"

	FieldID         = "id"
	FieldPropertyID = "property_id"
	FieldDate       = "date"
	FieldTime       = "time"
	FieldIsBlocked  = "is_blocked"
	FieldIsBooked   = "is_booked"
)

var SortableFields = []string{FieldID, FieldPropertyID, FieldDate, FieldTime}

type TimeSlot struct {
	ID         int       `db:"id"          generated:"true"`
	PropertyID int       `db:"property_id"`
	Date       time.Time `db:"date"`
	Time       string    `db:"time"`
	IsBlocked  bool      `db:"is_blocked"`
	IsBooked   bool      `db:"is_booked"`
}

// Available reports whether the slot can take a booking.
func (t TimeSlot) Available() bool {
	return !t.IsBlocked && !t.IsBooked
}
