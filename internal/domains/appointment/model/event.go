package model

import "time"

const (
	EventCreated       = "appointment.created"
	EventStatusChanged = "appointment.status_changed"
)

// Event is published to the appointment topic after a write commits.
type Event struct {
	Type            string    `json:"type"`
	AppointmentID   int       `json:"appointmentId"`
	PropertyID      int       `json:"propertyId"`
	RenterName      string    `json:"renterName"`
	RenterEmail     string    `json:"renterEmail"`
	AppointmentDate time.Time `json:"appointmentDate"`
	AppointmentTime string    `json:"appointmentTime"`
	Status          string    `json:"status"`
	PreviousStatus  string    `json:"previousStatus,omitempty"`
	OccurredAt      time.Time `json:"occurredAt"`
}

func NewEvent(eventType string, appointment Appointment, previousStatus string, occurredAt time.Time) Event {
	return Event{
		Type:            eventType,
		AppointmentID:   appointment.ID,
		PropertyID:      appointment.PropertyID,
		RenterName:      appointment.RenterName,
		RenterEmail:     appointment.RenterEmail,
		AppointmentDate: appointment.AppointmentDate,
		AppointmentTime: appointment.AppointmentTime,
		Status:          appointment.Status,
		PreviousStatus:  previousStatus,
		OccurredAt:      occurredAt,
	}
}
