package dto_test

import (
	"net/http"
	"nest/internal/domains/appointment/model"
	"nest/internal/domains/appointment/model/dto"
	"nest/shared/failure"
	"nest/shared/validator"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validAppointment = `{
	"propertyId": 1,
	"renterName": "Dana Lee",
	"renterEmail": "dana@example.com",
	"renterPhone": "+1 555 0100",
	"appointmentDate": "2024-06-01T10:00:00Z",
	"appointmentTime": "10:00"
}`

func TestInsertAppointment_DateCoercion(t *testing.T) {
	var req dto.InsertAppointment

	require.NoError(t, validator.Validate(strings.NewReader(validAppointment), &req))

	appointment, err := req.ToModel()
	require.NoError(t, err)

	assert.True(t, appointment.AppointmentDate.Equal(time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)))
	assert.Equal(t, model.StatusPending, appointment.Status)
	assert.Equal(t, 1, appointment.PropertyID)
	assert.Nil(t, appointment.Notes)
}

func TestInsertAppointment_Validate(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr string
	}{
		{
			name:    "missing renterEmail",
			body:    strings.Replace(validAppointment, `"renterEmail": "dana@example.com",`, ``, 1),
			wantErr: "renterEmail is required",
		},
		{
			name:    "phone too long",
			body:    strings.Replace(validAppointment, `"+1 555 0100"`, `"+1 555 0100 0100 0100 01"`, 1),
			wantErr: "renterPhone must be at most 20 characters",
		},
		{
			name:    "unparsable date",
			body:    strings.Replace(validAppointment, `"2024-06-01T10:00:00Z"`, `"01/06/2024"`, 1),
			wantErr: "appointmentDate must be a valid date",
		},
		{
			name:    "status too long",
			body:    strings.Replace(validAppointment, `"appointmentTime": "10:00"`, `"appointmentTime": "10:00", "status": "waiting-for-the-landlord"`, 1),
			wantErr: "status must be at most 20 characters",
		},
		{
			name:    "date as number",
			body:    strings.Replace(validAppointment, `"2024-06-01T10:00:00Z"`, `20240601`, 1),
			wantErr: "appointmentDate must be of type string",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var req dto.InsertAppointment

			err := validator.Validate(strings.NewReader(tt.body), &req)

			require.Error(t, err)
			assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestInsertAppointment_FreeFormFields(t *testing.T) {
	body := strings.Replace(validAppointment, `"dana@example.com"`, `"dana at the front desk"`, 1)
	body = strings.Replace(body, `"appointmentTime": "10:00"`, `"appointmentTime": "10:00", "status": "walk-in"`, 1)

	var req dto.InsertAppointment

	require.NoError(t, validator.Validate(strings.NewReader(body), &req))

	appointment, err := req.ToModel()
	require.NoError(t, err)

	assert.Equal(t, "dana at the front desk", appointment.RenterEmail)
	assert.Equal(t, "walk-in", appointment.Status)
}

func TestUpdateStatus_Validate(t *testing.T) {
	var req dto.UpdateStatus

	err := validator.Validate(strings.NewReader(`{"status": "walk-in"}`), &req)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status must be one of")

	require.NoError(t, validator.Validate(strings.NewReader(`{"status": "cancelled"}`), &req))
}

func TestInsertAppointment_ExplicitStatus(t *testing.T) {
	notes := "ring twice"
	req := dto.InsertAppointment{AppointmentDate: "2024-06-01", Status: model.StatusConfirmed, Notes: &notes}

	appointment, err := req.ToModel()
	require.NoError(t, err)

	assert.Equal(t, model.StatusConfirmed, appointment.Status)
	assert.Equal(t, &notes, appointment.Notes)
}

func TestAppointmentFilter(t *testing.T) {
	propertyID := 4
	filter := dto.AppointmentFilter{PropertyID: &propertyID, Status: "pending", RenterEmail: "dana@example.com"}

	group := filter.ToFilterGroup()
	where, args := group.GetWhereClause()

	assert.Equal(t, "(appointments.property_id = :property_id AND appointments.status = :status AND appointments.renter_email = :renter_email)", where)
	assert.Equal(t, map[string]any{"property_id": 4, "status": "pending", "renter_email": "dana@example.com"}, args)
}

func TestActiveAt(t *testing.T) {
	date := time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)

	group := dto.ActiveAt(1, date, "10:00", 0)
	where, args := group.GetWhereClause()

	assert.Contains(t, where, "appointments.status IN (:status_0, :status_1, :status_2)")
	assert.NotContains(t, where, "exclude_id")
	assert.Equal(t, "10:00", args["appointment_time"])

	group = dto.ActiveAt(1, date, "10:00", 9)
	where, args = group.GetWhereClause()

	assert.Contains(t, where, "appointments.id != :exclude_id")
	assert.Equal(t, 9, args["exclude_id"])
}

func TestModelIsActive(t *testing.T) {
	assert.True(t, model.IsActive(model.StatusPending))
	assert.True(t, model.IsActive(model.StatusConfirmed))
	assert.False(t, model.IsActive(model.StatusCancelled))
	assert.False(t, model.IsActive(model.StatusExpired))
}

func TestStartsAt(t *testing.T) {
	day := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		clock string
		want  time.Time
	}{
		{clock: "10:00", want: time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)},
		{clock: "14:30:15", want: time.Date(2024, 6, 1, 14, 30, 15, 0, time.UTC)},
		{clock: "3:15 pm", want: time.Date(2024, 6, 1, 15, 15, 0, 0, time.UTC)},
		{clock: "9AM", want: time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)},
		{clock: "sometime", want: time.Date(2024, 6, 2, 0, 0, 0, 0, time.UTC)},
	}

	for _, tt := range tests {
		t.Run(tt.clock, func(t *testing.T) {
			appointment := model.Appointment{AppointmentDate: day.Add(7 * time.Hour), AppointmentTime: tt.clock}

			assert.True(t, appointment.StartsAt().Equal(tt.want), appointment.StartsAt())
		})
	}
}

func TestPendingBefore(t *testing.T) {
	cutoff := time.Date(2024, 6, 2, 0, 0, 0, 0, time.UTC)

	group := dto.PendingBefore(cutoff)
	where, args := group.GetWhereClause()

	assert.Equal(t, "(appointments.status = :status AND appointments.appointment_date < :before)", where)
	assert.Equal(t, map[string]any{"status": "pending", "before": cutoff}, args)
}

func TestByIDs(t *testing.T) {
	group := dto.ByIDs([]int{5, 7})
	where, args := group.GetWhereClause()

	assert.Equal(t, "(appointments.id IN (:id_0, :id_1))", where)
	assert.Equal(t, map[string]any{"id_0": 5, "id_1": 7}, args)
}
