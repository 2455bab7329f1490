package dto

import (
	"net/http"
	"nest/internal/domains/appointment/model"
	"nest/shared"
	gDto "nest/shared/dto"
	"nest/shared/timezone"
	"strings"
	"time"
)

const (
	QueryPropertyID  = "property_id"
	QueryStatus      = "status"
	QueryRenterEmail = "renter_email"
)

// InsertAppointment is the booking payload. AppointmentDate is a string
// coerced into an instant; Status defaults to pending.
type InsertAppointment struct {
	PropertyID      *int    `json:"propertyId"      validate:"required,gt=0"`
	RenterName      string  `json:"renterName"      validate:"required,max=255"`
	RenterEmail     string  `json:"renterEmail"     validate:"required,max=255"`
	RenterPhone     string  `json:"renterPhone"     validate:"required,max=20"`
	AppointmentDate string  `json:"appointmentDate" validate:"required,date"`
	AppointmentTime string  `json:"appointmentTime" validate:"required,max=10"`
	Status          string  `json:"status"          validate:"omitempty,max=20"`
	Notes           *string `json:"notes"           validate:"omitempty"`
}

func (r *InsertAppointment) ToModel() (model.Appointment, error) {
	date, err := timezone.ParseDate(r.AppointmentDate)
	if err != nil {
		return model.Appointment{}, err //nolint:wrapcheck
	}

	status := r.Status
	if status == "" {
		status = model.StatusPending
	}

	appointment := model.Appointment{
		RenterName:      r.RenterName,
		RenterEmail:     r.RenterEmail,
		RenterPhone:     r.RenterPhone,
		AppointmentDate: date,
		AppointmentTime: r.AppointmentTime,
		Status:          status,
		Notes:           r.Notes,
	}

	if r.PropertyID != nil {
		appointment.PropertyID = *r.PropertyID
	}

	return appointment, nil
}

type UpdateStatus struct {
	Status string `json:"status" validate:"required,oneof=pending confirmed cancelled completed"`
}

type AppointmentResponse struct {
	ID              int       `json:"id"`
	PropertyID      int       `json:"propertyId"`
	RenterName      string    `json:"renterName"`
	RenterEmail     string    `json:"renterEmail"`
	RenterPhone     string    `json:"renterPhone"`
	AppointmentDate time.Time `json:"appointmentDate"`
	AppointmentTime string    `json:"appointmentTime"`
	Status          string    `json:"status"`
	Notes           *string   `json:"notes"`
	CreatedAt       time.Time `json:"createdAt"`
}

func (r *AppointmentResponse) FromModel(m model.Appointment) {
	r.ID = m.ID
	r.PropertyID = m.PropertyID
	r.RenterName = m.RenterName
	r.RenterEmail = m.RenterEmail
	r.RenterPhone = m.RenterPhone
	r.AppointmentDate = timezone.ToAppTime(m.AppointmentDate)
	r.AppointmentTime = m.AppointmentTime
	r.Status = m.Status
	r.Notes = m.Notes
	r.CreatedAt = timezone.ToAppTime(m.CreatedAt)
}

type GetAppointmentsResponse struct {
	Appointments []AppointmentResponse `json:"appointments"`
	TotalPage    int                   `json:"totalPage"`
	TotalData    int                   `json:"totalData"`
}

func (r *GetAppointmentsResponse) FromModels(models []model.Appointment, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Appointments = make([]AppointmentResponse, len(models))
	for i, mod := range models {
		r.Appointments[i].FromModel(mod)
	}
}

type AppointmentFilter struct {
	PropertyID  *int   `json:"propertyId,omitempty"`
	Status      string `json:"status,omitempty"`
	RenterEmail string `json:"renterEmail,omitempty"`
}

func (f *AppointmentFilter) FromRequest(r *http.Request) {
	query := r.URL.Query()

	f.PropertyID = shared.ConvertStringToInt(query.Get(QueryPropertyID))
	f.Status = strings.ToLower(query.Get(QueryStatus))
	f.RenterEmail = query.Get(QueryRenterEmail)
}

func (f *AppointmentFilter) ToFilterGroup() gDto.FilterGroup {
	group := gDto.And()

	if f.PropertyID != nil {
		group.Add(gDto.Filter{Field: model.FieldPropertyID, Value: *f.PropertyID, Operator: gDto.FilterOperatorEq, Table: model.TableName})
	}

	if f.Status != "" {
		group.Add(gDto.Filter{Field: model.FieldStatus, Value: f.Status, Operator: gDto.FilterOperatorEq, Table: model.TableName})
	}

	if f.RenterEmail != "" {
		group.Add(gDto.Filter{Field: model.FieldRenterEmail, Value: f.RenterEmail, Operator: gDto.FilterOperatorEq, Table: model.TableName})
	}

	return group
}

// ActiveAt matches appointments other than excludeID that hold the slot for
// propertyID on the day of date at slotTime.
func ActiveAt(propertyID int, date time.Time, slotTime string, excludeID int) gDto.FilterGroup {
	start, end := timezone.DayRange(date)

	group := gDto.And(
		gDto.Filter{Field: model.FieldPropertyID, Value: propertyID, Operator: gDto.FilterOperatorEq, Table: model.TableName},
		gDto.Filter{Field: model.FieldAppointmentDate, ArgName: "day_start", Value: start, Operator: gDto.FilterOperatorGreaterEq, Table: model.TableName},
		gDto.Filter{Field: model.FieldAppointmentDate, ArgName: "day_end", Value: end, Operator: gDto.FilterOperatorLess, Table: model.TableName},
		gDto.Filter{Field: model.FieldAppointmentTime, Value: slotTime, Operator: gDto.FilterOperatorEq, Table: model.TableName},
		gDto.Filter{Field: model.FieldStatus, Value: model.ActiveStatuses, Operator: gDto.FilterOperatorIn, Table: model.TableName},
	)

	if excludeID != 0 {
		group.Add(gDto.Filter{Field: model.FieldID, ArgName: "exclude_id", Value: excludeID, Operator: gDto.FilterOperatorNotEq, Table: model.TableName})
	}

	return group
}

// ByIDs matches the appointments with the given ids.
func ByIDs(ids []int) gDto.FilterGroup {
	return gDto.And(gDto.Filter{Field: model.FieldID, Value: ids, Operator: gDto.FilterOperatorIn, Table: model.TableName})
}

// PendingBefore matches pending appointments whose date is before t.
func PendingBefore(t time.Time) gDto.FilterGroup {
	return gDto.And(
		gDto.Filter{Field: model.FieldStatus, Value: model.StatusPending, Operator: gDto.FilterOperatorEq, Table: model.TableName},
		gDto.Filter{Field: model.FieldAppointmentDate, ArgName: "before", Value: t, Operator: gDto.FilterOperatorLess, Table: model.TableName},
	)
}
