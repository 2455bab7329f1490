package dto

import (
	"net/http"
	"nest/internal/domains/timeslot/model"
	"nest/shared"
	gDto "nest/shared/dto"
	"nest/shared/timezone"
	"time"
)

const (
	QueryPropertyID = "property_id"
	QueryDate       = "date"
	QueryAvailable  = "available"

	argDayStart = "day_start"
	argDayEnd   = "day_end"
)

// InsertTimeSlot is the create payload. Date accepts the same formats as an
// appointment date and is stored as the start of its app-timezone day.
type InsertTimeSlot struct {
	PropertyID *int   `json:"propertyId" validate:"required,gt=0"`
	Date       string `json:"date"       validate:"required,date"`
	Time       string `json:"time"       validate:"required,max=10"`
	IsBlocked  *bool  `json:"isBlocked"  validate:"omitempty"`
	IsBooked   *bool  `json:"isBooked"   validate:"omitempty"`
}

func (r *InsertTimeSlot) ToModel() (model.TimeSlot, error) {
	date, err := timezone.ParseDate(r.Date)
	if err != nil {
		return model.TimeSlot{}, err //nolint:wrapcheck
	}

	day, _ := timezone.DayRange(date)

	slot := model.TimeSlot{
		Date: day,
		Time: r.Time,
	}

	if r.PropertyID != nil {
		slot.PropertyID = *r.PropertyID
	}

	if r.IsBlocked != nil {
		slot.IsBlocked = *r.IsBlocked
	}

	if r.IsBooked != nil {
		slot.IsBooked = *r.IsBooked
	}

	return slot, nil
}

type SetBlocked struct {
	IsBlocked *bool `json:"isBlocked" validate:"required"`
}

type TimeSlotResponse struct {
	ID         int       `json:"id"`
	PropertyID int       `json:"propertyId"`
	Date       time.Time `json:"date"`
	Time       string    `json:"time"`
	IsBlocked  bool      `json:"isBlocked"`
	IsBooked   bool      `json:"isBooked"`
}

func (r *TimeSlotResponse) FromModel(m model.TimeSlot) {
	r.ID = m.ID
	r.PropertyID = m.PropertyID
	r.Date = timezone.ToAppTime(m.Date)
	r.Time = m.Time
	r.IsBlocked = m.IsBlocked
	r.IsBooked = m.IsBooked
}

type GetTimeSlotsResponse struct {
	TimeSlots []TimeSlotResponse `json:"timeSlots"`
	TotalPage int                `json:"totalPage"`
	TotalData int                `json:"totalData"`
}

func (r *GetTimeSlotsResponse) FromModels(models []model.TimeSlot, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.TimeSlots = make([]TimeSlotResponse, len(models))
	for i, mod := range models {
		r.TimeSlots[i].FromModel(mod)
	}
}

type TimeSlotFilter struct {
	PropertyID *int       `json:"propertyId,omitempty"`
	Date       *time.Time `json:"date,omitempty"`
	Available  *bool      `json:"available,omitempty"`
}

// FromRequest reads the listing filters. An unparsable date is reported
// so the caller can reject the request rather than silently widen it.
func (f *TimeSlotFilter) FromRequest(r *http.Request) error {
	query := r.URL.Query()

	f.PropertyID = shared.ConvertStringToInt(query.Get(QueryPropertyID))
	f.Available = shared.ConvertStringToBool(query.Get(QueryAvailable))

	if value := query.Get(QueryDate); value != "" {
		date, err := timezone.ParseDate(value)
		if err != nil {
			return err //nolint:wrapcheck
		}

		f.Date = &date
	}

	return nil
}

func (f *TimeSlotFilter) ToFilterGroup() gDto.FilterGroup {
	group := gDto.And()

	if f.PropertyID != nil {
		group.Add(gDto.Filter{Field: model.FieldPropertyID, Value: *f.PropertyID, Operator: gDto.FilterOperatorEq, Table: model.TableName})
	}

	if f.Date != nil {
		group.Add(DayFilter(*f.Date))
	}

	if f.Available != nil {
		if *f.Available {
			group.Add(
				gDto.Filter{Field: model.FieldIsBlocked, ArgName: "available_blocked", Value: false, Operator: gDto.FilterOperatorEq, Table: model.TableName},
				gDto.Filter{Field: model.FieldIsBooked, ArgName: "available_booked", Value: false, Operator: gDto.FilterOperatorEq, Table: model.TableName},
			)
		} else {
			group.Add(gDto.Or(
				gDto.Filter{Field: model.FieldIsBlocked, ArgName: "unavailable_blocked", Value: true, Operator: gDto.FilterOperatorEq, Table: model.TableName},
				gDto.Filter{Field: model.FieldIsBooked, ArgName: "unavailable_booked", Value: true, Operator: gDto.FilterOperatorEq, Table: model.TableName},
			))
		}
	}

	return group
}

// DayFilter matches slots on the calendar day of t in the application timezone.
func DayFilter(t time.Time) gDto.FilterGroup {
	start, end := timezone.DayRange(t)

	return gDto.And(
		gDto.Filter{Field: model.FieldDate, ArgName: argDayStart, Value: start, Operator: gDto.FilterOperatorGreaterEq, Table: model.TableName},
		gDto.Filter{Field: model.FieldDate, ArgName: argDayEnd, Value: end, Operator: gDto.FilterOperatorLess, Table: model.TableName},
	)
}

// SlotAt matches the slot a booking for propertyID at date and slotTime would occupy.
func SlotAt(propertyID int, date time.Time, slotTime string) gDto.FilterGroup {
	return gDto.And(
		gDto.Filter{Field: model.FieldPropertyID, Value: propertyID, Operator: gDto.FilterOperatorEq, Table: model.TableName},
		DayFilter(date),
		gDto.Filter{Field: model.FieldTime, Value: slotTime, Operator: gDto.FilterOperatorEq, Table: model.TableName},
	)
}
