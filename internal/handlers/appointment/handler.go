package appointment

import (
	"net/http"
	"nest/infras/otel"
	"nest/internal/domains/appointment/model/dto"
	"nest/internal/domains/appointment/service"
	"nest/shared"
	"nest/shared/constant"
	gDto "nest/shared/dto"
	"nest/shared/validator"
	"nest/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Appointment
	otel    otel.Otel
}

func New(service service.Appointment, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/appointments", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateAppointment)
		routerGroup.Get("/", handler.GetAppointments)
		routerGroup.Get("/{id}", handler.GetAppointmentByID)
		routerGroup.Patch("/{id}/status", handler.UpdateStatus)
		routerGroup.Delete("/{id}", handler.DeleteAppointment)
	})
}

// CreateAppointment books a viewing.
// @Summary Book an appointment
// @Description Book a property viewing. A blocked or already booked slot is rejected with 409.
// @Tags Appointment
// @Accept json
// @Produce json
// @Param request body dto.InsertAppointment true "Insert Appointment Request"
// @Success 201 {object} response.Data[gDto.IDResponse]
// @Failure 400 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/appointments [post]
func (handler *Handler) CreateAppointment(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateAppointment")
	defer scope.End()

	req := dto.InsertAppointment{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		response.WithError(w, err)

		return
	}

	id, err := handler.service.Create(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create appointment")
		response.WithError(w, err)

		return
	}

	scope.AddEvent("Appointment created successfully")
	response.WithJSON(w, http.StatusCreated, gDto.IDResponse{ID: id})
}

// GetAppointments lists appointments.
// @Summary Get all appointments
// @Tags Appointment
// @Produce json
// @Param page query int false "Page"
// @Param limit query int false "Limit"
// @Param sort_by query string false "Sort column"
// @Param sort_dir query string false "ASC or DESC"
// @Param property_id query int false "Property ID"
// @Param status query string false "Status"
// @Param renter_email query string false "Renter email"
// @Success 200 {object} response.Data[dto.GetAppointmentsResponse]
// @Failure 500 {object} response.Error
// @Router /v1/appointments [get]
// @Security BearerAuth
func (handler *Handler) GetAppointments(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetAppointments")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	filter := dto.AppointmentFilter{}
	filter.FromRequest(r)

	appointments, err := handler.service.GetAll(ctx, queryParams, filter)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get appointments")
		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, appointments)
}

// GetAppointmentByID retrieves a single appointment.
// @Summary Get an appointment by ID
// @Tags Appointment
// @Produce json
// @Param id path int true "Appointment ID"
// @Success 200 {object} response.Data[dto.AppointmentResponse]
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /v1/appointments/{id} [get]
// @Security BearerAuth
func (handler *Handler) GetAppointmentByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetAppointmentByID")
	defer scope.End()

	id, err := shared.ParseID(chi.URLParam(r, constant.RequestParamID))
	if err != nil {
		response.WithError(w, err)

		return
	}

	appointment, err := handler.service.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)
		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, appointment)
}

// UpdateStatus moves an appointment to a new status.
// @Summary Update an appointment status
// @Description Cancelling frees the booked time slot.
// @Tags Appointment
// @Accept json
// @Produce json
// @Param id path int true "Appointment ID"
// @Param request body dto.UpdateStatus true "New status"
// @Success 200 {object} response.Message
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Router /v1/appointments/{id}/status [patch]
// @Security BearerAuth
func (handler *Handler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateStatus")
	defer scope.End()

	id, err := shared.ParseID(chi.URLParam(r, constant.RequestParamID))
	if err != nil {
		response.WithError(w, err)

		return
	}

	req := dto.UpdateStatus{}

	if err = validator.Validate(r.Body, &req); err != nil {
		response.WithError(w, err)

		return
	}

	if err = handler.service.UpdateStatus(ctx, id, req.Status); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update appointment status")
		response.WithError(w, err)

		return
	}

	scope.AddEvent("Appointment status updated to " + req.Status)
	response.WithMessage(w, http.StatusOK, "Appointment status updated successfully")
}

// DeleteAppointment removes an appointment and frees its slot.
// @Summary Delete an appointment by ID
// @Tags Appointment
// @Produce json
// @Param id path int true "Appointment ID"
// @Success 200 {object} response.Message
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /v1/appointments/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteAppointment(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteAppointment")
	defer scope.End()

	id, err := shared.ParseID(chi.URLParam(r, constant.RequestParamID))
	if err != nil {
		response.WithError(w, err)

		return
	}

	if err = handler.service.Delete(ctx, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete appointment")
		response.WithError(w, err)

		return
	}

	scope.AddEvent("Appointment deleted successfully")
	response.WithMessage(w, http.StatusOK, "Appointment deleted successfully")
}
