package timeslot

import (
	"net/http"
	"nest/infras/otel"
	"nest/internal/domains/timeslot/model/dto"
	"nest/internal/domains/timeslot/service"
	"nest/shared"
	"nest/shared/constant"
	gDto "nest/shared/dto"
	"nest/shared/failure"
	"nest/shared/validator"
	"nest/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.TimeSlot
	otel    otel.Otel
}

func New(service service.TimeSlot, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/time-slots", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateTimeSlot)
		routerGroup.Get("/", handler.GetTimeSlots)
		routerGroup.Get("/{id}", handler.GetTimeSlotByID)
		routerGroup.Patch("/{id}/blocked", handler.SetBlocked)
		routerGroup.Delete("/{id}", handler.DeleteTimeSlot)
	})
}

// CreateTimeSlot publishes an availability slot for a property.
// @Summary Create a time slot
// @Tags TimeSlot
// @Accept json
// @Produce json
// @Param request body dto.InsertTimeSlot true "Insert Time Slot Request"
// @Success 201 {object} response.Data[gDto.IDResponse]
// @Failure 400 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/time-slots [post]
// @Security BearerAuth
func (handler *Handler) CreateTimeSlot(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateTimeSlot")
	defer scope.End()

	req := dto.InsertTimeSlot{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		response.WithError(w, err)

		return
	}

	id, err := handler.service.Create(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create time slot")
		response.WithError(w, err)

		return
	}

	scope.AddEvent("Time slot created successfully")
	response.WithJSON(w, http.StatusCreated, gDto.IDResponse{ID: id})
}

// GetTimeSlots lists time slots.
// @Summary Get all time slots
// @Tags TimeSlot
// @Produce json
// @Param page query int false "Page"
// @Param limit query int false "Limit"
// @Param property_id query int false "Property ID"
// @Param date query string false "Calendar day (YYYY-MM-DD)"
// @Param available query bool false "Only free (true) or taken (false) slots"
// @Success 200 {object} response.Data[dto.GetTimeSlotsResponse]
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/time-slots [get]
func (handler *Handler) GetTimeSlots(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetTimeSlots")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	filter := dto.TimeSlotFilter{}

	if err := filter.FromRequest(r); err != nil {
		response.WithError(w, failure.BadRequestFromString("date must be a valid date"))

		return
	}

	slots, err := handler.service.GetAll(ctx, queryParams, filter)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get time slots")
		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, slots)
}

// GetTimeSlotByID retrieves a single time slot.
// @Summary Get a time slot by ID
// @Tags TimeSlot
// @Produce json
// @Param id path int true "Time slot ID"
// @Success 200 {object} response.Data[dto.TimeSlotResponse]
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /v1/time-slots/{id} [get]
func (handler *Handler) GetTimeSlotByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetTimeSlotByID")
	defer scope.End()

	id, err := shared.ParseID(chi.URLParam(r, constant.RequestParamID))
	if err != nil {
		response.WithError(w, err)

		return
	}

	slot, err := handler.service.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)
		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, slot)
}

// SetBlocked blocks or unblocks a time slot.
// @Summary Block or unblock a time slot
// @Tags TimeSlot
// @Accept json
// @Produce json
// @Param id path int true "Time slot ID"
// @Param request body dto.SetBlocked true "Blocked flag"
// @Success 200 {object} response.Message
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /v1/time-slots/{id}/blocked [patch]
// @Security BearerAuth
func (handler *Handler) SetBlocked(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".SetBlocked")
	defer scope.End()

	id, err := shared.ParseID(chi.URLParam(r, constant.RequestParamID))
	if err != nil {
		response.WithError(w, err)

		return
	}

	req := dto.SetBlocked{}

	if err = validator.Validate(r.Body, &req); err != nil {
		response.WithError(w, err)

		return
	}

	if err = handler.service.SetBlocked(ctx, id, *req.IsBlocked); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update time slot")
		response.WithError(w, err)

		return
	}

	scope.AddEvent("Time slot updated successfully")
	response.WithMessage(w, http.StatusOK, "Time slot updated successfully")
}

// DeleteTimeSlot removes a time slot.
// @Summary Delete a time slot by ID
// @Tags TimeSlot
// @Produce json
// @Param id path int true "Time slot ID"
// @Success 200 {object} response.Message
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /v1/time-slots/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteTimeSlot(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteTimeSlot")
	defer scope.End()

	id, err := shared.ParseID(chi.URLParam(r, constant.RequestParamID))
	if err != nil {
		response.WithError(w, err)

		return
	}

	if err = handler.service.Delete(ctx, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete time slot")
		response.WithError(w, err)

		return
	}

	scope.AddEvent("Time slot deleted successfully")
	response.WithMessage(w, http.StatusOK, "Time slot deleted successfully")
}
