package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks -mock_names=Appointment=MockAppointmentService

import (
	"context"
	"errors"
	"fmt"
	"nest/config"
	"nest/infras/kafka"
	"nest/infras/otel"
	"nest/internal/domains/appointment/model"
	"nest/internal/domains/appointment/model/dto"
	"nest/internal/domains/appointment/repository"
	propertyModel "nest/internal/domains/property/model"
	propertyRepo "nest/internal/domains/property/repository"
	slotModel "nest/internal/domains/timeslot/model"
	slotDto "nest/internal/domains/timeslot/model/dto"
	slotRepo "nest/internal/domains/timeslot/repository"
	"nest/shared"
	"nest/shared/cache"
	"nest/shared/constant"
	gDto "nest/shared/dto"
	"nest/shared/failure"
	"nest/shared/timezone"
	"strconv"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"
)

const (
	cacheGetAppointment    = model.CachePrefix + ":get"
	cacheGetAllAppointment = model.CachePrefix + ":get_all"
	cacheCountAppointment  = model.CachePrefix + ":count"
)

var (
	errSlotTaken       = failure.Conflict("time slot is already booked")
	errSlotUnavailable = failure.Conflict("time slot is not available")
)

type Appointment interface {
	Create(ctx context.Context, req dto.InsertAppointment) (int, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter dto.AppointmentFilter) (dto.GetAppointmentsResponse, error)
	Count(ctx context.Context, filter dto.AppointmentFilter) (int, error)
	Get(ctx context.Context, id int) (dto.AppointmentResponse, error)
	UpdateStatus(ctx context.Context, id int, status string) error
	Delete(ctx context.Context, id int) error
	ExpirePending(ctx context.Context, now time.Time) (int64, error)
}

type serviceImpl struct {
	repo         repository.Appointment
	slotRepo     slotRepo.TimeSlot
	propertyRepo propertyRepo.Property
	cfg          *config.Config
	cache        cache.RedisCache
	kafka        kafka.Client
	otel         otel.Otel
}

func New(
	repo repository.Appointment,
	slotRepo slotRepo.TimeSlot,
	propertyRepo propertyRepo.Property,
	cfg *config.Config,
	cache cache.RedisCache,
	kafka kafka.Client,
	otel otel.Otel,
) Appointment {
	return &serviceImpl{
		repo:         repo,
		slotRepo:     slotRepo,
		propertyRepo: propertyRepo,
		cfg:          cfg,
		cache:        cache,
		kafka:        kafka,
		otel:         otel,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.InsertAppointment) (id int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".CreateAppointment")
	defer scope.End()
	defer scope.TraceIfError(err)

	appointment, err := req.ToModel()
	if err != nil {
		return 0, failure.BadRequestFromString("appointmentDate must be a valid date")
	}

	exist, err := s.propertyRepo.Exist(ctx, shared.FilterByID(appointment.PropertyID, propertyModel.FieldID, propertyModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to check property existence")

		return 0, fmt.Errorf("failed to check property existence: %w", err)
	}

	if !exist {
		return 0, failure.BadRequestFromString("property does not exist")
	}

	err = s.repo.WithTransaction(ctx, func(tx *sqlx.Tx) error {
		if model.IsActive(appointment.Status) {
			if err := s.reserve(ctx, tx, appointment); err != nil {
				return err
			}
		}

		id, err = s.repo.InsertTx(ctx, tx, appointment)
		if err != nil {
			return fmt.Errorf("failed to insert appointment: %w", err)
		}

		return nil
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to create appointment")

		return 0, err
	}

	appointment.ID = id

	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, cacheGetAllAppointment, cacheCountAppointment, slotModel.CachePrefix)
		s.publish(c, model.NewEvent(model.EventCreated, appointment, "", timezone.Now()))
	}()

	return id, nil
}

// reserve fails when another active appointment or an unavailable slot holds
// the same property, day and time. A matching free slot is marked booked.
func (s *serviceImpl) reserve(ctx context.Context, tx *sqlx.Tx, appointment model.Appointment) error {
	clash, err := s.repo.GetForUpdateTx(ctx, tx, dto.ActiveAt(appointment.PropertyID, appointment.AppointmentDate, appointment.AppointmentTime, appointment.ID))
	if err != nil {
		return fmt.Errorf("failed to check conflicting appointment: %w", err)
	}

	if clash.ID != 0 {
		return errSlotTaken
	}

	slot, err := s.slotRepo.GetForUpdateTx(ctx, tx, slotDto.SlotAt(appointment.PropertyID, appointment.AppointmentDate, appointment.AppointmentTime))
	if err != nil {
		return fmt.Errorf("failed to lock time slot: %w", err)
	}

	if slot.ID == 0 {
		return nil
	}

	if !slot.Available() {
		return errSlotUnavailable
	}

	if _, err = s.slotRepo.UpdateTx(ctx, tx, map[string]any{slotModel.FieldIsBooked: true}, shared.FilterByID(slot.ID, slotModel.FieldID, slotModel.TableName)); err != nil {
		return fmt.Errorf("failed to book time slot: %w", err)
	}

	return nil
}

func (s *serviceImpl) release(ctx context.Context, tx *sqlx.Tx, appointment model.Appointment) error {
	_, err := s.slotRepo.UpdateTx(ctx, tx, map[string]any{slotModel.FieldIsBooked: false}, slotDto.SlotAt(appointment.PropertyID, appointment.AppointmentDate, appointment.AppointmentTime))
	if err != nil {
		return fmt.Errorf("failed to release time slot: %w", err)
	}

	return nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter dto.AppointmentFilter) (res dto.GetAppointmentsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAllAppointments")
	defer scope.End()
	defer scope.TraceIfError(err)

	req.Sortable(model.SortableFields...)
	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllAppointment, req, filter)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for appointments")

		return res, nil
	}

	total, err := s.Count(ctx, filter)
	if err != nil {
		return res, err
	}

	appointments, err := s.repo.GetAll(ctx, req, filter.ToFilterGroup())
	if err != nil {
		log.Error().Err(err).Msg("failed to get appointments")

		return res, fmt.Errorf("failed to get appointments: %w", err)
	}

	res.FromModels(appointments, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save appointments to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Count(ctx context.Context, filter dto.AppointmentFilter) (total int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".CountAppointments")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheCountAppointment, gDto.QueryParams{}, filter)

	if err = s.cache.Get(ctx, cacheKey, &total); err == nil {
		return total, nil
	}

	total, err = s.repo.Count(ctx, filter.ToFilterGroup())
	if err != nil {
		log.Error().Err(err).Msg("failed to count appointments")

		return total, fmt.Errorf("failed to count appointments: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, total, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save appointment count to cache")
		}
	}()

	return total, nil
}

func (s *serviceImpl) Get(ctx context.Context, id int) (res dto.AppointmentResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAppointment")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(cacheGetAppointment, id)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		return res, nil
	}

	appointment, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get appointment")

		return res, fmt.Errorf("failed to get appointment: %w", err)
	}

	if appointment.ID == 0 {
		return res, failure.NotFound("appointment not found")
	}

	res.FromModel(appointment)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save appointment to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) UpdateStatus(ctx context.Context, id int, status string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".UpdateStatus")
	defer scope.End()
	defer scope.TraceIfError(err)

	var (
		appointment model.Appointment
		previous    string
	)

	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	err = s.repo.WithTransaction(ctx, func(tx *sqlx.Tx) error {
		appointment, err = s.repo.GetForUpdateTx(ctx, tx, filter)
		if err != nil {
			return fmt.Errorf("failed to get appointment: %w", err)
		}

		if appointment.ID == 0 {
			return failure.NotFound("appointment not found")
		}

		previous = appointment.Status
		if previous == status {
			return nil
		}

		wasActive, isActive := model.IsActive(previous), model.IsActive(status)

		switch {
		case wasActive && !isActive:
			if err := s.release(ctx, tx, appointment); err != nil {
				return err
			}
		case !wasActive && isActive:
			if err := s.reserve(ctx, tx, appointment); err != nil {
				return err
			}
		}

		if _, err = s.repo.UpdateTx(ctx, tx, map[string]any{model.FieldStatus: status}, filter); err != nil {
			return fmt.Errorf("failed to update appointment status: %w", err)
		}

		return nil
	})
	if err != nil {
		log.Error().Err(err).Int("id", id).Msg("failed to update appointment status")

		return err
	}

	if previous == status {
		return nil
	}

	appointment.Status = status

	go func() {
		c := context.WithoutCancel(ctx)

		s.invalidate(c, id)
		s.publish(c, model.NewEvent(model.EventStatusChanged, appointment, previous, timezone.Now()))
	}()

	return nil
}

func (s *serviceImpl) Delete(ctx context.Context, id int) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".DeleteAppointment")
	defer scope.End()
	defer scope.TraceIfError(err)

	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	err = s.repo.WithTransaction(ctx, func(tx *sqlx.Tx) error {
		appointment, err := s.repo.GetForUpdateTx(ctx, tx, filter)
		if err != nil {
			return fmt.Errorf("failed to get appointment: %w", err)
		}

		if appointment.ID == 0 {
			return failure.NotFound("appointment not found")
		}

		if model.IsActive(appointment.Status) {
			if err := s.release(ctx, tx, appointment); err != nil {
				return err
			}
		}

		if _, err = s.repo.DeleteTx(ctx, tx, filter); err != nil {
			return fmt.Errorf("failed to delete appointment: %w", err)
		}

		return nil
	})
	if err != nil {
		log.Error().Err(err).Int("id", id).Msg("failed to delete appointment")

		return err
	}

	go func() {
		c := context.WithoutCancel(ctx)

		s.invalidate(c, id)
	}()

	return nil
}

// ExpirePending marks pending appointments that started before now as
// expired and frees the slots they held. Candidates are locked by day first;
// the slot time decides whether each one has actually started.
func (s *serviceImpl) ExpirePending(ctx context.Context, now time.Time) (affected int64, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ExpirePending")
	defer scope.End()
	defer scope.TraceIfError(err)

	_, dayEnd := timezone.DayRange(now)

	err = s.repo.WithTransaction(ctx, func(tx *sqlx.Tx) error {
		candidates, err := s.repo.GetAllForUpdateTx(ctx, tx, dto.PendingBefore(dayEnd))
		if err != nil {
			return fmt.Errorf("failed to lock pending appointments: %w", err)
		}

		ids := make([]int, 0, len(candidates))

		for _, appointment := range candidates {
			if !appointment.StartsAt().Before(now) {
				continue
			}

			if err := s.release(ctx, tx, appointment); err != nil {
				return err
			}

			ids = append(ids, appointment.ID)
		}

		if len(ids) == 0 {
			return nil
		}

		affected, err = s.repo.UpdateTx(ctx, tx, map[string]any{model.FieldStatus: model.StatusExpired}, dto.ByIDs(ids))
		if err != nil {
			return fmt.Errorf("failed to update appointment status: %w", err)
		}

		return nil
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to expire pending appointments")

		return 0, fmt.Errorf("failed to expire pending appointments: %w", err)
	}

	if affected > 0 {
		shared.InvalidateCaches(context.WithoutCancel(ctx), s.cache, model.CachePrefix, slotModel.CachePrefix)
	}

	return affected, nil
}

func (s *serviceImpl) invalidate(ctx context.Context, id int) {
	if err := s.cache.Delete(ctx, shared.BuildCacheKey(cacheGetAppointment, id)); err != nil {
		log.Error().Err(err).Msg("failed to delete appointment cache")
	}

	shared.InvalidateCaches(ctx, s.cache, cacheGetAllAppointment, cacheCountAppointment, slotModel.CachePrefix)
}

// publish is best effort; the write has already committed.
func (s *serviceImpl) publish(ctx context.Context, event model.Event) {
	err := s.kafka.SendMessages(ctx, s.cfg.Kafka.Topics.Appointment, kafka.Message{
		Key:   strconv.Itoa(event.AppointmentID),
		Value: event,
	})

	switch {
	case errors.Is(err, kafka.ErrNoBrokers):
		log.Debug().Str("type", event.Type).Msg("kafka disabled, appointment event dropped")
	case err != nil:
		log.Error().Err(err).Str("type", event.Type).Int("appointmentId", event.AppointmentID).Msg("failed to publish appointment event")
	}
}
