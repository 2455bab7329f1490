package service

import (
	"context"
	"fmt"
	"nest/config"
	"nest/infras/otel"
	propertyModel "nest/internal/domains/property/model"
	propertyRepo "nest/internal/domains/property/repository"
	"nest/internal/domains/timeslot/model"
	"nest/internal/domains/timeslot/model/dto"
	"nest/internal/domains/timeslot/repository"
	"nest/shared"
	"nest/shared/cache"
	"nest/shared/constant"
	gDto "nest/shared/dto"
	"nest/shared/failure"
	gRepo "nest/shared/repository"

	"github.com/rs/zerolog/log"
)

const (
	cacheGetTimeSlot    = model.CachePrefix + ":get"
	cacheGetAllTimeSlot = model.CachePrefix + ":get_all"
	cacheCountTimeSlot  = model.CachePrefix + ":count"
)

type TimeSlot interface {
	Create(ctx context.Context, req dto.InsertTimeSlot) (int, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter dto.TimeSlotFilter) (dto.GetTimeSlotsResponse, error)
	Count(ctx context.Context, filter dto.TimeSlotFilter) (int, error)
	Get(ctx context.Context, id int) (dto.TimeSlotResponse, error)
	SetBlocked(ctx context.Context, id int, blocked bool) error
	Delete(ctx context.Context, id int) error
}

type serviceImpl struct {
	repo         repository.TimeSlot
	propertyRepo propertyRepo.Property
	cfg          *config.Config
	cache        cache.RedisCache
	otel         otel.Otel
}

func New(repo repository.TimeSlot, propertyRepo propertyRepo.Property, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) TimeSlot {
	return &serviceImpl{
		repo:         repo,
		propertyRepo: propertyRepo,
		cfg:          cfg,
		cache:        cache,
		otel:         otel,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.InsertTimeSlot) (id int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".CreateTimeSlot")
	defer scope.End()
	defer scope.TraceIfError(err)

	slot, err := req.ToModel()
	if err != nil {
		return 0, failure.BadRequestFromString("date must be a valid date")
	}

	exist, err := s.propertyRepo.Exist(ctx, shared.FilterByID(slot.PropertyID, propertyModel.FieldID, propertyModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to check property existence")

		return 0, fmt.Errorf("failed to check property existence: %w", err)
	}

	if !exist {
		return 0, failure.BadRequestFromString("property does not exist")
	}

	id, err = s.repo.Insert(ctx, slot)
	if gRepo.IsUniqueViolation(err) {
		return 0, failure.Conflict("time slot already exists for this property, date and time")
	}

	if err != nil {
		log.Error().Err(err).Msg("failed to create time slot")

		return 0, fmt.Errorf("failed to create time slot: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, cacheGetAllTimeSlot, cacheCountTimeSlot)
	}()

	return id, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter dto.TimeSlotFilter) (res dto.GetTimeSlotsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAllTimeSlots")
	defer scope.End()
	defer scope.TraceIfError(err)

	req.Sortable(model.SortableFields...)
	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllTimeSlot, req, filter)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for time slots")

		return res, nil
	}

	total, err := s.Count(ctx, filter)
	if err != nil {
		return res, err
	}

	slots, err := s.repo.GetAll(ctx, req, filter.ToFilterGroup())
	if err != nil {
		log.Error().Err(err).Msg("failed to get time slots")

		return res, fmt.Errorf("failed to get time slots: %w", err)
	}

	res.FromModels(slots, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save time slots to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Count(ctx context.Context, filter dto.TimeSlotFilter) (total int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".CountTimeSlots")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheCountTimeSlot, gDto.QueryParams{}, filter)

	if err = s.cache.Get(ctx, cacheKey, &total); err == nil {
		return total, nil
	}

	total, err = s.repo.Count(ctx, filter.ToFilterGroup())
	if err != nil {
		log.Error().Err(err).Msg("failed to count time slots")

		return total, fmt.Errorf("failed to count time slots: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, total, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save time slot count to cache")
		}
	}()

	return total, nil
}

func (s *serviceImpl) Get(ctx context.Context, id int) (res dto.TimeSlotResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetTimeSlot")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(cacheGetTimeSlot, id)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		return res, nil
	}

	slot, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get time slot")

		return res, fmt.Errorf("failed to get time slot: %w", err)
	}

	if slot.ID == 0 {
		return res, failure.NotFound("time slot not found")
	}

	res.FromModel(slot)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save time slot to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) SetBlocked(ctx context.Context, id int, blocked bool) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".SetBlocked")
	defer scope.End()
	defer scope.TraceIfError(err)

	affected, err := s.repo.Update(ctx, map[string]any{model.FieldIsBlocked: blocked}, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to update time slot")

		return fmt.Errorf("failed to update time slot: %w", err)
	}

	if affected == 0 {
		return failure.NotFound("time slot not found")
	}

	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, model.CachePrefix)
	}()

	return nil
}

func (s *serviceImpl) Delete(ctx context.Context, id int) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".DeleteTimeSlot")
	defer scope.End()
	defer scope.TraceIfError(err)

	affected, err := s.repo.Delete(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to delete time slot")

		return fmt.Errorf("failed to delete time slot: %w", err)
	}

	if affected == 0 {
		return failure.NotFound("time slot not found")
	}

	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, model.CachePrefix)
	}()

	return nil
}
