package service

import (
	"context"
	"fmt"
	"io"
	"nest/config"
	"nest/infras/otel"
	"nest/infras/s3"
	"nest/internal/domains/property/model"
	"nest/internal/domains/property/model/dto"
	"nest/internal/domains/property/repository"
	"nest/shared"
	"nest/shared/cache"
	"nest/shared/constant"
	gDto "nest/shared/dto"
	"nest/shared/failure"

	"github.com/rs/zerolog/log"
)

const (
	cacheGetProperty    = "property:get"
	cacheGetAllProperty = "property:get_all"
	cacheCountProperty  = "property:count"
)

type Property interface {
	Create(ctx context.Context, req dto.InsertProperty) (int, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter dto.PropertyFilter) (dto.GetPropertiesResponse, error)
	Count(ctx context.Context, req gDto.QueryParams, filter dto.PropertyFilter) (int, error)
	Get(ctx context.Context, id int) (dto.PropertyResponse, error)
	Update(ctx context.Context, req dto.UpdateProperty, id int) error
	Delete(ctx context.Context, id int) error
	UploadImage(ctx context.Context, fileName, contentType string, body io.Reader) (dto.UploadImageResponse, error)
}

type serviceImpl struct {
	repo  repository.Property
	cfg   *config.Config
	cache cache.RedisCache
	otel  otel.Otel
	s3    s3.S3
}

func New(repo repository.Property, cfg *config.Config, cache cache.RedisCache, otel otel.Otel, s3 s3.S3) Property {
	return &serviceImpl{
		repo:  repo,
		cfg:   cfg,
		cache: cache,
		otel:  otel,
		s3:    s3,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.InsertProperty) (id int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	id, err = s.repo.Insert(ctx, req.ToModel())
	if err != nil {
		log.Error().Err(err).Msg("failed to create property")

		return 0, fmt.Errorf("failed to create property: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, cacheGetAllProperty, cacheCountProperty)
	}()

	return id, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter dto.PropertyFilter) (res dto.GetPropertiesResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	req.Sortable(model.SortableFields...)
	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllProperty, req, filter)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for properties")

		return res, nil
	}

	total, err := s.Count(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count properties")

		return res, err
	}

	properties, err := s.repo.GetAll(ctx, req, filter.ToFilterGroup())
	if err != nil {
		log.Error().Err(err).Msg("failed to get properties")

		return res, fmt.Errorf("failed to get properties: %w", err)
	}

	res.FromModels(properties, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save properties to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Count(ctx context.Context, req gDto.QueryParams, filter dto.PropertyFilter) (total int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Count")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheCountProperty, gDto.QueryParams{}, filter)

	if err = s.cache.Get(ctx, cacheKey, &total); err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for property count")

		return total, nil
	}

	total, err = s.repo.Count(ctx, filter.ToFilterGroup())
	if err != nil {
		log.Error().Err(err).Msg("failed to count properties")

		return total, fmt.Errorf("failed to count properties: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, total, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save property count to cache")
		}
	}()

	return total, nil
}

func (s *serviceImpl) Get(ctx context.Context, id int) (res dto.PropertyResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(cacheGetProperty, id)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for property")

		return res, nil
	}

	property, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get property")

		return res, fmt.Errorf("failed to get property: %w", err)
	}

	if property.ID == 0 {
		return res, failure.NotFound("property not found")
	}

	res.FromModel(property)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save property to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateProperty, id int) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Update")
	defer scope.End()
	defer scope.TraceIfError(err)

	if req.IsEmpty() {
		return failure.BadRequestFromString("no fields to update")
	}

	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	exist, err := s.repo.Exist(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check property existence")

		return fmt.Errorf("failed to check property existence: %w", err)
	}

	if !exist {
		return failure.NotFound("property not found")
	}

	if _, err = s.repo.Update(ctx, shared.TransformFields(req), filter); err != nil {
		log.Error().Err(err).Msg("failed to update property")

		return fmt.Errorf("failed to update property: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		s.invalidate(c, id)
	}()

	return nil
}

func (s *serviceImpl) Delete(ctx context.Context, id int) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Delete")
	defer scope.End()
	defer scope.TraceIfError(err)

	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	property, err := s.repo.Get(ctx, filter, model.FieldID, model.FieldImageURL)
	if err != nil {
		log.Error().Err(err).Msg("failed to get property")

		return fmt.Errorf("failed to get property: %w", err)
	}

	if property.ID == 0 {
		return failure.NotFound("property not found")
	}

	if _, err = s.repo.Delete(ctx, filter); err != nil {
		log.Error().Err(err).Msg("failed to delete property")

		return fmt.Errorf("failed to delete property: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		s.invalidate(c, id)

		objectKey := s.s3.ObjectKeyFromURL(property.ImageURL)
		if objectKey == constant.Empty {
			return
		}

		if err := s.s3.Delete(c, objectKey); err != nil {
			log.Error().Err(err).Str("objectKey", objectKey).Msg("failed to delete property image")
		}
	}()

	return nil
}

func (s *serviceImpl) UploadImage(ctx context.Context, fileName, contentType string, body io.Reader) (res dto.UploadImageResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".UploadImage")
	defer scope.End()
	defer scope.TraceIfError(err)

	url, err := s.s3.Upload(ctx, model.EntityName, fileName, contentType, body)
	if err != nil {
		log.Error().Err(err).Msg("failed to upload property image")

		return res, fmt.Errorf("failed to upload property image: %w", err)
	}

	res.ImageURL = url

	return res, nil
}

func (s *serviceImpl) invalidate(ctx context.Context, id int) {
	if err := s.cache.Delete(ctx, shared.BuildCacheKey(cacheGetProperty, id)); err != nil {
		log.Error().Err(err).Msg("failed to delete property cache")
	}

	shared.InvalidateCaches(ctx, s.cache, cacheGetAllProperty, cacheCountProperty)
}
