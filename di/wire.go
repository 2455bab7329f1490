//go:build wireinject
// +build wireinject

package di

import (
	"nest/config"
	"nest/infras/jwt"
	"nest/infras/kafka"
	"nest/infras/otel"
	"nest/infras/postgres"
	"nest/infras/redis"
	"nest/infras/s3"
	"nest/internal/scheduler"
	"nest/permissions"
	"nest/shared/cache"
	"nest/transport/http"
	"nest/transport/http/middleware"
	"nest/transport/http/router"

	appointmentRepository "nest/internal/domains/appointment/repository"
	appointmentService "nest/internal/domains/appointment/service"
	authService "nest/internal/domains/auth/service"
	portfolioService "nest/internal/domains/portfolio/service"
	propertyRepository "nest/internal/domains/property/repository"
	propertyService "nest/internal/domains/property/service"
	timeSlotRepository "nest/internal/domains/timeslot/repository"
	timeSlotService "nest/internal/domains/timeslot/service"
	userRepository "nest/internal/domains/user/repository"
	userService "nest/internal/domains/user/service"

	"github.com/google/wire"

	appointmentHandler "nest/internal/handlers/appointment"
	authHandler "nest/internal/handlers/auth"
	eventHandler "nest/internal/handlers/event"
	portfolioHandler "nest/internal/handlers/portfolio"
	propertyHandler "nest/internal/handlers/property"
	timeSlotHandler "nest/internal/handlers/timeslot"
)

var configurations = wire.NewSet(
	config.Get,
	permissions.Get,
)

var infrastructures = wire.NewSet(
	postgres.New,
	otel.New,
	redis.New,
	jwt.New,
	s3.New,
	kafka.New,
)

var middlewares = wire.NewSet(
	middleware.NewAppMiddleware,
	middleware.NewAuthRoleMiddleware,
)

var sharedHelpers = wire.NewSet(
	cache.NewRedisCache,
)

var portfolioDomain = wire.NewSet(
	portfolioService.New,
)

var authDomain = wire.NewSet(
	userRepository.New,
	userService.New,
	authService.New,
)

var propertyDomain = wire.NewSet(
	propertyRepository.New,
	propertyService.New,
)

var timeSlotDomain = wire.NewSet(
	timeSlotRepository.New,
	timeSlotService.New,
)

var appointmentDomain = wire.NewSet(
	appointmentRepository.New,
	appointmentService.New,
)

var domains = wire.NewSet(
	portfolioDomain,
	authDomain,
	propertyDomain,
	timeSlotDomain,
	appointmentDomain,
)

var routing = wire.NewSet(
	wire.Struct(new(router.DomainHandlers), "*"),
	portfolioHandler.New,
	authHandler.New,
	propertyHandler.New,
	appointmentHandler.New,
	timeSlotHandler.New,
	router.New,
)

func InitializeService() *http.HTTP {
	wire.Build(
		configurations,
		infrastructures,
		middlewares,
		sharedHelpers,
		domains,
		routing,
		http.New,
	)

	return &http.HTTP{}
}

func InitializeWorker() *Worker {
	wire.Build(
		config.Get,
		postgres.New,
		otel.New,
		redis.New,
		kafka.New,
		sharedHelpers,
		propertyRepository.New,
		timeSlotRepository.New,
		appointmentDomain,
		scheduler.New,
		eventHandler.New,
		NewWorker,
	)

	return &Worker{}
}
