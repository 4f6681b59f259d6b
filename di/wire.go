//go:build wireinject
// +build wireinject

package di

import (
	"mentorbook/config"
	"mentorbook/infras/jwt"
	"mentorbook/infras/kafka"
	"mentorbook/infras/otel"
	"mentorbook/infras/postgres"
	"mentorbook/infras/redis"
	"mentorbook/infras/s3"
	"mentorbook/permissions"
	"mentorbook/shared/cache"
	"mentorbook/transport/http"
	"mentorbook/transport/http/middleware"
	"mentorbook/transport/http/router"

	"github.com/google/wire"

	authService "mentorbook/internal/domains/auth/service"
	availabilityRepository "mentorbook/internal/domains/availability/repository"
	availabilityService "mentorbook/internal/domains/availability/service"
	bookingRepository "mentorbook/internal/domains/booking/repository"
	bookingService "mentorbook/internal/domains/booking/service"
	personaRepository "mentorbook/internal/domains/persona/repository"
	personaService "mentorbook/internal/domains/persona/service"
	userRepository "mentorbook/internal/domains/user/repository"
	userService "mentorbook/internal/domains/user/service"
	authHandler "mentorbook/internal/handlers/auth"
	availabilityHandler "mentorbook/internal/handlers/availability"
	bookingHandler "mentorbook/internal/handlers/booking"
	personaHandler "mentorbook/internal/handlers/persona"
	userHandler "mentorbook/internal/handlers/user"
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
	kafka.New,
	s3.New,
)

var middlewares = wire.NewSet(
	middleware.NewAppMiddleware,
	middleware.NewAuthRoleMiddleware,
)

var sharedHelpers = wire.NewSet(
	cache.NewRedisCache,
)

var userDomain = wire.NewSet(
	userRepository.New,
	userService.New,
	authService.New,
)

var personaDomain = wire.NewSet(
	personaRepository.New,
	personaService.New,
)

var schedulingDomain = wire.NewSet(
	availabilityRepository.New,
	availabilityService.New,
	bookingRepository.New,
	bookingService.New,
)

var domains = wire.NewSet(
	userDomain,
	personaDomain,
	schedulingDomain,
)

var routing = wire.NewSet(
	wire.Struct(new(router.DomainHandlers), "*"),
	authHandler.New,
	userHandler.New,
	personaHandler.New,
	availabilityHandler.New,
	bookingHandler.New,
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
