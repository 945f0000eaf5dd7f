//go:build wireinject
// +build wireinject

package di

import (
	"minihotel/config"
	"minihotel/infras/jwt"
	"minihotel/infras/kafka"
	"minihotel/infras/otel"
	"minihotel/infras/postgres"
	"minihotel/infras/redis"
	"minihotel/shared/cache"
	"minihotel/transport/http"
	"minihotel/transport/http/middleware"
	"minihotel/transport/http/router"

	authService "minihotel/internal/domains/auth/service"
	bookingRepository "minihotel/internal/domains/booking/repository"
	bookingService "minihotel/internal/domains/booking/service"
	customerRepository "minihotel/internal/domains/customer/repository"
	customerService "minihotel/internal/domains/customer/service"
	roomRepository "minihotel/internal/domains/room/repository"
	roomService "minihotel/internal/domains/room/service"
	roomtypeRepository "minihotel/internal/domains/roomtype/repository"
	roomtypeService "minihotel/internal/domains/roomtype/service"
	authHandler "minihotel/internal/handlers/auth"
	bookingHandler "minihotel/internal/handlers/booking"
	customerHandler "minihotel/internal/handlers/customer"
	roomHandler "minihotel/internal/handlers/room"
	roomtypeHandler "minihotel/internal/handlers/roomtype"

	"github.com/google/wire"
)

var configurations = wire.NewSet(
	config.Get,
)

var infrastructures = wire.NewSet(
	postgres.New,
	otel.New,
	redis.New,
	jwt.New,
	kafka.New,
)

var middlewares = wire.NewSet(
	middleware.NewAppMiddleware,
	middleware.NewAuthMiddleware,
)

var sharedHelpers = wire.NewSet(
	cache.NewRedisCache,
)

var collections = wire.NewSet(
	roomtypeRepository.New,
	customerRepository.New,
	roomRepository.New,
	bookingRepository.New,
)

var services = wire.NewSet(
	roomtypeService.New,
	customerService.New,
	roomService.New,
	bookingService.New,
	authService.New,
)

var routing = wire.NewSet(
	wire.Struct(new(router.DomainHandlers), "*"),
	authHandler.New,
	customerHandler.New,
	roomHandler.New,
	roomtypeHandler.New,
	bookingHandler.New,
	router.New,
)

func InitializeService() *http.HTTP {
	wire.Build(
		configurations,
		infrastructures,
		middlewares,
		sharedHelpers,
		collections,
		services,
		routing,
		http.New,
	)

	return &http.HTTP{}
}
