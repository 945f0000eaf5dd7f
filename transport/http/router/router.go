package router

import (
	"minihotel/internal/handlers/auth"
	"minihotel/internal/handlers/booking"
	"minihotel/internal/handlers/customer"
	"minihotel/internal/handlers/room"
	"minihotel/internal/handlers/roomtype"
	"minihotel/transport/http/middleware"

	"github.com/go-chi/chi/v5"
)

type DomainHandlers struct {
	Auth     auth.Handler
	Customer customer.Handler
	Room     room.Handler
	RoomType roomtype.Handler
	Booking  booking.Handler
}

type Router struct {
	DomainHandlers DomainHandlers
	AuthMiddleware middleware.Auth
}

// SetupRoutes mounts the API. Authentication endpoints are public; customer
// management is restricted to the back-office role; everything else needs a
// valid token.
func (r *Router) SetupRoutes(router chi.Router) {
	router.Route("/v1", func(routerGroup chi.Router) {
		r.DomainHandlers.Auth.Router(routerGroup)

		routerGroup.Group(func(protected chi.Router) {
			protected.Use(r.AuthMiddleware.VerifyToken)

			r.DomainHandlers.Auth.ProtectedRouter(protected)
			r.DomainHandlers.RoomType.Router(protected)
			r.DomainHandlers.Room.Router(protected)
			r.DomainHandlers.Booking.Router(protected)

			protected.Group(func(adminOnly chi.Router) {
				adminOnly.Use(r.AuthMiddleware.RequireAdmin)

				r.DomainHandlers.Customer.Router(adminOnly)
			})
		})
	})
}

func New(domainHandlers DomainHandlers, authMiddleware middleware.Auth) Router {
	return Router{
		DomainHandlers: domainHandlers,
		AuthMiddleware: authMiddleware,
	}
}
