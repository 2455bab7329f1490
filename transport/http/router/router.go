package router

import (
	"nest/internal/handlers/appointment"
	"nest/internal/handlers/auth"
	"nest/internal/handlers/portfolio"
	"nest/internal/handlers/property"
	"nest/internal/handlers/timeslot"

	"github.com/go-chi/chi/v5"
)

type DomainHandlers struct {
	Portfolio   portfolio.Handler
	Auth        auth.Handler
	Property    property.Handler
	Appointment appointment.Handler
	TimeSlot    timeslot.Handler
}

type Router struct {
	DomainHandlers DomainHandlers
}

func (r *Router) SetupRoutes(router chi.Router) {
	r.DomainHandlers.Portfolio.PageRouter(router)

	router.Route("/v1", func(routerGroup chi.Router) {
		r.DomainHandlers.Portfolio.Router(routerGroup)
		r.DomainHandlers.Auth.Router(routerGroup)
		r.DomainHandlers.Property.Router(routerGroup)
		r.DomainHandlers.Appointment.Router(routerGroup)
		r.DomainHandlers.TimeSlot.Router(routerGroup)
	})
}

func New(domainHandlers DomainHandlers) Router {
	return Router{
		DomainHandlers: domainHandlers,
	}
}
