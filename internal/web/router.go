package web

import (
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/sidgdev/ticket-app/internal/team"
	"github.com/sidgdev/ticket-app/internal/ticket"
	"github.com/sidgdev/ticket-app/internal/user"
	"github.com/sidgdev/ticket-app/internal/web/handler"
	"github.com/sidgdev/ticket-app/internal/web/middleware"
	"github.com/sidgdev/ticket-app/internal/web/view"
)

// RouterDeps holds all dependencies needed by the router.
type RouterDeps struct {
	Teams      team.Repository
	Users      user.Repository
	Tickets    ticket.Repository
	View       *view.Renderer
	BcryptCost int
}

// NewRouter creates and configures a Chi router with all middleware and
// routes. Per entity, the literal create path is registered ahead of the
// {id} pattern so "create" is never read as an identifier.
func NewRouter(deps RouterDeps) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Recovery(deps.View))
	r.Use(chimiddleware.Logger)

	dashboard := handler.NewDashboardHandler(deps.Teams, deps.Users, deps.Tickets, deps.View)
	teams := handler.NewTeamHandler(deps.Teams, deps.Users, deps.View)
	users := handler.NewUserHandler(deps.Users, deps.Teams, deps.View, deps.BcryptCost)
	tickets := handler.NewTicketHandler(deps.Tickets, deps.Teams, deps.View)

	r.Get("/", dashboard.Home)
	r.Get("/dashboard", dashboard.Index)

	r.Get("/teams", teams.List)
	r.Route("/team", func(r chi.Router) {
		r.Get("/create", teams.CreateForm)
		r.Post("/create", teams.CreateSubmit)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", teams.Detail)
			r.Get("/update", teams.UpdateForm)
			r.Post("/update", teams.UpdateSubmit)
			r.Get("/delete", teams.DeleteForm)
			r.Post("/delete", teams.DeleteSubmit)
		})
	})

	r.Get("/users", users.List)
	r.Route("/user", func(r chi.Router) {
		r.Get("/create", users.CreateForm)
		r.Post("/create", users.CreateSubmit)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", users.Detail)
			r.Get("/update", users.UpdateForm)
			r.Post("/update", users.UpdateSubmit)
			r.Get("/delete", users.DeleteForm)
			r.Post("/delete", users.DeleteSubmit)
		})
	})

	r.Get("/tickets", tickets.List)
	r.Route("/ticket", func(r chi.Router) {
		r.Get("/create", tickets.CreateForm)
		r.Post("/create", tickets.CreateSubmit)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", tickets.Detail)
			r.Get("/update", tickets.UpdateForm)
			r.Post("/update", tickets.UpdateSubmit)
			r.Get("/delete", tickets.DeleteForm)
			r.Post("/delete", tickets.DeleteSubmit)
		})
	})

	return r
}
