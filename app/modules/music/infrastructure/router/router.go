package musicrouter

import (
	"net/http"

	musichandlers "github.com/Black-And-White-Club/music-backend/app/modules/music/infrastructure/handlers"
	"github.com/go-chi/chi/v5"
)

// BasePath is where the music API is mounted.
const BasePath = "/api/music"

// Router registers the music HTTP routes.
type Router struct {
	handlers musichandlers.Handlers
}

// NewRouter creates a new music router.
func NewRouter(handlers musichandlers.Handlers) *Router {
	return &Router{handlers: handlers}
}

// Mount registers every music route under BasePath on r.
func (rt *Router) Mount(r chi.Router, middlewares ...func(http.Handler) http.Handler) {
	r.Route(BasePath, func(r chi.Router) {
		r.Use(middlewares...)
		rt.Routes(r)
	})
}

// Routes registers the music routes relative to r.
func (rt *Router) Routes(r chi.Router) {
	h := rt.handlers

	r.Route("/bands", func(r chi.Router) {
		r.Post("/", h.CreateBand)
		r.Get("/", h.ListBands)
		r.Route("/{bandID}", func(r chi.Router) {
			r.Get("/", h.GetBand)
			r.Patch("/", h.UpdateBand)
			r.Delete("/", h.DeleteBand)
		})
	})

	r.Route("/musicians", func(r chi.Router) {
		r.Post("/", h.CreateMusician)
		r.Get("/", h.ListMusicians)
		r.Route("/{musicianID}", func(r chi.Router) {
			r.Get("/", h.GetMusician)
			r.Patch("/", h.UpdateMusician)
			r.Delete("/", h.DeleteMusician)
		})
	})

	r.Route("/memberships", func(r chi.Router) {
		r.Post("/", h.CreateMembership)
		r.Get("/", h.ListMemberships)
		r.Route("/{membershipID}", func(r chi.Router) {
			r.Get("/", h.GetMembership)
			r.Patch("/", h.UpdateMembership)
			r.Delete("/", h.DeleteMembership)
		})
	})
}
