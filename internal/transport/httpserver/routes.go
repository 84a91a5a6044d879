package httpserver

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"listings-api/internal/config"
	"listings-api/internal/transport/httpserver/handler"
	authmw "listings-api/internal/transport/httpserver/middleware"
	"listings-api/pkg/logger"
)

func NewRouter(cfg config.Config, handlers *handler.Handlers, auth *authmw.Auth, log logger.Logger) http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Timeout(30 * time.Second))
	r.Use(authmw.NewCORS(cfg.AllowedOrigins))

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", handlers.Health)

		r.Group(func(r chi.Router) {
			r.Use(auth.Middleware)

			r.Post("/visits", handlers.CreateVisit)
			r.Get("/visits", handlers.ListMyVisits)
			r.Get("/visits/upcoming", handlers.ListUpcomingVisits)
			r.Get("/visits/{id}", handlers.GetVisit)
			r.Patch("/visits/{id}", handlers.UpdateVisit)
			r.Post("/visits/{id}/complete", handlers.CompleteVisit)
			r.Post("/visits/{id}/cancel", handlers.CancelVisit)
			r.Delete("/visits/{id}", handlers.DeleteVisit)

			r.Post("/proposals", handlers.CreateProposal)
			r.Get("/proposals", handlers.ListMyProposals)
			r.Get("/proposals/{id}", handlers.GetProposal)
			r.Post("/proposals/{id}/accept", handlers.AcceptProposal)
			r.Post("/proposals/{id}/reject", handlers.RejectProposal)
			r.Post("/proposals/{id}/withdraw", handlers.WithdrawProposal)
			r.Delete("/proposals/{id}", handlers.DeleteProposal)

			// Owner-facing listings carry contact details, so they sit
			// behind the property-owner role on top of authentication.
			r.Group(func(r chi.Router) {
				r.Use(authmw.RequireOwner)

				r.Get("/visits/received", handlers.ListReceivedVisits)
				r.Get("/properties/{id}/visits", handlers.ListPropertyVisits)
				r.Get("/proposals/received", handlers.ListReceivedProposals)
				r.Get("/properties/{id}/proposals", handlers.ListPropertyProposals)
			})
		})
	})

	// The internal surface is only mounted when a shared secret is
	// configured; peers authenticate with the secret header, not a token.
	if cfg.Identity.InternalSecret != "" {
		r.Group(func(r chi.Router) {
			r.Use(authmw.NewInternalSecret(cfg.Identity.InternalSecret, log))
			r.Get("/internal/check-user-property-relation", handlers.CheckUserPropertyRelation)
		})
	} else {
		log.Warn("internal: INTERNAL_API_SECRET not set, relation-check endpoint disabled")
	}

	return r
}
