package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
)

// NewRouter registers portal HTTP routes and the middleware stack.
// Centralizing routes here keeps auth and error behavior consistent across
// endpoints.
func NewRouter(handler *Handler, allowedOrigins []string) http.Handler {
	r := chi.NewRouter()
	r.Use(requestIDMiddleware)
	r.Use(recoverMiddleware)
	r.Use(loggingMiddleware)
	r.Use(metricsMiddleware)

	r.Get("/healthz", handler.healthz)
	r.Get("/readyz", handler.readyz)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/auth/login", handler.login)
		r.Post("/auth/register", handler.register)
		r.Post("/auth/logout", handler.logout)

		r.Get("/centers", handler.listCenters)
		r.Get("/courses", handler.listCourses)

		r.Post("/payments/initialize", handler.initializePayment)
		r.Get("/payments/verify/{reference}", handler.verifyPayment)

		// Identity on the submission route is optional: a bearer token is
		// used when verifiable and silently omitted otherwise, so the route
		// sits outside the auth middleware group.
		r.Post("/onboarding/submit", handler.submitEnrollment)

		r.Group(func(r chi.Router) {
			r.Use(handler.authMiddleware)
			r.Get("/students/me", handler.getProfile)
			r.Patch("/students/me", handler.updateProfile)
			r.Post("/support/tickets", handler.createTicket)
			r.Get("/support/tickets", handler.listTickets)
			r.Get("/support/tickets/{ticket_id}/messages", handler.listTicketMessages)
			r.Post("/support/tickets/{ticket_id}/messages", handler.addTicketMessage)
		})
	})

	c := cors.New(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete},
		AllowedHeaders:   []string{"Authorization", "Content-Type", "X-Request-Id"},
		AllowCredentials: true,
	})
	return c.Handler(r)
}
