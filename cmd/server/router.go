package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/tuitionnetwork/tuition-api/internal/api"
	apiMiddleware "github.com/tuitionnetwork/tuition-api/internal/api/middleware"
	"github.com/tuitionnetwork/tuition-api/internal/domain"
)

// setupRouter configures the application router with all routes and
// middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.TraceMiddleware)

	authHandler := api.NewAuthHandler(app.jwtService)
	authMiddleware := apiMiddleware.NewAuthMiddleware(app.jwtService)

	tutorRequestHandler := api.NewTutorRequestHandler(app.tutorRequestService)
	userHandler := api.NewUserHandler(app.userService)
	paymentHandler := api.NewPaymentHandler(app.paymentService)

	// Token issuance (public)
	r.Post("/jwt", authHandler.IssueToken)

	// Tutor requests
	r.Post("/tutorRequests", tutorRequestHandler.Submit)
	r.Get("/tutorRequests", tutorRequestHandler.List)
	r.Get("/tutorRequests/{id}", tutorRequestHandler.Get)
	r.Put("/tutorRequests/{id}", tutorRequestHandler.Update)
	r.Group(func(r chi.Router) {
		r.Use(authMiddleware.Authenticate)
		r.Use(authMiddleware.RequireRole(domain.RoleAdmin))
		r.Delete("/tutorRequests/{id}", tutorRequestHandler.Delete)
	})

	// Users and tutors
	r.Post("/users", userHandler.Register)
	r.Post("/tutors", userHandler.RegisterTutor)
	r.Get("/users", userHandler.List)
	r.Get("/users/{email}", userHandler.Get)
	r.Get("/searchUsers", userHandler.Search)
	r.Get("/appliedTutors/{email}", userHandler.GetTutorProfile)
	r.Get("/confirmedTutors/{email}", tutorRequestHandler.ListByConfirmedTutor)
	r.Group(func(r chi.Router) {
		r.Use(authMiddleware.Authenticate)
		r.Put("/users/{email}", userHandler.Upsert)
		r.With(authMiddleware.RequireRole(domain.RoleAdmin)).
			Delete("/users/{email}", userHandler.Delete)
	})

	// Payments
	r.Post("/payments/initiate", paymentHandler.Initiate)
	r.Post("/payments/success/{tranId}", paymentHandler.SuccessCallback)
	r.Post("/payments/fail/{tranId}", paymentHandler.FailCallback)
	r.Get("/payments/success/{tranId}", paymentHandler.Get)
	r.Get("/payments/job/{jobId}", paymentHandler.ListForJob)
	r.Get("/users/{email}/paidJobs", paymentHandler.PaidJobs)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			app.logger.Error("failed to write health check response", "error", err)
		}
	})

	return r
}
