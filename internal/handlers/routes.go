package handlers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Routes builds the API router. A positive timeout bounds each request's
// context.
func (h *Handler) Routes(timeout time.Duration) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	if timeout > 0 {
		r.Use(middleware.Timeout(timeout))
	}

	r.Get("/ping", h.PingHandler)
	r.Post("/register", h.RegisterHandler)
	r.Post("/login", h.LoginHandler)

	r.Group(func(r chi.Router) {
		r.Use(h.Authenticate)

		r.Route("/contractors", func(r chi.Router) {
			r.Get("/", h.ListContractorsHandler)
			r.Get("/{contractorId}", h.GetContractorHandler)
			r.Put("/{contractorId}", h.UpdateContractorHandler)
			r.Delete("/{contractorId}", h.DeleteContractorHandler)
		})

		r.Route("/fields", func(r chi.Router) {
			r.Get("/", h.ListFieldsHandler)
			r.Get("/{fieldId}", h.GetFieldHandler)
			r.Put("/{fieldId}", h.UpdateFieldHandler)
			r.Delete("/{fieldId}", h.DeleteFieldHandler)
		})

		r.Route("/jobs", func(r chi.Router) {
			r.Get("/", h.ListJobsHandler)
			r.Post("/", h.CreateJobHandler)
			r.Get("/{jobId}", h.GetJobHandler)
			r.Put("/{jobId}", h.UpdateJobHandler)
			r.Delete("/{jobId}", h.DeleteJobHandler)
		})

		r.Route("/bids", func(r chi.Router) {
			r.Get("/", h.ListBidsHandler)
			r.Post("/", h.CreateBidHandler)
			r.Get("/{bidId}", h.GetBidHandler)
			r.Put("/{bidId}", h.UpdateBidHandler)
			r.Delete("/{bidId}", h.DeleteBidHandler)
		})
	})

	return r
}
