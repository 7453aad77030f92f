package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	rowshandlers "github.com/kaimrdth/Barbershop-Transactions-Automation/internal/handlers/rows"
	synchandlers "github.com/kaimrdth/Barbershop-Transactions-Automation/internal/handlers/sync"
	"github.com/kaimrdth/Barbershop-Transactions-Automation/internal/repo"
	"github.com/kaimrdth/Barbershop-Transactions-Automation/internal/service"
	"github.com/kaimrdth/Barbershop-Transactions-Automation/pkg/auth"
)

type SyncHandler interface {
	Run(w http.ResponseWriter, r *http.Request)
	Status(w http.ResponseWriter, r *http.Request)
	Reset(w http.ResponseWriter, r *http.Request)
}

type RowsHandler interface {
	List(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
}

type Handlers struct {
	SyncHandler SyncHandler
	RowsHandler RowsHandler

	adminToken string
}

func New(s *service.Services, repos *repo.Repositories, adminToken string) *Handlers {
	return &Handlers{
		SyncHandler: synchandlers.New(s.ReconService),
		RowsHandler: rowshandlers.New(repos.RowRepo),
		adminToken:  adminToken,
	}
}

func (h *Handlers) InitRoutes(r chi.Router) chi.Router {
	r.Use(
		middleware.RealIP,
		middleware.Recoverer,
		middleware.Logger,
	)
	r.Route("/api", func(r chi.Router) {
		r.Use(auth.Middleware(h.adminToken))

		r.Route("/sync", func(r chi.Router) {
			r.Post("/run", h.SyncHandler.Run)
			r.Get("/status", h.SyncHandler.Status)
		})
		r.Post("/state/reset", h.SyncHandler.Reset)

		r.Route("/rows", func(r chi.Router) {
			r.Get("/", h.RowsHandler.List)
			r.Get("/{transactionID}", h.RowsHandler.Get)
		})
	})

	return r
}
