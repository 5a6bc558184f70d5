package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"cotizador/go_backend/internal/app/config"
	"cotizador/go_backend/internal/app/http/handlers"
	"cotizador/go_backend/internal/app/http/middleware"
	"cotizador/go_backend/internal/infra/db/postgres"
)

func NewRouter(cfg config.Config, db *postgres.DB) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.Recoverer)
	r.Use(middleware.Logging)
	r.Use(middleware.CORS(cfg.CORSAllowOrigin))

	h := handlers.New(db, cfg)

	r.Get("/health", h.Health)

	r.Route("/v1", func(r chi.Router) {
		r.Post("/quotes/preview", h.PreviewQuote)
		r.Post("/quotes/export", h.ExportQuote)
		r.Get("/quotes/pages", h.QuotePages)
	})

	return r
}
