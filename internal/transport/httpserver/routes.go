package httpserver

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"profile-service/internal/config"
	"profile-service/internal/transport/httpserver/handler"
	"profile-service/internal/transport/httpserver/middleware"
	"profile-service/pkg/logger"
)

func NewRouter(cfg config.Config, handlers *handler.Handlers, log logger.Logger) http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.RequestLogger(log))
	r.Use(chimw.Recoverer)
	r.Use(chimw.Timeout(30 * time.Second))
	r.Use(middleware.NewCORS(cfg.CORSAllowedOrigins))

	r.Get("/health", handlers.Health)

	r.Route("/profiles", func(r chi.Router) {
		r.Get("/", handlers.ListProfiles)
		r.Post("/", handlers.CreateProfile)
		r.Get("/{id}", handlers.GetProfile)
		r.Put("/{id}", handlers.UpdateProfile)
		r.Delete("/{id}", handlers.DeleteProfile)
	})

	r.Get("/uploads/{name}", handlers.DownloadUpload)

	return r
}
