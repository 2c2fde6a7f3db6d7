package httpserver

import (
	"net/http"
	"time"

	"profile-service/internal/config"
)

const readHeaderTimeout = 5 * time.Second

// New builds the server for the profile API. Read and write timeouts cover
// whole multipart uploads, so they are longer than the router's handler timeout.
func New(cfg config.Config, handler http.Handler) *http.Server {
	port := cfg.HTTPPort
	if port == "" {
		port = "8080"
	}
	return &http.Server{
		Addr:              ":" + port,
		Handler:           handler,
		ReadHeaderTimeout: readHeaderTimeout,
		ReadTimeout:       cfg.HTTPReadTimeout,
		WriteTimeout:      cfg.HTTPWriteTimeout,
		IdleTimeout:       cfg.HTTPIdleTimeout,
	}
}
