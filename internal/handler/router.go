package handler

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"github.com/Dan9191/kundli-service/internal/config"
	"github.com/Dan9191/kundli-service/internal/metrics"
	"github.com/Dan9191/kundli-service/internal/middleware"
)

// NewRouter registers every route. Chart routes sit behind the auth middleware.
func NewRouter(h *Handler, cfg *config.Config, log *logrus.Logger, m *metrics.Collector) *mux.Router {
	r := mux.NewRouter()
	r.Use(middleware.RecoverMiddleware(log))
	r.Use(middleware.LoggingMiddleware(log, m))

	// Public routes
	r.HandleFunc("/auth/token", h.IssueToken).Methods(http.MethodPost)
	r.HandleFunc("/healthz", h.Health).Methods(http.MethodGet)
	r.HandleFunc("/panchang/today", h.Today).Methods(http.MethodGet)
	if m != nil {
		r.Handle("/metrics", m.Handler()).Methods(http.MethodGet)
	}

	// Protected routes
	authRouter := r.PathPrefix("/").Subrouter()
	authRouter.Use(middleware.AuthMiddleware(cfg))
	authRouter.HandleFunc("/api/kundli", h.Kundli).Methods(http.MethodPost)
	authRouter.HandleFunc("/horoscope/panchang", h.Panchang).Methods(http.MethodPost)
	authRouter.HandleFunc("/horoscope/dasha/vimshottari", h.Vimshottari).Methods(http.MethodPost)
	authRouter.HandleFunc("/horoscope/dosha", h.Doshas).Methods(http.MethodPost)
	authRouter.HandleFunc("/chart/divisional", h.Divisional).Methods(http.MethodPost)
	authRouter.HandleFunc("/chart/render-input", h.RenderInput).Methods(http.MethodPost)

	return r
}
