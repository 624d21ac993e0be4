package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/Dan9191/kundli-service/internal/integrations/ephemeris"
	"github.com/Dan9191/kundli-service/internal/jyotish"
	"github.com/Dan9191/kundli-service/internal/models"
	"github.com/Dan9191/kundli-service/internal/service"
	"github.com/Dan9191/kundli-service/internal/validation"
)

// DailyStore exposes the latest daily panchang
type DailyStore interface {
	Latest() (models.DailyPanchang, bool)
}

// Pinger checks a backing dependency
type Pinger interface {
	Ping(ctx context.Context) error
}

type Handler struct {
	svc   *service.Service
	daily DailyStore
	db    Pinger
	log   *logrus.Logger
}

// NewHandler wires the HTTP handlers. daily and db may be nil.
func NewHandler(svc *service.Service, daily DailyStore, db Pinger, log *logrus.Logger) *Handler {
	return &Handler{svc: svc, daily: daily, db: db, log: log}
}

type errorInfo struct {
	Code    string                  `json:"code"`
	Message string                  `json:"message"`
	Fields  []validation.FieldError `json:"fields,omitempty"`
}

type errorResponse struct {
	Error errorInfo `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, info errorInfo) {
	writeJSON(w, status, errorResponse{Error: info})
}

// fail maps a service error to its HTTP status
func (h *Handler) fail(w http.ResponseWriter, r *http.Request, err error) {
	var verr *validation.Error
	var cerr *models.ConfigError
	var uerr *jyotish.UnknownVargaError
	switch {
	case errors.As(err, &verr):
		writeError(w, http.StatusBadRequest, errorInfo{Code: "VALIDATION_FAILED", Message: "invalid birth details", Fields: verr.Errors})
	case errors.As(err, &cerr):
		writeError(w, http.StatusBadRequest, errorInfo{Code: "INVALID_OPTION", Message: cerr.Error()})
	case errors.As(err, &uerr):
		writeError(w, http.StatusBadRequest, errorInfo{Code: "UNKNOWN_CHART", Message: uerr.Error()})
	case errors.Is(err, service.ErrInvalidCredentials):
		writeError(w, http.StatusUnauthorized, errorInfo{Code: "INVALID_CREDENTIALS", Message: err.Error()})
	case errors.Is(err, ephemeris.ErrOutOfRange):
		writeError(w, http.StatusUnprocessableEntity, errorInfo{Code: "OUT_OF_RANGE", Message: err.Error()})
	case errors.Is(err, ephemeris.ErrUnavailable), errors.Is(err, context.DeadlineExceeded):
		h.log.WithField("path", r.URL.Path).Errorf("Ephemeris failure: %v", err)
		writeError(w, http.StatusBadGateway, errorInfo{Code: "EPHEMERIS_UNAVAILABLE", Message: "ephemeris provider unavailable"})
	default:
		h.log.WithField("path", r.URL.Path).Errorf("Request failed: %v", err)
		writeError(w, http.StatusInternalServerError, errorInfo{Code: "INTERNAL", Message: "internal error"})
	}
}

func (h *Handler) decode(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, errorInfo{Code: "INVALID_JSON", Message: "request body is not valid JSON"})
		return false
	}
	return true
}

// IssueToken exchanges client credentials for a bearer token
func (h *Handler) IssueToken(w http.ResponseWriter, r *http.Request) {
	var req models.TokenRequest
	if !h.decode(w, r, &req) {
		return
	}
	resp, err := h.svc.IssueToken(req)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// Kundli computes the full natal chart
func (h *Handler) Kundli(w http.ResponseWriter, r *http.Request) {
	var req models.ChartRequest
	if !h.decode(w, r, &req) {
		return
	}
	chart, err := h.svc.Chart(r.Context(), req)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, chart)
}

// Panchang returns the panchang of the birth date
func (h *Handler) Panchang(w http.ResponseWriter, r *http.Request) {
	var req models.ChartRequest
	if !h.decode(w, r, &req) {
		return
	}
	p, err := h.svc.Panchang(r.Context(), req)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// Vimshottari returns the dasha timeline
func (h *Handler) Vimshottari(w http.ResponseWriter, r *http.Request) {
	var req models.ChartRequest
	if !h.decode(w, r, &req) {
		return
	}
	d, err := h.svc.Dasha(r.Context(), req)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, d)
}

// Doshas returns the dosha flags
func (h *Handler) Doshas(w http.ResponseWriter, r *http.Request) {
	var req models.ChartRequest
	if !h.decode(w, r, &req) {
		return
	}
	d, err := h.svc.Doshas(r.Context(), req)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"doshas": d})
}

// Divisional returns one varga chart
func (h *Handler) Divisional(w http.ResponseWriter, r *http.Request) {
	var req models.DivisionalRequest
	if !h.decode(w, r, &req) {
		return
	}
	d, err := h.svc.Divisional(r.Context(), req)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, d)
}

// RenderInput returns the chart renderer payload
func (h *Handler) RenderInput(w http.ResponseWriter, r *http.Request) {
	var req models.RenderInputRequest
	if !h.decode(w, r, &req) {
		return
	}
	out, err := h.svc.RenderInput(r.Context(), req)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

// Today returns the latest panchang of the daily job
func (h *Handler) Today(w http.ResponseWriter, r *http.Request) {
	if h.daily == nil {
		writeError(w, http.StatusNotFound, errorInfo{Code: "NOT_AVAILABLE", Message: "daily panchang is not scheduled"})
		return
	}
	d, ok := h.daily.Latest()
	if !ok {
		writeError(w, http.StatusServiceUnavailable, errorInfo{Code: "NOT_READY", Message: "daily panchang has not been computed yet"})
		return
	}
	writeJSON(w, http.StatusOK, d)
}

// Health reports liveness and, when configured, the sample store
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	status := map[string]string{"status": "ok"}
	if h.db != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := h.db.Ping(ctx); err != nil {
			h.log.Warnf("Health check failed: %v", err)
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "degraded", "database": "unreachable"})
			return
		}
		status["database"] = "ok"
	}
	writeJSON(w, http.StatusOK, status)
}
