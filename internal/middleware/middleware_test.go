package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Dan9191/kundli-service/internal/config"
	"github.com/Dan9191/kundli-service/internal/jyotish"
	"github.com/Dan9191/kundli-service/internal/metrics"
)

func signed(t *testing.T, secret string, exp time.Time) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   "kundli",
		ExpiresAt: jwt.NewNumericDate(exp),
	})
	s, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return s
}

func protected(cfg *config.Config) http.Handler {
	r := mux.NewRouter()
	r.Use(AuthMiddleware(cfg))
	r.HandleFunc("/api/kundli", func(w http.ResponseWriter, r *http.Request) {
		id, _ := ClientID(r.Context())
		_, _ = w.Write([]byte(id))
	})
	return r
}

func TestAuthMiddleware(t *testing.T) {
	cfg := &config.Config{AuthEnabled: true, JWTSecret: "secret"}
	h := protected(cfg)

	tests := []struct {
		name   string
		header string
		status int
	}{
		{"valid token", "Bearer " + signed(t, "secret", time.Now().Add(time.Hour)), http.StatusOK},
		{"missing header", "", http.StatusUnauthorized},
		{"wrong scheme", "Basic abc", http.StatusUnauthorized},
		{"wrong secret", "Bearer " + signed(t, "other", time.Now().Add(time.Hour)), http.StatusUnauthorized},
		{"expired", "Bearer " + signed(t, "secret", time.Now().Add(-time.Hour)), http.StatusUnauthorized},
		{"garbage", "Bearer not.a.jwt", http.StatusUnauthorized},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/kundli", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)
			assert.Equal(t, tt.status, rec.Code)
			if tt.status == http.StatusOK {
				assert.Equal(t, "kundli", rec.Body.String())
			}
		})
	}
}

func TestAuthMiddlewareDisabled(t *testing.T) {
	h := protected(&config.Config{AuthEnabled: false})
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/kundli", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestLoggingMiddleware(t *testing.T) {
	log, hook := test.NewNullLogger()
	m := metrics.NewCollector("test")
	r := mux.NewRouter()
	r.Use(LoggingMiddleware(log, m))
	r.HandleFunc("/chart/{kind}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/chart/d9", nil))

	assert.Equal(t, http.StatusTeapot, rec.Code)
	assert.NotEmpty(t, rec.Header().Get(RequestIDHeader))
	entry := hook.LastEntry()
	require.NotNil(t, entry)
	assert.Equal(t, logrus.WarnLevel, entry.Level)
	assert.Equal(t, http.StatusTeapot, entry.Data["status"])
	assert.Equal(t, rec.Header().Get(RequestIDHeader), entry.Data["request_id"])

	scrape := httptest.NewRecorder()
	m.Handler().ServeHTTP(scrape, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Contains(t, scrape.Body.String(), `test_http_requests_total{method="GET",route="/chart/{kind}",status="418"} 1`)
}

func TestLoggingMiddlewareKeepsCallerRequestID(t *testing.T) {
	log, _ := test.NewNullLogger()
	r := mux.NewRouter()
	r.Use(LoggingMiddleware(log, nil))
	r.HandleFunc("/healthz", func(http.ResponseWriter, *http.Request) {})

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, "abc-123", rec.Header().Get(RequestIDHeader))
}

func TestRecoverMiddleware(t *testing.T) {
	log, hook := test.NewNullLogger()
	r := mux.NewRouter()
	r.Use(RecoverMiddleware(log))
	r.HandleFunc("/defect", func(http.ResponseWriter, *http.Request) {
		panic(jyotish.Defect{Kind: "sign", Detail: "index 13 outside 1..12"})
	})
	r.HandleFunc("/other", func(http.ResponseWriter, *http.Request) {
		panic("unexpected")
	})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/defect", nil))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error":{"code":"INTERNAL","message":"internal error"}}`, rec.Body.String())
	require.NotNil(t, hook.LastEntry())
	assert.Equal(t, true, hook.LastEntry().Data["defect"])

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/other", nil))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, hook.LastEntry().Data, "stack")
}
