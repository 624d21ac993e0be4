package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"github.com/Dan9191/kundli-service/internal/jyotish"
)

// RecoverMiddleware turns a panic into a 500. Engine defects are logged with
// the offending value.
func RecoverMiddleware(log *logrus.Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				if rec == http.ErrAbortHandler {
					panic(rec)
				}
				err, ok := rec.(error)
				if !ok {
					err = fmt.Errorf("%v", rec)
				}
				fields := logrus.Fields{"path": r.URL.Path, "error": err.Error()}
				var defect jyotish.Defect
				if errors.As(err, &defect) {
					fields["defect"] = true
				} else {
					fields["stack"] = string(debug.Stack())
				}
				log.WithFields(fields).Error("Recovered from panic")
				writeError(w, http.StatusInternalServerError, "INTERNAL", "internal error")
			}()
			next.ServeHTTP(w, r)
		})
	}
}
