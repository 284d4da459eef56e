package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/toxiclabs/payment-alerts/internal"
	"github.com/toxiclabs/payment-alerts/internal/transport"
)

// RecoveryMiddleware converts handler panics into a structured 500 so one
// poisoned delivery cannot take the relay down mid-request.
func RecoveryMiddleware(base *transport.BaseHandler) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					appErr := internal.NewInternalError("panic recovered", fmt.Errorf("%v", rec))

					base.Logger.Error("panic recovered",
						"error", rec,
						"method", r.Method,
						"path", maskBotToken(r.URL.Path),
						"stack", string(debug.Stack()))

					base.WriteJSON(w, appErr.StatusCode, appErr)
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}
