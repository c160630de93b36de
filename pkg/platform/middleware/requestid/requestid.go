// Package requestid assigns every request a stable identifier for log
// correlation. An inbound X-Request-ID is honored so identifiers survive
// proxies; otherwise a fresh UUID is minted.
package requestid

import (
	"net/http"

	"github.com/google/uuid"

	"cabinet/pkg/requestcontext"
)

const headerName = "X-Request-ID"

// Middleware injects the request ID into the context and echoes it on the
// response.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get(headerName)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		w.Header().Set(headerName, requestID)
		ctx := requestcontext.WithRequestID(r.Context(), requestID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
