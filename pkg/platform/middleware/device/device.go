// Package device derives a human-readable device label ("Chrome on Linux")
// from the User-Agent so login logs can name the client.
package device

import (
	"net/http"

	"github.com/mssola/useragent"

	"cabinet/pkg/requestcontext"
)

// Middleware parses the User-Agent and stores the derived label in the
// context.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		label := Label(r.Header.Get("User-Agent"))
		ctx := requestcontext.WithDeviceLabel(r.Context(), label)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// Label condenses a raw User-Agent into "Browser on OS". Unknown agents
// report "unknown device".
func Label(rawUA string) string {
	if rawUA == "" {
		return "unknown device"
	}
	ua := useragent.New(rawUA)
	name, _ := ua.Browser()
	os := ua.OSInfo().Name
	switch {
	case name != "" && os != "":
		return name + " on " + os
	case name != "":
		return name
	case os != "":
		return os
	default:
		return "unknown device"
	}
}
