package middleware

import (
	"net/http"
	"strings"

	"github.com/go-chi/cors"
)

// CORS answers cross-origin requests for origin, allowing the comma
// separated request headers. Only GET is exposed. An empty origin disables
// the middleware.
func CORS(origin, headers string) func(http.Handler) http.Handler {
	if origin == "" {
		return func(next http.Handler) http.Handler { return next }
	}
	return cors.Handler(cors.Options{
		AllowedOrigins:       splitList(origin),
		AllowedMethods:       []string{http.MethodGet, http.MethodOptions},
		AllowedHeaders:       splitList(headers),
		OptionsSuccessStatus: http.StatusNoContent,
	})
}

func splitList(s string) []string {
	var out []string
	for _, item := range strings.Split(s, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
