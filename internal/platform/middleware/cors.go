package middleware

import (
	"net/http"

	"github.com/go-chi/cors"
)

// CORS returns a middleware with permissive defaults suitable for the control
// API; the launcher UI is served from a different origin during development.
func CORS() func(http.Handler) http.Handler {
	return cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{
			http.MethodGet,
			http.MethodHead,
			http.MethodPost,
			http.MethodDelete,
			http.MethodOptions,
		},
		AllowedHeaders: []string{
			"Accept",
			"Authorization",
			"Content-Type",
			"Last-Event-ID",
		},
		ExposedHeaders: []string{"Link"},
		MaxAge:         300,
	})
}
