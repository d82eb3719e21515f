package middleware

import (
	"net/http"

	"github.com/rs/cors"
)

// Cors allows browser clients on any origin to drive games. Session
// tokens travel in a header, so credentials are not needed.
func Cors() Middleware {
	options := cors.Options{
		AllowOriginFunc: func(origin string) bool {
			return true
		},
		AllowedMethods: []string{
			http.MethodHead,
			http.MethodGet,
			http.MethodPost,
		},
		AllowedHeaders: []string{"Content-Type", "X-Session-Token"},
	}
	return cors.New(options).Handler
}
