package middleware

import (
	"net/http"

	"github.com/rs/cors"
)

// CORS allows the SPA frontend to call the API from another origin.
func CORS() func(http.Handler) http.Handler {
	c := cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type", HeaderActorID, HeaderActorRole},
		MaxAge:         300,
	})
	return c.Handler
}
