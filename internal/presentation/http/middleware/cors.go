package middleware

import (
	"slices"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sangkips/ledger-api/internal/config"
)

var (
	defaultOrigins = []string{"http://localhost:3000", "http://localhost:3001", "http://127.0.0.1:3000"}
	defaultMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	defaultHeaders = []string{"Accept", "Authorization", "Content-Type", "Origin", "X-Request-ID"}

	// headers clients need for commits and exports whatever the configuration says
	requiredHeaders = []string{"Authorization", "Content-Type", IdempotencyKeyHeader}
	exposedHeaders  = []string{
		"Content-Length", "Content-Type", "Content-Disposition",
		"X-Request-ID", "X-Idempotency-Replayed",
		"X-RateLimit-Limit", "X-RateLimit-Remaining", "Retry-After",
	}
)

// CORSMiddleware creates a CORS middleware from the configured lists, falling back to
// local development origins when none are set.
func CORSMiddleware(cfg *config.CORSConfig) gin.HandlerFunc {
	return cors.New(corsConfig(cfg))
}

func corsConfig(cfg *config.CORSConfig) cors.Config {
	c := cors.Config{
		AllowOrigins:     orDefault(cfg.AllowedOrigins, defaultOrigins),
		AllowMethods:     orDefault(cfg.AllowedMethods, defaultMethods),
		AllowHeaders:     orDefault(cfg.AllowedHeaders, defaultHeaders),
		ExposeHeaders:    exposedHeaders,
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	for _, h := range requiredHeaders {
		if !slices.Contains(c.AllowHeaders, h) {
			c.AllowHeaders = append(c.AllowHeaders, h)
		}
	}
	return c
}

func orDefault(values, fallback []string) []string {
	if len(values) == 0 {
		return slices.Clone(fallback)
	}
	return slices.Clone(values)
}
