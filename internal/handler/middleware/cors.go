package middleware

import (
	"log/slog"
	"slices"

	"roomledger/internal/pkg/config"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func NewCORSMiddleware(cfg config.CORSConfig) gin.HandlerFunc {
	corsCfg := cors.Config{
		AllowOrigins:     cfg.AllowOrigins,
		AllowMethods:     cfg.AllowMethods,
		AllowHeaders:     withHeader(cfg.AllowHeaders, "Idempotency-Key"),
		ExposeHeaders:    withHeader(cfg.ExposeHeaders, "Location", "X-Request-ID"),
		AllowCredentials: cfg.AllowCredentials,
		MaxAge:           cfg.MaxAge,
	}
	slog.Info("CORS middleware initialized",
		"AllowOrigins", corsCfg.AllowOrigins,
		"ExposeHeaders", corsCfg.ExposeHeaders)
	return cors.New(corsCfg)
}

func withHeader(headers []string, required ...string) []string {
	out := slices.Clone(headers)
	for _, h := range required {
		if !slices.Contains(out, h) {
			out = append(out, h)
		}
	}
	return out
}
