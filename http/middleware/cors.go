package middlewares

import (
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/tnqbao/gau-media-service/config"
)

func CORSMiddleware(cfg *config.EnvConfig) gin.HandlerFunc {
	allowed := make(map[string]bool)
	for _, domain := range strings.Split(cfg.CORS.AllowDomains, ",") {
		domain = strings.TrimSpace(domain)
		if domain != "" {
			allowed[domain] = true
		}
	}

	corsConfig := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
		AllowOriginFunc: func(origin string) bool {
			if allowed[origin] {
				return true
			}
			// Subdomains of the global domain are LMS frontends.
			return cfg.CORS.GlobalDomain != "" && strings.HasSuffix(origin, cfg.CORS.GlobalDomain)
		},
	}

	return cors.New(corsConfig)
}
