package metrics

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

// Serve exposes the Prometheus endpoint and a liveness probe. It blocks
// until the listener fails.
func Serve(addr string, corsOrigins []string, logger zerolog.Logger) error {
	Register()

	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())

	conf := cors.DefaultConfig()
	if len(corsOrigins) > 0 {
		conf.AllowOrigins = corsOrigins
	} else {
		conf.AllowAllOrigins = true
	}
	r.Use(cors.New(conf))

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	logger.Info().Str("addr", addr).Msg("metrics endpoint up")
	return r.Run(addr)
}
