package zpages

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/zigcc/zbuild/internal/healthcheck"
)

// Configure configures router with zbuild specific z-page endpoints.
func Configure(router gin.IRouter, client healthcheck.Client) {
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	router.GET("/healthz", healthcheck.NewHandler(client))
}
