package healthcheck

import (
	"context"
	"net/http"
	"runtime"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/zigcc/zbuild/internal/build"
)

// Client defines health check behavior for a service.
type Client interface {
	// IsHealthy returns true if the toolchain is usable, else false.
	IsHealthy(context.Context) bool
}

// NewHandler returns a gin.HandlerFunc that provides a health check endpoint behavior. On each
// request it queries client.IsHealthy and returns a 200 if the toolchain is healthy, else a 500.
func NewHandler(client Client) gin.HandlerFunc {
	start := time.Now()
	return func(ctx *gin.Context) {
		isHealthy := client.IsHealthy(ctx)

		res := struct {
			GitRev           string  `json:"git_rev"`
			Uptime           float64 `json:"uptime"`
			Goroutines       int     `json:"goroutines"`
			ToolchainHealthy bool    `json:"toolchain_status"`
		}{
			GitRev:           build.GetGitRevision(),
			Uptime:           time.Since(start).Seconds(),
			Goroutines:       runtime.NumGoroutine(),
			ToolchainHealthy: isHealthy,
		}

		status := http.StatusOK
		if !isHealthy {
			status = http.StatusInternalServerError
		}

		ctx.JSON(status, res)
	}
}
