// Package builder is the HTTP frontend for triggering distribution builds.
package builder

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/packethost/pkg/log"
	"github.com/zigcc/zbuild/internal/builder"
)

// Builds runs distribution builds on behalf of the frontend. It is satisfied by
// builder.Builder.
type Builds interface {
	BuildWheel(ctx context.Context) (string, error)
	BuildSdist(ctx context.Context) (string, error)
}

// Interface assertion. builder.Builder is the production implementation.
var _ Builds = builder.Builder{}

// Frontend configures routers with build endpoints.
type Frontend struct {
	log    log.Logger
	builds Builds
}

// New creates a new Frontend running builds with builds.
func New(logger log.Logger, builds Builds) Frontend {
	return Frontend{
		log:    logger,
		builds: builds,
	}
}

// Configure configures router with the build endpoint.
func (f Frontend) Configure(router gin.IRouter) {
	router.POST("/v0/build", f.build)
}

type buildRequest struct {
	Kind string `json:"kind"`
}

type buildResponse struct {
	Kind string `json:"kind"`
	Path string `json:"path"`
}

func (f Frontend) build(c *gin.Context) {
	var request buildRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var (
		path string
		err  error
	)

	switch request.Kind {
	case "wheel":
		path, err = f.builds.BuildWheel(c.Request.Context())
	case "sdist":
		path, err = f.builds.BuildSdist(c.Request.Context())
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "kind must be wheel or sdist"})
		return
	}

	if err != nil {
		f.log.Error(err, "building distribution", "kind", request.Kind)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, buildResponse{Kind: request.Kind, Path: path})
}
