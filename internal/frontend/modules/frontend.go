/*
Package modules is the HTTP frontend exposing registered extension modules. It lets a remote
caller discover modules and invoke their methods by name, the same surface a host embedding
the extension would see.
*/
package modules

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/packethost/pkg/log"
	"github.com/pkg/errors"
	"github.com/zigcc/zbuild/internal/extension"
)

// Frontend configures routers with handlers for module discovery and invocation.
type Frontend struct {
	log      log.Logger
	registry *extension.Registry
}

// New creates a new Frontend serving modules from registry.
func New(logger log.Logger, registry *extension.Registry) Frontend {
	return Frontend{
		log:      logger,
		registry: registry,
	}
}

// Configure configures router with the module endpoints.
func (f Frontend) Configure(router gin.IRouter) {
	v0 := router.Group("/v0")
	v0.GET("/modules", f.listModules)
	v0.GET("/modules/:module/methods/:method", f.invoke)
}

type methodJSON struct {
	Name string `json:"name"`
	Doc  string `json:"doc,omitempty"`
}

type moduleJSON struct {
	Name    string       `json:"name"`
	Methods []methodJSON `json:"methods"`
}

func (f Frontend) listModules(c *gin.Context) {
	modules := f.registry.Modules()

	payload := make([]moduleJSON, 0, len(modules))
	for _, module := range modules {
		methods := make([]methodJSON, 0, len(module.Methods))
		for _, method := range module.Methods {
			methods = append(methods, methodJSON{Name: method.Name, Doc: method.Doc})
		}
		payload = append(payload, moduleJSON{Name: module.Name, Methods: methods})
	}

	c.JSON(http.StatusOK, payload)
}

func (f Frontend) invoke(c *gin.Context) {
	module := c.Param("module")
	method := c.Param("method")

	// Query parameter values are forwarded as arguments; methods are free to ignore them.
	var args []any
	for _, value := range c.QueryArray("arg") {
		args = append(args, value)
	}

	result, err := f.registry.Invoke(module, method, args...)
	if err != nil {
		switch {
		case errors.Is(err, extension.ErrModuleNotFound), errors.Is(err, extension.ErrMethodNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		default:
			f.log.Error(err, "invoking extension method", "module", module, "method", method)
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	if s, ok := result.(string); ok {
		c.String(http.StatusOK, s)
		return
	}

	c.JSON(http.StatusOK, result)
}
