/*
Package meta is the HTTP frontend exposing the project document. The project table is served
as JSON and operators can configure additional endpoints backed by jq filters over the
document.
*/
package meta

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/packethost/pkg/log"
	"github.com/pkg/errors"
	"github.com/zigcc/zbuild/internal/project"
)

// Frontend configures routers with project metadata endpoints.
type Frontend struct {
	log log.Logger
	doc project.Document
}

// New creates a new Frontend serving doc.
func New(logger log.Logger, doc project.Document) Frontend {
	return Frontend{
		log: logger,
		doc: doc,
	}
}

// Configure configures router with the project endpoint and one endpoint per customEndpoints
// entry, where the key is an endpoint path and the value a jq filter applied to the project
// document.
func (f Frontend) Configure(router gin.IRouter, customEndpoints map[string]string) error {
	router.GET("/v0/project", func(c *gin.Context) {
		c.JSON(http.StatusOK, f.doc)
	})

	for endpoint, filter := range customEndpoints {
		if !strings.HasPrefix(endpoint, "/") {
			return errors.Errorf("custom endpoint must start with /: %v", endpoint)
		}

		// Validate the filter up front so a bad configuration fails at startup, not on
		// first request.
		if _, err := f.doc.Filter(filter); err != nil {
			return errors.Wrapf(err, "custom endpoint %v", endpoint)
		}

		router.GET(endpoint, f.filteredHandler(filter))
	}

	return nil
}

// ParseCustomEndpoints parses a JSON encoded object of endpoint to jq filter mappings.
func ParseCustomEndpoints(encoded string) (map[string]string, error) {
	if encoded == "" {
		return nil, nil
	}

	endpoints := make(map[string]string)
	if err := json.Unmarshal([]byte(encoded), &endpoints); err != nil {
		return nil, errors.Wrap(err, "parse custom endpoints")
	}

	return endpoints, nil
}

func (f Frontend) filteredHandler(filter string) gin.HandlerFunc {
	return func(c *gin.Context) {
		result, err := f.doc.Filter(filter)
		if err != nil {
			f.log.Error(err, "filtering project document", "filter", filter)
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		c.String(http.StatusOK, string(result))
	}
}
