package healthcheck_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	. "github.com/zigcc/zbuild/internal/healthcheck"
)

func init() {
	gin.SetMode(gin.ReleaseMode)
}

type fakeClient bool

func (c fakeClient) IsHealthy(context.Context) bool { return bool(c) }

func TestHealthCheck(t *testing.T) {
	cases := []struct {
		Name         string
		Client       Client
		ExpectedCode int
	}{
		{
			Name:         "ClientIsHealthy",
			Client:       fakeClient(true),
			ExpectedCode: http.StatusOK,
		},
		{
			Name:         "ClientIsUnhealthy",
			Client:       fakeClient(false),
			ExpectedCode: http.StatusInternalServerError,
		},
	}

	for _, tc := range cases {
		t.Run(tc.Name, func(t *testing.T) {
			router := gin.New()
			router.GET("/healthz", NewHandler(tc.Client))

			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))

			assert.Equal(t, tc.ExpectedCode, w.Code)

			var payload struct {
				ToolchainHealthy bool `json:"toolchain_status"`
			}
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &payload))
			assert.Equal(t, bool(tc.Client.(fakeClient)), payload.ToolchainHealthy)
		})
	}
}
