package xff_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	. "github.com/zigcc/zbuild/internal/xff"
)

func init() {
	gin.SetMode(gin.ReleaseMode)
}

func TestParse(t *testing.T) {
	cases := []struct {
		Name    string
		Proxies string
		Parsed  []string
		Err     bool
	}{
		{
			Name:    "Single IPv4",
			Proxies: "192.178.1.1",
			Parsed:  []string{"192.178.1.1/32"},
		},
		{
			Name:    "Multiple IPv4s",
			Proxies: "192.178.1.1,192.178.1.2",
			Parsed:  []string{"192.178.1.1/32", "192.178.1.2/32"},
		},
		{
			Name:    "Single IPv6",
			Proxies: "2001:db8:0:0:0:ff00:42:8329",
			Parsed:  []string{"2001:db8:0:0:0:ff00:42:8329/128"},
		},
		{
			Name:    "Single IPv4 CIDR",
			Proxies: "192.178.0.0/16",
			Parsed:  []string{"192.178.0.0/16"},
		},
		{
			Name:    "Mixed IP and CIDR",
			Proxies: "192.178.0.0/16,192.179.1.1",
			Parsed:  []string{"192.178.0.0/16", "192.179.1.1/32"},
		},
		{
			Name:    "Whitespace",
			Proxies: " 192.178.1.1 , 192.178.1.2 ",
			Parsed:  []string{"192.178.1.1/32", "192.178.1.2/32"},
		},
		{
			Name:    "Empty",
			Proxies: "",
			Parsed:  nil,
		},
		{
			Name:    "Garbage",
			Proxies: "not-an-ip",
			Err:     true,
		},
	}

	for _, tc := range cases {
		t.Run(tc.Name, func(t *testing.T) {
			parsed, err := Parse(tc.Proxies)

			if tc.Err {
				assert.Error(t, err)
				return
			}

			require.NoError(t, err)
			if diff := cmp.Diff(tc.Parsed, parsed); diff != "" {
				t.Fatalf("unexpected parse result (-want +got):\n%s", diff)
			}
		})
	}
}

func TestMiddlewareReplacesRemoteAddr(t *testing.T) {
	middleware, err := MiddlewareFromUnparsed("10.0.0.1")
	require.NoError(t, err)

	var seen string
	router := gin.New()
	router.Use(middleware)
	router.GET("/", func(c *gin.Context) {
		seen = c.Request.RemoteAddr
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "10.0.0.1:4321"
	req.Header.Set("X-Forwarded-For", "192.168.1.5")

	router.ServeHTTP(httptest.NewRecorder(), req)

	assert.Contains(t, seen, "192.168.1.5")
}

func TestMiddlewareUntrustedProxy(t *testing.T) {
	middleware, err := MiddlewareFromUnparsed("10.0.0.1")
	require.NoError(t, err)

	var seen string
	router := gin.New()
	router.Use(middleware)
	router.GET("/", func(c *gin.Context) {
		seen = c.Request.RemoteAddr
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "172.16.0.9:4321"
	req.Header.Set("X-Forwarded-For", "192.168.1.5")

	router.ServeHTTP(httptest.NewRecorder(), req)

	assert.Contains(t, seen, "172.16.0.9")
}
