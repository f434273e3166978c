/*
Package http serves the zbuild HTTP API with graceful shutdown semantics.
*/
package http

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/packethost/pkg/log"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// shutdownTimeout bounds how long Serve waits for in-flight requests on shutdown.
const shutdownTimeout = 5 * time.Second

// Serve is a blocking call that begins serving handler on address with request tracing. When
// ctx is cancelled it attempts a graceful shutdown. If graceful shutdown fails, it forces
// shutdown and returns an error.
func Serve(ctx context.Context, logger log.Logger, address string, handler http.Handler) error {
	server := http.Server{
		Addr:    address,
		Handler: otelhttp.NewHandler(handler, "zbuild"),

		// Mitigate Slowloris attacks. The API has few headers so 20s is plenty of time.
		// https://en.wikipedia.org/wiki/Slowloris_(computer_security)
		ReadHeaderTimeout: 20 * time.Second,
	}

	go func() {
		logger.Info(fmt.Sprintf("Listening on %s", address))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Info(err.Error())
		}
	}()

	// Wait until we're told to shutdown.
	<-ctx.Done()

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		server.Close()

		if errors.Is(err, context.DeadlineExceeded) {
			return errors.New("timed out waiting for graceful shutdown")
		}

		return err
	}

	return nil
}
