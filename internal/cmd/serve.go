package cmd

import (
	"context"
	"fmt"
	"syscall"

	"github.com/equinix-labs/otel-init-go/otelinit"
	"github.com/gin-gonic/gin"
	"github.com/oklog/run"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"github.com/zigcc/zbuild/internal/extension"
	buildfe "github.com/zigcc/zbuild/internal/frontend/builder"
	"github.com/zigcc/zbuild/internal/frontend/meta"
	"github.com/zigcc/zbuild/internal/frontend/modules"
	zbuildhttp "github.com/zigcc/zbuild/internal/http"
	"github.com/zigcc/zbuild/internal/logger"
	"github.com/zigcc/zbuild/internal/metrics"
	"github.com/zigcc/zbuild/internal/xff"
	"github.com/zigcc/zbuild/internal/zpages"
)

type serveOptions struct {
	HTTPPort            int    `mapstructure:"http-port"`
	TrustedProxies      string `mapstructure:"trusted-proxies"`
	HTTPCustomEndpoints string `mapstructure:"http-custom-endpoints"`
}

func newServeCommand(root *RootCommand) *cobra.Command {
	vpr := newViper()

	var opts serveOptions

	cmd := &cobra.Command{
		Use:          "serve",
		Short:        "Serve the project and its extension modules over HTTP",
		SilenceUsage: true,
		PreRunE: func(*cobra.Command, []string) error {
			return vpr.Unmarshal(&opts)
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return serve(cmd.Context(), root, opts)
		},
	}

	cmd.Flags().Int("http-port", 50061, "Port to listen on for HTTP requests")
	cmd.Flags().String(
		"trusted-proxies",
		"",
		"A commma separated list of allowed peer IPs and/or CIDR blocks to replace with X-Forwarded-For",
	)
	cmd.Flags().String(
		"http-custom-endpoints",
		"",
		"JSON encoded object specifying custom endpoint => jq filter mappings over the project document",
	)

	if err := bindFlags(vpr, cmd.Flags()); err != nil {
		panic(err)
	}

	return cmd
}

func serve(ctx context.Context, root *RootCommand, opts serveOptions) error {
	logr, err := root.Logger()
	if err != nil {
		return err
	}
	defer logr.Close()

	logr.With("opts", fmt.Sprintf("%#v", opts)).Info("Serve command options")

	ctx, otelShutdown := otelinit.InitOpenTelemetry(ctx, "zbuild")
	defer otelShutdown(ctx)

	metrics.State.Set(metrics.Initializing)

	doc, err := root.Document()
	if err != nil {
		return err
	}

	customEndpoints, err := meta.ParseCustomEndpoints(opts.HTTPCustomEndpoints)
	if err != nil {
		return err
	}

	bldr := root.Builder(logr)

	xffmw, err := xff.MiddlewareFromUnparsed(opts.TrustedProxies)
	if err != nil {
		return err
	}

	router := gin.New()
	router.Use(
		logger.Middleware(logr),
		gin.Recovery(),
		xffmw,
		metrics.InstrumentRequestCount(prometheus.DefaultRegisterer),
		metrics.InstrumentRequestDuration(prometheus.DefaultRegisterer),
	)

	zpages.Configure(router, bldr.Compiler)

	modules.New(logr, extension.Default()).Configure(router)
	buildfe.New(logr, bldr).Configure(router)

	if err := meta.New(logr, doc).Configure(router, customEndpoints); err != nil {
		return err
	}

	var routines run.Group

	serveCtx, serveCancel := context.WithCancel(ctx)
	defer serveCancel()

	routines.Add(
		func() error {
			metrics.State.Set(metrics.Ready)
			return zbuildhttp.Serve(serveCtx, logr, fmt.Sprintf(":%v", opts.HTTPPort), router)
		},
		func(error) { serveCancel() },
	)
	routines.Add(run.SignalHandler(ctx, syscall.SIGINT, syscall.SIGTERM))

	err = routines.Run()
	if _, ok := err.(run.SignalError); ok {
		return nil
	}

	return err
}
