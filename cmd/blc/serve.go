package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/you-not-fish/bl/internal/server"
)

func newServeCmd(a *app) *cobra.Command {
	var (
		host string
		port int
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP parse service",
		Long: `serve exposes the parser over HTTP:

  POST /v1/parse   body is a BL program; replies with its syntax tree
  POST /v1/check   body is a BL program; replies with check diagnostics
  GET  /healthz    liveness probe

The service stops gracefully on SIGINT or SIGTERM.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("host") {
				a.conf.Server.Host = host
			}
			if cmd.Flags().Changed("port") {
				a.conf.Server.Port = port
			}
			if !a.verbose {
				gin.SetMode(gin.ReleaseMode)
			}

			srv, err := server.New(a.conf, a.log)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return srv.Run(ctx)
		},
	}

	cmd.Flags().StringVar(&host, "host", "", "listen host (overrides server.host)")
	cmd.Flags().IntVarP(&port, "port", "p", 0, "listen port (overrides server.port)")
	return cmd
}
