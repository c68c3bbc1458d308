package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Faultbox/skyground/internal/logger"
	"github.com/Faultbox/skyground/internal/server"
)

func newServeCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve model queries over HTTP and WebSocket",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := a.loadModel()
			if err != nil {
				return err
			}

			ctx, stop := signalContext(cmd.Context())
			defer stop()

			s := server.New(m, logger.Named("server"), server.Options{
				ReadTimeout:  a.cfg.Server.ReadTimeout,
				WriteTimeout: a.cfg.Server.WriteTimeout,
				MaxBatch:     a.cfg.Server.MaxBatch,
			})
			logger.Info("starting server",
				zap.String("addr", a.cfg.Server.Addr),
				zap.String("dataset", a.cfg.Dataset.Path),
			)
			return s.ListenAndServe(ctx, a.cfg.Server.Addr)
		},
	}
	cmd.Flags().StringVar(&a.overrides.Addr, "addr", "", "listen address (default from config)")
	return cmd
}
