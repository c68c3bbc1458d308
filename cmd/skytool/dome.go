package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Faultbox/skyground/internal/dome"
	"github.com/Faultbox/skyground/internal/logger"
)

func newDomeCmd(a *app) *cobra.Command {
	var out string
	var thetaSteps, phiSteps, workers int
	var wavelengths []float64

	cmd := &cobra.Command{
		Use:   "dome",
		Short: "Sample the sky hemisphere and write CSV",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := a.loadModel()
			if err != nil {
				return err
			}
			sun, err := a.cfg.Sky.Sun()
			if err != nil {
				return err
			}

			opts := dome.Options{
				ThetaSteps:   a.cfg.Dome.ThetaSteps,
				PhiSteps:     a.cfg.Dome.PhiSteps,
				Wavelengths:  a.wavelengths(cmd, wavelengths),
				SunElevation: sun.Elevation,
				SunAzimuth:   sun.Azimuth,
				Workers:      a.cfg.Dome.Workers,
				Progress: func(done, total int) {
					logger.Debug("dome progress", zap.Int("rings", done), zap.Int("total", total))
				},
			}
			if cmd.Flags().Changed("theta-steps") {
				opts.ThetaSteps = thetaSteps
			}
			if cmd.Flags().Changed("phi-steps") {
				opts.PhiSteps = phiSteps
			}
			if cmd.Flags().Changed("workers") {
				opts.Workers = workers
			}

			ctx, stop := signalContext(cmd.Context())
			defer stop()

			samples, err := dome.Render(ctx, m, opts)
			if err != nil {
				return err
			}
			logger.Info("dome rendered", zap.Int("samples", len(samples)))

			w := cmd.OutOrStdout()
			if out != "" && out != "-" {
				f, err := os.Create(out)
				if err != nil {
					return err
				}
				defer f.Close()
				w = f
			}
			return dome.WriteCSV(w, samples)
		},
	}

	cmd.Flags().StringVarP(&out, "out", "o", "", "output CSV file (default stdout)")
	cmd.Flags().IntVar(&thetaSteps, "theta-steps", 0, "rings from zenith to horizon (default from config)")
	cmd.Flags().IntVar(&phiSteps, "phi-steps", 0, "directions per ring (default from config)")
	cmd.Flags().IntVar(&workers, "workers", 0, "worker goroutines (default from config)")
	cmd.Flags().Float64SliceVar(&wavelengths, "wavelength", nil, "wavelengths in nm (default from config)")
	return cmd
}

// signalContext is cancelled on interrupt or SIGTERM.
func signalContext(parent context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
}
