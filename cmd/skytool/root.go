package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Faultbox/skyground/internal/config"
	"github.com/Faultbox/skyground/internal/logger"
	"github.com/Faultbox/skyground/pkg/skymodel"
)

// app carries flag values and the loaded config between commands.
type app struct {
	overrides config.Overrides

	elevation  float64
	visibility float64
	albedo     float64

	cfg *config.Config
}

func newRootCmd() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:   "skytool",
		Short: "Ground-level sky radiance model",
		Long: `skytool evaluates a precomputed sky model for a viewer on the ground:
sky radiance, solar radiance and atmospheric transmittance per wavelength.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			logger.Sync()
		},
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&a.overrides.ConfigPath, "config", "", "config file (default ./"+config.FileName+" or the user config dir)")
	pf.StringVar(&a.overrides.Dataset, "dataset", "", "dataset file")
	pf.Float64Var(&a.elevation, "elevation", 0, "solar elevation in degrees")
	pf.Float64Var(&a.visibility, "visibility", 0, "visibility in km")
	pf.Float64Var(&a.albedo, "albedo", 0, "ground albedo")
	pf.StringVar(&a.overrides.Time, "time", "", "RFC 3339 time to derive the sun position from")
	pf.StringVar(&a.overrides.LogLevel, "log-level", "", "log level (debug, info, warn, error)")
	pf.StringVar(&a.overrides.LogFile, "log-file", "", "also log to this file")
	pf.BoolVar(&a.overrides.Debug, "debug", false, "enable debug logging")

	rootCmd.AddCommand(
		newInfoCmd(a),
		newRadianceCmd(a),
		newSolarCmd(a),
		newTransmittanceCmd(a),
		newAnglesCmd(a),
		newDomeCmd(a),
		newServeCmd(a),
		newSynthCmd(a),
		newConfigCmd(a),
	)
	return rootCmd
}

// setup loads the config and initializes logging.
func (a *app) setup(cmd *cobra.Command) error {
	flags := cmd.Flags()
	if flags.Changed("elevation") {
		a.overrides.Elevation = &a.elevation
	}
	if flags.Changed("visibility") {
		a.overrides.Visibility = &a.visibility
	}
	if flags.Changed("albedo") {
		a.overrides.Albedo = &a.albedo
	}

	cfg, err := config.Load(a.overrides)
	if err != nil {
		return err
	}
	a.cfg = cfg

	opts := logger.Options{
		Level:   cfg.Logging.Level,
		Format:  cfg.Logging.Format,
		Console: cmd.ErrOrStderr(),
	}
	if cfg.Logging.LogFile != "" {
		fc := logger.DefaultFileConfig(cfg.Logging.LogFile)
		if cfg.Logging.MaxSizeMB > 0 {
			fc.MaxSizeMB = cfg.Logging.MaxSizeMB
		}
		if cfg.Logging.MaxBackups > 0 {
			fc.MaxBackups = cfg.Logging.MaxBackups
		}
		if cfg.Logging.MaxAgeDays > 0 {
			fc.MaxAgeDays = cfg.Logging.MaxAgeDays
		}
		fc.Compress = cfg.Logging.Compress
		opts.File = fc
	}
	if err := logger.InitWithOptions(opts); err != nil {
		return fmt.Errorf("logger: %w", err)
	}
	return nil
}

// loadModel loads the configured dataset for the configured sky.
func (a *app) loadModel() (*skymodel.Model, error) {
	p, err := a.cfg.Params()
	if err != nil {
		return nil, err
	}
	if err := p.Check(); err != nil {
		logger.Warn("sky parameters outside the fitted range", zap.Error(err))
	}

	logger.Debug("loading dataset",
		zap.String("path", a.cfg.Dataset.Path),
		zap.Float64("elevation", p.Elevation),
		zap.Float64("visibility", p.Visibility),
		zap.Float64("albedo", p.Albedo),
	)
	m, err := skymodel.Load(a.cfg.Dataset.Path, p)
	if err != nil {
		return nil, err
	}
	return m, nil
}
