package main

import (
	"encoding/json"
	"fmt"
	"io"
	"math"

	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/Faultbox/skyground/internal/dome"
	"github.com/Faultbox/skyground/internal/server"
	"github.com/Faultbox/skyground/pkg/skymodel"
)

const deg = math.Pi / 180

var zenithUp = r3.Vec{Z: 1}

// viewFlags selects a view direction in degrees.
type viewFlags struct {
	zenith  float64
	azimuth float64
}

func (v *viewFlags) register(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&v.zenith, "zenith", 0, "view zenith angle in degrees")
	cmd.Flags().Float64Var(&v.azimuth, "azimuth", 0, "view azimuth in degrees, counter-clockwise from east")
}

func (v *viewFlags) direction() r3.Vec {
	return dome.Direction(v.zenith*deg, v.azimuth*deg)
}

// wavelengths returns the --wavelength values, or the configured dome
// wavelengths when the flag is not given.
func (a *app) wavelengths(cmd *cobra.Command, flag []float64) []float64 {
	if cmd.Flags().Changed("wavelength") {
		return flag
	}
	return a.cfg.Dome.Wavelengths
}

func printSpectrum(w io.Writer, wavelengths []float64, eval func(wl float64) float64) {
	for _, wl := range wavelengths {
		fmt.Fprintf(w, "%g\t%g\n", wl, eval(wl))
	}
}

func newInfoCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "info",
		Short: "Show dataset dimensions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := a.loadModel()
			if err != nil {
				return err
			}
			lo, hi := m.WavelengthRange()
			data, err := json.MarshalIndent(server.InfoResponse{
				Info:          m.Info(),
				Params:        m.Params(),
				WavelengthMin: lo,
				WavelengthMax: hi,
			}, "", "  ")
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(data))
			return nil
		},
	}
}

func newRadianceCmd(a *app) *cobra.Command {
	var view viewFlags
	var wavelengths []float64

	cmd := &cobra.Command{
		Use:   "radiance",
		Short: "Print sky radiance of one view direction per wavelength",
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
			angles := skymodel.ComputeAngles(sun.Elevation, sun.Azimuth, view.direction(), zenithUp)
			printSpectrum(cmd.OutOrStdout(), a.wavelengths(cmd, wavelengths), func(wl float64) float64 {
				return m.SkyRadiance(angles.Theta, angles.Gamma, angles.Shadow, wl)
			})
			return nil
		},
	}
	view.register(cmd)
	cmd.Flags().Float64SliceVar(&wavelengths, "wavelength", nil, "wavelengths in nm (default from config)")
	return cmd
}

func newSolarCmd(a *app) *cobra.Command {
	var wavelengths []float64

	cmd := &cobra.Command{
		Use:   "solar",
		Short: "Print solar radiance reaching the ground per wavelength",
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
			theta := math.Pi/2 - sun.Elevation
			printSpectrum(cmd.OutOrStdout(), a.wavelengths(cmd, wavelengths), func(wl float64) float64 {
				return m.SolarRadiance(theta, wl)
			})
			return nil
		},
	}
	cmd.Flags().Float64SliceVar(&wavelengths, "wavelength", nil, "wavelengths in nm (default from config)")
	return cmd
}

func newTransmittanceCmd(a *app) *cobra.Command {
	var zenith, distance float64
	var wavelengths []float64

	cmd := &cobra.Command{
		Use:   "transmittance",
		Short: "Print transmittance along a ray per wavelength",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := a.loadModel()
			if err != nil {
				return err
			}
			d := distance
			if d <= 0 {
				d = skymodel.InfiniteDistance
			}
			printSpectrum(cmd.OutOrStdout(), a.wavelengths(cmd, wavelengths), func(wl float64) float64 {
				return m.Transmittance(zenith*deg, wl, d)
			})
			return nil
		},
	}
	cmd.Flags().Float64Var(&zenith, "zenith", 0, "ray zenith angle in degrees")
	cmd.Flags().Float64Var(&distance, "distance", 0, "ray length in metres (0 leaves the atmosphere)")
	cmd.Flags().Float64SliceVar(&wavelengths, "wavelength", nil, "wavelengths in nm (default from config)")
	return cmd
}

func newAnglesCmd(a *app) *cobra.Command {
	var view viewFlags

	cmd := &cobra.Command{
		Use:   "angles",
		Short: "Print the model angles of a view direction in degrees",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sun, err := a.cfg.Sky.Sun()
			if err != nil {
				return err
			}
			angles := skymodel.ComputeAngles(sun.Elevation, sun.Azimuth, view.direction(), zenithUp)
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "theta\t%.4f\n", angles.Theta/deg)
			fmt.Fprintf(out, "gamma\t%.4f\n", angles.Gamma/deg)
			fmt.Fprintf(out, "shadow\t%.4f\n", angles.Shadow/deg)
			return nil
		},
	}
	view.register(cmd)
	return cmd
}
