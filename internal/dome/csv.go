package dome

import (
	"encoding/csv"
	"io"
	"math"
	"strconv"
)

var csvHeader = []string{"theta_deg", "phi_deg", "gamma_deg", "shadow_deg", "wavelength_nm", "radiance"}

// WriteCSV writes samples with angles in degrees.
func WriteCSV(w io.Writer, samples []Sample) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}

	record := make([]string, len(csvHeader))
	for _, s := range samples {
		record[0] = formatDegrees(s.Theta)
		record[1] = formatDegrees(s.Phi)
		record[2] = formatDegrees(s.Gamma)
		record[3] = formatDegrees(s.Shadow)
		record[4] = strconv.FormatFloat(s.Wavelength, 'f', -1, 64)
		record[5] = strconv.FormatFloat(s.Radiance, 'g', 8, 64)
		if err := cw.Write(record); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

func formatDegrees(rad float64) string {
	return strconv.FormatFloat(rad*180/math.Pi, 'f', 4, 64)
}
