package orbital

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/soniakeys/meeus/julian"
)

// WriteTrajectoryCSV writes predicted trajectory samples as CSV for external
// plotting tools. The header records the epoch both as UTC and as a Julian
// date so astrodynamics tooling can line the samples up with ephemerides.
func WriteTrajectoryCSV(w io.Writer, epoch time.Time, points [][]float64) error {
	if _, err := fmt.Fprintf(w, "# Epoch (UTC): %s\n# Epoch (JD): %.6f\n", epoch.UTC(), julian.TimeToJD(epoch.UTC())); err != nil {
		return err
	}
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"sample", "x(m)", "y(m)", "z(m)"}); err != nil {
		return err
	}
	for k, pt := range points {
		rec := []string{
			strconv.Itoa(k),
			strconv.FormatFloat(pt[0], 'f', 3, 64),
			strconv.FormatFloat(pt[1], 'f', 3, 64),
			strconv.FormatFloat(pt[2], 'f', 3, 64),
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
