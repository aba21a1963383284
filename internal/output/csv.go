package output

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/vburojevic/authscan/internal/domain"
)

// CSVHeader is the column layout of the offenders export
var CSVHeader = []string{"address", "first_seen", "last_seen", "count", "window_seconds", "threshold"}

// WriteCSV writes one row per ranked offender plus the run configuration
func WriteCSV(w io.Writer, r *domain.Report) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(CSVHeader); err != nil {
		return err
	}

	window := strconv.FormatInt(r.Config.WindowSeconds, 10)
	threshold := strconv.Itoa(r.Config.Threshold)
	for _, o := range r.Offenders {
		record := []string{
			o.Key,
			domain.FormatTimestamp(o.WindowStart),
			domain.FormatTimestamp(o.WindowEnd),
			strconv.Itoa(o.Count),
			window,
			threshold,
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

// WriteCSVFile creates (or truncates) path and writes the offenders export
func WriteCSVFile(path string, r *domain.Report) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	if err := WriteCSV(f, r); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
