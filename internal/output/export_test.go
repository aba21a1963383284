package output

import (
	"bytes"
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vburojevic/authscan/internal/domain"
)

func TestWriteCSV(t *testing.T) {
	t.Run("writes header and one row per offender", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, WriteCSV(&buf, sampleReport(t)))

		records, err := csv.NewReader(&buf).ReadAll()
		require.NoError(t, err)
		assert.Equal(t, [][]string{
			{"address", "first_seen", "last_seen", "count", "window_seconds", "threshold"},
			{"10.0.0.1", "2024-01-01 00:00:00", "2024-01-01 00:00:20", "3", "60", "3"},
		}, records)
	})

	t.Run("header only without offenders", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, WriteCSV(&buf, domain.NewReport(domain.DetectionConfig{WindowSeconds: 60, Threshold: 3})))
		assert.Equal(t, "address,first_seen,last_seen,count,window_seconds,threshold\n", buf.String())
	})
}

func TestWriteCSVFile(t *testing.T) {
	dir := t.TempDir()

	path := filepath.Join(dir, "alerts.csv")
	require.NoError(t, WriteCSVFile(path, sampleReport(t)))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "10.0.0.1,2024-01-01 00:00:00,2024-01-01 00:00:20,3,60,3")

	err = WriteCSVFile(filepath.Join(dir, "missing", "alerts.csv"), sampleReport(t))
	assert.Error(t, err)
}

func TestWriteMetricsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "authscan.prom")
	require.NoError(t, WriteMetricsFile(path, sampleReport(t)))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	text := string(data)

	assert.Contains(t, text, `authscan_lines{kind="total"} 10`)
	assert.Contains(t, text, `authscan_lines{kind="failed_login"} 4`)
	assert.Contains(t, text, `authscan_address_failed_logins{address="10.0.0.1"} 3`)
	assert.Contains(t, text, "authscan_offender_windows 1")
	assert.Contains(t, text, "authscan_max_burst_count 3")
	assert.Contains(t, text, "# TYPE authscan_last_run_timestamp_seconds gauge")
}

func TestNewMetricsRegistry_Gathers(t *testing.T) {
	families, err := NewMetricsRegistry(sampleReport(t)).Gather()
	require.NoError(t, err)

	names := make([]string, 0, len(families))
	for _, f := range families {
		names = append(names, f.GetName())
	}
	assert.ElementsMatch(t, []string{
		"authscan_lines",
		"authscan_address_failed_logins",
		"authscan_offender_windows",
		"authscan_max_burst_count",
		"authscan_last_run_timestamp_seconds",
	}, names)
}
