package output

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/vburojevic/authscan/internal/domain"
)

// NewMetricsRegistry snapshots a report into a fresh registry. The gauges
// describe one finished run, for node_exporter's textfile collector.
func NewMetricsRegistry(r *domain.Report) *prometheus.Registry {
	reg := prometheus.NewRegistry()

	lines := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "authscan",
		Name:      "lines",
		Help:      "Log lines read in the last run, by classification.",
	}, []string{"kind"})
	lines.WithLabelValues("total").Set(float64(r.Counters.TotalLines))
	lines.WithLabelValues("warn").Set(float64(r.Counters.WarnCount))
	lines.WithLabelValues("error").Set(float64(r.Counters.ErrorCount))
	lines.WithLabelValues("failed_login").Set(float64(r.Counters.FailedLogins))

	perAddress := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "authscan",
		Name:      "address_failed_logins",
		Help:      "Failed logins per source address in the last run.",
	}, []string{"address"})
	for _, kt := range r.TopAddresses {
		perAddress.WithLabelValues(kt.Key).Set(float64(kt.Count))
	}

	offenders := prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "authscan",
		Name:      "offender_windows",
		Help:      "Burst windows detected in the last run.",
	})
	offenders.Set(float64(len(r.Offenders)))

	maxCount := prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "authscan",
		Name:      "max_burst_count",
		Help:      "Largest event count of any detected burst window.",
	})
	if len(r.Offenders) > 0 {
		// Offenders are ranked by count first.
		maxCount.Set(float64(r.Offenders[0].Count))
	}

	lastRun := prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "authscan",
		Name:      "last_run_timestamp_seconds",
		Help:      "Unix time the last report was generated.",
	})
	lastRun.Set(float64(r.GeneratedAt.Unix()))

	reg.MustRegister(lines, perAddress, offenders, maxCount, lastRun)
	return reg
}

// WriteMetricsFile writes the report's gauges in the text exposition format.
// The file is replaced atomically.
func WriteMetricsFile(path string, r *domain.Report) error {
	return prometheus.WriteToTextfile(path, NewMetricsRegistry(r))
}
