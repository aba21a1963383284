package cli

import (
	"strconv"

	"github.com/alecthomas/kong"

	"github.com/vburojevic/authscan/internal/config"
)

// ConfigVars exposes config values as kong defaults. Explicit flags still win.
func ConfigVars(cfg *config.Config) kong.Vars {
	if cfg == nil {
		cfg = config.Default()
	}
	return kong.Vars{
		"config_format":       cfg.Format,
		"config_window":       strconv.FormatInt(cfg.Detection.WindowSeconds, 10),
		"config_threshold":    strconv.Itoa(cfg.Detection.Threshold),
		"config_workers":      strconv.Itoa(cfg.Detection.Workers),
		"config_top":          strconv.Itoa(cfg.Report.Top),
		"config_csv":          cfg.Report.CSV,
		"config_metrics_file": cfg.Report.MetricsFile,
	}
}

// NewParser builds the kong parser for cli with config-backed defaults
func NewParser(cli *CLI, cfg *config.Config, options ...kong.Option) (*kong.Kong, error) {
	opts := []kong.Option{
		kong.Name("authscan"),
		kong.Description("Scan auth logs for failed-login bursts per source address.\n\nExample: authscan auth.log --window=60 --threshold=3 --out=alerts.csv"),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
			Summary: true,
		}),
		ConfigVars(cfg),
	}
	return kong.New(cli, append(opts, options...)...)
}
