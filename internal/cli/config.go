package cli

import (
	"encoding/json"
	"fmt"

	"github.com/vburojevic/authscan/internal/config"
)

// ConfigCmd shows or manages configuration
type ConfigCmd struct {
	Show     ConfigShowCmd     `cmd:"" default:"withargs" help:"Show current configuration"`
	Path     ConfigPathCmd     `cmd:"" help:"Show configuration file path"`
	Generate ConfigGenerateCmd `cmd:"" help:"Generate sample configuration file"`
}

// ConfigShowCmd shows current configuration
type ConfigShowCmd struct{}

// Run executes the config show command
func (c *ConfigShowCmd) Run(globals *Globals) error {
	cfg := globals.Config
	if cfg == nil {
		cfg = config.Default()
	}

	if globals.Format == "ndjson" {
		output := map[string]interface{}{
			"type":      "config",
			"format":    cfg.Format,
			"quiet":     cfg.Quiet,
			"verbose":   cfg.Verbose,
			"detection": cfg.Detection,
			"report":    cfg.Report,
			"file":      globals.ConfigFile,
		}
		encoder := json.NewEncoder(globals.Stdout)
		return encoder.Encode(output)
	}

	// Text output
	fmt.Fprintln(globals.Stdout, "Current Configuration:")
	fmt.Fprintln(globals.Stdout, "")
	fmt.Fprintf(globals.Stdout, "  format:  %s\n", cfg.Format)
	fmt.Fprintf(globals.Stdout, "  quiet:   %v\n", cfg.Quiet)
	fmt.Fprintf(globals.Stdout, "  verbose: %v\n", cfg.Verbose)
	fmt.Fprintln(globals.Stdout, "")
	fmt.Fprintln(globals.Stdout, "Detection:")
	fmt.Fprintf(globals.Stdout, "  window_seconds: %d\n", cfg.Detection.WindowSeconds)
	fmt.Fprintf(globals.Stdout, "  threshold:      %d\n", cfg.Detection.Threshold)
	fmt.Fprintf(globals.Stdout, "  workers:        %d\n", cfg.Detection.Workers)
	fmt.Fprintln(globals.Stdout, "")
	fmt.Fprintln(globals.Stdout, "Report:")
	fmt.Fprintf(globals.Stdout, "  top: %d\n", cfg.Report.Top)
	if cfg.Report.CSV != "" {
		fmt.Fprintf(globals.Stdout, "  csv: %s\n", cfg.Report.CSV)
	}
	if cfg.Report.MetricsFile != "" {
		fmt.Fprintf(globals.Stdout, "  metrics_file: %s\n", cfg.Report.MetricsFile)
	}

	if globals.ConfigFile != "" {
		fmt.Fprintln(globals.Stdout, "")
		fmt.Fprintf(globals.Stdout, "Loaded from: %s\n", globals.ConfigFile)
	}

	return nil
}

// ConfigPathCmd shows config file path
type ConfigPathCmd struct{}

// Run executes the config path command
func (c *ConfigPathCmd) Run(globals *Globals) error {
	path := config.ConfigFile()

	if globals.Format == "ndjson" {
		output := map[string]interface{}{
			"type": "config_path",
			"path": path,
		}
		encoder := json.NewEncoder(globals.Stdout)
		return encoder.Encode(output)
	}

	if path == "" {
		fmt.Fprintln(globals.Stdout, "No configuration file found")
		fmt.Fprintln(globals.Stdout, "")
		fmt.Fprintln(globals.Stdout, "Create one at:")
		fmt.Fprintln(globals.Stdout, "  ./.authscan.yaml")
		fmt.Fprintln(globals.Stdout, "  ~/.authscan.yaml")
		fmt.Fprintln(globals.Stdout, "  ~/.config/authscan/config.yaml")
	} else {
		fmt.Fprintf(globals.Stdout, "Config file: %s\n", path)
	}

	return nil
}

// ConfigGenerateCmd generates a sample configuration file
type ConfigGenerateCmd struct{}

// Run executes the config generate command
func (c *ConfigGenerateCmd) Run(globals *Globals) error {
	sampleConfig := `# authscan configuration file
# Place this file at ./.authscan.yaml, ~/.authscan.yaml or ~/.config/authscan/config.yaml

# Output format: "text" (default) or "ndjson"
format: text

# Suppress warnings and export notices
quiet: false

# Enable verbose/debug output on stderr
verbose: false

detection:
  # Sliding window length in seconds
  window_seconds: 60

  # Failed logins within one window that count as a burst
  threshold: 3

  # Parallel detection workers (0 = one per CPU)
  workers: 0

report:
  # Addresses listed under "Top failed-login IPs"
  top: 5

  # Always write burst offenders to this CSV file
  # csv: alerts.csv

  # Prometheus textfile for node_exporter
  # metrics_file: /var/lib/node_exporter/textfile/authscan.prom
`

	fmt.Fprint(globals.Stdout, sampleConfig)
	return nil
}
