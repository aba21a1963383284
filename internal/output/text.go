package output

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/olekukonko/tablewriter"

	"github.com/vburojevic/authscan/internal/domain"
)

// TextWriter renders reports for humans
type TextWriter struct {
	w     io.Writer
	plain bool
}

// NewTextWriter creates a text writer. plain disables styling, for pipes and files.
func NewTextWriter(w io.Writer, plain bool) *TextWriter {
	return &TextWriter{w: w, plain: plain}
}

func (w *TextWriter) style(s lipgloss.Style, text string) string {
	if w.plain {
		return text
	}
	return s.Render(text)
}

// WriteReport outputs the summary, the top addresses (at most top, all when
// top < 0) and every ranked offender.
func (w *TextWriter) WriteReport(r *domain.Report, top int) error {
	var b strings.Builder

	fmt.Fprintf(&b, "%s %s\n", w.style(Styles.Label, "Analyzed:"), strings.Join(r.Sources, ", "))
	fmt.Fprintf(&b, "%s %s | %s %s | %s %s | %s %s\n",
		w.style(Styles.Label, "Lines:"), w.style(Styles.Value, fmtInt(r.Counters.TotalLines)),
		w.style(Styles.Label, "FAILED LOGINs:"), w.style(Styles.Value, fmtInt(r.Counters.FailedLogins)),
		w.style(Styles.Label, "WARN:"), w.style(Styles.Value, fmtInt(r.Counters.WarnCount)),
		w.style(Styles.Label, "ERROR:"), w.style(Styles.Value, fmtInt(r.Counters.ErrorCount)))

	b.WriteString("\n" + w.style(Styles.Header, "Top failed-login IPs:") + "\n")
	if shown := r.Top(top); len(shown) == 0 {
		b.WriteString("  (none)\n")
	} else {
		rows := make([][]string, len(shown))
		for i, kt := range shown {
			rows[i] = []string{w.style(Styles.Address, kt.Key), strconv.Itoa(kt.Count)}
		}
		if err := renderTable(&b, []string{"Address", "Failures"}, rows); err != nil {
			return err
		}
	}

	heading := fmt.Sprintf("Burst offenders (%d+ fails within %ds):", r.Config.Threshold, r.Config.WindowSeconds)
	b.WriteString("\n" + w.style(Styles.Header, heading) + "\n")
	if len(r.Offenders) == 0 {
		b.WriteString("  (none)\n")
	} else {
		rows := make([][]string, len(r.Offenders))
		for i, o := range r.Offenders {
			rows[i] = []string{
				w.style(Styles.Address, o.Key),
				w.style(Styles.Timestamp, domain.FormatTimestamp(o.WindowStart)),
				w.style(Styles.Timestamp, domain.FormatTimestamp(o.WindowEnd)),
				w.style(CountStyle(o.Count, r.Config.Threshold), strconv.Itoa(o.Count)),
			}
		}
		if err := renderTable(&b, []string{"Address", "First seen", "Last seen", "Count"}, rows); err != nil {
			return err
		}
	}

	b.WriteString("\n" + w.style(Styles.Label, "Status: ") + w.statusText(r.HasOffenders()) + "\n")

	_, err := io.WriteString(w.w, b.String())
	return err
}

func (w *TextWriter) statusText(hasOffenders bool) string {
	if w.plain {
		if hasOffenders {
			return "BURSTS DETECTED"
		}
		return "OK"
	}
	return StatusText(hasOffenders)
}

// WriteExport notes an artifact written alongside the report
func (w *TextWriter) WriteExport(kind, path string) error {
	label := "Exported offenders to:"
	if kind == "metrics" {
		label = "Exported metrics to:"
	}
	_, err := fmt.Fprintf(w.w, "\n%s %s\n", w.style(Styles.Label, label), path)
	return err
}

// WriteError outputs a styled error, followed by the hint when one is given
func (w *TextWriter) WriteError(code, message string, hint ...string) error {
	line := w.style(Styles.Danger, "Error") + " " + w.style(Styles.Warning, "["+code+"]") + ": " + message + "\n"
	if len(hint) > 0 && hint[0] != "" {
		line += w.style(Styles.Label, "Hint:") + " " + hint[0] + "\n"
	}
	_, err := io.WriteString(w.w, line)
	return err
}

func renderTable(out io.Writer, header []string, rows [][]string) error {
	table := tablewriter.NewWriter(out)
	cols := make([]any, len(header))
	for i, h := range header {
		cols[i] = h
	}
	table.Header(cols...)
	for _, row := range rows {
		if err := table.Append(row); err != nil {
			return err
		}
	}
	return table.Render()
}

func fmtInt(n int64) string {
	return strconv.FormatInt(n, 10)
}
