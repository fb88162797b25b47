package diag

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/cockroachdb/errors"
	"github.com/fatih/color"
)

// Format specifies the output format for validation reports.
type Format string

const (
	// FormatText produces human-readable text output.
	FormatText Format = "text"
	// FormatJSON produces machine-readable JSON output.
	FormatJSON Format = "json"
)

// Reporter formats and writes validation reports.
type Reporter struct {
	out     io.Writer
	format  Format
	verbose bool
}

// NewReporter creates a new Reporter. When verbose is set, the text form
// lists every diagnostic instead of the per-rule summary.
func NewReporter(out io.Writer, format Format, verbose bool) *Reporter {
	return &Reporter{
		out:     out,
		format:  format,
		verbose: verbose,
	}
}

// Report writes the report to the output.
func (r *Reporter) Report(report *Report) error {
	if report == nil {
		return nil
	}

	switch r.format {
	case FormatJSON:
		return r.reportJSON(report)
	default:
		return r.reportText(report)
	}
}

func (r *Reporter) reportJSON(report *Report) error {
	encoder := json.NewEncoder(r.out)
	encoder.SetIndent("", "  ")
	return errors.Wrap(encoder.Encode(report), "encoding JSON report")
}

func (r *Reporter) reportText(report *Report) error {
	fmt.Fprintf(r.out, "--------- Results for %s (run %s)\n", report.File, report.RunID)

	if report.Summary.Total() == 0 {
		fmt.Fprintln(r.out, color.GreenString("Validation completed with no warnings/errors."))
		return nil
	}

	counts := []struct {
		n        int
		severity Severity
		paint    func(format string, a ...interface{}) string
	}{
		{report.Summary.Errors, SeverityError, color.RedString},
		{report.Summary.Warnings, SeverityWarning, color.YellowString},
		{report.Summary.Infos, SeverityInfo, color.CyanString},
	}
	for _, c := range counts {
		if c.n == 0 {
			continue
		}
		suffix := ""
		if c.n > 1 {
			suffix = "s"
		}
		fmt.Fprintf(r.out, "%6d %s message%s found\n",
			c.n, c.paint("%s", c.severity.String()), suffix)
		for _, rc := range report.Summary.Rules {
			if rc.Severity != c.severity {
				continue
			}
			ruleSuffix := ""
			if rc.Count > 1 {
				ruleSuffix = "s"
			}
			fmt.Fprintf(r.out, "%10d %s %s message%s\n",
				rc.Count, rc.Rule, c.severity.String(), ruleSuffix)
			if r.verbose {
				for _, d := range report.Diagnostics {
					if d.Rule == rc.Rule && d.Severity == rc.Severity {
						fmt.Fprintf(r.out, "        %s\n", r.paintDiagnostic(d))
					}
				}
			}
		}
	}

	return nil
}

func (r *Reporter) paintDiagnostic(d Diagnostic) string {
	msg := d.Message
	if d.ObjectID != "" {
		msg += color.New(color.FgHiBlack).Sprintf(" [%s]", d.ObjectID)
	}
	if d.Path != "" {
		msg += color.New(color.FgHiBlack).Sprintf(" (%s)", d.Path)
	}
	return msg
}
