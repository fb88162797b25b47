package diag

import "sort"

// Report is the aggregated outcome of one validation run.
type Report struct {
	// RunID uniquely identifies this validation run.
	RunID string `json:"run_id"`

	// File is the feed file the report describes.
	File string `json:"file"`

	// Diagnostics contains the findings at or above the configured minimum
	// severity, in the order the rules produced them.
	Diagnostics []Diagnostic `json:"diagnostics"`

	// Summary contains counts by severity and by rule.
	Summary Summary `json:"summary"`
}

// Summary aggregates diagnostic counts.
type Summary struct {
	// Errors, Warnings and Infos count retained diagnostics by severity.
	Errors   int `json:"errors"`
	Warnings int `json:"warnings"`
	Infos    int `json:"infos"`

	// Rules counts retained diagnostics per rule, most findings first.
	Rules []RuleCount `json:"rules,omitempty"`
}

// RuleCount is the per-rule slice of the summary.
type RuleCount struct {
	Rule     string   `json:"rule"`
	Severity Severity `json:"severity"`
	Count    int      `json:"count"`
}

// Total returns the number of retained diagnostics.
func (s Summary) Total() int {
	return s.Errors + s.Warnings + s.Infos
}

// HasErrors reports whether any retained diagnostic is an Error.
func (r *Report) HasErrors() bool {
	return r.Summary.Errors > 0
}

// Aggregate filters diagnostics below min severity and derives the summary.
// It is a pure function of its inputs: the same diagnostics and threshold
// always produce the same report, and the retained diagnostics keep their
// input order.
func Aggregate(runID, file string, diagnostics []Diagnostic, min Severity) *Report {
	report := &Report{
		RunID:       runID,
		File:        file,
		Diagnostics: make([]Diagnostic, 0, len(diagnostics)),
	}

	perRule := make(map[string]*RuleCount)
	var ruleOrder []string

	for _, d := range diagnostics {
		if d.Severity < min {
			continue
		}
		report.Diagnostics = append(report.Diagnostics, d)

		switch d.Severity {
		case SeverityError:
			report.Summary.Errors++
		case SeverityWarning:
			report.Summary.Warnings++
		case SeverityInfo:
			report.Summary.Infos++
		}

		key := d.Rule + "\x00" + d.Severity.String()
		rc, ok := perRule[key]
		if !ok {
			rc = &RuleCount{Rule: d.Rule, Severity: d.Severity}
			perRule[key] = rc
			ruleOrder = append(ruleOrder, key)
		}
		rc.Count++
	}

	for _, key := range ruleOrder {
		report.Summary.Rules = append(report.Summary.Rules, *perRule[key])
	}
	// Most severe first, then most findings, then name. Stable so that
	// equal entries keep rule output order.
	sort.SliceStable(report.Summary.Rules, func(i, j int) bool {
		a, b := report.Summary.Rules[i], report.Summary.Rules[j]
		if a.Severity != b.Severity {
			return a.Severity > b.Severity
		}
		if a.Count != b.Count {
			return a.Count > b.Count
		}
		return a.Rule < b.Rule
	})

	return report
}
