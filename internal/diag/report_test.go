package diag

import (
	"bytes"
	"strings"
	"testing"

	"github.com/fatih/color"
)

func sampleDiagnostics() []Diagnostic {
	return []Diagnostic{
		Errorf("ValidIDREF", "unresolved reference: can99999"),
		Errorf("ValidIDREF", "unresolved reference: per88888"),
		Errorf("DuplicateID", "per1 is a duplicate object ID"),
		Warningf("VoteCountPlausibility", "contest con1 selection vote counts sum to 450 but the contest declares 300 ballots"),
		Infof("HungarianStyleNotation", "candidate1 is not in Hungarian style notation"),
	}
}

func TestAggregate(t *testing.T) {
	report := Aggregate("run-1", "feed.xml", sampleDiagnostics(), SeverityInfo)

	if report.RunID != "run-1" || report.File != "feed.xml" {
		t.Errorf("report header = %q/%q, want run-1/feed.xml", report.RunID, report.File)
	}
	if got := report.Summary.Errors; got != 3 {
		t.Errorf("Summary.Errors = %d, want 3", got)
	}
	if got := report.Summary.Warnings; got != 1 {
		t.Errorf("Summary.Warnings = %d, want 1", got)
	}
	if got := report.Summary.Infos; got != 1 {
		t.Errorf("Summary.Infos = %d, want 1", got)
	}
	if !report.HasErrors() {
		t.Error("HasErrors() = false, want true")
	}

	// Rule counts: severity descending, then count descending, then name.
	wantRules := []string{"ValidIDREF", "DuplicateID", "VoteCountPlausibility", "HungarianStyleNotation"}
	if len(report.Summary.Rules) != len(wantRules) {
		t.Fatalf("Summary.Rules has %d entries, want %d", len(report.Summary.Rules), len(wantRules))
	}
	for i, want := range wantRules {
		if report.Summary.Rules[i].Rule != want {
			t.Errorf("Summary.Rules[%d] = %q, want %q", i, report.Summary.Rules[i].Rule, want)
		}
	}
	if report.Summary.Rules[0].Count != 2 {
		t.Errorf("ValidIDREF count = %d, want 2", report.Summary.Rules[0].Count)
	}
}

func TestAggregateSeverityThreshold(t *testing.T) {
	tests := []struct {
		name      string
		min       Severity
		wantTotal int
	}{
		{"info keeps everything", SeverityInfo, 5},
		{"warning drops infos", SeverityWarning, 4},
		{"error keeps only errors", SeverityError, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			report := Aggregate("run-1", "feed.xml", sampleDiagnostics(), tt.min)
			if got := report.Summary.Total(); got != tt.wantTotal {
				t.Errorf("Total() = %d, want %d", got, tt.wantTotal)
			}
			for _, d := range report.Diagnostics {
				if d.Severity < tt.min {
					t.Errorf("diagnostic %v below threshold %v survived", d, tt.min)
				}
			}
		})
	}
}

func TestAggregateDeterministic(t *testing.T) {
	first := Aggregate("run-1", "feed.xml", sampleDiagnostics(), SeverityInfo)
	for i := 0; i < 10; i++ {
		again := Aggregate("run-1", "feed.xml", sampleDiagnostics(), SeverityInfo)
		if len(again.Summary.Rules) != len(first.Summary.Rules) {
			t.Fatal("rule count changed between runs")
		}
		for j := range first.Summary.Rules {
			if again.Summary.Rules[j] != first.Summary.Rules[j] {
				t.Fatalf("rule order changed between runs: %v vs %v",
					again.Summary.Rules[j], first.Summary.Rules[j])
			}
		}
	}
}

func TestReporterText(t *testing.T) {
	old := color.NoColor
	color.NoColor = true
	defer func() { color.NoColor = old }()

	var buf bytes.Buffer
	r := NewReporter(&buf, FormatText, false)
	report := Aggregate("run-1", "feed.xml", sampleDiagnostics(), SeverityInfo)
	if err := r.Report(report); err != nil {
		t.Fatalf("Report() error = %v", err)
	}

	out := buf.String()
	for _, want := range []string{
		"Results for feed.xml (run run-1)",
		"     3 Error messages found",
		"         2 ValidIDREF Error messages",
		"         1 DuplicateID Error message",
		"     1 Warning message found",
		"     1 Info message found",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestReporterTextClean(t *testing.T) {
	old := color.NoColor
	color.NoColor = true
	defer func() { color.NoColor = old }()

	var buf bytes.Buffer
	r := NewReporter(&buf, FormatText, false)
	if err := r.Report(Aggregate("run-1", "feed.xml", nil, SeverityError)); err != nil {
		t.Fatalf("Report() error = %v", err)
	}
	if !strings.Contains(buf.String(), "Validation completed with no warnings/errors.") {
		t.Errorf("clean run output = %q", buf.String())
	}
}

func TestReporterVerboseListsDiagnostics(t *testing.T) {
	old := color.NoColor
	color.NoColor = true
	defer func() { color.NoColor = old }()

	var buf bytes.Buffer
	r := NewReporter(&buf, FormatText, true)
	report := Aggregate("run-1", "feed.xml", sampleDiagnostics(), SeverityInfo)
	if err := r.Report(report); err != nil {
		t.Fatalf("Report() error = %v", err)
	}
	if !strings.Contains(buf.String(), "unresolved reference: can99999") {
		t.Errorf("verbose output missing diagnostic message:\n%s", buf.String())
	}
}

func TestReporterJSON(t *testing.T) {
	var buf bytes.Buffer
	r := NewReporter(&buf, FormatJSON, false)
	report := Aggregate("run-1", "feed.xml", sampleDiagnostics(), SeverityWarning)
	if err := r.Report(report); err != nil {
		t.Fatalf("Report() error = %v", err)
	}

	out := buf.String()
	for _, want := range []string{`"run_id": "run-1"`, `"ValidIDREF"`, `"Error"`} {
		if !strings.Contains(out, want) {
			t.Errorf("JSON output missing %s:\n%s", want, out)
		}
	}
	if strings.Contains(out, "HungarianStyleNotation") {
		t.Error("JSON output contains a diagnostic below the threshold")
	}
}
