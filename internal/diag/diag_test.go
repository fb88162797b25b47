package diag

import (
	"testing"

	"github.com/civictools/cdflint/internal/errors"
)

func TestParseSeverity(t *testing.T) {
	tests := []struct {
		input string
		want  Severity
		ok    bool
	}{
		{"Error", SeverityError, true},
		{"error", SeverityError, true},
		{"WARNING", SeverityWarning, true},
		{"Info", SeverityInfo, true},
		{"fatal", 0, false},
		{"", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseSeverity(tt.input)
			if tt.ok {
				if err != nil {
					t.Fatalf("ParseSeverity(%q) error = %v", tt.input, err)
				}
				if got != tt.want {
					t.Errorf("ParseSeverity(%q) = %v, want %v", tt.input, got, tt.want)
				}
				return
			}
			if err == nil {
				t.Fatalf("ParseSeverity(%q) succeeded, want error", tt.input)
			}
			if !errors.Is(err, errors.ErrInvalidSeverity) {
				t.Errorf("error %v does not wrap ErrInvalidSeverity", err)
			}
		})
	}
}

func TestSeverityOrdering(t *testing.T) {
	if !(SeverityInfo < SeverityWarning && SeverityWarning < SeverityError) {
		t.Fatal("severity values are not ordered Info < Warning < Error")
	}
}

func TestDiagnosticConstructors(t *testing.T) {
	d := Warningf("ElectionDates", "the EndDate %s is before the StartDate %s", "2024-01", "2024-02")
	if d.Severity != SeverityWarning {
		t.Errorf("Severity = %v, want Warning", d.Severity)
	}
	if d.Rule != "ElectionDates" {
		t.Errorf("Rule = %q, want ElectionDates", d.Rule)
	}

	located := d.At("/ElectionReport/Election", "el1")
	if located.Path != "/ElectionReport/Election" || located.ObjectID != "el1" {
		t.Errorf("At() = %+v, want path and objectId set", located)
	}
	// At returns a copy; the original stays unlocated.
	if d.Path != "" {
		t.Errorf("original Path = %q, want empty", d.Path)
	}
}
