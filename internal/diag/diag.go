// Package diag defines the diagnostic types produced by validation rules
// and the aggregation of diagnostics into a report.
package diag

import (
	"fmt"
	"strings"

	"github.com/civictools/cdflint/internal/errors"
)

// Severity represents the impact of a diagnostic, in ascending order of
// importance.
type Severity int

const (
	// SeverityInfo indicates an informational note about best practices.
	SeverityInfo Severity = iota
	// SeverityWarning indicates an issue that should be fixed but does not
	// prevent the feed from being processed.
	SeverityWarning
	// SeverityError indicates a problem that must be fixed before the feed
	// can be processed successfully.
	SeverityError
)

func (s Severity) String() string {
	switch s {
	case SeverityInfo:
		return "Info"
	case SeverityWarning:
		return "Warning"
	case SeverityError:
		return "Error"
	default:
		return "unknown"
	}
}

// ParseSeverity converts a case-insensitive severity name into a Severity.
func ParseSeverity(name string) (Severity, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "info":
		return SeverityInfo, nil
	case "warning":
		return SeverityWarning, nil
	case "error":
		return SeverityError, nil
	default:
		return 0, errors.Wrapf(errors.ErrInvalidSeverity,
			"%q (options are Error, Warning, or Info)", name)
	}
}

// MarshalJSON encodes the severity by name.
func (s Severity) MarshalJSON() ([]byte, error) {
	return []byte(`"` + s.String() + `"`), nil
}

// MarshalYAML encodes the severity by name.
func (s Severity) MarshalYAML() (any, error) {
	return s.String(), nil
}

// Diagnostic is one reported finding produced by a rule. Immutable once
// produced.
type Diagnostic struct {
	// Rule is the name of the rule that produced this diagnostic.
	Rule string `json:"rule"`

	// Severity indicates the impact of the finding.
	Severity Severity `json:"severity"`

	// Message is a human-readable description of the finding.
	Message string `json:"message"`

	// Path locates the offending element in the document, when known.
	Path string `json:"path,omitempty"`

	// ObjectID identifies the offending entity, when known.
	ObjectID string `json:"object_id,omitempty"`
}

// String renders the diagnostic in the single-line form used by verbose
// reports.
func (d Diagnostic) String() string {
	var sb strings.Builder
	sb.WriteString(d.Severity.String())
	sb.WriteString(": ")
	sb.WriteString(d.Message)
	if d.ObjectID != "" {
		fmt.Fprintf(&sb, " [%s]", d.ObjectID)
	}
	if d.Path != "" {
		fmt.Fprintf(&sb, " (%s)", d.Path)
	}
	return sb.String()
}

// Errorf builds a Diagnostic of SeverityError.
func Errorf(rule, format string, args ...any) Diagnostic {
	return Diagnostic{Rule: rule, Severity: SeverityError, Message: fmt.Sprintf(format, args...)}
}

// Warningf builds a Diagnostic of SeverityWarning.
func Warningf(rule, format string, args ...any) Diagnostic {
	return Diagnostic{Rule: rule, Severity: SeverityWarning, Message: fmt.Sprintf(format, args...)}
}

// Infof builds a Diagnostic of SeverityInfo.
func Infof(rule, format string, args ...any) Diagnostic {
	return Diagnostic{Rule: rule, Severity: SeverityInfo, Message: fmt.Sprintf(format, args...)}
}

// At returns a copy of the diagnostic annotated with an element path and
// object identifier.
func (d Diagnostic) At(path, objectID string) Diagnostic {
	d.Path = path
	d.ObjectID = objectID
	return d
}
