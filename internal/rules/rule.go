// Package rules implements the semantic rule engine: the rule catalogue,
// the selector that resolves a rule set plus include/exclude filters into
// an effective rule list, and the executor that runs each rule in isolation
// over one parsed feed.
package rules

import (
	"log/slog"

	"github.com/civictools/cdflint/internal/cdf"
	"github.com/civictools/cdflint/internal/config"
	"github.com/civictools/cdflint/internal/diag"
	"github.com/civictools/cdflint/internal/ocdid"
	"github.com/civictools/cdflint/internal/schema"
)

// Rule set names. Each names the rule family for one feed category.
const (
	RuleSetElection        = "election"
	RuleSetOfficeholder    = "officeholder"
	RuleSetElectionResults = "election_results"
	RuleSetMetadata        = "metadata"
)

// RuleSets lists the valid rule set names.
var RuleSets = []string{
	RuleSetElection,
	RuleSetOfficeholder,
	RuleSetElectionResults,
	RuleSetMetadata,
}

// Descriptor is the static description of one rule.
type Descriptor struct {
	// Name is the unique identifier for this rule.
	Name string `json:"name" yaml:"name"`

	// Description is the one-line human description printed by list.
	Description string `json:"description" yaml:"description"`

	// Severity is the default severity of the rule's diagnostics.
	Severity diag.Severity `json:"severity" yaml:"severity"`

	// RuleSets names the feed categories the rule applies to.
	RuleSets []string `json:"rule_sets" yaml:"rule_sets"`
}

// AppliesTo reports whether the rule belongs to the named rule set.
func (d Descriptor) AppliesTo(ruleSet string) bool {
	for _, rs := range d.RuleSets {
		if rs == ruleSet {
			return true
		}
	}
	return false
}

// Rule is one best-practice check. Implementations are stateless across
// calls: Check may keep private scratch state for the duration of one call
// but must not retain it.
type Rule interface {
	// Describe returns the rule's static descriptor.
	Describe() Descriptor

	// Check evaluates the rule against one parsed feed and returns its
	// findings in document order of the offending elements.
	Check(rc *Context) []diag.Diagnostic
}

// Context carries the read-only inputs shared by every rule in one run.
// Nothing in it is mutated after construction, which is what makes rule
// evaluation safe to dispatch concurrently if a caller chooses to.
type Context struct {
	// Doc is the parsed feed.
	Doc *cdf.Document

	// Index is the entity index built over Doc.
	Index *cdf.EntityIndex

	// Schema is the parsed XSD companion, nil when unavailable.
	Schema *schema.Schema

	// Run is the resolved run configuration.
	Run *config.Run

	// OCDIDs is the loaded division list, nil when none was supplied.
	OCDIDs *ocdid.Set

	// SchemaDiags is the outcome of the external structural pre-pass,
	// surfaced by the Schema rule.
	SchemaDiags []diag.Diagnostic

	// DuplicateIDs is the duplicate-identifier outcome of the index build,
	// surfaced by the DuplicateID rule so no rule re-derives it.
	DuplicateIDs []diag.Diagnostic

	// Logger receives per-rule progress at debug level.
	Logger *slog.Logger
}

// GpUnits returns every geo-political unit in document order, whether
// written as a GpUnit, a subtype-tagged GpUnit, or a bare ReportingUnit.
func (rc *Context) GpUnits() []*cdf.Node {
	units := rc.Index.ByClass("GpUnit")
	seen := make(map[*cdf.Node]struct{}, len(units))
	for _, u := range units {
		seen[u] = struct{}{}
	}
	for _, u := range rc.Index.ByClass("ReportingUnit") {
		if _, ok := seen[u]; !ok {
			units = append(units, u)
		}
	}
	return units
}
