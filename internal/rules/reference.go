package rules

import (
	"strings"

	"github.com/civictools/cdflint/internal/cdf"
	"github.com/civictools/cdflint/internal/diag"
	"github.com/civictools/cdflint/internal/ocdid"
)

// knownIDRefElements lists the reference-carrying element names used when
// no schema companion is available to derive them from.
var knownIDRefElements = map[string]struct{}{
	"CandidateIds":          {},
	"ComposingGpUnitIds":    {},
	"ElectionScopeId":       {},
	"ElectoralDistrictId":   {},
	"GpUnitIds":             {},
	"OfficeHolderPersonIds": {},
	"OfficeIds":             {},
	"PartyId":               {},
	"PartyIds":              {},
	"PersonId":              {},
	"PrimaryPartyIds":       {},
}

// ValidIDREFRule checks that every reference field resolves to a declared
// object identifier through the entity index.
type ValidIDREFRule struct{}

func (*ValidIDREFRule) Describe() Descriptor {
	return Descriptor{
		Name:        "ValidIDREF",
		Description: "Checks that every IDREF field references an existing object ID.",
		Severity:    diag.SeverityError,
		RuleSets:    RuleSets,
	}
}

func (r *ValidIDREFRule) Check(rc *Context) []diag.Diagnostic {
	var out []diag.Diagnostic
	rc.Doc.Root.Walk(func(n *cdf.Node) {
		if !r.isReference(rc, n.Tag) {
			return
		}
		for _, ref := range n.TextValues() {
			if _, ok := rc.Index.ByID(ref); !ok {
				out = append(out, diag.Errorf("ValidIDREF",
					"unresolved reference: %s", ref,
				).At(n.Path, ref))
			}
		}
	})
	return out
}

func (*ValidIDREFRule) isReference(rc *Context, tag string) bool {
	if rc.Schema != nil && rc.Schema.IsIDRef(tag) {
		return true
	}
	_, ok := knownIDRefElements[tag]
	return ok
}

// ElectoralDistrictOcdIdRule checks that every contest's electoral district
// references a GpUnit carrying a valid OCD-ID external identifier.
type ElectoralDistrictOcdIdRule struct{}

func (*ElectoralDistrictOcdIdRule) Describe() Descriptor {
	return Descriptor{
		Name:        "ElectoralDistrictOcdId",
		Description: "Checks that contest electoral districts reference GpUnits with valid OCD-IDs.",
		Severity:    diag.SeverityError,
		RuleSets:    []string{RuleSetElection, RuleSetOfficeholder, RuleSetElectionResults},
	}
}

func (r *ElectoralDistrictOcdIdRule) Check(rc *Context) []diag.Diagnostic {
	const name = "ElectoralDistrictOcdId"
	var out []diag.Diagnostic
	for _, contest := range rc.Index.ByClass("Contest") {
		district := contest.Child("ElectoralDistrictId")
		if district == nil || district.Text == "" {
			continue
		}
		unit, ok := rc.Index.ByID(district.Text)
		if !ok {
			out = append(out, diag.Errorf(name,
				"the ElectoralDistrictId for contest %s does not refer to a GpUnit",
				contest.ObjectID,
			).At(district.Path, contest.ObjectID))
			continue
		}

		ids, caseDiags := externalOcdIds(name, unit)
		out = append(out, caseDiags...)
		if len(ids) == 0 {
			out = append(out, diag.Errorf(name,
				"the GpUnit %s referenced by contest %s does not have any OCD-ID external identifier",
				district.Text, contest.ObjectID,
			).At(unit.Path, unit.ObjectID))
			continue
		}
		if !anyValidOcdId(rc, ids) {
			out = append(out, diag.Errorf(name,
				"the ElectoralDistrictId for contest %s refers to GpUnit %s which does not have a valid OCD-ID",
				contest.ObjectID, district.Text,
			).At(unit.Path, unit.ObjectID))
		}
	}
	return out
}

// externalOcdIds collects the ocd-id external identifier values of a unit.
// A Type spelled with the wrong case is its own defect.
func externalOcdIds(rule string, unit *cdf.Node) ([]string, []diag.Diagnostic) {
	var values []string
	var out []diag.Diagnostic
	for _, ext := range unit.FindAll("ExternalIdentifier") {
		t := ext.Child("Type")
		if t == nil {
			continue
		}
		if t.Text == ocdid.ExternalIdentifierType {
			if v := ext.Child("Value"); v != nil && v.Text != "" {
				values = append(values, v.Text)
			}
			continue
		}
		if strings.EqualFold(t.Text, ocdid.ExternalIdentifierType) {
			out = append(out, diag.Errorf(rule,
				"the external identifier type case is incorrect, should be %s and not %s",
				ocdid.ExternalIdentifierType, t.Text,
			).At(t.Path, unit.ObjectID))
		}
	}
	return values, out
}

// anyValidOcdId reports whether any value is a well-formed OCD-ID that also
// appears in the loaded division list. Without a loaded list, well-formed
// is the best answer available.
func anyValidOcdId(rc *Context, values []string) bool {
	for _, v := range values {
		if !ocdid.IsWellFormed(v) {
			continue
		}
		if rc.OCDIDs.Len() == 0 || rc.OCDIDs.Contains(v) {
			return true
		}
	}
	return false
}

// GpUnitOcdIdRule checks that geographic district units carry valid OCD-IDs.
type GpUnitOcdIdRule struct{}

func (*GpUnitOcdIdRule) Describe() Descriptor {
	return Descriptor{
		Name:        "GpUnitOcdId",
		Description: "Checks that geographic district GpUnits have valid OCD-IDs.",
		Severity:    diag.SeverityWarning,
		RuleSets:    []string{RuleSetElection, RuleSetOfficeholder, RuleSetElectionResults},
	}
}

func (r *GpUnitOcdIdRule) Check(rc *Context) []diag.Diagnostic {
	const name = "GpUnitOcdId"
	var out []diag.Diagnostic
	for _, unit := range rc.GpUnits() {
		if unit.ObjectID == "" {
			continue
		}
		t := unit.Child("Type")
		if t == nil || !cdf.DistrictReportingUnitTypes.Contains(t.Text) {
			continue
		}
		ids, _ := externalOcdIds(name, unit)
		for _, id := range ids {
			if !ocdid.IsWellFormed(id) || (rc.OCDIDs.Len() > 0 && !rc.OCDIDs.Contains(id)) {
				out = append(out, diag.Warningf(name,
					"the OCD-ID %s in GpUnit %s is not valid", id, unit.ObjectID,
				).At(unit.Path, unit.ObjectID))
			}
		}
	}
	return out
}

// ReusedCandidateRule checks that a candidate is referenced by at most one
// candidate selection. A person running in several contests is several
// candidacies; a single candidacy cannot span contests.
type ReusedCandidateRule struct{}

func (*ReusedCandidateRule) Describe() Descriptor {
	return Descriptor{
		Name:        "ReusedCandidate",
		Description: "Checks that each candidate is referenced by only one contest.",
		Severity:    diag.SeverityError,
		RuleSets:    []string{RuleSetElection, RuleSetElectionResults},
	}
}

func (*ReusedCandidateRule) Check(rc *Context) []diag.Diagnostic {
	seen := make(map[string][]string)
	var order []string
	for _, sel := range rc.Index.ByClass("CandidateSelection") {
		ids := sel.Child("CandidateIds")
		if ids == nil || sel.ObjectID == "" {
			continue
		}
		for _, candidate := range ids.TextValues() {
			if len(seen[candidate]) == 0 {
				order = append(order, candidate)
			}
			seen[candidate] = append(seen[candidate], sel.ObjectID)
		}
	}

	var out []diag.Diagnostic
	for _, candidate := range order {
		selections := seen[candidate]
		if len(selections) > 1 {
			out = append(out, diag.Errorf("ReusedCandidate",
				"candidate %s is referenced by multiple CandidateSelections: %s",
				candidate, strings.Join(selections, ", "),
			).At("", candidate))
		}
	}
	return out
}

// electionType returns the declared type of the feed's Election element.
func electionType(rc *Context) string {
	elections := rc.Index.ByClass("Election")
	if len(elections) == 0 {
		return ""
	}
	return elections[0].ChildText("Type")
}

// PartisanPrimaryRule checks that contests of partisan primaries link the
// correct political party.
type PartisanPrimaryRule struct{}

func (*PartisanPrimaryRule) Describe() Descriptor {
	return Descriptor{
		Name:        "PartisanPrimary",
		Description: "Checks that partisan primary contests declare their primary parties.",
		Severity:    diag.SeverityError,
		RuleSets:    []string{RuleSetElection, RuleSetElectionResults},
	}
}

func (*PartisanPrimaryRule) Check(rc *Context) []diag.Diagnostic {
	eType := electionType(rc)
	if !cdf.PartisanPrimaryTypes.Contains(eType) {
		return nil
	}
	var out []diag.Diagnostic
	for _, contest := range rc.Index.ByClass("CandidateContest") {
		party := contest.Child("PrimaryPartyIds")
		if party == nil || party.Text == "" {
			out = append(out, diag.Errorf("PartisanPrimary",
				"election is of type %s but PrimaryPartyIds is not present or empty",
				eType,
			).At(contest.Path, contest.ObjectID))
		}
	}
	return out
}

// primaryPartyHints are contest-name fragments that imply a partisan
// primary.
var primaryPartyHints = []string{"(dem)", "(rep)", "(lib)"}

// PartisanPrimaryHeuristicRule flags contests that look like partisan
// primaries but are not marked up as such.
type PartisanPrimaryHeuristicRule struct{}

func (*PartisanPrimaryHeuristicRule) Describe() Descriptor {
	return Descriptor{
		Name:        "PartisanPrimaryHeuristic",
		Description: "Attempts to identify partisan primaries not marked up as such.",
		Severity:    diag.SeverityWarning,
		RuleSets:    []string{RuleSetElection, RuleSetElectionResults},
	}
}

func (*PartisanPrimaryHeuristicRule) Check(rc *Context) []diag.Diagnostic {
	if cdf.PartisanPrimaryTypes.Contains(electionType(rc)) {
		return nil
	}
	var out []diag.Diagnostic
	for _, contest := range rc.Index.ByClass("CandidateContest") {
		contestName := contest.ChildText("Name")
		normalized := strings.ToLower(strings.ReplaceAll(contestName, " ", ""))
		for _, hint := range primaryPartyHints {
			if strings.Contains(normalized, hint) {
				out = append(out, diag.Warningf("PartisanPrimaryHeuristic",
					"contest name %q implies a partisan primary but the election is not marked up as one",
					contestName,
				).At(contest.Path, contest.ObjectID))
				break
			}
		}
	}
	return out
}
