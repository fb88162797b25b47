package rules

import (
	"strings"

	"golang.org/x/text/language"

	"github.com/civictools/cdflint/internal/cdf"
	"github.com/civictools/cdflint/internal/diag"
)

// OptionalAndEmptyRule flags optional elements included although empty.
type OptionalAndEmptyRule struct{}

func (*OptionalAndEmptyRule) Describe() Descriptor {
	return Descriptor{
		Name:        "OptionalAndEmpty",
		Description: "Checks for optional elements that are included but empty.",
		Severity:    diag.SeverityWarning,
		RuleSets:    RuleSets,
	}
}

func (*OptionalAndEmptyRule) Check(rc *Context) []diag.Diagnostic {
	if rc.Schema == nil {
		return nil
	}
	var out []diag.Diagnostic
	rc.Doc.Root.Walk(func(n *cdf.Node) {
		if !rc.Schema.Optional(n.Tag) {
			return
		}
		if n.Text == "" && len(n.Children) == 0 {
			out = append(out, diag.Warningf("OptionalAndEmpty",
				"%s optional element included although it is empty", n.Tag,
			).At(n.Path, n.ObjectID))
		}
	})
	return out
}

// EmptyTextRule flags Text elements with no content.
type EmptyTextRule struct{}

func (*EmptyTextRule) Describe() Descriptor {
	return Descriptor{
		Name:        "EmptyText",
		Description: "Checks that Text elements are not empty.",
		Severity:    diag.SeverityWarning,
		RuleSets:    RuleSets,
	}
}

func (*EmptyTextRule) Check(rc *Context) []diag.Diagnostic {
	var out []diag.Diagnostic
	rc.Doc.Root.Walk(func(n *cdf.Node) {
		if n.Tag == "Text" && n.Text == "" && len(n.Children) == 0 {
			out = append(out, diag.Warningf("EmptyText",
				"Text element is empty").At(n.Path, ""))
		}
	})
	return out
}

// LanguageCodeRule checks the language attribute of Text elements against
// BCP 47. An absent attribute is fine; a present one must parse.
type LanguageCodeRule struct{}

func (*LanguageCodeRule) Describe() Descriptor {
	return Descriptor{
		Name:        "LanguageCode",
		Description: "Checks that Text elements carry a valid language code.",
		Severity:    diag.SeverityError,
		RuleSets:    RuleSets,
	}
}

func (*LanguageCodeRule) Check(rc *Context) []diag.Diagnostic {
	var out []diag.Diagnostic
	rc.Doc.Root.Walk(func(n *cdf.Node) {
		if n.Tag != "Text" || n.Attrs == nil {
			return
		}
		code, declared := n.Attrs["language"]
		if !declared {
			return
		}
		if _, err := language.Parse(strings.TrimSpace(code)); err != nil {
			out = append(out, diag.Errorf("LanguageCode",
				"%q is not a valid language code", code,
			).At(n.Path, ""))
		}
	})
	return out
}

// UniqueLabelRule checks that label attributes are unique within a feed.
type UniqueLabelRule struct{}

func (*UniqueLabelRule) Describe() Descriptor {
	return Descriptor{
		Name:        "UniqueLabel",
		Description: "Checks that labels are unique within the feed.",
		Severity:    diag.SeverityError,
		RuleSets:    RuleSets,
	}
}

func (*UniqueLabelRule) Check(rc *Context) []diag.Diagnostic {
	var out []diag.Diagnostic
	seen := make(map[string]struct{})
	rc.Doc.Root.Walk(func(n *cdf.Node) {
		label := n.Attr("label")
		if label == "" {
			return
		}
		if _, dup := seen[label]; dup {
			out = append(out, diag.Errorf("UniqueLabel",
				"duplicate label %q, label already defined", label,
			).At(n.Path, n.ObjectID))
			return
		}
		seen[label] = struct{}{}
	})
	return out
}

// objectIDPrefixes maps entity classes to their conventional identifier
// prefixes.
var objectIDPrefixes = map[string]string{
	"BallotMeasureContest":   "bmc",
	"BallotMeasureSelection": "bms",
	"BallotStyle":            "bs",
	"Candidate":              "can",
	"CandidateContest":       "cc",
	"CandidateSelection":     "cs",
	"Coalition":              "coa",
	"ContactInformation":     "ci",
	"Hours":                  "hours",
	"Office":                 "off",
	"OfficeGroup":            "og",
	"Party":                  "par",
	"PartyContest":           "pc",
	"PartySelection":         "ps",
	"Person":                 "per",
	"ReportingDevice":        "rd",
	"ReportingUnit":          "ru",
	"RetentionContest":       "rc",
	"Schedule":               "sched",
}

// HungarianStyleNotationRule checks identifier prefix conventions. The
// prefixes keep identifiers unique across entity kinds and tell a reader
// what an identifier points at.
type HungarianStyleNotationRule struct{}

func (*HungarianStyleNotationRule) Describe() Descriptor {
	return Descriptor{
		Name:        "HungarianStyleNotation",
		Description: "Checks that object identifiers use Hungarian style notation.",
		Severity:    diag.SeverityInfo,
		RuleSets:    []string{RuleSetElection, RuleSetOfficeholder, RuleSetElectionResults},
	}
}

func (*HungarianStyleNotationRule) Check(rc *Context) []diag.Diagnostic {
	var out []diag.Diagnostic
	rc.Doc.Root.Walk(func(n *cdf.Node) {
		if n.ObjectID == "" {
			return
		}
		prefix, known := objectIDPrefixes[n.Class()]
		if !known {
			return
		}
		if len(n.ObjectID) < len(prefix) || n.ObjectID[:len(prefix)] != prefix {
			out = append(out, diag.Infof("HungarianStyleNotation",
				"%s ID %s is not in Hungarian style notation, should start with %s",
				n.Class(), n.ObjectID, prefix,
			).At(n.Path, n.ObjectID))
		}
	})
	return out
}

// OtherTypeRule checks that elements whose Type is "other" define the
// corresponding OtherType element.
type OtherTypeRule struct{}

func (*OtherTypeRule) Describe() Descriptor {
	return Descriptor{
		Name:        "OtherType",
		Description: "Checks that elements with Type set to 'other' define OtherType.",
		Severity:    diag.SeverityError,
		RuleSets:    []string{RuleSetElection, RuleSetOfficeholder, RuleSetElectionResults},
	}
}

func (*OtherTypeRule) Check(rc *Context) []diag.Diagnostic {
	var out []diag.Diagnostic
	rc.Doc.Root.Walk(func(n *cdf.Node) {
		t := n.Child("Type")
		if t == nil || t.Text != "other" {
			return
		}
		if n.Child("OtherType") == nil {
			out = append(out, diag.Errorf("OtherType",
				"Type on element %s is set to 'other' but OtherType is not defined",
				n.Tag,
			).At(n.Path, n.ObjectID))
		}
	})
	return out
}
